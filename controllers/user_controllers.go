package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"pizza-order-app/models"
	"pizza-order-app/utils"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

type credentialsForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

func (uc *UserController) ShowRegister(c *gin.Context) {
	utils.RenderHTML(c, http.StatusOK, "register.html", gin.H{})
}

// Register creates a user with role fixed to "user". Admin accounts are
// provisioned out of band, never through this form.
func (uc *UserController) Register(c *gin.Context) {
	var form credentialsForm
	if err := c.ShouldBind(&form); err != nil {
		utils.RenderHTML(c, http.StatusOK, "register.html", gin.H{
			"Flash": &utils.Flash{Category: "danger", Message: "Username and password are required."},
		})
		return
	}

	hashed, err := utils.HashPassword(form.Password)
	if err != nil {
		utils.RenderServerError(c, err)
		return
	}

	user := models.User{
		Username: form.Username,
		Password: hashed,
		Role:     models.RoleUser,
	}

	ctx, cancel := utils.DBContext(c)
	defer cancel()

	if err := uc.DB.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.RenderHTML(c, http.StatusOK, "register.html", gin.H{
				"Flash": &utils.Flash{Category: "danger", Message: "That username is already taken."},
			})
			return
		}
		utils.RenderServerError(c, err)
		return
	}

	utils.InfoLogger.Printf("New user registered: %s", user.Username)

	utils.SetFlash(c, "success", "Registration successful. Please log in.")
	c.Redirect(http.StatusFound, "/login")
}

func (uc *UserController) ShowLogin(c *gin.Context) {
	utils.RenderHTML(c, http.StatusOK, "login.html", gin.H{})
}

// Login verifies the credentials and issues the session cookie. The
// role stored in the session is whatever the user row carries at this
// moment.
func (uc *UserController) Login(c *gin.Context) {
	var form credentialsForm
	if err := c.ShouldBind(&form); err != nil {
		utils.RenderHTML(c, http.StatusOK, "login.html", gin.H{
			"Flash": &utils.Flash{Category: "danger", Message: "Username and password are required."},
		})
		return
	}

	ctx, cancel := utils.DBContext(c)
	defer cancel()

	var user models.User
	err := uc.DB.WithContext(ctx).Where("username = ?", form.Username).First(&user).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RenderServerError(c, err)
		return
	}

	// Same message for unknown user and wrong password; no hint which
	// one failed.
	if err != nil || !utils.CheckPasswordHash(form.Password, user.Password) {
		utils.RenderHTML(c, http.StatusOK, "login.html", gin.H{
			"Flash": &utils.Flash{Category: "danger", Message: "Invalid username or password."},
		})
		return
	}

	token, err := utils.GenerateSessionToken(user.ID, user.Username, user.Role)
	if err != nil {
		utils.RenderServerError(c, err)
		return
	}
	utils.SetSessionCookie(c, token)

	utils.InfoLogger.Printf("Login successful: %s (role=%s)", user.Username, user.Role)

	utils.SetFlash(c, "success", "Login successful!")
	if user.Role == models.RoleAdmin {
		c.Redirect(http.StatusFound, "/admin")
		return
	}
	c.Redirect(http.StatusFound, "/menu")
}

func (uc *UserController) Logout(c *gin.Context) {
	utils.ClearSessionCookie(c)
	utils.SetFlash(c, "info", "You have been logged out.")
	c.Redirect(http.StatusFound, "/")
}

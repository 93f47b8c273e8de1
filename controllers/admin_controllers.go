package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"pizza-order-app/models"
	"pizza-order-app/utils"
)

type AdminController struct {
	DB        *gorm.DB
	UploadDir string
}

func NewAdminController(db *gorm.DB, uploadDir string) *AdminController {
	return &AdminController{DB: db, UploadDir: uploadDir}
}

// Dashboard lists every order with the user and pizza joined in, newest
// first. No pagination at this scale.
func (ac *AdminController) Dashboard(c *gin.Context) {
	ctx, cancel := utils.DBContext(c)
	defer cancel()

	var orders []models.Order
	if err := ac.DB.WithContext(ctx).Preload("User").Preload("Pizza").Order("created_at DESC").Find(&orders).Error; err != nil {
		utils.RenderServerError(c, err)
		return
	}

	utils.RenderHTML(c, http.StatusOK, "admin_dashboard.html", gin.H{"Orders": orders})
}

func (ac *AdminController) ShowAddPizza(c *gin.Context) {
	utils.RenderHTML(c, http.StatusOK, "add_pizza.html", gin.H{})
}

type addPizzaForm struct {
	Name        string  `form:"name" binding:"required"`
	Description string  `form:"description" binding:"required"`
	Price       float64 `form:"price" binding:"required,gt=0"`
	ImageSource string  `form:"image_source" binding:"required,oneof=file url"`
	ImageURL    string  `form:"image_url"`
}

func (ac *AdminController) addPizzaInvalid(c *gin.Context, message string) {
	utils.RenderHTML(c, http.StatusOK, "add_pizza.html", gin.H{
		"Flash": &utils.Flash{Category: "danger", Message: message},
	})
}

// AddPizza creates a catalog item. The image comes either from an
// uploaded file (allow-listed extension, renamed, saved under the
// upload dir) or from a raw external URL. Nothing is inserted unless the
// image source validates.
func (ac *AdminController) AddPizza(c *gin.Context) {
	var form addPizzaForm
	if err := c.ShouldBind(&form); err != nil {
		ac.addPizzaInvalid(c, "Name, description and a positive price are required.")
		return
	}

	var imageURL string
	switch form.ImageSource {
	case "file":
		file, err := c.FormFile("photo")
		if err != nil || !utils.AllowedImageFile(file.Filename) {
			ac.addPizzaInvalid(c, "Invalid or missing image file.")
			return
		}
		imageURL, err = utils.SaveImageUpload(c, file, ac.UploadDir)
		if err != nil {
			utils.RenderServerError(c, err)
			return
		}
	case "url":
		if form.ImageURL == "" {
			ac.addPizzaInvalid(c, "Please provide a valid image URL.")
			return
		}
		imageURL = form.ImageURL
	}

	pizza := models.Pizza{
		Name:        form.Name,
		Description: form.Description,
		Price:       form.Price,
		ImageURL:    imageURL,
	}

	ctx, cancel := utils.DBContext(c)
	defer cancel()

	if err := ac.DB.WithContext(ctx).Create(&pizza).Error; err != nil {
		utils.RenderServerError(c, err)
		return
	}

	utils.InfoLogger.Printf("Pizza added: %s (%.2f)", pizza.Name, pizza.Price)

	utils.SetFlash(c, "success", "Pizza added successfully!")
	c.Redirect(http.StatusFound, "/menu")
}

// MarkCompleted is a blind status update by id: no existence check, no
// pending precondition, safe to retry.
func (ac *AdminController) MarkCompleted(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("order_id"))
	if err != nil || id <= 0 {
		utils.SetFlash(c, "danger", "Order not found.")
		c.Redirect(http.StatusFound, "/admin")
		return
	}

	ctx, cancel := utils.DBContext(c)
	defer cancel()

	if err := ac.DB.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).
		Update("status", models.OrderStatusCompleted).Error; err != nil {
		utils.RenderServerError(c, err)
		return
	}

	utils.SetFlash(c, "success", "Order marked as completed.")
	c.Redirect(http.StatusFound, "/admin")
}

package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"pizza-order-app/config"
	"pizza-order-app/controllers"
	"pizza-order-app/middlewares"
	"pizza-order-app/utils"
)

func SetupRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.SecurityHeaders())

	r.LoadHTMLGlob("templates/*.html")

	// Serve uploaded pizza images, image files only.
	r.Use(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/uploads/") {
			path := strings.ToLower(c.Request.URL.Path)
			if !strings.HasSuffix(path, ".jpg") &&
				!strings.HasSuffix(path, ".jpeg") &&
				!strings.HasSuffix(path, ".png") &&
				!strings.HasSuffix(path, ".gif") {
				c.AbortWithStatus(http.StatusForbidden)
				return
			}
		}
		c.Next()
	})
	r.Static("/uploads", cfg.UploadDir)

	userCtrl := controllers.NewUserController(db)
	orderCtrl := controllers.NewOrderController(db)
	adminCtrl := controllers.NewAdminController(db, cfg.UploadDir)

	r.GET("/", func(c *gin.Context) {
		utils.RenderHTML(c, http.StatusOK, "index.html", gin.H{})
	})

	// 5 credential attempts per minute per IP.
	authLimiter := middlewares.NewAuthRateLimiter(rate.Every(12*time.Second), 5)

	r.GET("/register", userCtrl.ShowRegister)
	r.POST("/register", authLimiter.Limit(), userCtrl.Register)
	r.GET("/login", userCtrl.ShowLogin)
	r.POST("/login", authLimiter.Limit(), userCtrl.Login)
	r.GET("/logout", userCtrl.Logout)

	// Receipt pages are reachable without a session.
	r.GET("/order_confirmation/:order_id", orderCtrl.Confirmation)
	r.GET("/payment_confirmation/:order_id", orderCtrl.Confirmation)

	authed := r.Group("/", middlewares.AuthRequired())
	{
		authed.GET("/menu", orderCtrl.Menu)
		authed.GET("/order/:pizza_id", orderCtrl.ShowOrderForm)
		authed.POST("/order/:pizza_id", orderCtrl.PlaceOrder)
	}

	admin := r.Group("/", middlewares.AuthRequired(), middlewares.AdminRequired())
	{
		admin.GET("/admin", adminCtrl.Dashboard)
		admin.GET("/add_pizza", adminCtrl.ShowAddPizza)
		admin.POST("/add_pizza", adminCtrl.AddPizza)
		admin.GET("/mark_as_completed/:order_id", adminCtrl.MarkCompleted)
	}

	return r
}

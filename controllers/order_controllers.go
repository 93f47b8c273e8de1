package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"pizza-order-app/models"
	"pizza-order-app/utils"
)

// PaymentMethods lists the accepted payment options, first entry is the
// form default.
var PaymentMethods = []string{"cash", "card", "online"}

type OrderController struct {
	DB *gorm.DB
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{DB: db}
}

// Menu lists the whole catalog. An empty catalog renders an empty menu,
// not an error.
func (oc *OrderController) Menu(c *gin.Context) {
	ctx, cancel := utils.DBContext(c)
	defer cancel()

	var pizzas []models.Pizza
	if err := oc.DB.WithContext(ctx).Find(&pizzas).Error; err != nil {
		utils.RenderServerError(c, err)
		return
	}

	utils.RenderHTML(c, http.StatusOK, "menu.html", gin.H{"Pizzas": pizzas})
}

// fetchPizza resolves the :pizza_id route param. On a bad or unknown id
// it flashes and redirects to the menu, then returns nil; callers just
// return.
func (oc *OrderController) fetchPizza(c *gin.Context) *models.Pizza {
	id, err := strconv.Atoi(c.Param("pizza_id"))
	if err != nil || id <= 0 {
		utils.SetFlash(c, "danger", "Pizza not found.")
		c.Redirect(http.StatusFound, "/menu")
		return nil
	}

	ctx, cancel := utils.DBContext(c)
	defer cancel()

	var pizza models.Pizza
	if err := oc.DB.WithContext(ctx).First(&pizza, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SetFlash(c, "danger", "Pizza not found.")
			c.Redirect(http.StatusFound, "/menu")
			return nil
		}
		utils.RenderServerError(c, err)
		return nil
	}

	return &pizza
}

func (oc *OrderController) ShowOrderForm(c *gin.Context) {
	pizza := oc.fetchPizza(c)
	if pizza == nil {
		return
	}

	utils.RenderHTML(c, http.StatusOK, "order.html", gin.H{
		"Pizza":          pizza,
		"PaymentMethods": PaymentMethods,
	})
}

type orderForm struct {
	Quantity      int    `form:"quantity" binding:"required,gt=0"`
	PaymentMethod string `form:"payment_method" binding:"required,oneof=cash card online"`
}

// PlaceOrder validates the form, snapshots the price, and persists the
// order as pending with the promised delivery time.
func (oc *OrderController) PlaceOrder(c *gin.Context) {
	pizza := oc.fetchPizza(c)
	if pizza == nil {
		return
	}

	var form orderForm
	if err := c.ShouldBind(&form); err != nil {
		utils.RenderHTML(c, http.StatusOK, "order.html", gin.H{
			"Pizza":          pizza,
			"PaymentMethods": PaymentMethods,
			"Flash":          &utils.Flash{Category: "danger", Message: "Please enter a valid quantity and payment method."},
		})
		return
	}

	order := models.Order{
		UserID:        c.GetUint("user_id"),
		PizzaID:       pizza.ID,
		Quantity:      form.Quantity,
		PaymentMethod: form.PaymentMethod,
		TotalPrice:    models.OrderTotal(pizza.Price, form.Quantity),
		Status:        models.OrderStatusPending,
		DeliveryTime:  time.Now().Add(models.DeliveryOffset),
	}

	ctx, cancel := utils.DBContext(c)
	defer cancel()

	if err := oc.DB.WithContext(ctx).Create(&order).Error; err != nil {
		utils.RenderServerError(c, err)
		return
	}

	utils.InfoLogger.Printf("Order %d placed: pizza=%d qty=%d total=%.2f", order.ID, order.PizzaID, order.Quantity, order.TotalPrice)

	c.Redirect(http.StatusFound, fmt.Sprintf("/order_confirmation/%d", order.ID))
}

// Confirmation shows the receipt with the user and pizza joined in.
// Reachable without a session, matching the payment-confirmation page.
func (oc *OrderController) Confirmation(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("order_id"))
	if err != nil || id <= 0 {
		utils.SetFlash(c, "danger", "Order not found.")
		c.Redirect(http.StatusFound, "/menu")
		return
	}

	ctx, cancel := utils.DBContext(c)
	defer cancel()

	var order models.Order
	if err := oc.DB.WithContext(ctx).Preload("User").Preload("Pizza").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SetFlash(c, "danger", "Order not found.")
			c.Redirect(http.StatusFound, "/menu")
			return
		}
		utils.RenderServerError(c, err)
		return
	}

	utils.RenderHTML(c, http.StatusOK, "order_confirmation.html", gin.H{"Order": order})
}

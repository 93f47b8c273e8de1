package controllers_test

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizza-order-app/models"
)

func TestMenuRequiresLogin(t *testing.T) {
	db := setupTestDB(t)
	r, _ := setupRouter(t, db)

	w := getPage(r, "/menu", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestMenuListsPizzas(t *testing.T) {
	db := setupTestDB(t)
	r, _ := setupRouter(t, db)
	seedUser(t, db, "mario", "secret123", models.RoleUser)
	seedPizza(t, db, "Margherita", 12.50)
	seedPizza(t, db, "Quattro Formaggi", 15.00)
	ck := login(t, r, "mario", "secret123")

	w := getPage(r, "/menu", ck)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Margherita")
	assert.Contains(t, w.Body.String(), "Quattro Formaggi")
	assert.Contains(t, w.Body.String(), "12.50")
}

func TestMenuEmptyCatalog(t *testing.T) {
	db := setupTestDB(t)
	r, _ := setupRouter(t, db)
	seedUser(t, db, "mario", "secret123", models.RoleUser)
	ck := login(t, r, "mario", "secret123")

	w := getPage(r, "/menu", ck)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No pizzas on the menu yet")
}

func TestPlaceOrder(t *testing.T) {
	db := setupTestDB(t)
	r, _ := setupRouter(t, db)
	user := seedUser(t, db, "mario", "secret123", models.RoleUser)
	pizza := seedPizza(t, db, "Margherita", 12.50)
	ck := login(t, r, "mario", "secret123")

	w := postForm(r, fmt.Sprintf("/order/%d", pizza.ID), url.Values{
		"quantity":       {"2"},
		"payment_method": {"cash"},
	}, ck)
	require.Equal(t, http.StatusFound, w.Code)

	var order models.Order
	require.NoError(t, db.First(&order).Error)
	assert.Equal(t, user.ID, order.UserID)
	assert.Equal(t, pizza.ID, order.PizzaID)
	assert.Equal(t, 2, order.Quantity)
	assert.Equal(t, "cash", order.PaymentMethod)
	assert.Equal(t, 25.00, order.TotalPrice)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.WithinDuration(t, time.Now().Add(models.DeliveryOffset), order.DeliveryTime, 5*time.Second)

	assert.Equal(t, fmt.Sprintf("/order_confirmation/%d", order.ID), w.Header().Get("Location"))

	w = getPage(r, fmt.Sprintf("/order_confirmation/%d", order.ID), ck)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "mario")
	assert.Contains(t, w.Body.String(), "Margherita")
	assert.Contains(t, w.Body.String(), "25.00")
}

func TestPlaceOrderAppliesVolumeDiscount(t *testing.T) {
	db := setupTestDB(t)
	r, _ := setupRouter(t, db)
	seedUser(t, db, "mario", "secret123", models.RoleUser)
	pizza := seedPizza(t, db, "Gran Deluxe", 300.00)
	ck := login(t, r, "mario", "secret123")

	w := postForm(r, fmt.Sprintf("/order/%d", pizza.ID), url.Values{
		"quantity":       {"2"},
		"payment_method": {"card"},
	}, ck)
	require.Equal(t, http.StatusFound, w.Code)

	// 600 over the threshold, 5% off.
	var order models.Order
	require.NoError(t, db.First(&order).Error)
	assert.Equal(t, 570.00, order.TotalPrice)
}

func TestPlaceOrderRejectsBadQuantity(t *testing.T) {
	db := setupTestDB(t)
	r, _ := setupRouter(t, db)
	seedUser(t, db, "mario", "secret123", models.RoleUser)
	pizza := seedPizza(t, db, "Margherita", 12.50)
	ck := login(t, r, "mario", "secret123")

	for _, quantity := range []string{"0", "-3", "abc", ""} {
		t.Run("quantity="+quantity, func(t *testing.T) {
			w := postForm(r, fmt.Sprintf("/order/%d", pizza.ID), url.Values{
				"quantity":       {quantity},
				"payment_method": {"cash"},
			}, ck)

			// The form is re-rendered with a notice, no crash, no row.
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), "valid quantity")

			var count int64
			require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
			assert.EqualValues(t, 0, count)
		})
	}
}

func TestPlaceOrderRejectsUnknownPaymentMethod(t *testing.T) {
	db := setupTestDB(t)
	r, _ := setupRouter(t, db)
	seedUser(t, db, "mario", "secret123", models.RoleUser)
	pizza := seedPizza(t, db, "Margherita", 12.50)
	ck := login(t, r, "mario", "secret123")

	w := postForm(r, fmt.Sprintf("/order/%d", pizza.ID), url.Values{
		"quantity":       {"1"},
		"payment_method": {"barter"},
	}, ck)

	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestOrderUnknownPizza(t *testing.T) {
	db := setupTestDB(t)
	r, _ := setupRouter(t, db)
	seedUser(t, db, "mario", "secret123", models.RoleUser)
	ck := login(t, r, "mario", "secret123")

	w := getPage(r, "/order/999", ck)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/menu", w.Header().Get("Location"))

	w = postForm(r, "/order/999", url.Values{
		"quantity":       {"1"},
		"payment_method": {"cash"},
	}, ck)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/menu", w.Header().Get("Location"))

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestConfirmationNotFound(t *testing.T) {
	db := setupTestDB(t)
	r, _ := setupRouter(t, db)

	for _, path := range []string{"/order_confirmation/42", "/payment_confirmation/42", "/order_confirmation/abc"} {
		w := getPage(r, path, nil)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/menu", w.Header().Get("Location"))
	}
}

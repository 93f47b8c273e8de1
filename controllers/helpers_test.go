package controllers_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"pizza-order-app/controllers"
	"pizza-order-app/middlewares"
	"pizza-order-app/models"
	"pizza-order-app/utils"
)

// setupTestDB opens a per-test in-memory SQLite database. The database
// name carries the test name so parallel tests never share state.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Pizza{},
		&models.Order{},
	))
	return db
}

// setupRouter wires the routes under test the same way the real router
// does, with templates loaded from the repository. Returns the engine
// and the upload directory used by the admin controller.
func setupRouter(t *testing.T, db *gorm.DB) (*gin.Engine, string) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	utils.InitLogger()
	utils.InitSession("test-secret")

	uploadDir := t.TempDir()

	r := gin.New()
	r.LoadHTMLGlob("../templates/*.html")

	userCtrl := controllers.NewUserController(db)
	orderCtrl := controllers.NewOrderController(db)
	adminCtrl := controllers.NewAdminController(db, uploadDir)

	r.GET("/register", userCtrl.ShowRegister)
	r.POST("/register", userCtrl.Register)
	r.GET("/login", userCtrl.ShowLogin)
	r.POST("/login", userCtrl.Login)
	r.GET("/logout", userCtrl.Logout)

	r.GET("/order_confirmation/:order_id", orderCtrl.Confirmation)
	r.GET("/payment_confirmation/:order_id", orderCtrl.Confirmation)

	authed := r.Group("/", middlewares.AuthRequired())
	authed.GET("/menu", orderCtrl.Menu)
	authed.GET("/order/:pizza_id", orderCtrl.ShowOrderForm)
	authed.POST("/order/:pizza_id", orderCtrl.PlaceOrder)

	admin := r.Group("/", middlewares.AuthRequired(), middlewares.AdminRequired())
	admin.GET("/admin", adminCtrl.Dashboard)
	admin.GET("/add_pizza", adminCtrl.ShowAddPizza)
	admin.POST("/add_pizza", adminCtrl.AddPizza)
	admin.GET("/mark_as_completed/:order_id", adminCtrl.MarkCompleted)

	return r, uploadDir
}

func seedUser(t *testing.T, db *gorm.DB, username, password, role string) models.User {
	t.Helper()

	hash, err := utils.HashPassword(password)
	require.NoError(t, err)

	user := models.User{Username: username, Password: hash, Role: role}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedPizza(t *testing.T, db *gorm.DB, name string, price float64) models.Pizza {
	t.Helper()

	pizza := models.Pizza{Name: name, Description: name + " description", Price: price}
	require.NoError(t, db.Create(&pizza).Error)
	return pizza
}

func getPage(r *gin.Engine, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func postForm(r *gin.Engine, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, ck := range w.Result().Cookies() {
		if ck.Name == utils.SessionCookieName && ck.Value != "" {
			return ck
		}
	}
	return nil
}

// login posts the credentials and returns the session cookie, failing
// the test if none is issued.
func login(t *testing.T, r *gin.Engine, username, password string) *http.Cookie {
	t.Helper()

	w := postForm(r, "/login", url.Values{
		"username": {username},
		"password": {password},
	}, nil)
	require.Equal(t, http.StatusFound, w.Code)

	ck := sessionCookie(w)
	require.NotNil(t, ck, "expected a session cookie after login")
	return ck
}

package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pizza-order-app/models"
	"pizza-order-app/utils"
)

// AuthRequired gates a route on a valid session cookie. Anonymous
// visitors are sent to the login page with a warning, never a hard
// error. On success the identity claims go into the request context for
// the handlers downstream.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(utils.SessionCookieName)
		if err != nil || token == "" {
			utils.SetFlash(c, "warning", "Please log in to continue.")
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		claims, err := utils.ParseSessionToken(token)
		if err != nil {
			utils.ClearSessionCookie(c)
			utils.SetFlash(c, "warning", "Your session has expired. Please log in again.")
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// AdminRequired must run after AuthRequired. The role claim is trusted
// for the session's lifetime; it is not re-read from the users table per
// request.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != models.RoleAdmin {
			utils.SetFlash(c, "danger", "Unauthorized access!")
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

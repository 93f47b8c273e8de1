package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RenderHTML renders a template with the pending flash message and the
// authenticated identity (when the auth middleware has run) merged into
// the template data. A Flash already present in data wins, so handlers
// can re-render a form with an inline validation notice in the same
// request.
func RenderHTML(c *gin.Context, code int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if _, ok := data["Flash"]; !ok {
		if flash := GetFlash(c); flash != nil {
			data["Flash"] = flash
		}
	}
	if username, ok := c.Get("username"); ok {
		data["Username"] = username
	}
	if role, ok := c.Get("role"); ok {
		data["Role"] = role
	}

	c.HTML(code, name, data)
}

// RenderServerError logs the underlying failure and shows the generic
// try-again page. The error text never reaches the response body.
func RenderServerError(c *gin.Context, err error) {
	ErrorLogger.Printf("%s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	RenderHTML(c, http.StatusInternalServerError, "error.html", gin.H{})
	c.Abort()
}

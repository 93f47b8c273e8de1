package utils

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const flashCookieName = "flash"

// Flash is a one-shot notice shown on the next rendered page.
// Category maps to the alert style in the templates (success, info,
// warning, danger).
type Flash struct {
	Category string
	Message  string
}

func SetFlash(c *gin.Context, category, message string) {
	c.SetCookie(flashCookieName, category+"|"+message, 300, "/", "", false, true)
}

// GetFlash returns the pending flash, if any, and clears it so it is
// shown exactly once.
func GetFlash(c *gin.Context) *Flash {
	value, err := c.Cookie(flashCookieName)
	if err != nil || value == "" {
		return nil
	}

	c.SetCookie(flashCookieName, "", -1, "/", "", false, true)

	category, message, found := strings.Cut(value, "|")
	if !found {
		return &Flash{Category: "info", Message: value}
	}
	return &Flash{Category: category, Message: message}
}

package utils

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "session"

const sessionLifetime = 24 * time.Hour

var sessionSecret []byte

// InitSession sets the process-wide key used to sign session tokens.
// Must be called before any token is issued or parsed.
func InitSession(secret string) {
	sessionSecret = []byte(secret)
}

type SessionClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

func GenerateSessionToken(userID uint, username, role string) (string, error) {
	claims := &SessionClaims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionLifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "pizza-order-app",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(sessionSecret)
}

func ParseSessionToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return sessionSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired session")
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok {
		return nil, errors.New("invalid session claims")
	}

	return claims, nil
}

// SetSessionCookie attaches the signed token to the response. HttpOnly so
// page scripts never see it.
func SetSessionCookie(c *gin.Context, token string) {
	c.SetCookie(SessionCookieName, token, int(sessionLifetime.Seconds()), "/", "", false, true)
}

func ClearSessionCookie(c *gin.Context) {
	c.SetCookie(SessionCookieName, "", -1, "/", "", false, true)
}

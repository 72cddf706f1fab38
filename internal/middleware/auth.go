package middleware

import (
	"net/http"
	"net/url"

	"quill/internal/db"
	"quill/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const CheckUserKey = "user"

// LoginPath is where protected routes bounce anonymous visitors. The
// originally requested path rides along in the "next" query parameter.
const LoginPath = "/auth/login"

// AuthRequired ensures a user is logged in
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get("user_id")
		if userID == nil {
			next := url.QueryEscape(c.Request.URL.Path)
			c.Redirect(http.StatusFound, LoginPath+"?next="+next)
			c.Abort()
			return
		}

		if _, exists := c.Get(CheckUserKey); !exists {
			// Session points at a deleted user. Treat as anonymous.
			session.Clear()
			session.Save()
			next := url.QueryEscape(c.Request.URL.Path)
			c.Redirect(http.StatusFound, LoginPath+"?next="+next)
			c.Abort()
			return
		}

		c.Next()
	}
}

// LoadUser retrieves user from session and sets to context
func LoadUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get("user_id")

		if userID != nil {
			var user models.User
			result := db.DB.First(&user, userID)
			if result.Error == nil {
				c.Set(CheckUserKey, &user)
			}
		}
		c.Next()
	}
}

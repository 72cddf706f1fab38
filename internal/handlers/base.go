package handlers

import (
	"net/http"

	"quill/internal/middleware"
	"quill/internal/models"

	"github.com/gin-gonic/gin"
)

// Render helper to inject common variables like 'current user'
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}

	// Inject Current User
	if user, exists := c.Get(middleware.CheckUserKey); exists {
		obj["CurrentUser"] = user
	}

	obj["CurrentPath"] = c.Request.URL.Path

	c.HTML(code, name, obj)
}

// RenderNotFound renders the custom not-found page.
func RenderNotFound(c *gin.Context, message string) {
	Render(c, http.StatusNotFound, "404.html", gin.H{"Message": message})
}

// currentUser returns the authenticated user, or nil for anonymous visitors.
func currentUser(c *gin.Context) *models.User {
	if user, exists := c.Get(middleware.CheckUserKey); exists {
		return user.(*models.User)
	}
	return nil
}

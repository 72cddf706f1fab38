package handlers

import (
	"net/http"
	"strings"

	"quill/internal/db"
	"quill/internal/models"
	"quill/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

func (h *AuthHandler) ShowSignup(c *gin.Context) {
	Render(c, http.StatusOK, "auth/signup.html", nil)
}

func (h *AuthHandler) Signup(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")

	if username == "" {
		Render(c, http.StatusBadRequest, "auth/signup.html", gin.H{"Error": "Username is required"})
		return
	}
	if len(password) < 6 {
		Render(c, http.StatusBadRequest, "auth/signup.html", gin.H{"Error": "Password must be at least 6 characters", "Username": username})
		return
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		Render(c, http.StatusInternalServerError, "auth/signup.html", gin.H{"Error": "Signup failed", "Username": username})
		return
	}

	user := models.User{Username: username, Password: hash}
	if err := db.DB.Create(&user).Error; err != nil {
		// Unique index on username
		Render(c, http.StatusConflict, "auth/signup.html", gin.H{"Error": "Username already taken", "Username": username})
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Save()

	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	Render(c, http.StatusOK, "auth/login.html", gin.H{"Next": c.Query("next")})
}

func (h *AuthHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	next := c.PostForm("next")

	var user models.User
	if err := db.DB.Where("username = ?", username).First(&user).Error; err != nil {
		Render(c, http.StatusUnauthorized, "auth/login.html", gin.H{"Error": "Wrong username or password", "Next": next})
		return
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		Render(c, http.StatusUnauthorized, "auth/login.html", gin.H{"Error": "Wrong username or password", "Next": next})
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Save()

	// Continue to the page that sent us here, same-site paths only.
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		c.Redirect(http.StatusFound, next)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.Redirect(http.StatusFound, "/")
}

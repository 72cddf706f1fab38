package main

import (
	"log"
	"os"

	"quill/internal/db"
	"quill/internal/middleware"
	"quill/internal/router"
	"quill/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	// Initialize Database
	db.Init()

	// Initialize Gin
	r := gin.Default()

	// Setup Sessions
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "secret_key_change_me"
	}
	store := cookie.NewStore([]byte(secret))
	r.Use(sessions.Sessions("quill_session", store))

	// Load Templates using Multitemplate to avoid collision and allow handler names
	r.HTMLRender = router.LoadTemplates("./web/templates")

	// Static assets and uploaded media
	r.Static("/static", "./web/static")
	r.Static("/media", services.MediaRoot())

	// Middleware
	r.Use(middleware.LoadUser())

	router.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Quill server starting on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}

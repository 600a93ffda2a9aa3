package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/rahulsm/goblog/config"
	"github.com/rahulsm/goblog/controllers"
	"github.com/rahulsm/goblog/database"
	"github.com/rahulsm/goblog/middleware"
	"github.com/rahulsm/goblog/repository"
	"github.com/rahulsm/goblog/services"
	"github.com/rahulsm/goblog/token"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	client, err := database.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatal("MongoDB connection failed: ", err)
	}
	log.Println("Connected to MongoDB")

	db := client.Database(cfg.DatabaseName)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		log.Fatal("ensure indexes: ", err)
	}

	tokens := token.NewService(cfg.AccessSecret, cfg.RefreshSecret, cfg.AccessTTL, cfg.RefreshTTL)
	users := repository.NewUserRepository(db)
	posts := repository.NewPostRepository(db)
	authService := services.NewAuthService(users, tokens)

	authController := controllers.NewAuthController(authService)
	postController := controllers.NewPostController(posts)

	r := gin.New()

	allowedOrigins := map[string]bool{}
	for _, origin := range cfg.AllowedOrigins {
		allowedOrigins[origin] = true
	}
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return allowedOrigins[origin]
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	guard := middleware.AuthMiddleware(tokens)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to the Blog API"})
	})

	auth := r.Group("/auth")
	{
		auth.POST("/register", authController.Register())
		auth.POST("/login", authController.Login())
		auth.POST("/refresh", authController.Refresh())
		auth.POST("/logout", authController.Logout())
		auth.GET("/profile", guard, authController.Profile())
	}

	postRoutes := r.Group("/posts")
	{
		postRoutes.GET("", postController.GetPosts())
		postRoutes.POST("", guard, postController.CreatePost())
		postRoutes.GET("/my-posts", guard, postController.GetMyPosts())
		postRoutes.PUT("/:id", guard, postController.UpdatePost())
		postRoutes.DELETE("/:id", guard, postController.DeletePost())
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}

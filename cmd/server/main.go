package main

import (
	"fmt"
	stdlog "log"
	"net/http"

	"yatube/backend/internal/auth"
	"yatube/backend/internal/cache"
	"yatube/backend/internal/config"
	"yatube/backend/internal/database"
	"yatube/backend/internal/handler"
	"yatube/backend/internal/log"
	"yatube/backend/internal/metrics"

	"github.com/gin-gonic/gin"

	// Swagger imports
	_ "yatube/backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
}

// @title           Yatube API
// @version         1.0
// @description     This is the API for the Yatube blog service.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	logger, err := log.NewSugar(config.AppConfig.Env)
	if err != nil {
		stdlog.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	// Connect to the database
	database.Connect(config.AppConfig.DatabaseURL)

	meter := metrics.New()
	pageCache := cache.New(config.AppConfig.RedisAddr, logger, meter)
	defer pageCache.Close()

	if pageCache.IsInMemoryMode() {
		logger.Infow("Page cache running in-memory", "ttl", config.AppConfig.CacheTTL)
	}

	router := gin.Default()
	router.Use(meter.RequestCounter())

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Prometheus scrape endpoint
	router.GET("/metrics", metrics.Handler())

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	{
		// Auth routes
		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/register", handler.RegisterUser)
			authRoutes.POST("/login", handler.LoginUser)
		}

		// The global feed is the only page-cached route.
		apiV1.GET("/posts", cache.PageCache(pageCache, config.AppConfig.CacheTTL), handler.GetGlobalFeed)
		apiV1.POST("/posts", auth.AuthMiddleware(), handler.CreatePost)

		// Personalized feed of followed authors
		apiV1.GET("/follow", auth.AuthMiddleware(), handler.GetFollowFeed)

		// Group routes (public reads)
		groupRoutes := apiV1.Group("/groups")
		{
			groupRoutes.GET("", handler.GetGroups)
			groupRoutes.GET("/:slug", handler.GetGroupBySlug)
			groupRoutes.GET("/:slug/posts", handler.GetGroupFeed)
		}

		// Profile and post routes
		userRoutes := apiV1.Group("/users/:username")
		{
			userRoutes.GET("/posts", auth.OptionalAuthMiddleware(), handler.GetProfileFeed)
			userRoutes.GET("/posts/:post_id", handler.GetPost)
			userRoutes.PUT("/posts/:post_id", auth.AuthMiddleware(), handler.UpdatePost)
			userRoutes.DELETE("/posts/:post_id", auth.AuthMiddleware(), handler.DeletePost)
			userRoutes.POST("/posts/:post_id/comments", auth.AuthMiddleware(), handler.AddComment)

			// Follow / unfollow
			userRoutes.POST("/follow", auth.AuthMiddleware(), handler.FollowUser)
			userRoutes.DELETE("/follow", auth.AuthMiddleware(), handler.UnfollowUser)
		}

		// Admin routes (protected by auth and admin check)
		adminRoutes := apiV1.Group("/admin")
		adminRoutes.Use(auth.AuthMiddleware(), auth.AdminMiddleware())
		{
			// Groups CRUD
			groups := adminRoutes.Group("/groups")
			{
				groups.POST("", handler.CreateGroup)
				groups.PUT("/:id", handler.UpdateGroup)
				groups.DELETE("/:id", handler.DeleteGroup)
			}
		}
	}

	fmt.Println("Server is running on " + config.AppConfig.HTTPAddr)
	fmt.Println("Swagger UI is available at http://localhost:8080/swagger/index.html")
	stdlog.Fatal(router.Run(config.AppConfig.HTTPAddr))
}

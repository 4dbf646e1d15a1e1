package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"
	"yatube/backend/internal/auth"
	"yatube/backend/internal/cache"
	"yatube/backend/internal/config"
	"yatube/backend/internal/database"
	"yatube/backend/internal/models"
	"yatube/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
	config.AppConfig = &config.Config{
		Env:       "test",
		JWTSecret: "test-secret",
		CacheTTL:  20 * time.Second,
		LoginURL:  "/auth/login",
	}
}

// setupDB opens a fresh in-memory database and installs it as the global
// connection. Every test gets its own schema.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// A pooled :memory: connection per conn would mean one database per
	// connection; force a single shared connection.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	database.DB = db
	return db
}

// setupRouter builds a router with the same route table as the server.
func setupRouter(pageCache *cache.Cache) *gin.Engine {
	router := gin.New()

	apiV1 := router.Group("/api/v1")

	authRoutes := apiV1.Group("/auth")
	authRoutes.POST("/register", RegisterUser)
	authRoutes.POST("/login", LoginUser)

	if pageCache != nil {
		apiV1.GET("/posts", cache.PageCache(pageCache, config.AppConfig.CacheTTL), GetGlobalFeed)
	} else {
		apiV1.GET("/posts", GetGlobalFeed)
	}
	apiV1.POST("/posts", auth.AuthMiddleware(), CreatePost)

	apiV1.GET("/follow", auth.AuthMiddleware(), GetFollowFeed)

	groupRoutes := apiV1.Group("/groups")
	groupRoutes.GET("", GetGroups)
	groupRoutes.GET("/:slug", GetGroupBySlug)
	groupRoutes.GET("/:slug/posts", GetGroupFeed)

	userRoutes := apiV1.Group("/users/:username")
	userRoutes.GET("/posts", auth.OptionalAuthMiddleware(), GetProfileFeed)
	userRoutes.GET("/posts/:post_id", GetPost)
	userRoutes.PUT("/posts/:post_id", auth.AuthMiddleware(), UpdatePost)
	userRoutes.DELETE("/posts/:post_id", auth.AuthMiddleware(), DeletePost)
	userRoutes.POST("/posts/:post_id/comments", auth.AuthMiddleware(), AddComment)
	userRoutes.POST("/follow", auth.AuthMiddleware(), FollowUser)
	userRoutes.DELETE("/follow", auth.AuthMiddleware(), UnfollowUser)

	adminRoutes := apiV1.Group("/admin")
	adminRoutes.Use(auth.AuthMiddleware(), auth.AdminMiddleware())
	adminGroups := adminRoutes.Group("/groups")
	adminGroups.POST("", CreateGroup)
	adminGroups.PUT("/:id", UpdateGroup)
	adminGroups.DELETE("/:id", DeleteGroup)

	return router
}

func createUser(t *testing.T, db *gorm.DB, username string) (models.User, string) {
	t.Helper()

	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Role:         "user",
	}
	require.NoError(t, db.Create(&user).Error)

	token, err := jwt.GenerateToken(user.ID)
	require.NoError(t, err)
	return user, token
}

func createAdmin(t *testing.T, db *gorm.DB, username string) (models.User, string) {
	t.Helper()

	user, token := createUser(t, db, username)
	require.NoError(t, db.Model(&user).Update("role", "admin").Error)
	return user, token
}

func createPost(t *testing.T, db *gorm.DB, author models.User, text string, pubDate time.Time) models.Post {
	t.Helper()

	post := models.Post{
		Text:     text,
		PubDate:  pubDate,
		AuthorID: author.ID,
	}
	require.NoError(t, db.Create(&post).Error)
	return post
}

func performRequest(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dest))
}

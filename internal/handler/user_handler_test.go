package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	db := setupDB(t)
	router := setupRouter(nil)

	t.Run("register returns a token", func(t *testing.T) {
		w := performRequest(router, http.MethodPost, "/api/v1/auth/register", "",
			RegisterInput{Username: "hulk", Email: "hulk@example.com", Password: "password123"})
		require.Equal(t, http.StatusCreated, w.Code)

		var resp map[string]string
		decodeBody(t, w, &resp)
		assert.NotEmpty(t, resp["token"])
	})

	t.Run("duplicate username conflicts", func(t *testing.T) {
		w := performRequest(router, http.MethodPost, "/api/v1/auth/register", "",
			RegisterInput{Username: "hulk", Email: "other@example.com", Password: "password123"})
		require.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("login with correct credentials", func(t *testing.T) {
		w := performRequest(router, http.MethodPost, "/api/v1/auth/login", "",
			LoginInput{Login: "hulk", Password: "password123"})
		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string]string
		decodeBody(t, w, &resp)
		assert.NotEmpty(t, resp["token"])
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		w := performRequest(router, http.MethodPost, "/api/v1/auth/login", "",
			LoginInput{Login: "hulk", Password: "wrong-password"})
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("short password is rejected", func(t *testing.T) {
		w := performRequest(router, http.MethodPost, "/api/v1/auth/register", "",
			RegisterInput{Username: "loki", Email: "loki@example.com", Password: "short"})
		require.Equal(t, http.StatusBadRequest, w.Code)

		var count int64
		db.Table("users").Where("username = ?", "loki").Count(&count)
		assert.Zero(t, count)
	})
}

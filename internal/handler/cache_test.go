package handler

import (
	"net/http"
	"testing"
	"time"
	"yatube/backend/internal/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobalFeedPageCache(t *testing.T) {
	db := setupDB(t)
	pageCache := cache.New("", nil, nil)
	router := setupRouter(pageCache)

	author, _ := createUser(t, db, "hulk")
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 9; i++ {
		createPost(t, db, author, "warm-up", base.Add(time.Duration(i)*time.Minute))
	}

	first := performRequest(router, http.MethodGet, "/api/v1/posts", "", nil)
	require.Equal(t, http.StatusOK, first.Code)

	// A write lands between the two requests; the cached payload must not
	// reflect it.
	createPost(t, db, author, "written in between", time.Now())

	second := performRequest(router, http.MethodGet, "/api/v1/posts", "", nil)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, first.Body.Bytes(), second.Body.Bytes(),
		"same key within the TTL must serve byte-identical payloads")

	// A different query string is a different key and sees fresh data.
	other := performRequest(router, http.MethodGet, "/api/v1/posts?page=2", "", nil)
	require.Equal(t, http.StatusOK, other.Code)
	assert.NotEqual(t, first.Body.Bytes(), other.Body.Bytes())
	assert.Contains(t, other.Body.String(), "written in between")
}

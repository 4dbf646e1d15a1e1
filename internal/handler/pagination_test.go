package handler

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageCount(t *testing.T) {
	tests := []struct {
		name       string
		totalItems int64
		pageSize   int
		expected   int
	}{
		{name: "empty collection still has one page", totalItems: 0, pageSize: 10, expected: 1},
		{name: "exact multiple", totalItems: 20, pageSize: 10, expected: 2},
		{name: "partial last page", totalItems: 13, pageSize: 10, expected: 2},
		{name: "single item", totalItems: 1, pageSize: 10, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, pageCount(tt.totalItems, tt.pageSize))
		})
	}
}

func TestClampPage(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		totalPages int
		expected   int
	}{
		{name: "in range", page: 2, totalPages: 3, expected: 2},
		{name: "below range", page: 0, totalPages: 3, expected: 1},
		{name: "negative", page: -5, totalPages: 3, expected: 1},
		{name: "past the end clamps to last", page: 99, totalPages: 3, expected: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, clampPage(tt.page, tt.totalPages))
		})
	}
}

func TestFeedPagination(t *testing.T) {
	db := setupDB(t)
	router := setupRouter(nil)

	author, _ := createUser(t, db, "hulk")
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 13; i++ {
		createPost(t, db, author, fmt.Sprintf("post %d", i), base.Add(time.Duration(i)*time.Minute))
	}

	t.Run("first page contains ten records", func(t *testing.T) {
		w := performRequest(router, http.MethodGet, "/api/v1/posts", "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp FeedResponse
		decodeBody(t, w, &resp)
		assert.Len(t, resp.Data, 10)
		assert.Equal(t, int64(13), resp.Meta.TotalItems)
		assert.Equal(t, 2, resp.Meta.TotalPages)
		assert.Equal(t, 1, resp.Meta.CurrentPage)
	})

	t.Run("second page contains three records", func(t *testing.T) {
		w := performRequest(router, http.MethodGet, "/api/v1/posts?page=2", "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp FeedResponse
		decodeBody(t, w, &resp)
		assert.Len(t, resp.Data, 3)
		assert.Equal(t, 2, resp.Meta.CurrentPage)
	})

	t.Run("out-of-range page clamps to last page", func(t *testing.T) {
		w := performRequest(router, http.MethodGet, "/api/v1/posts?page=99", "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp FeedResponse
		decodeBody(t, w, &resp)
		assert.Len(t, resp.Data, 3)
		assert.Equal(t, 2, resp.Meta.CurrentPage)
	})

	t.Run("invalid page defaults to one", func(t *testing.T) {
		w := performRequest(router, http.MethodGet, "/api/v1/posts?page=abc", "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp FeedResponse
		decodeBody(t, w, &resp)
		assert.Equal(t, 1, resp.Meta.CurrentPage)
		assert.Len(t, resp.Data, 10)
	})
}

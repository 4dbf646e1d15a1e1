package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"
	"yatube/backend/internal/database"
	"yatube/backend/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// feedOrder sorts newest first; the secondary id key keeps insertion order
// for posts sharing a timestamp (bulk-created fixtures).
const feedOrder = "pub_date DESC, id ASC"

// region --- DTOs ---

// PostInput defines the structure for creating or editing a post.
type PostInput struct {
	Text    string `json:"text" binding:"required" example:"My first post"`
	GroupID *uint  `json:"group_id"`
	Image   string `json:"image" example:"posts/cat.png"`
}

// PostResponse defines the structure for a post in feed and detail views.
type PostResponse struct {
	ID            uint           `json:"id"`
	Text          string         `json:"text"`
	PubDate       time.Time      `json:"pub_date"`
	Image         string         `json:"image,omitempty"`
	Author        string         `json:"author"`
	Group         *GroupResponse `json:"group,omitempty"`
	CommentsCount int64          `json:"comments_count"`
}

// FeedResponse defines the structure for a paginated feed of posts.
type FeedResponse struct {
	Data []PostResponse `json:"data"`
	Meta PageMeta       `json:"meta"`
}

// ProfileResponse is a feed restricted to one author, with follow state for
// the current viewer.
type ProfileResponse struct {
	Author    string         `json:"author"`
	PostCount int64          `json:"post_count"`
	Following bool           `json:"following"`
	Data      []PostResponse `json:"data"`
	Meta      PageMeta       `json:"meta"`
}

// PostDetailResponse defines the structure for a single post view.
type PostDetailResponse struct {
	Post      PostResponse      `json:"post"`
	PostCount int64             `json:"post_count"`
	Comments  []CommentResponse `json:"comments"`
}

func newPostResponse(post models.Post) PostResponse {
	var commentsCount int64
	database.DB.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&commentsCount)

	var group *GroupResponse
	if post.Group != nil {
		g := newGroupResponse(*post.Group)
		group = &g
	}

	return PostResponse{
		ID:            post.ID,
		Text:          post.Text,
		PubDate:       post.PubDate,
		Image:         post.Image,
		Author:        post.Author.Username,
		Group:         group,
		CommentsCount: commentsCount,
	}
}

func newPostResponses(posts []models.Post) []PostResponse {
	responses := make([]PostResponse, 0, len(posts))
	for _, post := range posts {
		responses = append(responses, newPostResponse(post))
	}
	return responses
}

// endregion

// region --- Helpers ---

func postFeedQuery() *gorm.DB {
	return database.DB.Model(&models.Post{}).
		Order(feedOrder).
		Preload("Author").
		Preload("Group")
}

// canonicalPostPath is the read view a non-author edit gets redirected to.
func canonicalPostPath(username string, postID uint) string {
	return fmt.Sprintf("/api/v1/users/%s/posts/%d", username, postID)
}

func profilePath(username string) string {
	return "/api/v1/users/" + username + "/posts"
}

// findAuthorPost resolves the (username, post id) pair or reports not-found.
func findAuthorPost(c *gin.Context) (models.User, models.Post, bool) {
	var author models.User
	if err := database.DB.Where("username = ?", c.Param("username")).First(&author).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return models.User{}, models.Post{}, false
	}

	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return models.User{}, models.Post{}, false
	}

	var post models.Post
	err = database.DB.Where("id = ? AND author_id = ?", uint(postID), author.ID).
		Preload("Author").
		Preload("Group").
		First(&post).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return models.User{}, models.Post{}, false
	}

	return author, post, true
}

// endregion

// region --- Feed Handlers ---

// GetGlobalFeed godoc
// @Summary      Global feed
// @Description  Returns all posts, newest first, in pages of 10.
// @Tags         posts
// @Produce      json
// @Param        page  query     int  false  "Page number"  default(1)
// @Success      200   {object}  FeedResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /posts [get]
func GetGlobalFeed(c *gin.Context) {
	page, err := Paginate[models.Post](postFeedQuery(), pageParam(c), DefaultPageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve posts"})
		return
	}

	c.JSON(http.StatusOK, FeedResponse{
		Data: newPostResponses(page.Items),
		Meta: page.Meta,
	})
}

// GetGroupFeed godoc
// @Summary      Group feed
// @Description  Returns the posts of one group, looked up by slug.
// @Tags         posts
// @Produce      json
// @Param        slug  path      string  true   "Group slug"
// @Param        page  query     int     false  "Page number"  default(1)
// @Success      200   {object}  FeedResponse
// @Failure      404   {object}  ErrorResponse "Group not found"
// @Router       /groups/{slug}/posts [get]
func GetGroupFeed(c *gin.Context) {
	var group models.Group
	if err := database.DB.Where("slug = ?", c.Param("slug")).First(&group).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	query := postFeedQuery().Where("group_id = ?", group.ID)
	page, err := Paginate[models.Post](query, pageParam(c), DefaultPageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve posts"})
		return
	}

	c.JSON(http.StatusOK, FeedResponse{
		Data: newPostResponses(page.Items),
		Meta: page.Meta,
	})
}

// GetProfileFeed godoc
// @Summary      Profile feed
// @Description  Returns one author's posts plus their total post count and whether the current viewer follows them.
// @Tags         posts
// @Produce      json
// @Param        username  path      string  true   "Author username"
// @Param        page      query     int     false  "Page number"  default(1)
// @Success      200       {object}  ProfileResponse
// @Failure      404       {object}  ErrorResponse "User not found"
// @Router       /users/{username}/posts [get]
func GetProfileFeed(c *gin.Context) {
	var author models.User
	if err := database.DB.Where("username = ?", c.Param("username")).First(&author).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	query := postFeedQuery().Where("author_id = ?", author.ID)
	page, err := Paginate[models.Post](query, pageParam(c), DefaultPageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve posts"})
		return
	}

	// Anonymous viewers never follow anyone.
	following := false
	if viewerID, exists := c.Get("userID"); exists {
		var count int64
		database.DB.Model(&models.Follow{}).
			Where("user_id = ? AND author_id = ?", viewerID.(uint), author.ID).
			Count(&count)
		following = count > 0
	}

	c.JSON(http.StatusOK, ProfileResponse{
		Author:    author.Username,
		PostCount: page.Meta.TotalItems,
		Following: following,
		Data:      newPostResponses(page.Items),
		Meta:      page.Meta,
	})
}

// GetFollowFeed godoc
// @Summary      Follow feed
// @Description  Returns the posts of every author the current viewer follows.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        page  query     int  false  "Page number"  default(1)
// @Success      200   {object}  FeedResponse
// @Failure      302   "Redirect to login"
// @Router       /follow [get]
func GetFollowFeed(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	followed := database.DB.Model(&models.Follow{}).
		Select("author_id").
		Where("user_id = ?", viewerID.(uint))

	query := postFeedQuery().Where("author_id IN (?)", followed)
	page, err := Paginate[models.Post](query, pageParam(c), DefaultPageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve posts"})
		return
	}

	c.JSON(http.StatusOK, FeedResponse{
		Data: newPostResponses(page.Items),
		Meta: page.Meta,
	})
}

// GetPost godoc
// @Summary      Single post
// @Description  Returns one post by (author username, post id) with its comments and the author's post count.
// @Tags         posts
// @Produce      json
// @Param        username  path      string  true  "Author username"
// @Param        post_id   path      int     true  "Post ID"
// @Success      200       {object}  PostDetailResponse
// @Failure      404       {object}  ErrorResponse "Pair does not match any post"
// @Router       /users/{username}/posts/{post_id} [get]
func GetPost(c *gin.Context) {
	author, post, ok := findAuthorPost(c)
	if !ok {
		return
	}

	var postCount int64
	database.DB.Model(&models.Post{}).Where("author_id = ?", author.ID).Count(&postCount)

	var comments []models.Comment
	database.DB.Where("post_id = ?", post.ID).
		Order("created ASC, id ASC").
		Preload("Author").
		Find(&comments)

	c.JSON(http.StatusOK, PostDetailResponse{
		Post:      newPostResponse(post),
		PostCount: postCount,
		Comments:  newCommentResponses(comments),
	})
}

// endregion

// region --- Write Handlers ---

// CreatePost godoc
// @Summary      Create a post
// @Description  Creates a post owned by the current user. The publication date is set server-side.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body PostInput true "Post Info"
// @Success      201  {object}  PostResponse
// @Failure      400  {object}  ErrorResponse "Validation failure"
// @Failure      302  "Redirect to login"
// @Router       /posts [post]
func CreatePost(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var input PostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.GroupID != nil {
		var group models.Group
		if err := database.DB.First(&group, *input.GroupID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown group"})
			return
		}
	}

	post := models.Post{
		Text:     input.Text,
		PubDate:  time.Now(),
		Image:    input.Image,
		AuthorID: viewerID.(uint),
		GroupID:  input.GroupID,
	}
	if err := database.DB.Create(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	database.DB.Preload("Author").Preload("Group").First(&post, post.ID)
	c.JSON(http.StatusCreated, newPostResponse(post))
}

// UpdatePost godoc
// @Summary      Edit a post
// @Description  Updates text, group and image of an own post. A non-author is redirected to the read view with nothing applied.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        username  path  string    true  "Author username"
// @Param        post_id   path  int       true  "Post ID"
// @Param        input     body  PostInput true  "New Post Info"
// @Success      200  {object}  PostResponse
// @Failure      303  "Redirect to the read view for non-authors"
// @Failure      400  {object}  ErrorResponse "Validation failure"
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{username}/posts/{post_id} [put]
func UpdatePost(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	author, post, ok := findAuthorPost(c)
	if !ok {
		return
	}

	// Silent policy: non-authors are sent to the read view, no error.
	if viewerID.(uint) != author.ID {
		c.Redirect(http.StatusSeeOther, canonicalPostPath(author.Username, post.ID))
		return
	}

	var input PostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.GroupID != nil {
		var group models.Group
		if err := database.DB.First(&group, *input.GroupID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown group"})
			return
		}
	}

	// pub_date and author are immutable; only the editable columns change.
	updates := map[string]interface{}{
		"text":     input.Text,
		"group_id": input.GroupID,
		"image":    input.Image,
	}
	if err := database.DB.Model(&post).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return
	}

	database.DB.Preload("Author").Preload("Group").First(&post, post.ID)
	c.JSON(http.StatusOK, newPostResponse(post))
}

// DeletePost godoc
// @Summary      Delete a post
// @Description  Deletes an own post together with all its comments.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        username  path  string  true  "Author username"
// @Param        post_id   path  int     true  "Post ID"
// @Success      200  {object}  map[string]string "{"message": "Post deleted"}"
// @Failure      303  "Redirect to the read view for non-authors"
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{username}/posts/{post_id} [delete]
func DeletePost(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	author, post, ok := findAuthorPost(c)
	if !ok {
		return
	}

	if viewerID.(uint) != author.ID {
		c.Redirect(http.StatusSeeOther, canonicalPostPath(author.Username, post.ID))
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

// endregion

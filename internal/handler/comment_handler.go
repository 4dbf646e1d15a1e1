package handler

import (
	"net/http"
	"time"
	"yatube/backend/internal/database"
	"yatube/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// CommentInput defines the structure for adding a comment.
type CommentInput struct {
	Text string `json:"text" binding:"required" example:"Nice post!"`
}

// CommentResponse defines the structure for a comment in a post view.
type CommentResponse struct {
	ID      uint      `json:"id"`
	Text    string    `json:"text"`
	Created time.Time `json:"created"`
	Author  string    `json:"author"`
}

func newCommentResponse(comment models.Comment) CommentResponse {
	return CommentResponse{
		ID:      comment.ID,
		Text:    comment.Text,
		Created: comment.Created,
		Author:  comment.Author.Username,
	}
}

func newCommentResponses(comments []models.Comment) []CommentResponse {
	responses := make([]CommentResponse, 0, len(comments))
	for _, comment := range comments {
		responses = append(responses, newCommentResponse(comment))
	}
	return responses
}

// AddComment godoc
// @Summary      Add a comment
// @Description  Adds a comment to an existing post. Post and author are bound server-side.
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        username  path  string       true  "Author username"
// @Param        post_id   path  int          true  "Post ID"
// @Param        input     body  CommentInput true  "Comment Info"
// @Success      201  {object}  CommentResponse
// @Failure      400  {object}  ErrorResponse "Validation failure"
// @Failure      404  {object}  ErrorResponse "Post not found"
// @Failure      302  "Redirect to login"
// @Router       /users/{username}/posts/{post_id}/comments [post]
func AddComment(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	_, post, ok := findAuthorPost(c)
	if !ok {
		return
	}

	var input CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment := models.Comment{
		Text:     input.Text,
		Created:  time.Now(),
		PostID:   post.ID,
		AuthorID: viewerID.(uint),
	}
	if err := database.DB.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	database.DB.Preload("Author").First(&comment, comment.ID)
	c.JSON(http.StatusCreated, newCommentResponse(comment))
}

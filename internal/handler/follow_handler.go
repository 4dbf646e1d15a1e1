package handler

import (
	"errors"
	"net/http"
	"yatube/backend/internal/database"
	"yatube/backend/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// FollowUser godoc
// @Summary      Follow an author
// @Description  Subscribes the current user to an author. Following yourself is silently ignored; repeated calls never create a duplicate edge.
// @Tags         follows
// @Produce      json
// @Security     BearerAuth
// @Param        username  path  string  true  "Author username"
// @Success      201  {object}  map[string]string "{"message": "Now following"}"
// @Success      200  {object}  map[string]string "{"message": "Already following"}"
// @Failure      302  "Redirect to the author's profile on self-follow"
// @Failure      404  {object}  ErrorResponse "Author not found"
// @Router       /users/{username}/follow [post]
func FollowUser(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var author models.User
	if err := database.DB.Where("username = ?", c.Param("username")).First(&author).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	// Self-follow is a silent no-op, not an error.
	if viewerID.(uint) == author.ID {
		c.Redirect(http.StatusFound, profilePath(author.Username))
		return
	}

	var existing models.Follow
	err := database.DB.Where("user_id = ? AND author_id = ?", viewerID, author.ID).First(&existing).Error
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusOK, gin.H{"message": "Already following"})
		return
	}

	follow := models.Follow{
		UserID:   viewerID.(uint),
		AuthorID: author.ID,
	}
	if err := database.DB.Create(&follow).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create follow"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Now following"})
}

// UnfollowUser godoc
// @Summary      Unfollow an author
// @Description  Removes the subscription edge. Unfollowing someone you do not follow is a not-found condition.
// @Tags         follows
// @Produce      json
// @Security     BearerAuth
// @Param        username  path  string  true  "Author username"
// @Success      200  {object}  map[string]string "{"message": "Unfollowed"}"
// @Failure      404  {object}  ErrorResponse "No such follow"
// @Router       /users/{username}/follow [delete]
func UnfollowUser(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var author models.User
	if err := database.DB.Where("username = ?", c.Param("username")).First(&author).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if viewerID.(uint) == author.ID {
		c.Redirect(http.StatusFound, profilePath(author.Username))
		return
	}

	result := database.DB.Where("user_id = ? AND author_id = ?", viewerID, author.ID).Delete(&models.Follow{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove follow"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Follow not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Unfollowed"})
}

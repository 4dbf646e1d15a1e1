package handler

import (
	"net/http"
	"strconv"
	"yatube/backend/internal/database"
	"yatube/backend/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GroupInput defines the structure for creating or updating a group.
type GroupInput struct {
	Title       string `json:"title" binding:"required" example:"Gophers"`
	Slug        string `json:"slug" binding:"required" example:"gophers"`
	Description string `json:"description"`
}

// GroupResponse defines the structure for a group.
type GroupResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

func newGroupResponse(group models.Group) GroupResponse {
	return GroupResponse{
		ID:          group.ID,
		Title:       group.Title,
		Slug:        group.Slug,
		Description: group.Description,
	}
}

// CreateGroup godoc
// @Summary      Create a group
// @Description  Creates a new group with a unique slug.
// @Tags         admin-groups
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body GroupInput true "Group Info"
// @Success      201  {object}  GroupResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Admin access required"
// @Failure      409  {object}  ErrorResponse "Slug already exists"
// @Router       /admin/groups [post]
func CreateGroup(c *gin.Context) {
	var input GroupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	group := models.Group{
		Title:       input.Title,
		Slug:        input.Slug,
		Description: input.Description,
	}
	if err := database.DB.Create(&group).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Slug already exists or another error occurred"})
		return
	}

	c.JSON(http.StatusCreated, newGroupResponse(group))
}

// GetGroups godoc
// @Summary      List groups
// @Description  Retrieves all groups.
// @Tags         groups
// @Produce      json
// @Success      200  {array}   GroupResponse
// @Router       /groups [get]
func GetGroups(c *gin.Context) {
	var groups []models.Group
	database.DB.Order("title ASC").Find(&groups)

	var response []GroupResponse
	for _, group := range groups {
		response = append(response, newGroupResponse(group))
	}
	c.JSON(http.StatusOK, response)
}

// GetGroupBySlug godoc
// @Summary      Get a group
// @Description  Looks up one group by its slug.
// @Tags         groups
// @Produce      json
// @Param        slug  path      string  true  "Group slug"
// @Success      200   {object}  GroupResponse
// @Failure      404   {object}  ErrorResponse "Group not found"
// @Router       /groups/{slug} [get]
func GetGroupBySlug(c *gin.Context) {
	var group models.Group
	if err := database.DB.Where("slug = ?", c.Param("slug")).First(&group).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	c.JSON(http.StatusOK, newGroupResponse(group))
}

// UpdateGroup godoc
// @Summary      Update a group
// @Description  Updates the title, slug or description of an existing group.
// @Tags         admin-groups
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int        true  "Group ID"
// @Param        input body      GroupInput true  "New Group Info"
// @Success      200   {object}  GroupResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse "Admin access required"
// @Failure      404   {object}  ErrorResponse "Group not found"
// @Router       /admin/groups/{id} [put]
func UpdateGroup(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}

	var input GroupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var group models.Group
	if err := database.DB.First(&group, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	updates := map[string]interface{}{
		"title":       input.Title,
		"slug":        input.Slug,
		"description": input.Description,
	}
	if err := database.DB.Model(&group).Updates(updates).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Slug already exists or another error occurred"})
		return
	}

	c.JSON(http.StatusOK, newGroupResponse(group))
}

// DeleteGroup godoc
// @Summary      Delete a group
// @Description  Deletes a group. Posts referencing it keep existing with their group reference cleared.
// @Tags         admin-groups
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Group ID"
// @Success      200  {object}  map[string]string "{"message": "Group deleted"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Admin access required"
// @Failure      404  {object}  ErrorResponse "Group not found"
// @Router       /admin/groups/{id} [delete]
func DeleteGroup(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}

	var group models.Group
	if err := database.DB.First(&group, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	// Posts outlive their group: clear the reference, then delete.
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Post{}).Where("group_id = ?", group.ID).Update("group_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&group).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete group"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Group deleted"})
}

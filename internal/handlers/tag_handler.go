package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "moneta/internal/errors"
	"moneta/internal/services"
)

// TagHandler handles tag registry requests.
type TagHandler struct {
	tagService services.TagServicer
}

// NewTagHandler creates a new TagHandler.
func NewTagHandler(tagService services.TagServicer) *TagHandler {
	return &TagHandler{tagService: tagService}
}

// CreateTagRequest represents the request payload for creating a tag
type CreateTagRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// TagResponse represents a tag in the response
type TagResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CreateTag handles the creation of a new tag
// @Summary     Create a tag
// @Description Create a new tag for labeling transactions
// @Tags        tags
// @Accept      json
// @Produce     json
// @Param       request body CreateTagRequest true "Tag details"
// @Success     201 {object} TagResponse "Tag created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Tag already exists"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /tags [post]
func (h *TagHandler) CreateTag(c *gin.Context) {
	var req CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, err.Error()))
		return
	}

	tag, err := h.tagService.CreateTag(req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"tag": tag})
}

// GetTags handles the retrieval of all tags
// @Summary     Get all tags
// @Description Get every tag, ordered by name
// @Tags        tags
// @Accept      json
// @Produce     json
// @Success     200 {array} TagResponse "List of tags"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /tags [get]
func (h *TagHandler) GetTags(c *gin.Context) {
	tags, err := h.tagService.GetTags()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

// DeleteTag handles deleting a tag
// @Summary     Delete tag
// @Description Delete a tag by ID; transactions referencing it keep the name
// @Tags        tags
// @Accept      json
// @Produce     json
// @Param       id path string true "Tag ID"
// @Success     200 {object} MessageResponse "Tag deleted"
// @Failure     400 {object} ErrorResponse "Invalid tag ID"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /tags/{id} [delete]
func (h *TagHandler) DeleteTag(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.tagService.DeleteTag(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tag deleted successfully"})
}

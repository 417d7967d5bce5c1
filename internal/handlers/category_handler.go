package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "moneta/internal/errors"
	"moneta/internal/models"
	"moneta/internal/services"
)

// CategoryHandler handles category registry requests.
type CategoryHandler struct {
	categoryService services.CategoryServicer
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService services.CategoryServicer) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CreateCategoryRequest represents the request payload for creating a category
type CreateCategoryRequest struct {
	Name          string   `json:"name" binding:"required,max=100"`
	Subcategories []string `json:"subcategories"`
}

// AddSubcategoryRequest represents the request payload for adding a subcategory
type AddSubcategoryRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// CategoryResponse represents a category in the response
type CategoryResponse struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Subcategories []string `json:"subcategories"`
	Color         string   `json:"color"`
}

// toCategoryResponse decorates a stored category with its display color.
// The palette is fixed; unknown names fall back to the default color.
func (h *CategoryHandler) toCategoryResponse(category *models.Category) CategoryResponse {
	return CategoryResponse{
		ID:            category.ID,
		Name:          category.Name,
		Subcategories: category.Subcategories,
		Color:         h.categoryService.ColorFor(category.Name),
	}
}

// CreateCategory handles the creation of a new category
// @Summary     Create a category
// @Description Create a new category; an empty subcategory list gets the default subcategory
// @Tags        categories
// @Accept      json
// @Produce     json
// @Param       request body CreateCategoryRequest true "Category details"
// @Success     201 {object} CategoryResponse "Category created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Category already exists"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, err.Error()))
		return
	}

	category, err := h.categoryService.CreateCategory(req.Name, req.Subcategories)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"category": h.toCategoryResponse(category)})
}

// GetCategories handles the retrieval of all categories
// @Summary     Get all categories
// @Description Get every category with its subcategories and display color, ordered by name
// @Tags        categories
// @Accept      json
// @Produce     json
// @Success     200 {array} CategoryResponse "List of categories"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories [get]
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.categoryService.GetCategories()
	if err != nil {
		respondWithError(c, err)
		return
	}

	responses := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		responses = append(responses, h.toCategoryResponse(&categories[i]))
	}

	c.JSON(http.StatusOK, gin.H{"categories": responses})
}

// GetCategoryByID handles the retrieval of a specific category
// @Summary     Get category by ID
// @Description Get a specific category by ID
// @Tags        categories
// @Accept      json
// @Produce     json
// @Param       id path string true "Category ID"
// @Success     200 {object} CategoryResponse "Category details"
// @Failure     400 {object} ErrorResponse "Invalid category ID"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories/{id} [get]
func (h *CategoryHandler) GetCategoryByID(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	category, err := h.categoryService.GetCategoryByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": h.toCategoryResponse(category)})
}

// AddSubcategory handles adding a subcategory to a category
// @Summary     Add subcategory
// @Description Append a new subcategory to an existing category
// @Tags        categories
// @Accept      json
// @Produce     json
// @Param       id      path string                true "Category ID"
// @Param       request body AddSubcategoryRequest true "Subcategory details"
// @Success     200 {object} CategoryResponse "Updated category"
// @Failure     400 {object} ErrorResponse "Invalid input or category ID"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     409 {object} ErrorResponse "Subcategory already exists"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories/{id}/subcategories [post]
func (h *CategoryHandler) AddSubcategory(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AddSubcategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, err.Error()))
		return
	}

	// The registry is keyed by name; resolve the path ID first.
	category, err := h.categoryService.GetCategoryByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	updated, err := h.categoryService.AddSubcategory(category.Name, req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": h.toCategoryResponse(updated)})
}

// RemoveSubcategory handles removing a subcategory from a category
// @Summary     Remove subcategory
// @Description Remove a subcategory from a category; removing an absent subcategory is a no-op
// @Tags        categories
// @Accept      json
// @Produce     json
// @Param       id          path string true "Category ID"
// @Param       subcategory path string true "Subcategory name"
// @Success     200 {object} CategoryResponse "Updated category"
// @Failure     400 {object} ErrorResponse "Invalid category ID"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories/{id}/subcategories/{subcategory} [delete]
func (h *CategoryHandler) RemoveSubcategory(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	category, err := h.categoryService.GetCategoryByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	updated, err := h.categoryService.RemoveSubcategory(category.Name, c.Param("subcategory"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": h.toCategoryResponse(updated)})
}

// DeleteCategory handles deleting a category
// @Summary     Delete category
// @Description Delete a category by ID; transactions referencing it keep the name as a dangling reference
// @Tags        categories
// @Accept      json
// @Produce     json
// @Param       id path string true "Category ID"
// @Success     200 {object} MessageResponse "Category deleted"
// @Failure     400 {object} ErrorResponse "Invalid category ID"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.categoryService.DeleteCategory(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}

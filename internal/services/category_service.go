package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "moneta/internal/errors"
	"moneta/internal/models"
	"moneta/internal/store"
)

// categoryService handles the category registry.
type categoryService struct {
	db  *gorm.DB
	hub *store.Hub
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(st *store.Store) CategoryServicer {
	return &categoryService{db: st.DB(), hub: st.Hub()}
}

// CreateCategory creates a new category. Name collisions are rejected
// case-sensitively; an empty subcategory list gets the default one.
func (s *categoryService) CreateCategory(name string, subcategories []string) (*models.Category, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "category name is required")
	}

	var count int64
	if err := s.db.Model(&models.Category{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreIO, err)
	}
	if count > 0 {
		return nil, apperrors.ErrCategoryExists
	}

	if len(subcategories) == 0 {
		subcategories = []string{models.DefaultSubcategory}
	}

	category := &models.Category{Name: name, Subcategories: subcategories}
	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreIO, err)
	}

	s.hub.Touch(store.CollectionCategories)
	return category, nil
}

// GetCategories retrieves all categories ordered by name.
func (s *categoryService) GetCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreIO, err)
	}
	return categories, nil
}

// GetCategoryByID retrieves a category by ID
func (s *categoryService) GetCategoryByID(id string) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStoreIO, err)
	}
	return &category, nil
}

// GetCategoryByName retrieves a category by its exact name.
func (s *categoryService) GetCategoryByName(name string) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStoreIO, err)
	}
	return &category, nil
}

// AddSubcategory appends a subcategory to the named category. The category
// must exist and the subcategory must not already be present; on failure
// the stored list is untouched.
func (s *categoryService) AddSubcategory(categoryName, subcategory string) (*models.Category, error) {
	if subcategory == "" {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "subcategory name is required")
	}

	category, err := s.GetCategoryByName(categoryName)
	if err != nil {
		return nil, err
	}
	if category.HasSubcategory(subcategory) {
		return nil, apperrors.ErrSubcategoryExists
	}

	subs := append(category.Subcategories, subcategory)
	if err := s.db.Model(category).Update("subcategories", subs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreIO, err)
	}

	s.hub.Touch(store.CollectionCategories)
	return category, nil
}

// RemoveSubcategory filters a subcategory out of the named category.
// Removing a subcategory that is not present is a no-op, not an error.
func (s *categoryService) RemoveSubcategory(categoryName, subcategory string) (*models.Category, error) {
	category, err := s.GetCategoryByName(categoryName)
	if err != nil {
		return nil, err
	}
	if !category.HasSubcategory(subcategory) {
		return category, nil
	}

	subs := make([]string, 0, len(category.Subcategories))
	for _, sub := range category.Subcategories {
		if sub != subcategory {
			subs = append(subs, sub)
		}
	}
	if err := s.db.Model(category).Update("subcategories", subs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreIO, err)
	}

	s.hub.Touch(store.CollectionCategories)
	return category, nil
}

// DeleteCategory removes a category unconditionally, even when
// transactions still reference its name. Those references dangle and
// render with the default color. Deleting an absent id is a no-op.
func (s *categoryService) DeleteCategory(id string) error {
	result := s.db.Delete(&models.Category{}, "id = ?", id)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrStoreIO, result.Error)
	}
	if result.RowsAffected > 0 {
		s.hub.Touch(store.CollectionCategories)
	}
	return nil
}

// ColorFor returns the display color for a category name. It never fails.
func (s *categoryService) ColorFor(name string) string {
	return models.ColorFor(name)
}

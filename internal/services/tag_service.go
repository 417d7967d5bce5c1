package services

import (
	"gorm.io/gorm"

	apperrors "moneta/internal/errors"
	"moneta/internal/models"
	"moneta/internal/store"
)

// tagService handles the tag registry.
type tagService struct {
	db  *gorm.DB
	hub *store.Hub
}

// NewTagService creates a new TagServicer.
func NewTagService(st *store.Store) TagServicer {
	return &tagService{db: st.DB(), hub: st.Hub()}
}

// CreateTag creates a new tag. Name collisions are rejected case-sensitively.
func (s *tagService) CreateTag(name string) (*models.Tag, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "tag name is required")
	}

	var count int64
	if err := s.db.Model(&models.Tag{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreIO, err)
	}
	if count > 0 {
		return nil, apperrors.ErrTagExists
	}

	tag := &models.Tag{Name: name}
	if err := s.db.Create(tag).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreIO, err)
	}

	s.hub.Touch(store.CollectionTags)
	return tag, nil
}

// GetTags retrieves all tags ordered by name.
func (s *tagService) GetTags() ([]models.Tag, error) {
	var tags []models.Tag
	if err := s.db.Order("name ASC").Find(&tags).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreIO, err)
	}
	return tags, nil
}

// DeleteTag removes a tag. Transactions referencing its name keep it;
// deleting an absent id is a no-op.
func (s *tagService) DeleteTag(id string) error {
	result := s.db.Delete(&models.Tag{}, "id = ?", id)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrStoreIO, result.Error)
	}
	if result.RowsAffected > 0 {
		s.hub.Touch(store.CollectionTags)
	}
	return nil
}

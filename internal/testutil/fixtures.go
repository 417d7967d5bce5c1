package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"moneta/internal/models"
	"moneta/internal/store"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestTransaction stores a tracked transaction with the given date,
// category, and signed amount.
func CreateTestTransaction(t *testing.T, st *store.Store, date, category string, amount float64) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		Date:     date,
		Category: category,
		Amount:   amount,
		Note:     fmt.Sprintf("fixture %d", nextID()),
		Track:    true,
	}
	if err := st.DB().Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestCategory stores a category with a unique name and one default
// subcategory.
func CreateTestCategory(t *testing.T, st *store.Store) *models.Category {
	t.Helper()
	name := fmt.Sprintf("Test Category %d", nextID())
	return CreateTestCategoryWithName(t, st, name, models.DefaultSubcategory)
}

// CreateTestCategoryWithName stores a category with the given name and
// subcategories.
func CreateTestCategoryWithName(t *testing.T, st *store.Store, name string, subcategories ...string) *models.Category {
	t.Helper()

	category := &models.Category{
		Name:          name,
		Subcategories: subcategories,
	}
	if err := st.DB().Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestTag stores a tag with a unique name.
func CreateTestTag(t *testing.T, st *store.Store) *models.Tag {
	t.Helper()

	tag := &models.Tag{Name: fmt.Sprintf("Test Tag %d", nextID())}
	if err := st.DB().Create(tag).Error; err != nil {
		t.Fatalf("failed to create test tag: %v", err)
	}
	return tag
}

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryValid(t *testing.T) {
	t.Run("All taxonomy labels are valid", func(t *testing.T) {
		for _, category := range AllCategories {
			assert.True(t, category.Valid(), "Expected %s to be valid", category)
		}
	})

	t.Run("Unknown label is invalid", func(t *testing.T) {
		assert.False(t, Category("loyalty_program").Valid())
		assert.False(t, Category("").Valid())
	})

	t.Run("General is the last priority", func(t *testing.T) {
		assert.Equal(t, CategoryGeneral, AllCategories[len(AllCategories)-1])
	})
}

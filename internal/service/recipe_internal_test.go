package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodgram-project/backend/internal/models"
	"github.com/foodgram-project/backend/internal/testhelpers"
)

// A create that loses the short-code race gets a fresh code instead of
// surfacing the unique-index violation. The collision is forced by pre-setting
// a code that is already taken; the assignment hook leaves nonzero codes
// alone, so the first insert fails exactly like the losing side of a race.
func TestCreateRecipeRetriesShortCodeCollision(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewRecipeService(db, NewImageService(NewLocalStorage(t.TempDir(), "/media")), 1, 1)

	author := testhelpers.CreateTestUser(t, db)
	existing := testhelpers.CreateTestRecipe(t, db, author.ID)
	tag := testhelpers.CreateTestTag(t, db)
	flour := testhelpers.CreateTestIngredient(t, db, "flour", "g")

	var tags []models.Tag
	require.NoError(t, db.Find(&tags, "id = ?", tag.ID).Error)
	joins := []models.RecipeIngredient{{IngredientID: flour.ID, Amount: 100}}

	recipe := &models.Recipe{
		AuthorID:    author.ID,
		Name:        "Racer",
		Image:       "/media/recipes/racer.png",
		Text:        "Cook it fast.",
		CookingTime: 5,
		ShortCode:   existing.ShortCode,
	}

	require.NoError(t, svc.createRecipe(context.Background(), recipe, tags, joins))
	assert.Equal(t, existing.ShortCode+1, recipe.ShortCode)

	var joinCount int64
	db.Model(&models.RecipeIngredient{}).Where("recipe_id = ?", recipe.ID).Count(&joinCount)
	assert.Equal(t, int64(1), joinCount)
}

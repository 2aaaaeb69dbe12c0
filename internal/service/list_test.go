package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/foodgram-project/backend/internal/service"
	"github.com/foodgram-project/backend/internal/testhelpers"
)

func TestFavoriteToggle(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewListService(db)
	author := testhelpers.CreateTestUser(t, db)
	user := testhelpers.CreateTestUser(t, db)
	recipe := testhelpers.CreateTestRecipe(t, db, author.ID)

	short, err := svc.AddFavorite(context.Background(), user.ID, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, recipe.ID, short.ID)
	assert.Equal(t, recipe.Name, short.Name)
	assert.Equal(t, recipe.CookingTime, short.CookingTime)

	// A second add is a validation error, not a no-op.
	_, err = svc.AddFavorite(context.Background(), user.ID, recipe.ID)
	assert.True(t, service.IsValidation(err), "expected validation error, got %v", err)

	require.NoError(t, svc.RemoveFavorite(context.Background(), user.ID, recipe.ID))

	// So is removing what is not there.
	err = svc.RemoveFavorite(context.Background(), user.ID, recipe.ID)
	assert.True(t, service.IsValidation(err), "expected validation error, got %v", err)
}

func TestShoppingCartToggle(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewListService(db)
	author := testhelpers.CreateTestUser(t, db)
	user := testhelpers.CreateTestUser(t, db)
	recipe := testhelpers.CreateTestRecipe(t, db, author.ID)

	short, err := svc.AddToCart(context.Background(), user.ID, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, recipe.ID, short.ID)

	_, err = svc.AddToCart(context.Background(), user.ID, recipe.ID)
	assert.True(t, service.IsValidation(err))

	require.NoError(t, svc.RemoveFromCart(context.Background(), user.ID, recipe.ID))
	err = svc.RemoveFromCart(context.Background(), user.ID, recipe.ID)
	assert.True(t, service.IsValidation(err))
}

func TestListsAreIndependent(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewListService(db)
	author := testhelpers.CreateTestUser(t, db)
	user := testhelpers.CreateTestUser(t, db)
	recipe := testhelpers.CreateTestRecipe(t, db, author.ID)

	_, err := svc.AddFavorite(context.Background(), user.ID, recipe.ID)
	require.NoError(t, err)

	// Favoriting does not put the recipe in the cart.
	_, err = svc.AddToCart(context.Background(), user.ID, recipe.ID)
	require.NoError(t, err)
}

func TestAddToListUnknownRecipe(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewListService(db)
	user := testhelpers.CreateTestUser(t, db)

	_, err := svc.AddFavorite(context.Background(), user.ID, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = svc.AddToCart(context.Background(), user.ID, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

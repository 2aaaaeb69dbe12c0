package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foodgram-project/backend/internal/models"
	"github.com/foodgram-project/backend/internal/types"
)

// ListService toggles the two per-user recipe membership sets. Favorites and
// the shopping cart share one helper; which set is touched is passed in
// explicitly as the row/model pair. Insertion is the existence check: a
// duplicate, including one racing this request, comes back as
// gorm.ErrDuplicatedKey and is reported as "already added".
type ListService struct {
	db *gorm.DB
}

// NewListService creates a new ListService instance
func NewListService(db *gorm.DB) *ListService {
	return &ListService{db: db}
}

func (s *ListService) AddFavorite(ctx context.Context, userID, recipeID uuid.UUID) (*types.RecipeShortResponse, error) {
	return s.add(ctx, recipeID, &models.Favorite{UserID: userID, RecipeID: recipeID}, "favorites")
}

func (s *ListService) RemoveFavorite(ctx context.Context, userID, recipeID uuid.UUID) error {
	return s.remove(ctx, &models.Favorite{}, userID, recipeID, "favorites")
}

func (s *ListService) AddToCart(ctx context.Context, userID, recipeID uuid.UUID) (*types.RecipeShortResponse, error) {
	return s.add(ctx, recipeID, &models.ShoppingCart{UserID: userID, RecipeID: recipeID}, "shopping cart")
}

func (s *ListService) RemoveFromCart(ctx context.Context, userID, recipeID uuid.UUID) error {
	return s.remove(ctx, &models.ShoppingCart{}, userID, recipeID, "shopping cart")
}

func (s *ListService) add(ctx context.Context, recipeID uuid.UUID, row interface{}, listName string) (*types.RecipeShortResponse, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, newValidationError("recipe %q is already in the %s", recipe.Name, listName)
		}
		return nil, err
	}

	return &types.RecipeShortResponse{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       recipe.Image,
		CookingTime: recipe.CookingTime,
	}, nil
}

func (s *ListService) remove(ctx context.Context, model interface{}, userID, recipeID uuid.UUID, listName string) error {
	res := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(model)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return newValidationError("recipe is not in the %s", listName)
	}
	return nil
}

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foodgram-project/backend/internal/models"
)

// ShoppingListItem is one aggregated ingredient group: everything with the
// same (name, unit) across all recipes in the cart, amounts summed.
type ShoppingListItem struct {
	Name            string
	MeasurementUnit string
	TotalAmount     int
}

// ShoppingListService aggregates the cart into a flat shopping list. It is a
// pure read: the report reflects whatever the cart holds at query time.
type ShoppingListService struct {
	db *gorm.DB
}

// NewShoppingListService creates a new ShoppingListService instance
func NewShoppingListService(db *gorm.DB) *ShoppingListService {
	return &ShoppingListService{db: db}
}

// Aggregate groups every ingredient across the user's cart recipes by
// (name, unit) and sums the amounts, ordered by name then unit.
func (s *ShoppingListService) Aggregate(ctx context.Context, userID uuid.UUID) ([]ShoppingListItem, error) {
	var items []ShoppingListItem
	err := s.db.WithContext(ctx).
		Model(&models.RecipeIngredient{}).
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(recipe_ingredients.amount) AS total_amount").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Joins("JOIN shopping_carts ON shopping_carts.recipe_id = recipe_ingredients.recipe_id").
		Where("shopping_carts.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name, ingredients.measurement_unit").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// RecipeNames returns the distinct names of the recipes in the cart.
func (s *ShoppingListService) RecipeNames(ctx context.Context, userID uuid.UUID) ([]string, error) {
	var names []string
	err := s.db.WithContext(ctx).
		Model(&models.Recipe{}).
		Joins("JOIN shopping_carts ON shopping_carts.recipe_id = recipes.id").
		Where("shopping_carts.user_id = ?", userID).
		Order("recipes.name").
		Distinct().
		Pluck("recipes.name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

// BuildReport renders the plain-text shopping list: date stamp, the cart's
// recipes, then one line per ingredient group.
func (s *ShoppingListService) BuildReport(ctx context.Context, userID uuid.UUID, now time.Time) (string, error) {
	items, err := s.Aggregate(ctx, userID)
	if err != nil {
		return "", err
	}
	names, err := s.RecipeNames(ctx, userID)
	if err != nil {
		return "", err
	}

	return RenderShoppingList(items, names, now), nil
}

// RenderShoppingList formats the aggregated groups as a flat report.
func RenderShoppingList(items []ShoppingListItem, recipeNames []string, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Shopping list from %s\n\n", now.Format("02.01.2006"))

	if len(recipeNames) > 0 {
		b.WriteString("For recipes:\n")
		for _, name := range recipeNames {
			fmt.Fprintf(&b, "- %s\n", name)
		}
		b.WriteString("\n")
	}

	if len(items) == 0 {
		b.WriteString("The shopping cart is empty.\n")
		return b.String()
	}

	for _, item := range items {
		fmt.Fprintf(&b, "%s (%s) — %d\n", item.Name, item.MeasurementUnit, item.TotalAmount)
	}
	return b.String()
}

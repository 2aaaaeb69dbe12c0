package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foodgram-project/backend/internal/models"
	"github.com/foodgram-project/backend/internal/types"
)

// SubscriptionService manages follow edges and the subscriptions listing.
type SubscriptionService struct {
	db *gorm.DB
}

// NewSubscriptionService creates a new SubscriptionService instance
func NewSubscriptionService(db *gorm.DB) *SubscriptionService {
	return &SubscriptionService{db: db}
}

// Follow creates the edge and returns the author annotated with their recipes.
// recipesLimit is nil for "all recipes".
func (s *SubscriptionService) Follow(ctx context.Context, userID, authorID uuid.UUID, recipesLimit *int) (*types.SubscriptionResponse, error) {
	if userID == authorID {
		return nil, newValidationError("you cannot follow yourself")
	}

	var author models.User
	if err := s.db.WithContext(ctx).First(&author, "id = ?", authorID).Error; err != nil {
		return nil, err
	}

	follow := models.Follow{UserID: userID, AuthorID: authorID}
	if err := s.db.WithContext(ctx).Create(&follow).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, newValidationError("you already follow %s", author.Username)
		}
		return nil, err
	}

	return s.annotate(ctx, &author, recipesLimit)
}

// Unfollow removes the edge. Removing an edge that does not exist is a
// validation error, not a no-op.
func (s *SubscriptionService) Unfollow(ctx context.Context, userID, authorID uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&models.Follow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return newValidationError("you do not follow this author")
	}
	return nil
}

// ListFollowed returns every author the user follows, ordered by username,
// each with their recipe count and up to recipesLimit recipes.
func (s *SubscriptionService) ListFollowed(ctx context.Context, userID uuid.UUID, recipesLimit *int) ([]types.SubscriptionResponse, error) {
	var authors []models.User
	err := s.db.WithContext(ctx).
		Joins("JOIN follows ON follows.author_id = users.id").
		Where("follows.user_id = ?", userID).
		Order("users.username").
		Find(&authors).Error
	if err != nil {
		return nil, err
	}

	responses := make([]types.SubscriptionResponse, 0, len(authors))
	for i := range authors {
		resp, err := s.annotate(ctx, &authors[i], recipesLimit)
		if err != nil {
			return nil, err
		}
		resp.IsSubscribed = true
		responses = append(responses, *resp)
	}
	return responses, nil
}

// annotate attaches recipes_count and the (possibly truncated) recipe list.
func (s *SubscriptionService) annotate(ctx context.Context, author *models.User, recipesLimit *int) (*types.SubscriptionResponse, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).
		Where("author_id = ?", author.ID).
		Count(&count).Error; err != nil {
		return nil, err
	}

	query := s.db.WithContext(ctx).
		Where("author_id = ?", author.ID).
		Order("created_at DESC")
	if recipesLimit != nil && *recipesLimit >= 0 {
		query = query.Limit(*recipesLimit)
	}

	var recipes []models.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}

	shorts := make([]types.RecipeShortResponse, len(recipes))
	for i, r := range recipes {
		shorts[i] = types.RecipeShortResponse{
			ID:          r.ID,
			Name:        r.Name,
			Image:       r.Image,
			CookingTime: r.CookingTime,
		}
	}

	return &types.SubscriptionResponse{
		UserResponse: types.UserResponse{
			ID:           author.ID,
			Email:        author.Email,
			Username:     author.Username,
			FirstName:    author.FirstName,
			LastName:     author.LastName,
			Avatar:       author.Avatar,
			IsSubscribed: true,
		},
		RecipesCount: count,
		Recipes:      shorts,
	}, nil
}

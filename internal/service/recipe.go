package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foodgram-project/backend/internal/models"
	"github.com/foodgram-project/backend/internal/types"
)

// RecipeService handles recipe reads and writes. Writes validate the tag and
// ingredient associations before touching storage; reads build the viewer
// relative read-model without per-row queries.
type RecipeService struct {
	db             *gorm.DB
	images         *ImageService
	minCookingTime int
	minAmount      int
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB, images *ImageService, minCookingTime, minAmount int) *RecipeService {
	return &RecipeService{
		db:             db,
		images:         images,
		minCookingTime: minCookingTime,
		minAmount:      minAmount,
	}
}

// RecipeFilters narrows List. Favorited and InCart are viewer-relative and
// ignored for anonymous viewers.
type RecipeFilters struct {
	Author    *uuid.UUID
	TagSlugs  []string
	Favorited bool
	InCart    bool
	Limit     int
	Offset    int
}

// Create validates and persists a new recipe with its tag set and ingredient
// amounts, then returns the read-model as the author sees it.
func (s *RecipeService) Create(ctx context.Context, authorID uuid.UUID, req *types.CreateRecipeRequest) (*types.RecipeResponse, error) {
	if req.CookingTime < s.minCookingTime {
		return nil, newValidationError("cooking time must be at least %d", s.minCookingTime)
	}
	tags, err := s.resolveTags(ctx, req.Tags)
	if err != nil {
		return nil, err
	}
	joins, err := s.resolveIngredients(ctx, req.Ingredients)
	if err != nil {
		return nil, err
	}

	imageURL, err := s.images.SaveDataURI(ctx, req.Image, "recipes/images")
	if err != nil {
		return nil, err
	}

	recipe := models.Recipe{
		AuthorID:    authorID,
		Name:        req.Name,
		Image:       imageURL,
		Text:        req.Text,
		CookingTime: req.CookingTime,
	}

	if err := s.createRecipe(ctx, &recipe, tags, joins); err != nil {
		return nil, err
	}

	return s.Get(ctx, &authorID, recipe.ID)
}

// createRecipe inserts the recipe with its associations. Two concurrent
// creates can pick the same short code; the loser hits the unique index and
// retries with a fresh one.
func (s *RecipeService) createRecipe(ctx context.Context, recipe *models.Recipe, tags []models.Tag, joins []models.RecipeIngredient) error {
	for attempt := 0; ; attempt++ {
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(recipe).Error; err != nil {
				return err
			}
			if err := tx.Model(recipe).Association("Tags").Append(&tags); err != nil {
				return err
			}
			for i := range joins {
				joins[i].RecipeID = recipe.ID
			}
			return tx.Create(&joins).Error
		})
		if err == nil {
			return nil
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) && attempt < 2 {
			recipe.ShortCode = 0
			recipe.Tags = nil
			continue
		}
		return err
	}
}

// Update applies a partial update. Omitted tag/ingredient fields leave the
// association untouched; provided ingredient data replaces the join rows
// wholesale.
func (s *RecipeService) Update(ctx context.Context, viewerID, recipeID uuid.UUID, req *types.UpdateRecipeRequest) (*types.RecipeResponse, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		return nil, err
	}
	if recipe.AuthorID != viewerID {
		return nil, ErrForbidden
	}

	if req.CookingTime != nil && *req.CookingTime < s.minCookingTime {
		return nil, newValidationError("cooking time must be at least %d", s.minCookingTime)
	}

	var tags []models.Tag
	if req.Tags != nil {
		var err error
		if tags, err = s.resolveTags(ctx, req.Tags); err != nil {
			return nil, err
		}
	}
	var joins []models.RecipeIngredient
	if req.Ingredients != nil {
		var err error
		if joins, err = s.resolveIngredients(ctx, req.Ingredients); err != nil {
			return nil, err
		}
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Text != nil {
		updates["text"] = *req.Text
	}
	if req.CookingTime != nil {
		updates["cooking_time"] = *req.CookingTime
	}
	if req.Image != nil {
		imageURL, err := s.images.SaveDataURI(ctx, *req.Image, "recipes/images")
		if err != nil {
			return nil, err
		}
		updates["image"] = imageURL
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&recipe).Updates(updates).Error; err != nil {
				return err
			}
		}
		if req.Tags != nil {
			if err := tx.Model(&recipe).Association("Tags").Replace(&tags); err != nil {
				return err
			}
		}
		if req.Ingredients != nil {
			if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
				return err
			}
			for i := range joins {
				joins[i].RecipeID = recipe.ID
			}
			if err := tx.Create(&joins).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, &viewerID, recipe.ID)
}

// Delete removes a recipe the viewer owns, along with its join rows.
func (s *RecipeService) Delete(ctx context.Context, viewerID, recipeID uuid.UUID) error {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		return err
	}
	if recipe.AuthorID != viewerID {
		return ErrForbidden
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.ShoppingCart{}).Error; err != nil {
			return err
		}
		return tx.Delete(&recipe).Error
	})
}

// Get returns one recipe as the viewer sees it. A nil viewer is anonymous:
// both membership flags are false and no existence queries run.
func (s *RecipeService) Get(ctx context.Context, viewerID *uuid.UUID, recipeID uuid.UUID) (*types.RecipeResponse, error) {
	var recipe models.Recipe
	err := s.preloaded(ctx).First(&recipe, "recipes.id = ?", recipeID).Error
	if err != nil {
		return nil, err
	}

	responses, err := s.present(ctx, viewerID, []models.Recipe{recipe})
	if err != nil {
		return nil, err
	}
	return &responses[0], nil
}

// List returns recipes newest-first with viewer flags resolved in bulk.
func (s *RecipeService) List(ctx context.Context, viewerID *uuid.UUID, filters RecipeFilters) ([]types.RecipeResponse, error) {
	query := s.preloaded(ctx).Order("recipes.created_at DESC")

	if filters.Author != nil {
		query = query.Where("recipes.author_id = ?", *filters.Author)
	}
	if len(filters.TagSlugs) > 0 {
		query = query.
			Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", filters.TagSlugs).
			Distinct("recipes.*")
	}
	if viewerID != nil {
		if filters.Favorited {
			query = query.
				Joins("JOIN favorites ON favorites.recipe_id = recipes.id").
				Where("favorites.user_id = ?", *viewerID)
		}
		if filters.InCart {
			query = query.
				Joins("JOIN shopping_carts ON shopping_carts.recipe_id = recipes.id").
				Where("shopping_carts.user_id = ?", *viewerID)
		}
	}
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	var recipes []models.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return s.present(ctx, viewerID, recipes)
}

// ResolveShortCode maps a short code to the recipe id for the redirect.
func (s *RecipeService) ResolveShortCode(ctx context.Context, code uint) (uuid.UUID, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).Select("id").First(&recipe, "short_code = ?", code).Error; err != nil {
		return uuid.Nil, err
	}
	return recipe.ID, nil
}

// preloaded is the base read query: tags and ingredient joins travel with the
// recipe so listing never issues one query per related row.
func (s *RecipeService) preloaded(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Model(&models.Recipe{}).
		Preload("Author").
		Preload("Tags").
		Preload("RecipeIngredients.Ingredient")
}

// present builds read-models. Viewer flags (favorited, in cart, subscribed to
// author) are resolved with one batched query per membership set.
func (s *RecipeService) present(ctx context.Context, viewerID *uuid.UUID, recipes []models.Recipe) ([]types.RecipeResponse, error) {
	favorited := map[uuid.UUID]bool{}
	inCart := map[uuid.UUID]bool{}
	following := map[uuid.UUID]bool{}

	if viewerID != nil && len(recipes) > 0 {
		recipeIDs := make([]uuid.UUID, len(recipes))
		authorSet := map[uuid.UUID]struct{}{}
		for i := range recipes {
			recipeIDs[i] = recipes[i].ID
			authorSet[recipes[i].AuthorID] = struct{}{}
		}
		authorIDs := make([]uuid.UUID, 0, len(authorSet))
		for id := range authorSet {
			authorIDs = append(authorIDs, id)
		}

		var favs []models.Favorite
		if err := s.db.WithContext(ctx).
			Where("user_id = ? AND recipe_id IN ?", *viewerID, recipeIDs).
			Find(&favs).Error; err != nil {
			return nil, err
		}
		for _, f := range favs {
			favorited[f.RecipeID] = true
		}

		var carts []models.ShoppingCart
		if err := s.db.WithContext(ctx).
			Where("user_id = ? AND recipe_id IN ?", *viewerID, recipeIDs).
			Find(&carts).Error; err != nil {
			return nil, err
		}
		for _, c := range carts {
			inCart[c.RecipeID] = true
		}

		var follows []models.Follow
		if err := s.db.WithContext(ctx).
			Where("user_id = ? AND author_id IN ?", *viewerID, authorIDs).
			Find(&follows).Error; err != nil {
			return nil, err
		}
		for _, f := range follows {
			following[f.AuthorID] = true
		}
	}

	responses := make([]types.RecipeResponse, len(recipes))
	for i := range recipes {
		r := &recipes[i]

		tags := make([]types.TagResponse, len(r.Tags))
		for j, t := range r.Tags {
			tags[j] = types.TagResponse{ID: t.ID, Name: t.Name, Color: t.Color, Slug: t.Slug}
		}

		ingredients := make([]types.RecipeIngredientResponse, len(r.RecipeIngredients))
		for j, ri := range r.RecipeIngredients {
			ingredients[j] = types.RecipeIngredientResponse{
				ID:     ri.IngredientID,
				Amount: ri.Amount,
			}
			if ri.Ingredient != nil {
				ingredients[j].Name = ri.Ingredient.Name
				ingredients[j].MeasurementUnit = ri.Ingredient.MeasurementUnit
			}
		}

		author := types.UserResponse{ID: r.AuthorID}
		if r.Author != nil {
			author = types.UserResponse{
				ID:           r.Author.ID,
				Email:        r.Author.Email,
				Username:     r.Author.Username,
				FirstName:    r.Author.FirstName,
				LastName:     r.Author.LastName,
				Avatar:       r.Author.Avatar,
				IsSubscribed: following[r.AuthorID],
			}
		}

		responses[i] = types.RecipeResponse{
			ID:               r.ID,
			Tags:             tags,
			Author:           author,
			Ingredients:      ingredients,
			IsFavorited:      favorited[r.ID],
			IsInShoppingCart: inCart[r.ID],
			Name:             r.Name,
			Image:            r.Image,
			Text:             r.Text,
			CookingTime:      r.CookingTime,
			ShortCode:        r.ShortCode,
		}
	}
	return responses, nil
}

// resolveTags checks the tag id list and loads the rows for association.
func (s *RecipeService) resolveTags(ctx context.Context, ids []uint) ([]models.Tag, error) {
	if len(ids) == 0 {
		return nil, newValidationError("a recipe needs at least one tag")
	}
	seen := map[uint]struct{}{}
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return nil, newValidationError("duplicate tag id %d", id)
		}
		seen[id] = struct{}{}
	}

	var tags []models.Tag
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, err
	}
	if len(tags) != len(ids) {
		return nil, newValidationError("unknown tag id in %v", ids)
	}
	return tags, nil
}

// resolveIngredients checks the (id, amount) pairs and returns join rows
// without RecipeID set.
func (s *RecipeService) resolveIngredients(ctx context.Context, pairs []types.IngredientAmount) ([]models.RecipeIngredient, error) {
	if len(pairs) == 0 {
		return nil, newValidationError("a recipe needs at least one ingredient")
	}

	ids := make([]uint, 0, len(pairs))
	seen := map[uint]struct{}{}
	for _, p := range pairs {
		if _, dup := seen[p.ID]; dup {
			return nil, newValidationError("duplicate ingredient id %d", p.ID)
		}
		seen[p.ID] = struct{}{}
		if p.Amount < s.minAmount {
			return nil, newValidationError("ingredient amount must be at least %d", s.minAmount)
		}
		ids = append(ids, p.ID)
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Ingredient{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
		return nil, err
	}
	if count != int64(len(ids)) {
		return nil, newValidationError("unknown ingredient id in %v", ids)
	}

	joins := make([]models.RecipeIngredient, len(pairs))
	for i, p := range pairs {
		joins[i] = models.RecipeIngredient{IngredientID: p.ID, Amount: p.Amount}
	}
	return joins, nil
}

package testhelpers

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/foodgram-project/backend/internal/models"
	"github.com/foodgram-project/backend/internal/types"
)

// TestPassword is the plain-text password every test user is created with.
const TestPassword = "testpassword123"

// CreateTestUser creates a user with unique email and username.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	suffix := uuid.New().String()[:8]
	hashed, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Email:        fmt.Sprintf("user-%s@example.com", suffix),
		Username:     fmt.Sprintf("user_%s", suffix),
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: string(hashed),
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateTestTag creates a tag with a unique name, color and slug.
func CreateTestTag(t *testing.T, db *gorm.DB) *models.Tag {
	suffix := uuid.New().String()[:6]
	tag := &models.Tag{
		Name:  "tag-" + suffix,
		Color: "#" + suffix,
		Slug:  "slug-" + suffix,
	}
	require.NoError(t, db.Create(tag).Error)
	return tag
}

// CreateTestIngredient creates an ingredient with the given name and unit.
func CreateTestIngredient(t *testing.T, db *gorm.DB, name, unit string) *models.Ingredient {
	ingredient := &models.Ingredient{Name: name, MeasurementUnit: unit}
	require.NoError(t, db.Create(ingredient).Error)
	return ingredient
}

// CreateTestRecipe creates a recipe owned by the given author, without tags
// or ingredients.
func CreateTestRecipe(t *testing.T, db *gorm.DB, authorID uuid.UUID) *models.Recipe {
	recipe := &models.Recipe{
		AuthorID:    authorID,
		Name:        "Test Recipe",
		Image:       "/media/recipes/test.png",
		Text:        "Cook it.",
		CookingTime: 10,
	}
	require.NoError(t, db.Create(recipe).Error)
	return recipe
}

// MockTokenValidator is a token validator with canned output for middleware
// and handler tests.
type MockTokenValidator struct {
	Claims *types.TokenClaims
	Error  error
}

func (m *MockTokenValidator) ValidateToken(token string) (*types.TokenClaims, error) {
	if m.Error != nil {
		return nil, m.Error
	}
	return m.Claims, nil
}

package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/foodgram-project/backend/internal/models"
	"github.com/foodgram-project/backend/internal/testhelpers"
	"github.com/foodgram-project/backend/internal/types"
)

// seedRecipeRefs creates a tag and ingredient so recipe writes can reference
// them.
func seedRecipeRefs(t *testing.T, db *gorm.DB) (*models.Tag, *models.Ingredient) {
	tag := testhelpers.CreateTestTag(t, db)
	ingredient := testhelpers.CreateTestIngredient(t, db, "flour", "g")
	return tag, ingredient
}

func recipePayload(tag *models.Tag, ingredient *models.Ingredient) map[string]interface{} {
	return map[string]interface{}{
		"name":         "Pancakes",
		"image":        testImage,
		"text":         "Mix and fry.",
		"cooking_time": 20,
		"tags":         []uint{tag.ID},
		"ingredients":  []map[string]interface{}{{"id": ingredient.ID, "amount": 200}},
	}
}

func TestCreateRecipeEndpoint(t *testing.T) {
	env := setupAPITest(t)
	author := testhelpers.CreateTestUser(t, env.db)
	tag, ingredient := seedRecipeRefs(t, env.db)
	token := env.tokenFor(t, author.ID)

	w := env.do(t, http.MethodPost, "/api/v1/recipes", token, recipePayload(tag, ingredient))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.Equal(t, "Pancakes", body["name"])
	assert.Equal(t, false, body["is_favorited"])

	// Writes need a token.
	w = env.do(t, http.MethodPost, "/api/v1/recipes", "", recipePayload(tag, ingredient))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateRecipeEndpointValidation(t *testing.T) {
	env := setupAPITest(t)
	author := testhelpers.CreateTestUser(t, env.db)
	tag, ingredient := seedRecipeRefs(t, env.db)
	token := env.tokenFor(t, author.ID)

	payload := recipePayload(tag, ingredient)
	payload["ingredients"] = []map[string]interface{}{}
	w := env.do(t, http.MethodPost, "/api/v1/recipes", token, payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "errors")
}

func TestGetRecipeEndpoint(t *testing.T) {
	env := setupAPITest(t)
	author := testhelpers.CreateTestUser(t, env.db)
	tag, ingredient := seedRecipeRefs(t, env.db)
	token := env.tokenFor(t, author.ID)

	w := env.do(t, http.MethodPost, "/api/v1/recipes", token, recipePayload(tag, ingredient))
	require.Equal(t, http.StatusCreated, w.Code)
	recipeID := decodeBody(t, w)["id"].(string)

	// Readable anonymously.
	w = env.do(t, http.MethodGet, "/api/v1/recipes/"+recipeID, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/recipes/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/recipes/"+uuid.NewString(), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateRecipeEndpointForbidden(t *testing.T) {
	env := setupAPITest(t)
	author := testhelpers.CreateTestUser(t, env.db)
	stranger := testhelpers.CreateTestUser(t, env.db)
	tag, ingredient := seedRecipeRefs(t, env.db)

	w := env.do(t, http.MethodPost, "/api/v1/recipes", env.tokenFor(t, author.ID), recipePayload(tag, ingredient))
	require.Equal(t, http.StatusCreated, w.Code)
	recipeID := decodeBody(t, w)["id"].(string)

	w = env.do(t, http.MethodPatch, "/api/v1/recipes/"+recipeID, env.tokenFor(t, stranger.ID),
		map[string]interface{}{"name": "Stolen"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodPatch, "/api/v1/recipes/"+recipeID, env.tokenFor(t, author.ID),
		map[string]interface{}{"name": "Crepes"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Crepes", decodeBody(t, w)["name"])
}

func TestDeleteRecipeEndpoint(t *testing.T) {
	env := setupAPITest(t)
	author := testhelpers.CreateTestUser(t, env.db)
	tag, ingredient := seedRecipeRefs(t, env.db)
	token := env.tokenFor(t, author.ID)

	w := env.do(t, http.MethodPost, "/api/v1/recipes", token, recipePayload(tag, ingredient))
	require.Equal(t, http.StatusCreated, w.Code)
	recipeID := decodeBody(t, w)["id"].(string)

	w = env.do(t, http.MethodDelete, "/api/v1/recipes/"+recipeID, token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/recipes/"+recipeID, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFavoriteEndpoints(t *testing.T) {
	env := setupAPITest(t)
	author := testhelpers.CreateTestUser(t, env.db)
	user := testhelpers.CreateTestUser(t, env.db)
	recipe := testhelpers.CreateTestRecipe(t, env.db, author.ID)
	token := env.tokenFor(t, user.ID)
	path := fmt.Sprintf("/api/v1/recipes/%s/favorite", recipe.ID)

	w := env.do(t, http.MethodPost, path, token, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, recipe.Name, body["name"])

	// Duplicate add reports a validation error.
	w = env.do(t, http.MethodPost, path, token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "errors")

	w = env.do(t, http.MethodDelete, path, token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(t, http.MethodDelete, path, token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestShoppingCartEndpoints(t *testing.T) {
	env := setupAPITest(t)
	author := testhelpers.CreateTestUser(t, env.db)
	user := testhelpers.CreateTestUser(t, env.db)
	recipe := testhelpers.CreateTestRecipe(t, env.db, author.ID)
	flour := testhelpers.CreateTestIngredient(t, env.db, "flour", "g")
	require.NoError(t, env.db.Create(&models.RecipeIngredient{
		RecipeID: recipe.ID, IngredientID: flour.ID, Amount: 100,
	}).Error)
	token := env.tokenFor(t, user.ID)

	w := env.do(t, http.MethodPost, fmt.Sprintf("/api/v1/recipes/%s/shopping_cart", recipe.ID), token, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = env.do(t, http.MethodGet, "/api/v1/recipes/download_shopping_cart", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "shopping_list.txt")
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
	assert.Contains(t, w.Body.String(), "flour (g) — 100")

	// The download needs a token.
	w = env.do(t, http.MethodGet, "/api/v1/recipes/download_shopping_cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListRecipesEndpoint(t *testing.T) {
	env := setupAPITest(t)
	author := testhelpers.CreateTestUser(t, env.db)
	tag, ingredient := seedRecipeRefs(t, env.db)
	token := env.tokenFor(t, author.ID)

	w := env.do(t, http.MethodPost, "/api/v1/recipes", token, recipePayload(tag, ingredient))
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/recipes", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listBody struct {
		Recipes []types.RecipeResponse `json:"recipes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listBody))
	assert.Len(t, listBody.Recipes, 1)

	// Tag filter.
	w = env.do(t, http.MethodGet, "/api/v1/recipes?tags="+tag.Slug, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listBody))
	assert.Len(t, listBody.Recipes, 1)

	w = env.do(t, http.MethodGet, "/api/v1/recipes?tags=no-such-slug", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listBody))
	assert.Empty(t, listBody.Recipes)
}

func TestShortLinkRedirect(t *testing.T) {
	env := setupAPITest(t)
	author := testhelpers.CreateTestUser(t, env.db)
	recipe := testhelpers.CreateTestRecipe(t, env.db, author.ID)

	w := env.do(t, http.MethodGet, fmt.Sprintf("/s/%d", recipe.ShortCode), "", nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, fmt.Sprintf("/api/v1/recipes/%s", recipe.ID), w.Header().Get("Location"))

	w = env.do(t, http.MethodGet, "/s/9999", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodGet, "/s/not-a-code", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/foodgram-project/backend/internal/service"
	"github.com/foodgram-project/backend/internal/testhelpers"
)

// testImage decodes to "hello"; handlers never inspect image bytes.
const testImage = "data:image/png;base64,aGVsbG8="

type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
	auth   *service.AuthService
}

func setupAPITest(t *testing.T) *testEnv {
	gin.SetMode(gin.TestMode)
	db := testhelpers.SetupTestDB(t)

	images := service.NewImageService(service.NewLocalStorage(t.TempDir(), "/media"))
	authService := service.NewAuthService(db, "test-secret")
	recipeService := service.NewRecipeService(db, images, 1, 1)
	listService := service.NewListService(db)
	subscriptionService := service.NewSubscriptionService(db)
	shoppingListService := service.NewShoppingListService(db)
	catalogService := service.NewCatalogService(db)

	router := gin.New()
	recipeHandler := NewRecipeHandler(recipeService, listService, shoppingListService, authService)
	recipeHandler.RegisterShortLinkRoutes(router)

	v1 := router.Group("/api/v1")
	NewAuthHandler(authService).RegisterRoutes(v1)
	NewUserHandler(authService, subscriptionService, images).RegisterRoutes(v1)
	NewCatalogHandler(catalogService).RegisterRoutes(v1)
	recipeHandler.RegisterRoutes(v1)

	return &testEnv{router: router, db: db, auth: authService}
}

// tokenFor signs a bearer token for an existing user.
func (e *testEnv) tokenFor(t *testing.T, userID uuid.UUID) string {
	token, err := e.auth.GenerateToken(userID)
	require.NoError(t, err)
	return token
}

// do performs a JSON request against the test router. token may be empty for
// anonymous requests.
func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var payload *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		payload = bytes.NewBuffer(data)
	} else {
		payload = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, payload)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

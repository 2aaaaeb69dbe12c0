package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/foodgram-project/backend/internal/middleware"
	"github.com/foodgram-project/backend/internal/service"
	"github.com/foodgram-project/backend/internal/types"
)

type RecipeHandler struct {
	recipeService       *service.RecipeService
	listService         *service.ListService
	shoppingListService *service.ShoppingListService
	authService         *service.AuthService
}

func NewRecipeHandler(
	recipeService *service.RecipeService,
	listService *service.ListService,
	shoppingListService *service.ShoppingListService,
	authService *service.AuthService,
) *RecipeHandler {
	return &RecipeHandler{
		recipeService:       recipeService,
		listService:         listService,
		shoppingListService: shoppingListService,
		authService:         authService,
	}
}

// RegisterRoutes mounts the recipe surface. writeLimiters (e.g. the redis
// rate limiter) run after authentication on mutating routes only.
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup, writeLimiters ...gin.HandlerFunc) {
	auth := middleware.AuthMiddleware(h.authService)
	optional := middleware.OptionalAuthMiddleware(h.authService)
	write := func(handler gin.HandlerFunc) []gin.HandlerFunc {
		chain := append([]gin.HandlerFunc{auth}, writeLimiters...)
		return append(chain, handler)
	}

	recipes := router.Group("/recipes")
	{
		recipes.GET("", optional, h.ListRecipes)
		recipes.GET("/download_shopping_cart", auth, h.DownloadShoppingCart)
		recipes.GET("/:id", optional, h.GetRecipe)
		recipes.POST("", write(h.CreateRecipe)...)
		recipes.PATCH("/:id", write(h.UpdateRecipe)...)
		recipes.DELETE("/:id", write(h.DeleteRecipe)...)
		recipes.POST("/:id/favorite", write(h.AddFavorite)...)
		recipes.DELETE("/:id/favorite", write(h.RemoveFavorite)...)
		recipes.POST("/:id/shopping_cart", write(h.AddToCart)...)
		recipes.DELETE("/:id/shopping_cart", write(h.RemoveFromCart)...)
	}
}

// RegisterShortLinkRoutes mounts the short-link redirect outside the API
// prefix.
func (h *RecipeHandler) RegisterShortLinkRoutes(router gin.IRouter) {
	router.GET("/s/:code", h.ShortLink)
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	filters := service.RecipeFilters{
		TagSlugs:  c.QueryArray("tags"),
		Favorited: c.Query("is_favorited") == "1",
		InCart:    c.Query("is_in_shopping_cart") == "1",
	}
	if raw := c.Query("author"); raw != "" {
		if authorID, err := uuid.Parse(raw); err == nil {
			filters.Author = &authorID
		}
	}
	if n, err := strconv.Atoi(c.Query("limit")); err == nil && n > 0 {
		filters.Limit = n
	}
	if n, err := strconv.Atoi(c.Query("offset")); err == nil && n > 0 {
		filters.Offset = n
	}

	recipes, err := h.recipeService.List(c.Request.Context(), viewerID(c), filters)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}

	recipe, err := h.recipeService.Get(c.Request.Context(), viewerID(c), recipeID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, _ := currentUserID(c)

	var req types.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	recipe, err := h.recipeService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	userID, _ := currentUserID(c)

	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}

	var req types.UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	recipe, err := h.recipeService.Update(c.Request.Context(), userID, recipeID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	userID, _ := currentUserID(c)

	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}

	if err := h.recipeService.Delete(c.Request.Context(), userID, recipeID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) AddFavorite(c *gin.Context) {
	h.addToList(c, h.listService.AddFavorite)
}

func (h *RecipeHandler) RemoveFavorite(c *gin.Context) {
	h.removeFromList(c, h.listService.RemoveFavorite)
}

func (h *RecipeHandler) AddToCart(c *gin.Context) {
	h.addToList(c, h.listService.AddToCart)
}

func (h *RecipeHandler) RemoveFromCart(c *gin.Context) {
	h.removeFromList(c, h.listService.RemoveFromCart)
}

func (h *RecipeHandler) DownloadShoppingCart(c *gin.Context) {
	userID, _ := currentUserID(c)

	report, err := h.shoppingListService.BuildReport(c.Request.Context(), userID, time.Now())
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="shopping_list.txt"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(report))
}

func (h *RecipeHandler) ShortLink(c *gin.Context) {
	code, err := strconv.ParseUint(c.Param("code"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown short link"})
		return
	}

	recipeID, err := h.recipeService.ResolveShortCode(c.Request.Context(), uint(code))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/api/v1/recipes/%s", recipeID))
}

func (h *RecipeHandler) addToList(c *gin.Context, add func(ctx context.Context, userID, recipeID uuid.UUID) (*types.RecipeShortResponse, error)) {
	userID, _ := currentUserID(c)

	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}

	short, err := add(c.Request.Context(), userID, recipeID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, short)
}

func (h *RecipeHandler) removeFromList(c *gin.Context, remove func(ctx context.Context, userID, recipeID uuid.UUID) error) {
	userID, _ := currentUserID(c)

	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}

	if err := remove(c.Request.Context(), userID, recipeID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

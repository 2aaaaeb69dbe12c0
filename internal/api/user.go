package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/foodgram-project/backend/internal/middleware"
	"github.com/foodgram-project/backend/internal/service"
	"github.com/foodgram-project/backend/internal/types"
)

type UserHandler struct {
	authService         *service.AuthService
	subscriptionService *service.SubscriptionService
	imageService        *service.ImageService
}

func NewUserHandler(authService *service.AuthService, subscriptionService *service.SubscriptionService, imageService *service.ImageService) *UserHandler {
	return &UserHandler{
		authService:         authService,
		subscriptionService: subscriptionService,
		imageService:        imageService,
	}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.GET("/me", middleware.AuthMiddleware(h.authService), h.Me)
		users.PUT("/me/avatar", middleware.AuthMiddleware(h.authService), h.SetAvatar)
		users.DELETE("/me/avatar", middleware.AuthMiddleware(h.authService), h.DeleteAvatar)
		users.GET("/subscriptions", middleware.AuthMiddleware(h.authService), h.Subscriptions)
		users.POST("/:id/subscribe", middleware.AuthMiddleware(h.authService), h.Subscribe)
		users.DELETE("/:id/subscribe", middleware.AuthMiddleware(h.authService), h.Unsubscribe)
	}
}

func (h *UserHandler) Me(c *gin.Context) {
	userID, _ := currentUserID(c)

	user, err := h.authService.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Avatar:    user.Avatar,
	})
}

func (h *UserHandler) SetAvatar(c *gin.Context) {
	userID, _ := currentUserID(c)

	var req types.SetAvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	url, err := h.imageService.SaveDataURI(c.Request.Context(), req.Avatar, "users/avatars")
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.authService.SetAvatar(c.Request.Context(), userID, url); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatar": url})
}

func (h *UserHandler) DeleteAvatar(c *gin.Context) {
	userID, _ := currentUserID(c)

	if err := h.authService.DeleteAvatar(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) Subscribe(c *gin.Context) {
	userID, _ := currentUserID(c)

	authorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown author"})
		return
	}

	resp, err := h.subscriptionService.Follow(c.Request.Context(), userID, authorID, recipesLimit(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *UserHandler) Unsubscribe(c *gin.Context) {
	userID, _ := currentUserID(c)

	authorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown author"})
		return
	}

	if err := h.subscriptionService.Unfollow(c.Request.Context(), userID, authorID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) Subscriptions(c *gin.Context) {
	userID, _ := currentUserID(c)

	resp, err := h.subscriptionService.ListFollowed(c.Request.Context(), userID, recipesLimit(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": resp})
}

// recipesLimit parses the recipes_limit query parameter. Absent or
// non-numeric means no limit; that default is deliberate, not a swallowed
// parse error.
func recipesLimit(c *gin.Context) *int {
	raw := c.Query("recipes_limit")
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return nil
	}
	return &n
}

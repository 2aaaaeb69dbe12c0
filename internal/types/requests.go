package types

// RegisterRequest is the signup payload.
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Username  string `json:"username" binding:"required,max=150"`
	FirstName string `json:"first_name" binding:"required,max=150"`
	LastName  string `json:"last_name" binding:"required,max=150"`
	Password  string `json:"password" binding:"required,min=6"`
}

// LoginRequest authenticates by email.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// IngredientAmount is one (ingredient id, amount) pair in a recipe write.
type IngredientAmount struct {
	ID     uint `json:"id"`
	Amount int  `json:"amount"`
}

// CreateRecipeRequest is the write payload for a new recipe. Image is a
// base64 data URI.
type CreateRecipeRequest struct {
	Name        string             `json:"name" binding:"required,max=200"`
	Image       string             `json:"image" binding:"required"`
	Text        string             `json:"text" binding:"required"`
	CookingTime int                `json:"cooking_time" binding:"required"`
	Tags        []uint             `json:"tags" binding:"required"`
	Ingredients []IngredientAmount `json:"ingredients" binding:"required"`
}

// UpdateRecipeRequest carries partial updates. Nil slices mean "leave the
// association untouched"; empty slices are rejected during validation.
type UpdateRecipeRequest struct {
	Name        *string            `json:"name"`
	Image       *string            `json:"image"`
	Text        *string            `json:"text"`
	CookingTime *int               `json:"cooking_time"`
	Tags        []uint             `json:"tags"`
	Ingredients []IngredientAmount `json:"ingredients"`
}

// SetAvatarRequest carries a base64 data URI.
type SetAvatarRequest struct {
	Avatar string `json:"avatar" binding:"required"`
}

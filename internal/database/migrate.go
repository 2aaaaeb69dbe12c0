package database

import (
	"gorm.io/gorm"

	"github.com/foodgram-project/backend/internal/models"
)

// RunMigrations brings the schema up to date. Ordering matters: referenced
// tables before the join tables.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Tag{},
		&models.Ingredient{},
		&models.Recipe{},
		&models.RecipeIngredient{},
		&models.Favorite{},
		&models.ShoppingCart{},
	)
}

package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/foodgram-project/backend/config"
	"github.com/foodgram-project/backend/internal/database"
	"github.com/foodgram-project/backend/internal/models"
	"gorm.io/gorm"
)

type tagData struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Slug  string `json:"slug"`
}

type ingredientData struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

func main() {
	tagsPath := flag.String("tags", "", "path to a JSON file with tags")
	ingredientsPath := flag.String("ingredients", "", "path to a JSON file with ingredients")
	flag.Parse()

	if *tagsPath == "" && *ingredientsPath == "" {
		log.Fatal("nothing to seed: pass -tags and/or -ingredients")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if *tagsPath != "" {
		n, err := seedTags(db, *tagsPath)
		if err != nil {
			log.Fatalf("Failed to seed tags: %v", err)
		}
		log.Printf("Seeded %d tags", n)
	}

	if *ingredientsPath != "" {
		n, err := seedIngredients(db, *ingredientsPath)
		if err != nil {
			log.Fatalf("Failed to seed ingredients: %v", err)
		}
		log.Printf("Seeded %d ingredients", n)
	}
}

// seedTags inserts tags that are not present yet, matched by slug.
func seedTags(db *gorm.DB, path string) (int, error) {
	var tags []tagData
	if err := readJSON(path, &tags); err != nil {
		return 0, err
	}

	created := 0
	for _, t := range tags {
		tag := models.Tag{Name: t.Name, Color: t.Color, Slug: t.Slug}
		result := db.Where(models.Tag{Slug: t.Slug}).FirstOrCreate(&tag)
		if result.Error != nil {
			return created, result.Error
		}
		created += int(result.RowsAffected)
	}
	return created, nil
}

// seedIngredients inserts ingredients that are not present yet, matched by
// name and measurement unit.
func seedIngredients(db *gorm.DB, path string) (int, error) {
	var ingredients []ingredientData
	if err := readJSON(path, &ingredients); err != nil {
		return 0, err
	}

	created := 0
	for _, i := range ingredients {
		ingredient := models.Ingredient{Name: i.Name, MeasurementUnit: i.MeasurementUnit}
		result := db.Where(models.Ingredient{Name: i.Name, MeasurementUnit: i.MeasurementUnit}).FirstOrCreate(&ingredient)
		if result.Error != nil {
			return created, result.Error
		}
		created += int(result.RowsAffected)
	}
	return created, nil
}

func readJSON(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

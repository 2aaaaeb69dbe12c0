package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that the loaded configuration is usable in the
// current environment. Redis is optional everywhere; the rate limiter is
// simply not mounted without it.
func ValidateConfig(cfg *Config) error {
	var errors []string

	if cfg.JWTSecret == "" {
		if IsProduction() {
			errors = append(errors, "jwt_secret secret is required in production")
		} else {
			errors = append(errors, "JWT_SECRET environment variable is required")
		}
	}
	if cfg.DBHost == "" {
		errors = append(errors, "database host is required")
	}
	if cfg.DBUser == "" {
		errors = append(errors, "database user is required")
	}
	if cfg.DBName == "" {
		errors = append(errors, "database name is required")
	}
	if IsProduction() && cfg.DBPassword == "" {
		errors = append(errors, "db_password secret is required in production")
	}

	switch cfg.MediaBackend {
	case "s3", "local":
	default:
		errors = append(errors, fmt.Sprintf("unknown media backend %q (want s3 or local)", cfg.MediaBackend))
	}
	if cfg.MediaBackend == "local" && cfg.MediaDir == "" {
		errors = append(errors, "MEDIA_DIR is required for the local media backend")
	}

	if cfg.MinCookingTime < 1 {
		errors = append(errors, "minimum cooking time must be at least 1")
	}
	if cfg.MinIngredientAmount < 1 {
		errors = append(errors, "minimum ingredient amount must be at least 1")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return nil
}

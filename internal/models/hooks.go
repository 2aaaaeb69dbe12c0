package models

import (
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IDs are assigned in hooks rather than by a database default so the same
// models migrate onto both postgres and sqlite.

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (f *Follow) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

func (f *Favorite) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

func (c *ShoppingCart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// BeforeCreate assigns the recipe id and the next short code. Short codes
// include soft-deleted recipes so a code is never reissued; the unique index
// backstops concurrent creates.
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.ShortCode == 0 {
		var max sql.NullInt64
		err := tx.Session(&gorm.Session{NewDB: true}).
			Unscoped().
			Model(&Recipe{}).
			Select("MAX(short_code)").
			Scan(&max).Error
		if err != nil {
			return err
		}
		r.ShortCode = uint(max.Int64) + 1
	}
	return nil
}

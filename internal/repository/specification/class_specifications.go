package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByCategoryID filters classes by their category.
// Pass nil to select uncategorized classes.
type ByCategoryID struct {
	CategoryID *uuid.UUID
}

func (s ByCategoryID) Apply(db *gorm.DB) *gorm.DB {
	if s.CategoryID == nil {
		return db.Where("category_id IS NULL")
	}
	return db.Where("category_id = ?", *s.CategoryID)
}

type ByClassID struct {
	ClassID uuid.UUID
}

func (s ByClassID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("class_id = ?", s.ClassID)
}

type ByClassIDs struct {
	ClassIDs []uuid.UUID
}

func (s ByClassIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("class_id IN ?", s.ClassIDs)
}

type ByName struct {
	Name string
}

func (s ByName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("name = ?", s.Name)
}

package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByFolderID filters lessons by folder. Pass nil to select lessons
// that live at the class root (no folder).
type ByFolderID struct {
	FolderID *uuid.UUID
}

func (s ByFolderID) Apply(db *gorm.DB) *gorm.DB {
	if s.FolderID == nil {
		return db.Where("folder_id IS NULL")
	}
	return db.Where("folder_id = ?", *s.FolderID)
}

type ByLessonID struct {
	LessonID uuid.UUID
}

func (s ByLessonID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("lesson_id = ?", s.LessonID)
}

type ByLessonIDs struct {
	LessonIDs []uuid.UUID
}

func (s ByLessonIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("lesson_id IN ?", s.LessonIDs)
}

type ByMediaType struct {
	Type string
}

func (s ByMediaType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("type = ?", s.Type)
}

type ByURL struct {
	URL string
}

func (s ByURL) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("url = ?", s.URL)
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Lesson struct {
	Id       uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name     string     `gorm:"type:varchar(255);not null"`
	ClassId  uuid.UUID  `gorm:"type:uuid;not null;index"`
	FolderId *uuid.UUID `gorm:"type:uuid;index"`
	UserId   uuid.UUID  `gorm:"type:uuid;not null;index"`
	// Text holds the flat wire-format item array for the page editor.
	Text      datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Lesson) TableName() string {
	return "lessons"
}

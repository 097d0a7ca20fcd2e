package model

import (
	"time"

	"github.com/google/uuid"
)

type Media struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	LessonId     uuid.UUID `gorm:"type:uuid;not null;index"`
	UserId       uuid.UUID `gorm:"type:uuid;not null;index"`
	Type         string    `gorm:"type:varchar(20);not null"`
	Url          string    `gorm:"type:text;not null"`
	OriginalName string    `gorm:"type:varchar(255)"`
	StoragePath  string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (Media) TableName() string {
	return "media"
}

package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateFolderRequest struct {
	Name    string    `json:"name" validate:"required,min=1,max=150"`
	ClassId uuid.UUID `json:"class_id" validate:"required"`
}

type CreateFolderResponse struct {
	Id uuid.UUID `json:"id"`
}

type UpdateFolderRequest struct {
	Id   uuid.UUID
	Name string `json:"name" validate:"required,min=1,max=150"`
}

type FolderResponse struct {
	Id          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	ClassId     uuid.UUID  `json:"class_id"`
	LessonCount int64      `json:"lesson_count"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

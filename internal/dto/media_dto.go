package dto

import (
	"time"

	"github.com/google/uuid"
)

type RegisterLinkMediaRequest struct {
	LessonId uuid.UUID `json:"lesson_id" validate:"required"`
	Url      string    `json:"url" validate:"required,url"`
	Type     string    `json:"type" validate:"required,oneof=image audio video link"`
}

type MediaResponse struct {
	Id           uuid.UUID `json:"id"`
	LessonId     uuid.UUID `json:"lesson_id"`
	Type         string    `json:"type"`
	Url          string    `json:"url"`
	OriginalName string    `json:"original_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type UpdateMediaRequest struct {
	Id           uuid.UUID
	OriginalName string `json:"original_name" validate:"required,min=1,max=255"`
}

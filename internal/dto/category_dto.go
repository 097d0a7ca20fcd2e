package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type CreateCategoryResponse struct {
	Id uuid.UUID `json:"id"`
}

type UpdateCategoryRequest struct {
	Id   uuid.UUID
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type CategoryResponse struct {
	Id         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	ClassCount int64      `json:"class_count"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at"`
}

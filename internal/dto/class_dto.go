package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateClassRequest struct {
	Name        string     `json:"name" validate:"required,min=1,max=150"`
	Description string     `json:"description"`
	CategoryId  *uuid.UUID `json:"category_id"`
}

type CreateClassResponse struct {
	Id uuid.UUID `json:"id"`
}

type UpdateClassRequest struct {
	Id          uuid.UUID
	Name        string `json:"name" validate:"required,min=1,max=150"`
	Description string `json:"description"`
}

// MoveClassRequest reassigns a class to a category. A null category
// moves the class back to uncategorized.
type MoveClassRequest struct {
	Id         uuid.UUID
	CategoryId *uuid.UUID `json:"category_id"`
}

type ClassResponse struct {
	Id          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	CategoryId  *uuid.UUID `json:"category_id"`
	LessonCount int64      `json:"lesson_count"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type CreateLessonRequest struct {
	Name     string     `json:"name" validate:"required,min=1,max=150"`
	ClassId  uuid.UUID  `json:"class_id" validate:"required"`
	FolderId *uuid.UUID `json:"folder_id"`
}

type CreateLessonResponse struct {
	Id uuid.UUID `json:"id"`
}

type UpdateLessonRequest struct {
	Id   uuid.UUID
	Name string `json:"name" validate:"required,min=1,max=150"`
}

// MoveLessonRequest reassigns a lesson to a folder. A null folder moves
// the lesson to the class root.
type MoveLessonRequest struct {
	Id       uuid.UUID
	FolderId *uuid.UUID `json:"folder_id"`
}

type LessonResponse struct {
	Id        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	ClassId   uuid.UUID  `json:"class_id"`
	FolderId  *uuid.UUID `json:"folder_id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// PublishLessonSavedMessage is the broker payload emitted after a lesson
// body is persisted; the consumer prunes media the save orphaned.
type PublishLessonSavedMessage struct {
	LessonId uuid.UUID `json:"lesson_id"`
}

// ShowLessonResponse carries the lesson body as the flat wire array the
// client renders from.
type ShowLessonResponse struct {
	Id        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	ClassId   uuid.UUID       `json:"class_id"`
	FolderId  *uuid.UUID      `json:"folder_id"`
	Text      json.RawMessage `json:"text"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt *time.Time      `json:"updated_at"`
}

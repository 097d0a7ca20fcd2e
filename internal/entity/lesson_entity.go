package entity

import (
	"time"

	"github.com/google/uuid"
)

type Lesson struct {
	Id      uuid.UUID
	Name    string
	ClassId uuid.UUID
	// FolderId is nil for lessons living directly under the class.
	FolderId *uuid.UUID
	UserId   uuid.UUID
	// Text is the lesson content as the flat wire-format JSON array; empty
	// means the lesson has no saved content yet.
	Text      []byte
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
}

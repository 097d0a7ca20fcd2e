package entity

import (
	"time"

	"github.com/google/uuid"
)

type Class struct {
	Id          uuid.UUID
	Name        string
	Description string
	// CategoryId is nil while the class sits in the uncategorized bucket.
	CategoryId *uuid.UUID
	UserId     uuid.UUID
	CreatedAt  time.Time
	UpdatedAt  *time.Time
	DeletedAt  *time.Time
}

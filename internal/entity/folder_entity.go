package entity

import (
	"time"

	"github.com/google/uuid"
)

type Folder struct {
	Id        uuid.UUID
	Name      string
	ClassId   uuid.UUID
	UserId    uuid.UUID
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
}

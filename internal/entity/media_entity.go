package entity

import (
	"time"

	"github.com/google/uuid"
)

type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeAudio MediaType = "audio"
	MediaTypeVideo MediaType = "video"
	MediaTypeLink  MediaType = "link"
)

func (t MediaType) Valid() bool {
	switch t {
	case MediaTypeImage, MediaTypeAudio, MediaTypeVideo, MediaTypeLink:
		return true
	}
	return false
}

// Media is a stored upload (or registered external link) referenced by lesson
// content through its id.
type Media struct {
	Id       uuid.UUID
	LessonId uuid.UUID
	UserId   uuid.UUID
	Type     MediaType
	// Url is the public path for uploaded files or the external link itself.
	Url          string
	OriginalName string
	// StoragePath is the server-local file path; empty for link-only media.
	StoragePath string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

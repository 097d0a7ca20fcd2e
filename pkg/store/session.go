package store

import (
	"sync"
	"time"

	"classboard-be/pkg/lessondoc"
	"classboard-be/pkg/lessondoc/dragdrop"

	"github.com/google/uuid"
)

// PendingUpload is a media attachment staged during editing. It is
// reconciled against the media table when the session flushes.
type PendingUpload struct {
	ItemId    uuid.UUID `json:"item_id"`
	FileName  string    `json:"file_name"`
	TempPath  string    `json:"temp_path"` // staged file on disk, empty for link-only media
	Link      string    `json:"link"`
	MediaType string    `json:"media_type"`
}

const (
	SaveStateIdle    = "IDLE"
	SaveStatePending = "PENDING"
	SaveStateSaving  = "SAVING"
	SaveStateFailed  = "FAILED"
)

// EditSession is the live editing state of one lesson held in memory.
// One session exists per open lesson; all mutations go through it.
type EditSession struct {
	ID       string    `json:"id"` // Lesson ID
	UserID   string    `json:"user_id"`
	LessonId uuid.UUID `json:"lesson_id"`

	Doc  *lessondoc.Document  `json:"-"`
	Drag *dragdrop.Controller `json:"-"`

	// Uploads staged while editing, keyed by the item that owns them
	PendingUploads map[uuid.UUID]*PendingUpload `json:"-"`

	SaveState string    `json:"save_state"`
	LastEdit  time.Time `json:"last_edit"`
	LastError string    `json:"last_error,omitempty"`

	mu sync.Mutex
}

func NewEditSession(lessonId uuid.UUID, userId string, doc *lessondoc.Document) *EditSession {
	return &EditSession{
		ID:             lessonId.String(),
		UserID:         userId,
		LessonId:       lessonId,
		Doc:            doc,
		Drag:           dragdrop.New(doc),
		PendingUploads: make(map[uuid.UUID]*PendingUpload),
		SaveState:      SaveStateIdle,
	}
}

// Lock serializes access to the session. Mutations, the debounce flush
// and the close flush all contend on this.
func (s *EditSession) Lock() {
	s.mu.Lock()
}

func (s *EditSession) Unlock() {
	s.mu.Unlock()
}

// TakePendingUploads drains the staged uploads. Callers must hold the lock.
func (s *EditSession) TakePendingUploads() map[uuid.UUID]*PendingUpload {
	taken := s.PendingUploads
	s.PendingUploads = make(map[uuid.UUID]*PendingUpload)
	return taken
}

package domain

import (
	"github.com/micbed86/FancyNote-sub000/pkg/timex"
)

// Notification types emitted by the pipeline.
const (
	NotificationNoteProcessed       = "note_processed"
	NotificationNoteProcessingError = "note_processing_error"
)

// Notification is a per-user event record the client polls for.
type Notification struct {
	ID        int64      `json:"id"`
	UID       int64      `json:"uid"`
	Type      string     `json:"type"`
	NoteID    int64      `json:"noteId"`
	Message   string     `json:"message"`
	Read      bool       `json:"read"`
	CreatedAt timex.Time `json:"createdAt"`
}

// NotificationRepository is the persistence contract for notifications.
type NotificationRepository interface {
	Create(n *Notification) (*Notification, error)
	List(uid int64, page, pageSize int) ([]*Notification, int64, error)
	MarkRead(id int64, uid int64) error
	// DeleteOlderThan removes notifications created before the given
	// unix timestamp, returning the number removed.
	DeleteOlderThan(unix int64) (int64, error)
}

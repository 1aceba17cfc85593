// Package domain defines the entities and repository contracts the
// service layer is written against. Persistence lives in internal/dao.
package domain

import (
	"github.com/micbed86/FancyNote-sub000/pkg/timex"
)

// Processing status values a note moves through.
const (
	StatusIdle       = "idle"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusError      = "error"
)

// DefaultTitle marks a note whose title was never set by the user or a
// previous enrichment run. Only notes carrying it get a generated
// title and excerpt.
const DefaultTitle = "New Note"

// Attachment types.
const (
	AttachmentVoice = "voice"
	AttachmentFile  = "file"
	AttachmentImage = "image"
)

// Attachment is one uploaded object bound to a note. Path is the
// storage key, not a local filesystem path.
type Attachment struct {
	Path             string `json:"path"`
	Name             string `json:"name"`
	Size             int64  `json:"size"`
	ContentType      string `json:"contentType"`
	IncludeInContext bool   `json:"includeInContext"`
	CreatedAt        int64  `json:"createdAt"`
}

// Note is the central entity.
type Note struct {
	ID               int64        `json:"id"`
	UID              int64        `json:"uid"`
	Title            string       `json:"title"`
	Text             string       `json:"text"`
	Excerpt          string       `json:"excerpt"`
	Transcriptions   []string     `json:"transcriptions"`
	VoiceNotes       []Attachment `json:"voiceNotes"`
	Files            []Attachment `json:"files"`
	Images           []Attachment `json:"images"`
	SourceURL        string       `json:"sourceUrl"`
	ProcessingStatus string       `json:"processingStatus"`
	ProcessingError  string       `json:"processingError"`
	ProcessedAt      int64        `json:"processedAt"`
	CreatedAt        timex.Time   `json:"createdAt"`
	UpdatedAt        timex.Time   `json:"updatedAt"`
}

// NeedsMetadata reports whether the title/excerpt generation pass
// should run for this note.
func (n *Note) NeedsMetadata() bool {
	return n.Title == "" || n.Title == DefaultTitle
}

// EnrichmentResult is what the pipeline persists in its first pass,
// before metadata generation runs. ProcessingError carries the model
// diagnostic when the run completed in degraded mode.
type EnrichmentResult struct {
	Content         string
	Transcriptions  []string
	Files           []Attachment
	ProcessingError string
}

// NoteRepository is the persistence contract for notes.
type NoteRepository interface {
	Create(note *Note) (*Note, error)
	Get(id int64, uid int64) (*Note, error)
	List(uid int64, page, pageSize int) ([]*Note, int64, error)
	Update(note *Note) error
	Delete(id int64, uid int64) error
	Count(uid int64) (int64, error)

	// SetStatus updates only the processing status.
	SetStatus(id int64, uid int64, status string) error
	// UpdateProcessed is the first persistence pass: enriched content,
	// transcriptions, file list and completed status in one write.
	UpdateProcessed(id int64, uid int64, result *EnrichmentResult) error
	// UpdateMetadata writes title and excerpt independently; an empty
	// string leaves the column untouched.
	UpdateMetadata(id int64, uid int64, title, excerpt string) error
	// UpdateProcessingError flips the note into the error state with a
	// human-readable message.
	UpdateProcessingError(id int64, uid int64, message string) error
}

// Package dto holds the request and response shapes bound at the API
// boundary. Validation tags are enforced by BindAndValid.
package dto

import (
	"github.com/micbed86/FancyNote-sub000/internal/domain"
)

type NoteCreateRequest struct {
	Title string `json:"title" form:"title"`
	Text  string `json:"text" form:"text"`
}

type NoteGetRequest struct {
	NoteID int64 `json:"noteId" form:"noteId" uri:"noteId" binding:"required,gte=1"`
}

type NoteListRequest struct {
	Page     int `json:"page" form:"page"`
	PageSize int `json:"pageSize" form:"pageSize"`
}

type NoteUpdateRequest struct {
	NoteID int64  `json:"noteId" form:"noteId" binding:"required,gte=1"`
	Title  string `json:"title" form:"title"`
	Text   string `json:"text" form:"text"`
}

type NoteDeleteRequest struct {
	NoteID int64 `json:"noteId" form:"noteId" binding:"required,gte=1"`
}

// Process types accepted by the trigger endpoint.
const (
	ProcessTypeFull = "full"
	// ProcessTypeNoAI runs staging and transcription but passes the
	// note text through without model restructuring.
	ProcessTypeNoAI = "no_ai_content_structuring"
)

// NoteProcessRequest triggers the enrichment pipeline for a note.
type NoteProcessRequest struct {
	NoteID      int64  `json:"noteId" form:"noteId" binding:"required,gte=1"`
	ProcessType string `json:"processType" form:"processType" binding:"omitempty,oneof=full no_ai_content_structuring"`
}

// NoteProcessUpdateRequest re-runs enrichment over an existing note
// with a user instruction.
type NoteProcessUpdateRequest struct {
	NoteID      int64  `json:"noteId" form:"noteId" binding:"required,gte=1"`
	Instruction string `json:"instruction" form:"instruction" binding:"required"`
}

// NoteWebRequest creates a note from a scraped web page.
type NoteWebRequest struct {
	URL string `json:"url" form:"url" binding:"required,url"`
}

// ProcessAck is the fire-and-forget acknowledgement returned before
// the pipeline runs.
type ProcessAck struct {
	NoteID int64 `json:"noteId"`
}

type NoteResponse struct {
	*domain.Note
}

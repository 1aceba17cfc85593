package model

import (
	"github.com/micbed86/FancyNote-sub000/internal/domain"
	"github.com/micbed86/FancyNote-sub000/pkg/timex"
)

type Note struct {
	ID               int64               `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UID              int64               `gorm:"column:uid;index:idx_uid" json:"uid"`
	Title            string              `gorm:"column:title;default:New Note" json:"title"`
	Text             string              `gorm:"column:text;type:text" json:"text"`
	Excerpt          string              `gorm:"column:excerpt;type:text" json:"excerpt"`
	Transcriptions   []string            `gorm:"column:transcriptions;serializer:json;type:text" json:"transcriptions"`
	VoiceNotes       []domain.Attachment `gorm:"column:voice_notes;serializer:json;type:text" json:"voiceNotes"`
	Files            []domain.Attachment `gorm:"column:files;serializer:json;type:text" json:"files"`
	Images           []domain.Attachment `gorm:"column:images;serializer:json;type:text" json:"images"`
	SourceURL        string              `gorm:"column:source_url" json:"sourceUrl"`
	ProcessingStatus string              `gorm:"column:processing_status;index:idx_status;default:idle" json:"processingStatus"`
	ProcessingError  string              `gorm:"column:processing_error;type:text" json:"processingError"`
	ProcessedAt      int64               `gorm:"column:processed_at" json:"processedAt"`
	CreatedAt        timex.Time          `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt        timex.Time          `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Note) TableName() string {
	return "note"
}

func (m *Note) ToDomain() *domain.Note {
	return &domain.Note{
		ID:               m.ID,
		UID:              m.UID,
		Title:            m.Title,
		Text:             m.Text,
		Excerpt:          m.Excerpt,
		Transcriptions:   m.Transcriptions,
		VoiceNotes:       m.VoiceNotes,
		Files:            m.Files,
		Images:           m.Images,
		SourceURL:        m.SourceURL,
		ProcessingStatus: m.ProcessingStatus,
		ProcessingError:  m.ProcessingError,
		ProcessedAt:      m.ProcessedAt,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func NoteFromDomain(n *domain.Note) *Note {
	return &Note{
		ID:               n.ID,
		UID:              n.UID,
		Title:            n.Title,
		Text:             n.Text,
		Excerpt:          n.Excerpt,
		Transcriptions:   n.Transcriptions,
		VoiceNotes:       n.VoiceNotes,
		Files:            n.Files,
		Images:           n.Images,
		SourceURL:        n.SourceURL,
		ProcessingStatus: n.ProcessingStatus,
		ProcessingError:  n.ProcessingError,
		ProcessedAt:      n.ProcessedAt,
		CreatedAt:        n.CreatedAt,
		UpdatedAt:        n.UpdatedAt,
	}
}

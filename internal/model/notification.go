package model

import (
	"github.com/micbed86/FancyNote-sub000/internal/domain"
	"github.com/micbed86/FancyNote-sub000/pkg/timex"
)

type Notification struct {
	ID        int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UID       int64      `gorm:"column:uid;index:idx_notification_uid" json:"uid"`
	Type      string     `gorm:"column:type" json:"type"`
	NoteID    int64      `gorm:"column:note_id" json:"noteId"`
	Message   string     `gorm:"column:message;type:text" json:"message"`
	Read      bool       `gorm:"column:read;default:false" json:"read"`
	CreatedAt timex.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (Notification) TableName() string {
	return "notification"
}

func (m *Notification) ToDomain() *domain.Notification {
	return &domain.Notification{
		ID:        m.ID,
		UID:       m.UID,
		Type:      m.Type,
		NoteID:    m.NoteID,
		Message:   m.Message,
		Read:      m.Read,
		CreatedAt: m.CreatedAt,
	}
}

func NotificationFromDomain(n *domain.Notification) *Notification {
	return &Notification{
		ID:        n.ID,
		UID:       n.UID,
		Type:      n.Type,
		NoteID:    n.NoteID,
		Message:   n.Message,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

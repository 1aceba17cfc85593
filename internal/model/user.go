package model

import (
	"github.com/micbed86/FancyNote-sub000/internal/domain"
	"github.com/micbed86/FancyNote-sub000/pkg/timex"
)

type User struct {
	UID            int64             `gorm:"column:uid;primaryKey;autoIncrement" json:"uid"`
	Email          string            `gorm:"column:email;uniqueIndex:idx_email" json:"email"`
	Nickname       string            `gorm:"column:nickname" json:"nickname"`
	Password       string            `gorm:"column:password" json:"-"`
	Salt           string            `gorm:"column:salt" json:"-"`
	ProjectCredits int64             `gorm:"column:project_credits;default:0" json:"projectCredits"`
	Settings       domain.AiSettings `gorm:"column:settings;serializer:json;type:text" json:"settings"`
	CreatedAt      timex.Time        `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt      timex.Time        `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string {
	return "user"
}

func (m *User) ToDomain() *domain.User {
	return &domain.User{
		UID:            m.UID,
		Email:          m.Email,
		Nickname:       m.Nickname,
		Password:       m.Password,
		ProjectCredits: m.ProjectCredits,
		Settings:       m.Settings,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func UserFromDomain(u *domain.User) *User {
	return &User{
		UID:            u.UID,
		Email:          u.Email,
		Nickname:       u.Nickname,
		Password:       u.Password,
		ProjectCredits: u.ProjectCredits,
		Settings:       u.Settings,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

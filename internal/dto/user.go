package dto

import (
	"github.com/micbed86/FancyNote-sub000/internal/domain"
)

type UserRegisterRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required,min=8"`
	Nickname string `json:"nickname" form:"nickname"`
}

type UserLoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

type UserLoginResponse struct {
	UID      int64  `json:"uid"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
	Token    string `json:"token"`
}

type UserSettingsRequest struct {
	APIKey         string   `json:"apiKey" form:"apiKey"`
	BaseURL        string   `json:"baseUrl" form:"baseUrl"`
	Models         []string `json:"models" form:"models"`
	SystemPrompt   string   `json:"systemPrompt" form:"systemPrompt"`
	Language       string   `json:"language" form:"language"`
	TranscribeLang string   `json:"transcribeLang" form:"transcribeLang"`
}

func (r *UserSettingsRequest) ToDomain() domain.AiSettings {
	return domain.AiSettings{
		APIKey:         r.APIKey,
		BaseURL:        r.BaseURL,
		Models:         r.Models,
		SystemPrompt:   r.SystemPrompt,
		Language:       r.Language,
		TranscribeLang: r.TranscribeLang,
	}
}

type UserProfileResponse struct {
	UID            int64             `json:"uid"`
	Email          string            `json:"email"`
	Nickname       string            `json:"nickname"`
	ProjectCredits int64             `json:"projectCredits"`
	Settings       domain.AiSettings `json:"settings"`
}

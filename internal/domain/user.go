package domain

import (
	"github.com/micbed86/FancyNote-sub000/pkg/timex"
)

// AiSettings is the per-user model configuration consumed by the
// enrichment pipeline. Language drives both transcription hints and
// the output-language clause appended to the system prompt.
type AiSettings struct {
	APIKey         string   `json:"apiKey"`
	BaseURL        string   `json:"baseUrl"`
	Models         []string `json:"models"`
	SystemPrompt   string   `json:"systemPrompt"`
	Language       string   `json:"language"`
	TranscribeLang string   `json:"transcribeLang"`
}

// User is a registered account.
type User struct {
	UID            int64      `json:"uid"`
	Email          string     `json:"email"`
	Nickname       string     `json:"nickname"`
	Password       string     `json:"-"`
	ProjectCredits int64      `json:"projectCredits"`
	Settings       AiSettings `json:"settings"`
	CreatedAt      timex.Time `json:"createdAt"`
	UpdatedAt      timex.Time `json:"updatedAt"`
}

// UserRepository is the persistence contract for accounts.
type UserRepository interface {
	Create(user *User) (*User, error)
	GetByUID(uid int64) (*User, error)
	GetByEmail(email string) (*User, error)
	Update(user *User) error
	UpdateSettings(uid int64, settings AiSettings) error
	// DeductCredit subtracts one project credit, never dropping below
	// zero, and returns the remaining balance.
	DeductCredit(uid int64) (int64, error)
}

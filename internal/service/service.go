// Package service implements the business logic between the HTTP
// handlers and the repositories. The enrichment pipeline lives in
// process_service.go.
package service

import (
	"time"

	"github.com/micbed86/FancyNote-sub000/internal/domain"
	"github.com/micbed86/FancyNote-sub000/pkg/app"
	"github.com/micbed86/FancyNote-sub000/pkg/llm"
	"github.com/micbed86/FancyNote-sub000/pkg/scraper"
	"github.com/micbed86/FancyNote-sub000/pkg/storage"
	"github.com/micbed86/FancyNote-sub000/pkg/workerpool"
)

// AIConfig is the service-level model configuration. Per-user settings
// override every field except FallbackModels, which is appended after
// the user's own candidates.
type AIConfig struct {
	APIKey          string        `yaml:"api-key"`
	BaseURL         string        `yaml:"base-url"`
	FallbackModels  []string      `yaml:"fallback-models"`
	TranscribeModel string        `yaml:"transcribe-model" default:"whisper-1"`
	RequestTimeout  time.Duration `yaml:"request-timeout" default:"120s"`
}

// Config collects everything the service layer needs.
type Config struct {
	AI       AIConfig       `yaml:"ai"`
	Scraper  scraper.Config `yaml:"scraper"`
	TempPath string         `yaml:"temp-path" default:"storage/temp"`
	// PublicHost is the externally reachable base URL used when handing
	// attachment links to model providers.
	PublicHost      string `yaml:"public-host"`
	RegisterEnabled bool   `yaml:"register-enabled" default:"true"`
	InitialCredits  int64  `yaml:"initial-credits" default:"10"`
	DefaultLanguage string `yaml:"default-language" default:"Polish"`
	// DefaultTranscribeLang is the ISO-639-1 hint passed to the
	// transcription model when the user never configured one.
	DefaultTranscribeLang string `yaml:"default-transcribe-lang" default:"pl"`
}

// Service wires repositories, token handling and external clients.
type Service struct {
	config Config

	noteRepo         domain.NoteRepository
	userRepo         domain.UserRepository
	notificationRepo domain.NotificationRepository

	tokenManager app.TokenManager
	pool         *workerpool.Pool
	scraper      scraper.Scraper

	// factories are swapped by tests
	storageFactory func() (storage.Storager, error)
	llmFactory     func(settings domain.AiSettings) (llm.Caller, llm.Transcriber)
}

// Option mutates a Service during construction.
type Option func(*Service)

func WithStorageFactory(f func() (storage.Storager, error)) Option {
	return func(s *Service) { s.storageFactory = f }
}

func WithLLMFactory(f func(settings domain.AiSettings) (llm.Caller, llm.Transcriber)) Option {
	return func(s *Service) { s.llmFactory = f }
}

func WithScraper(sc scraper.Scraper) Option {
	return func(s *Service) { s.scraper = sc }
}

// New builds the service layer. storageConfig may be nil when no
// attachment storage is configured; uploads then fail cleanly.
func New(
	cfg Config,
	storageConfig *storage.Config,
	noteRepo domain.NoteRepository,
	userRepo domain.UserRepository,
	notificationRepo domain.NotificationRepository,
	tokenManager app.TokenManager,
	pool *workerpool.Pool,
	opts ...Option,
) *Service {
	s := &Service{
		config:           cfg,
		noteRepo:         noteRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		tokenManager:     tokenManager,
		pool:             pool,
		scraper:          scraper.NewClient(cfg.Scraper),
	}

	s.storageFactory = func() (storage.Storager, error) {
		return storage.NewClient(storageConfig)
	}

	s.llmFactory = func(settings domain.AiSettings) (llm.Caller, llm.Transcriber) {
		apiKey := settings.APIKey
		if apiKey == "" {
			apiKey = cfg.AI.APIKey
		}
		if apiKey == "" {
			apiKey = llm.APIKeyFromEnv()
		}
		baseURL := settings.BaseURL
		if baseURL == "" {
			baseURL = cfg.AI.BaseURL
		}
		client := llm.NewClient(llm.Config{
			APIKey:          apiKey,
			BaseURL:         baseURL,
			TranscribeModel: cfg.AI.TranscribeModel,
		})
		return client, client
	}

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TokenManager exposes token operations to the handler layer.
func (s *Service) TokenManager() app.TokenManager {
	return s.tokenManager
}

// candidateModels merges the user's models with the service fallback
// list, keeping order and dropping duplicates.
func (s *Service) candidateModels(settings domain.AiSettings) []string {
	seen := map[string]bool{}
	var out []string
	for _, m := range append(append([]string{}, settings.Models...), s.config.AI.FallbackModels...) {
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	return out
}

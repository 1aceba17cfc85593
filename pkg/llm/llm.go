// Package llm wraps the OpenAI-compatible chat and transcription APIs
// used for note enrichment. The chat side implements the ordered
// model-fallback policy: quota errors and malformed bodies advance to
// the next candidate model, anything else aborts immediately.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

// ErrEmptyResponse marks a well-formed HTTP success whose body carries
// no usable content. The fallback loop treats it like a quota error.
var ErrEmptyResponse = errors.New("llm: empty or malformed model response")

// ErrAllModelsFailed is raised when every candidate was tried and none
// produced content, and no more specific error was captured.
var ErrAllModelsFailed = errors.New("llm: all models failed")

// Message is a single chat message. ImageURLs, when set, turns the
// message into a mixed text+image payload; images are passed by URL so
// the provider fetches them itself.
type Message struct {
	Role      string
	Content   string
	ImageURLs []string
}

// Caller is the chat surface the enrichment pipeline depends on.
// Tests substitute it with scripted fakes.
type Caller interface {
	Chat(ctx context.Context, model string, messages []Message) (string, error)
}

// Transcriber converts one audio file into text.
type Transcriber interface {
	Transcribe(ctx context.Context, filePath string, language string) (string, error)
}

// Config holds client construction parameters. BaseURL allows routing
// to any OpenAI-compatible gateway.
type Config struct {
	APIKey          string
	BaseURL         string
	TranscribeModel string
	MaxTokens       int
}

// Client implements Caller and Transcriber over go-openai.
type Client struct {
	client *openai.Client
	config Config
}

// NewClient builds a client. An empty API key is allowed; calls will
// fail at request time, which the pipeline handles as a degraded mode.
func NewClient(cfg Config) *Client {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	if cfg.TranscribeModel == "" {
		cfg.TranscribeModel = openai.Whisper1
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 4096
	}
	return &Client{
		client: openai.NewClientWithConfig(clientConfig),
		config: cfg,
	}
}

func (c *Client) convertMessage(msg Message) openai.ChatCompletionMessage {
	if len(msg.ImageURLs) == 0 {
		return openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		}
	}

	multiContent := []openai.ChatMessagePart{
		{
			Type: openai.ChatMessagePartTypeText,
			Text: msg.Content,
		},
	}
	for _, u := range msg.ImageURLs {
		multiContent = append(multiContent, openai.ChatMessagePart{
			Type: openai.ChatMessagePartTypeImageURL,
			ImageURL: &openai.ChatMessageImageURL{
				URL:    u,
				Detail: openai.ImageURLDetailAuto,
			},
		})
	}
	return openai.ChatCompletionMessage{
		Role:         msg.Role,
		MultiContent: multiContent,
	}
}

// Chat performs a single non-streaming completion against one model.
func (c *Client) Chat(ctx context.Context, model string, messages []Message) (string, error) {
	openaiMessages := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, msg := range messages {
		openaiMessages = append(openaiMessages, c.convertMessage(msg))
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     model,
		Messages:  openaiMessages,
		MaxTokens: c.config.MaxTokens,
	})
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}

// Transcribe runs Whisper transcription over a local audio file.
func (c *Client) Transcribe(ctx context.Context, filePath string, language string) (string, error) {
	resp, err := c.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    c.config.TranscribeModel,
		FilePath: filePath,
		Language: language,
	})
	if err != nil {
		return "", fmt.Errorf("transcription failed: %w", err)
	}
	return resp.Text, nil
}

// IsQuotaError reports whether the provider rejected the call with a
// rate-limit / quota status.
func IsQuotaError(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == http.StatusTooManyRequests
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode == http.StatusTooManyRequests
	}
	return false
}

// IsMalformedResponse reports whether the call succeeded at the HTTP
// level but returned no usable content.
func IsMalformedResponse(err error) bool {
	return errors.Is(err, ErrEmptyResponse)
}

// shouldAdvance classifies an error per the fallback policy.
func shouldAdvance(err error) bool {
	return IsQuotaError(err) || IsMalformedResponse(err)
}

// ChatWithFallback tries each candidate model in order. The first
// well-formed success wins. Quota and malformed-body errors advance to
// the next candidate while remembering the error; any other error
// aborts immediately without trying the remaining candidates.
func ChatWithFallback(ctx context.Context, caller Caller, candidates []string, messages []Message) (string, error) {
	var remembered error

	for _, model := range candidates {
		content, err := caller.Chat(ctx, model, messages)
		if err == nil {
			return content, nil
		}
		if shouldAdvance(err) {
			remembered = err
			continue
		}
		// fatal class: stop here, do not exhaust the rest
		if remembered != nil {
			return "", fmt.Errorf("model %s: %w (previous: %v)", model, err, remembered)
		}
		return "", fmt.Errorf("model %s: %w", model, err)
	}

	if remembered != nil {
		return "", remembered
	}
	return "", ErrAllModelsFailed
}

// APIKeyFromEnv resolves a fallback API key from the environment; used
// when the user profile carries none and a service-level key exists.
func APIKeyFromEnv() string {
	return os.Getenv("OPENAI_API_KEY")
}

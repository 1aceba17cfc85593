// Package scraper talks to the external web-scraping provider that
// turns a URL into readable article text for web notes.
package scraper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Config holds the scraping provider connection settings.
type Config struct {
	Endpoint string        `yaml:"endpoint"`
	APIKey   string        `yaml:"api-key"`
	Timeout  time.Duration `yaml:"timeout" default:"30s"`
}

// Result is the scraped page content.
type Result struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	URL     string `json:"url"`
}

// Scraper fetches page content through the provider API. Tests swap it
// for a fake.
type Scraper interface {
	Scrape(ctx context.Context, pageURL string) (*Result, error)
}

// Client implements Scraper over HTTP.
type Client struct {
	config     Config
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{
		config:     cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// ValidateURL rejects anything that is not an absolute http(s) URL.
func ValidateURL(pageURL string) error {
	u, err := url.Parse(pageURL)
	if err != nil {
		return errors.Wrap(err, "scraper")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.Errorf("scraper: unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("scraper: missing host")
	}
	return nil
}

type scrapeRequest struct {
	URL     string   `json:"url"`
	Formats []string `json:"formats"`
}

type scrapeResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Data    struct {
		Markdown string `json:"markdown"`
		Metadata struct {
			Title string `json:"title"`
		} `json:"metadata"`
	} `json:"data"`
}

// Scrape submits the URL to the provider and returns the extracted
// title and markdown content.
func (c *Client) Scrape(ctx context.Context, pageURL string) (*Result, error) {
	if err := ValidateURL(pageURL); err != nil {
		return nil, err
	}

	body, err := json.Marshal(scrapeRequest{URL: pageURL, Formats: []string{"markdown"}})
	if err != nil {
		return nil, errors.Wrap(err, "scraper")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "scraper")
	}
	req.Header.Set("Content-Type", "application/json")
	if c.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "scraper")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, errors.Wrap(err, "scraper")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("scraper: provider returned %d: %s", resp.StatusCode, truncate(string(raw), 200))
	}

	var out scrapeResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, errors.Wrap(err, "scraper")
	}
	if !out.Success {
		msg := out.Error
		if msg == "" {
			msg = "unknown provider error"
		}
		return nil, fmt.Errorf("scraper: %s", msg)
	}

	return &Result{
		Title:   strings.TrimSpace(out.Data.Metadata.Title),
		Content: out.Data.Markdown,
		URL:     pageURL,
	}, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

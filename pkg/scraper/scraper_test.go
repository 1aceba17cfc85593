package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateURL(t *testing.T) {
	assert.NoError(t, ValidateURL("https://example.com/article"))
	assert.NoError(t, ValidateURL("http://example.com"))
	assert.Error(t, ValidateURL("ftp://example.com"))
	assert.Error(t, ValidateURL("not a url"))
	assert.Error(t, ValidateURL("/relative/path"))
}

func TestScrape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer key-123", r.Header.Get("Authorization"))
		w.Write([]byte(`{"success":true,"data":{"markdown":"# Body","metadata":{"title":" Page Title "}}}`))
	}))
	defer srv.Close()

	c := NewClient(Config{Endpoint: srv.URL, APIKey: "key-123"})
	res, err := c.Scrape(context.Background(), "https://example.com/page")
	assert.NoError(t, err)
	assert.Equal(t, "Page Title", res.Title)
	assert.Equal(t, "# Body", res.Content)
	assert.Equal(t, "https://example.com/page", res.URL)
}

func TestScrape_ProviderFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"error":"blocked by robots.txt"}`))
	}))
	defer srv.Close()

	c := NewClient(Config{Endpoint: srv.URL})
	_, err := c.Scrape(context.Background(), "https://example.com/page")
	assert.ErrorContains(t, err, "blocked by robots.txt")
}

func TestScrape_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream busy", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(Config{Endpoint: srv.URL})
	_, err := c.Scrape(context.Background(), "https://example.com/page")
	assert.ErrorContains(t, err, "502")
}

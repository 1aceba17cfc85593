package service

import (
	"context"
	"errors"
	"testing"

	"github.com/micbed86/FancyNote-sub000/internal/domain"
	"github.com/micbed86/FancyNote-sub000/internal/dto"
	"github.com/micbed86/FancyNote-sub000/pkg/code"
	"github.com/micbed86/FancyNote-sub000/pkg/scraper"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	f := newFixture(t)

	res, errCode := f.svc.Register(&dto.UserRegisterRequest{
		Email:    "new@example.com",
		Password: "long-password",
	}, "127.0.0.1")
	require.Nil(t, errCode)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "new@example.com", res.Nickname, "email doubles as nickname when none given")

	// fresh accounts start with credits and the default language
	user, _ := f.users.GetByUID(res.UID)
	assert.EqualValues(t, 10, user.ProjectCredits)
	assert.Equal(t, "Polish", user.Settings.Language)

	_, errCode = f.svc.Register(&dto.UserRegisterRequest{
		Email:    "new@example.com",
		Password: "long-password",
	}, "127.0.0.1")
	require.NotNil(t, errCode)
	assert.Equal(t, code.ErrorUserExists.Code(), errCode.Code())

	login, errCode := f.svc.Login(&dto.UserLoginRequest{
		Email:    "new@example.com",
		Password: "long-password",
	}, "127.0.0.1")
	require.Nil(t, errCode)
	assert.Equal(t, res.UID, login.UID)

	_, errCode = f.svc.Login(&dto.UserLoginRequest{
		Email:    "new@example.com",
		Password: "wrong",
	}, "127.0.0.1")
	require.NotNil(t, errCode)
	assert.Equal(t, code.ErrorUserPassword.Code(), errCode.Code())
}

func TestProfileAndSettings(t *testing.T) {
	f := newFixture(t)

	errCode := f.svc.UpdateSettings(1, &dto.UserSettingsRequest{
		APIKey:       "sk-user",
		Models:       []string{"my-model"},
		SystemPrompt: "Be brief.",
	})
	require.Nil(t, errCode)

	profile, errCode := f.svc.Profile(1)
	require.Nil(t, errCode)
	assert.Equal(t, []string{"my-model"}, profile.Settings.Models)
	assert.Equal(t, "Polish", profile.Settings.Language, "missing language falls back to the service default")
}

type fakeScraper struct {
	result *scraper.Result
	err    error
}

func (f *fakeScraper) Scrape(ctx context.Context, pageURL string) (*scraper.Result, error) {
	return f.result, f.err
}

func TestNoteCreateFromWeb(t *testing.T) {
	f := newFixture(t)
	WithScraper(&fakeScraper{result: &scraper.Result{
		Title:   "Interesting Article",
		Content: "# Heading\nBody text.",
		URL:     "https://example.com/a",
	}})(f.svc)

	note, errCode := f.svc.NoteCreateFromWeb(context.Background(), 1, &dto.NoteWebRequest{URL: "https://example.com/a"})
	require.Nil(t, errCode)
	assert.Equal(t, "Interesting Article", note.Title)
	assert.Equal(t, "https://example.com/a", note.SourceURL)
	assert.Equal(t, domain.StatusIdle, note.ProcessingStatus)
}

func TestNoteCreateFromWeb_ScrapeFailure(t *testing.T) {
	f := newFixture(t)
	WithScraper(&fakeScraper{err: errors.New("blocked")})(f.svc)

	_, errCode := f.svc.NoteCreateFromWeb(context.Background(), 1, &dto.NoteWebRequest{URL: "https://example.com/a"})
	require.NotNil(t, errCode)
	assert.Equal(t, code.ErrorScrapeFail.Code(), errCode.Code())
}

func TestCandidateModels_MergeAndDedup(t *testing.T) {
	f := newFixture(t)
	models := f.svc.candidateModels(domain.AiSettings{Models: []string{"a", "fallback-model", ""}})
	assert.Equal(t, []string{"a", "fallback-model"}, models)
}

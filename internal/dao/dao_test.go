package dao

import (
	"testing"
	"time"

	"github.com/micbed86/FancyNote-sub000/internal/domain"
	"github.com/micbed86/FancyNote-sub000/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, model.MigrateDB(db))
	return db
}

func TestNoteRepository_CreateDefaults(t *testing.T) {
	repo := NewNoteRepository(testDB(t))

	note, err := repo.Create(&domain.Note{UID: 1, Text: "raw text"})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultTitle, note.Title)
	assert.Equal(t, domain.StatusIdle, note.ProcessingStatus)
	assert.True(t, note.NeedsMetadata())
}

func TestNoteRepository_GetScopedToOwner(t *testing.T) {
	repo := NewNoteRepository(testDB(t))

	note, err := repo.Create(&domain.Note{UID: 1, Text: "mine"})
	require.NoError(t, err)

	got, err := repo.Get(note.ID, 2)
	require.NoError(t, err)
	assert.Nil(t, got, "another user must not see the note")

	got, err = repo.Get(note.ID, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "mine", got.Text)
}

func TestNoteRepository_UpdateProcessed(t *testing.T) {
	repo := NewNoteRepository(testDB(t))

	note, err := repo.Create(&domain.Note{UID: 1, ProcessingStatus: domain.StatusProcessing, ProcessingError: "old failure"})
	require.NoError(t, err)

	res := &domain.EnrichmentResult{
		Content:        "enriched body",
		Transcriptions: []string{"first recording", "second recording"},
		Files: []domain.Attachment{
			{Path: "1/files/doc.txt", Name: "doc.txt", ContentType: "text/plain"},
		},
	}
	require.NoError(t, repo.UpdateProcessed(note.ID, 1, res))

	got, err := repo.Get(note.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "enriched body", got.Text)
	assert.Equal(t, []string{"first recording", "second recording"}, got.Transcriptions)
	require.Len(t, got.Files, 1)
	assert.Equal(t, "1/files/doc.txt", got.Files[0].Path)
	assert.Equal(t, domain.StatusCompleted, got.ProcessingStatus)
	assert.Empty(t, got.ProcessingError, "error field is cleared on success")
	assert.NotZero(t, got.ProcessedAt)

	// a degraded run still completes, but keeps the model diagnostic
	res.ProcessingError = "all models failed"
	require.NoError(t, repo.UpdateProcessed(note.ID, 1, res))
	got, err = repo.Get(note.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, got.ProcessingStatus)
	assert.Equal(t, "all models failed", got.ProcessingError)
}

func TestNoteRepository_UpdateMetadataFieldIndependent(t *testing.T) {
	repo := NewNoteRepository(testDB(t))

	note, err := repo.Create(&domain.Note{UID: 1})
	require.NoError(t, err)

	// title only: excerpt untouched
	require.NoError(t, repo.UpdateMetadata(note.ID, 1, "Shopping List", ""))
	got, _ := repo.Get(note.ID, 1)
	assert.Equal(t, "Shopping List", got.Title)
	assert.Empty(t, got.Excerpt)

	// excerpt only: title untouched
	require.NoError(t, repo.UpdateMetadata(note.ID, 1, "", "A short summary."))
	got, _ = repo.Get(note.ID, 1)
	assert.Equal(t, "Shopping List", got.Title)
	assert.Equal(t, "A short summary.", got.Excerpt)

	// both empty: no-op
	require.NoError(t, repo.UpdateMetadata(note.ID, 1, "", ""))
	got, _ = repo.Get(note.ID, 1)
	assert.Equal(t, "Shopping List", got.Title)
	assert.Equal(t, "A short summary.", got.Excerpt)
}

func TestNoteRepository_UpdateProcessingError(t *testing.T) {
	repo := NewNoteRepository(testDB(t))

	note, err := repo.Create(&domain.Note{UID: 1, ProcessingStatus: domain.StatusProcessing})
	require.NoError(t, err)

	require.NoError(t, repo.UpdateProcessingError(note.ID, 1, "all models failed"))
	got, _ := repo.Get(note.ID, 1)
	assert.Equal(t, domain.StatusError, got.ProcessingStatus)
	assert.Equal(t, "all models failed", got.ProcessingError)
}

func TestNoteRepository_ListPagination(t *testing.T) {
	repo := NewNoteRepository(testDB(t))

	for i := 0; i < 5; i++ {
		_, err := repo.Create(&domain.Note{UID: 1, Text: "note"})
		require.NoError(t, err)
	}
	_, err := repo.Create(&domain.Note{UID: 2, Text: "other user"})
	require.NoError(t, err)

	notes, total, err := repo.List(1, 1, 3)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, notes, 3)

	notes, _, err = repo.List(1, 2, 3)
	require.NoError(t, err)
	assert.Len(t, notes, 2)
}

func TestUserRepository_DeductCreditFloor(t *testing.T) {
	repo := NewUserRepository(testDB(t))

	user, err := repo.Create(&domain.User{Email: "a@b.pl", ProjectCredits: 2})
	require.NoError(t, err)

	left, err := repo.DeductCredit(user.UID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, left)

	left, err = repo.DeductCredit(user.UID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, left)

	// the balance never goes negative
	left, err = repo.DeductCredit(user.UID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, left)
}

func TestUserRepository_Settings(t *testing.T) {
	repo := NewUserRepository(testDB(t))

	user, err := repo.Create(&domain.User{Email: "a@b.pl"})
	require.NoError(t, err)

	settings := domain.AiSettings{
		APIKey:       "sk-test",
		Models:       []string{"gpt-4o", "gpt-4o-mini"},
		SystemPrompt: "You format notes.",
		Language:     "Polish",
	}
	require.NoError(t, repo.UpdateSettings(user.UID, settings))

	got, err := repo.GetByUID(user.UID)
	require.NoError(t, err)
	assert.Equal(t, settings, got.Settings)
}

func TestUserRepository_GetByEmailMissing(t *testing.T) {
	repo := NewUserRepository(testDB(t))
	got, err := repo.GetByEmail("nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestNotificationRepository_CreateAndCleanup(t *testing.T) {
	repo := NewNotificationRepository(testDB(t))

	n, err := repo.Create(&domain.Notification{
		UID:     1,
		Type:    domain.NotificationNoteProcessed,
		NoteID:  42,
		Message: "note ready",
	})
	require.NoError(t, err)
	require.NoError(t, repo.MarkRead(n.ID, 1))

	list, total, err := repo.List(1, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, list, 1)
	assert.True(t, list[0].Read)

	// nothing is old enough yet
	removed, err := repo.DeleteOlderThan(time.Now().Add(-time.Hour).Unix())
	require.NoError(t, err)
	assert.Zero(t, removed)

	removed, err = repo.DeleteOlderThan(time.Now().Add(time.Hour).Unix())
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)
}

package api_router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/micbed86/FancyNote-sub000/internal/dao"
	"github.com/micbed86/FancyNote-sub000/internal/domain"
	"github.com/micbed86/FancyNote-sub000/internal/dto"
	"github.com/micbed86/FancyNote-sub000/internal/model"
	"github.com/micbed86/FancyNote-sub000/internal/routers"
	"github.com/micbed86/FancyNote-sub000/internal/service"
	"github.com/micbed86/FancyNote-sub000/pkg/app"
	"github.com/micbed86/FancyNote-sub000/pkg/llm"
	"github.com/micbed86/FancyNote-sub000/pkg/storage"
	"github.com/micbed86/FancyNote-sub000/pkg/workerpool"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type stubLLM struct{}

func (stubLLM) Chat(ctx context.Context, model string, messages []llm.Message) (string, error) {
	return "enriched", nil
}

func (stubLLM) Transcribe(ctx context.Context, filePath string, language string) (string, error) {
	return "transcribed", nil
}

type testEnv struct {
	router http.Handler
	svc    *service.Service
	notes  *dao.NoteRepository
	token  string
	uid    int64
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, model.MigrateDB(db))

	noteRepo := dao.NewNoteRepository(db)
	userRepo := dao.NewUserRepository(db)
	notificationRepo := dao.NewNotificationRepository(db)
	tokenManager := app.NewTokenManager(app.TokenConfig{SecretKey: "handler-test"})

	pool := workerpool.New(&workerpool.Config{MaxWorkers: 2, QueueSize: 4}, nil)
	t.Cleanup(func() { _ = pool.Close() })

	svc := service.New(
		service.Config{
			TempPath:        t.TempDir(),
			DefaultLanguage: "Polish",
			PublicHost:      "http://localhost:8000",
			AI:              service.AIConfig{FallbackModels: []string{"test-model"}},
		},
		&storage.Config{Type: storage.LOCAL, SavePath: t.TempDir()},
		noteRepo, userRepo, notificationRepo,
		tokenManager, pool,
		service.WithLLMFactory(func(domain.AiSettings) (llm.Caller, llm.Transcriber) {
			return stubLLM{}, stubLLM{}
		}),
	)

	user, err := userRepo.Create(&domain.User{Email: "t@example.com", ProjectCredits: 5})
	require.NoError(t, err)
	token, err := tokenManager.Generate(user.UID, "t", "127.0.0.1")
	require.NoError(t, err)

	router := routers.NewRouter(routers.Config{RunMode: "test", RequestTimeout: 5 * time.Second}, svc)

	return &testEnv{router: router, svc: svc, notes: noteRepo, token: token, uid: user.UID}
}

func (e *testEnv) post(t *testing.T, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestNoteProcess_RequiresAuth(t *testing.T) {
	e := newTestEnv(t)

	w := e.post(t, "/api/note/process", "", dto.NoteProcessRequest{NoteID: 1})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = e.post(t, "/api/note/process", "not-a-jwt", dto.NoteProcessRequest{NoteID: 1})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestNoteProcess_InvalidParams(t *testing.T) {
	e := newTestEnv(t)

	w := e.post(t, "/api/note/process", e.token, map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNoteProcess_UnknownNote(t *testing.T) {
	e := newTestEnv(t)

	w := e.post(t, "/api/note/process", e.token, dto.NoteProcessRequest{NoteID: 12345})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestNoteProcess_AcknowledgesWithNoteID(t *testing.T) {
	e := newTestEnv(t)
	note, err := e.notes.Create(&domain.Note{UID: e.uid, Text: "raw", Title: "Kept"})
	require.NoError(t, err)

	w := e.post(t, "/api/note/process", e.token, dto.NoteProcessRequest{NoteID: note.ID})
	require.Equal(t, http.StatusOK, w.Code)

	var res struct {
		Code   int  `json:"code"`
		Status bool `json:"status"`
		Data   struct {
			NoteID int64 `json:"noteId"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.True(t, res.Status)
	assert.Equal(t, note.ID, res.Data.NoteID)

	// the detached run finishes and completes the note
	require.Eventually(t, func() bool {
		got, err := e.notes.Get(note.ID, e.uid)
		return err == nil && got != nil && got.ProcessingStatus == domain.StatusCompleted
	}, 5*time.Second, 20*time.Millisecond)

	got, err := e.notes.Get(note.ID, e.uid)
	require.NoError(t, err)
	assert.Equal(t, "enriched", got.Text)
}

func TestNoteProcess_PassThroughKeepsText(t *testing.T) {
	e := newTestEnv(t)
	note, err := e.notes.Create(&domain.Note{UID: e.uid, Text: "raw", Title: "Kept"})
	require.NoError(t, err)

	w := e.post(t, "/api/note/process", e.token,
		dto.NoteProcessRequest{NoteID: note.ID, ProcessType: dto.ProcessTypeNoAI})
	require.Equal(t, http.StatusOK, w.Code)

	require.Eventually(t, func() bool {
		got, err := e.notes.Get(note.ID, e.uid)
		return err == nil && got != nil && got.ProcessingStatus == domain.StatusCompleted
	}, 5*time.Second, 20*time.Millisecond)

	got, err := e.notes.Get(note.ID, e.uid)
	require.NoError(t, err)
	assert.Equal(t, "raw", got.Text)
}

func TestNoteProcessUpdate_RequiresInstruction(t *testing.T) {
	e := newTestEnv(t)
	note, err := e.notes.Create(&domain.Note{UID: e.uid, Text: "raw", Title: "Kept"})
	require.NoError(t, err)

	w := e.post(t, "/api/note/process/update", e.token, map[string]interface{}{"noteId": note.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = e.post(t, "/api/note/process/update", e.token,
		dto.NoteProcessUpdateRequest{NoteID: note.ID, Instruction: "shorten it"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestFileGet_RejectsBadToken(t *testing.T) {
	e := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet,
		fmt.Sprintf("/api/file?path=%s&token=%s", "1/images/x.jpg", "garbage"), nil)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

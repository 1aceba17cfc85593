package service

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/micbed86/FancyNote-sub000/internal/domain"
	"github.com/micbed86/FancyNote-sub000/internal/dto"
	"github.com/micbed86/FancyNote-sub000/pkg/code"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileUploadAndOpen(t *testing.T) {
	f := newFixture(t)
	note := f.addNote(t, &domain.Note{Title: "Set Title"})

	res, errCode := f.svc.FileUpload(1,
		&dto.FileUploadRequest{NoteID: note.ID, Kind: domain.AttachmentImage},
		"photo.jpg", 4, "image/jpeg", bytes.NewReader([]byte("jpeg")),
	)
	require.Nil(t, errCode)
	assert.True(t, strings.HasPrefix(res.Path, "1/images/"))

	got, _ := f.notes.Get(note.ID, 1)
	require.Len(t, got.Images, 1)
	assert.True(t, got.Images[0].IncludeInContext, "absent flag defaults to included for images")
	assert.Equal(t, "photo.jpg", got.Images[0].Name)
	assert.NotZero(t, got.Images[0].CreatedAt)

	token, err := f.svc.TokenManager().GenerateFileToken(1, res.Path)
	require.NoError(t, err)

	rc, errCode := f.svc.FileOpen(res.Path, token)
	require.Nil(t, errCode)
	raw, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "jpeg", string(raw))
}

func TestFileOpen_TokenBoundToPath(t *testing.T) {
	f := newFixture(t)
	f.putObject("1/images/a.jpg", []byte("a"))
	f.putObject("1/images/b.jpg", []byte("b"))

	token, err := f.svc.TokenManager().GenerateFileToken(1, "1/images/a.jpg")
	require.NoError(t, err)

	_, errCode := f.svc.FileOpen("1/images/b.jpg", token)
	require.NotNil(t, errCode)
	assert.Equal(t, code.ErrorInvalidFileToken.Code(), errCode.Code())
}

func TestFileUpload_IncludeDefaultsPerKind(t *testing.T) {
	f := newFixture(t)
	note := f.addNote(t, &domain.Note{Title: "Set Title"})
	include := true
	exclude := false

	// voice: absent flag means included
	_, errCode := f.svc.FileUpload(1,
		&dto.FileUploadRequest{NoteID: note.ID, Kind: domain.AttachmentVoice},
		"memo.ogg", 1, "audio/ogg", bytes.NewReader([]byte("x")),
	)
	require.Nil(t, errCode)

	// voice: only an explicit false excludes
	_, errCode = f.svc.FileUpload(1,
		&dto.FileUploadRequest{NoteID: note.ID, Kind: domain.AttachmentVoice, IncludeInContext: &exclude},
		"private.ogg", 1, "audio/ogg", bytes.NewReader([]byte("x")),
	)
	require.Nil(t, errCode)

	// plain file: absent flag means excluded, opt-in required
	_, errCode = f.svc.FileUpload(1,
		&dto.FileUploadRequest{NoteID: note.ID, Kind: domain.AttachmentFile},
		"doc.txt", 1, "text/plain", bytes.NewReader([]byte("x")),
	)
	require.Nil(t, errCode)
	_, errCode = f.svc.FileUpload(1,
		&dto.FileUploadRequest{NoteID: note.ID, Kind: domain.AttachmentFile, IncludeInContext: &include},
		"notes.txt", 1, "text/plain", bytes.NewReader([]byte("x")),
	)
	require.Nil(t, errCode)

	got, _ := f.notes.Get(note.ID, 1)
	require.Len(t, got.VoiceNotes, 2)
	assert.True(t, got.VoiceNotes[0].IncludeInContext)
	assert.False(t, got.VoiceNotes[1].IncludeInContext)
	require.Len(t, got.Files, 2)
	assert.False(t, got.Files[0].IncludeInContext, "unflagged files stay out of the model context")
	assert.True(t, got.Files[1].IncludeInContext)
}

func TestFileUpload_RejectsWrongExtension(t *testing.T) {
	f := newFixture(t)
	note := f.addNote(t, &domain.Note{Title: "Set Title"})

	_, errCode := f.svc.FileUpload(1,
		&dto.FileUploadRequest{NoteID: note.ID, Kind: domain.AttachmentVoice},
		"not-audio.txt", 2, "text/plain", bytes.NewReader([]byte("x")),
	)
	require.NotNil(t, errCode)
	assert.Equal(t, code.ErrorFileExtNotAllowed.Code(), errCode.Code())
}

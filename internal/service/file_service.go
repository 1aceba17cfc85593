package service

import (
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/micbed86/FancyNote-sub000/internal/domain"
	"github.com/micbed86/FancyNote-sub000/internal/dto"
	"github.com/micbed86/FancyNote-sub000/pkg/code"
	"github.com/micbed86/FancyNote-sub000/pkg/fileurl"
	"github.com/micbed86/FancyNote-sub000/pkg/storage"

	"github.com/pkg/errors"
)

// 50 MB default attachment cap
const defaultUploadMaxSize = 50 << 20

var kindCategories = map[string]string{
	domain.AttachmentVoice: "voice",
	domain.AttachmentFile:  "files",
	domain.AttachmentImage: "images",
}

var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// FileUpload stores one attachment and appends it to the note's
// attachment list of the given kind.
func (s *Service) FileUpload(uid int64, req *dto.FileUploadRequest, name string, size int64, contentType string, r io.Reader) (*dto.FileUploadResponse, *code.Code) {
	note, errCode := s.NoteGet(uid, req.NoteID)
	if errCode != nil {
		return nil, errCode
	}

	if size > defaultUploadMaxSize {
		return nil, code.ErrorFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(name))
	switch req.Kind {
	case domain.AttachmentVoice:
		if !audioExts[ext] {
			return nil, code.ErrorFileExtNotAllowed.WithDetails(ext)
		}
	case domain.AttachmentImage:
		if !imageExts[ext] {
			return nil, code.ErrorFileExtNotAllowed.WithDetails(ext)
		}
	}

	store, err := s.storageFactory()
	if err != nil {
		return nil, code.ErrorInvalidStorageType.WithDetails(err.Error())
	}
	if err := store.Connect(); err != nil {
		return nil, code.ErrorFileUploadFail.WithDetails(err.Error())
	}
	defer store.Close()

	pathKey := storage.PathKey(uid, kindCategories[req.Kind], fileurl.GetUniqueName(name))
	if _, err := store.Upload(pathKey, r, contentType); err != nil {
		return nil, code.ErrorFileUploadFail.WithDetails(err.Error())
	}

	// voice and images feed the model unless excluded; plain files
	// must be flagged in explicitly
	include := req.Kind == domain.AttachmentVoice || req.Kind == domain.AttachmentImage
	if req.IncludeInContext != nil {
		include = *req.IncludeInContext
	}
	att := domain.Attachment{
		Path:             pathKey,
		Name:             name,
		Size:             size,
		ContentType:      contentType,
		IncludeInContext: include,
		CreatedAt:        time.Now().Unix(),
	}
	switch req.Kind {
	case domain.AttachmentVoice:
		note.VoiceNotes = append(note.VoiceNotes, att)
	case domain.AttachmentImage:
		note.Images = append(note.Images, att)
	default:
		note.Files = append(note.Files, att)
	}
	if err := s.noteRepo.Update(note); err != nil {
		_ = store.Delete(pathKey)
		return nil, code.ErrorNoteUpdateFail.WithDetails(err.Error())
	}

	return &dto.FileUploadResponse{
		Path: pathKey,
		Name: name,
		Size: size,
	}, nil
}

// FileOpen validates a short-lived file token and streams the
// attachment it grants access to.
func (s *Service) FileOpen(path, token string) (io.ReadCloser, *code.Code) {
	entity, err := s.tokenManager.ParseFileToken(token)
	if err != nil {
		return nil, code.ErrorInvalidFileToken
	}
	if entity.Path != path {
		return nil, code.ErrorInvalidFileToken.WithDetails("token does not grant this path")
	}

	store, err := s.storageFactory()
	if err != nil {
		return nil, code.ErrorInvalidStorageType.WithDetails(err.Error())
	}
	if err := store.Connect(); err != nil {
		return nil, code.ErrorFileNotFound.WithDetails(err.Error())
	}

	rc, err := store.Download(path)
	if err != nil {
		_ = store.Close()
		return nil, code.ErrorFileNotFound.WithDetails(err.Error())
	}
	return &storeReadCloser{ReadCloser: rc, store: store}, nil
}

// storeReadCloser closes the storage client together with the stream.
type storeReadCloser struct {
	io.ReadCloser
	store storage.Storager
}

func (s *storeReadCloser) Close() error {
	err := s.ReadCloser.Close()
	if cerr := s.store.Close(); err == nil {
		err = cerr
	}
	return errors.WithStack(err)
}

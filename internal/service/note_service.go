package service

import (
	"context"
	"fmt"

	"github.com/micbed86/FancyNote-sub000/internal/domain"
	"github.com/micbed86/FancyNote-sub000/internal/dto"
	"github.com/micbed86/FancyNote-sub000/pkg/code"

	"golang.org/x/sync/singleflight"
)

var noteGetGroup singleflight.Group

// NoteCreate stores a new note in the idle state.
func (s *Service) NoteCreate(uid int64, req *dto.NoteCreateRequest) (*domain.Note, *code.Code) {
	note, err := s.noteRepo.Create(&domain.Note{
		UID:   uid,
		Title: req.Title,
		Text:  req.Text,
	})
	if err != nil {
		return nil, code.ErrorNoteCreateFail.WithDetails(err.Error())
	}
	return note, nil
}

// NoteGet fetches one note; concurrent reads of the same note collapse
// into a single query.
func (s *Service) NoteGet(uid int64, noteID int64) (*domain.Note, *code.Code) {
	key := fmt.Sprintf("note:%d:%d", uid, noteID)
	v, err, _ := noteGetGroup.Do(key, func() (interface{}, error) {
		return s.noteRepo.Get(noteID, uid)
	})
	if err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}
	note, _ := v.(*domain.Note)
	if note == nil {
		return nil, code.ErrorNoteNotFound
	}
	return note, nil
}

// NoteList returns one page of the user's notes.
func (s *Service) NoteList(uid int64, page, pageSize int) ([]*domain.Note, int64, *code.Code) {
	notes, total, err := s.noteRepo.List(uid, page, pageSize)
	if err != nil {
		return nil, 0, code.ErrorServerInternal.WithDetails(err.Error())
	}
	return notes, total, nil
}

// NoteUpdate overwrites user-editable fields.
func (s *Service) NoteUpdate(uid int64, req *dto.NoteUpdateRequest) *code.Code {
	note, errCode := s.NoteGet(uid, req.NoteID)
	if errCode != nil {
		return errCode
	}
	if req.Title != "" {
		note.Title = req.Title
	}
	note.Text = req.Text
	if err := s.noteRepo.Update(note); err != nil {
		return code.ErrorNoteUpdateFail.WithDetails(err.Error())
	}
	return nil
}

// NoteDelete removes a note and its stored attachments.
func (s *Service) NoteDelete(uid int64, noteID int64) *code.Code {
	note, errCode := s.NoteGet(uid, noteID)
	if errCode != nil {
		return errCode
	}

	if store, err := s.storageFactory(); err == nil {
		if err := store.Connect(); err == nil {
			for _, att := range collectAttachments(note) {
				_ = store.Delete(att.Path)
			}
			_ = store.Close()
		}
	}

	if err := s.noteRepo.Delete(noteID, uid); err != nil {
		return code.ErrorNoteDeleteFail.WithDetails(err.Error())
	}
	return nil
}

// NoteCreateFromWeb scrapes the URL synchronously and stores the
// result as a new note.
func (s *Service) NoteCreateFromWeb(ctx context.Context, uid int64, req *dto.NoteWebRequest) (*domain.Note, *code.Code) {
	result, err := s.scraper.Scrape(ctx, req.URL)
	if err != nil {
		return nil, code.ErrorScrapeFail.WithDetails(err.Error())
	}

	title := result.Title
	if title == "" {
		title = domain.DefaultTitle
	}
	note, err := s.noteRepo.Create(&domain.Note{
		UID:       uid,
		Title:     title,
		Text:      result.Content,
		SourceURL: result.URL,
	})
	if err != nil {
		return nil, code.ErrorNoteCreateFail.WithDetails(err.Error())
	}
	return note, nil
}

func collectAttachments(note *domain.Note) []domain.Attachment {
	out := make([]domain.Attachment, 0, len(note.VoiceNotes)+len(note.Files)+len(note.Images))
	out = append(out, note.VoiceNotes...)
	out = append(out, note.Files...)
	out = append(out, note.Images...)
	return out
}

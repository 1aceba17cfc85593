package service

import (
	"github.com/micbed86/FancyNote-sub000/global"
	"github.com/micbed86/FancyNote-sub000/internal/domain"
	"github.com/micbed86/FancyNote-sub000/pkg/code"

	"go.uber.org/zap"
)

// NotificationList returns one page of the user's notifications.
func (s *Service) NotificationList(uid int64, page, pageSize int) ([]*domain.Notification, int64, *code.Code) {
	list, total, err := s.notificationRepo.List(uid, page, pageSize)
	if err != nil {
		return nil, 0, code.ErrorServerInternal.WithDetails(err.Error())
	}
	return list, total, nil
}

// NotificationMarkRead flags one notification as seen.
func (s *Service) NotificationMarkRead(uid int64, id int64) *code.Code {
	if err := s.notificationRepo.MarkRead(id, uid); err != nil {
		return code.ErrorNotFound.WithDetails(err.Error())
	}
	return nil
}

// notify records a pipeline outcome; failures are logged and swallowed
// since the note state already reflects the result.
func (s *Service) notify(uid int64, noteID int64, kind, message string) {
	_, err := s.notificationRepo.Create(&domain.Notification{
		UID:     uid,
		Type:    kind,
		NoteID:  noteID,
		Message: message,
	})
	if err != nil {
		global.Log().Warn("Service.notify err",
			zap.Int64("uid", uid),
			zap.Int64("noteId", noteID),
			zap.String("type", kind),
			zap.Error(err),
		)
	}
}

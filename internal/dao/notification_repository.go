package dao

import (
	"time"

	"github.com/micbed86/FancyNote-sub000/internal/domain"
	"github.com/micbed86/FancyNote-sub000/internal/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type NotificationRepository struct {
	db *gorm.DB
}

var _ domain.NotificationRepository = (*NotificationRepository)(nil)

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(n *domain.Notification) (*domain.Notification, error) {
	m := model.NotificationFromDomain(n)
	if err := r.db.Create(m).Error; err != nil {
		return nil, errors.Wrap(err, "notification create")
	}
	return m.ToDomain(), nil
}

func (r *NotificationRepository) List(uid int64, page, pageSize int) ([]*domain.Notification, int64, error) {
	var total int64
	if err := r.db.Model(&model.Notification{}).Where("uid = ?", uid).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "notification count")
	}

	var rows []model.Notification
	offset := (page - 1) * pageSize
	err := r.db.Where("uid = ?", uid).
		Order("created_at DESC").
		Offset(offset).Limit(pageSize).
		Find(&rows).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "notification list")
	}

	out := make([]*domain.Notification, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToDomain())
	}
	return out, total, nil
}

func (r *NotificationRepository) MarkRead(id int64, uid int64) error {
	result := r.db.Model(&model.Notification{}).
		Where("id = ? AND uid = ?", id, uid).
		Update("read", true)
	if result.Error != nil {
		return errors.Wrap(result.Error, "notification mark read")
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *NotificationRepository) DeleteOlderThan(unix int64) (int64, error) {
	cutoff := time.Unix(unix, 0)
	result := r.db.Where("created_at < ?", cutoff).Delete(&model.Notification{})
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "notification delete older than")
	}
	return result.RowsAffected, nil
}

package dao

import (
	"github.com/micbed86/FancyNote-sub000/internal/domain"
	"github.com/micbed86/FancyNote-sub000/internal/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

var _ domain.UserRepository = (*UserRepository)(nil)

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *domain.User) (*domain.User, error) {
	m := model.UserFromDomain(user)
	if err := r.db.Create(m).Error; err != nil {
		return nil, errors.Wrap(err, "user create")
	}
	return m.ToDomain(), nil
}

func (r *UserRepository) GetByUID(uid int64) (*domain.User, error) {
	var m model.User
	err := r.db.Where("uid = ?", uid).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "user get")
	}
	return m.ToDomain(), nil
}

func (r *UserRepository) GetByEmail(email string) (*domain.User, error) {
	var m model.User
	err := r.db.Where("email = ?", email).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "user get by email")
	}
	return m.ToDomain(), nil
}

func (r *UserRepository) Update(user *domain.User) error {
	m := model.UserFromDomain(user)
	result := r.db.Model(&model.User{}).
		Where("uid = ?", m.UID).
		Select("nickname", "password").
		Updates(m)
	if result.Error != nil {
		return errors.Wrap(result.Error, "user update")
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *UserRepository) UpdateSettings(uid int64, settings domain.AiSettings) error {
	result := r.db.Model(&model.User{}).
		Where("uid = ?", uid).
		Select("settings").
		Updates(&model.User{Settings: settings})
	if result.Error != nil {
		return errors.Wrap(result.Error, "user update settings")
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeductCredit decrements the project credit balance atomically and
// never lets it drop below zero.
func (r *UserRepository) DeductCredit(uid int64) (int64, error) {
	result := r.db.Model(&model.User{}).
		Where("uid = ? AND project_credits > 0", uid).
		UpdateColumn("project_credits", gorm.Expr("project_credits - ?", 1))
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "user deduct credit")
	}

	var m model.User
	if err := r.db.Select("project_credits").Where("uid = ?", uid).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, gorm.ErrRecordNotFound
		}
		return 0, errors.Wrap(err, "user deduct credit")
	}
	return m.ProjectCredits, nil
}

package dao

import (
	"time"

	"github.com/micbed86/FancyNote-sub000/internal/domain"
	"github.com/micbed86/FancyNote-sub000/internal/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type NoteRepository struct {
	db *gorm.DB
}

var _ domain.NoteRepository = (*NoteRepository)(nil)

func NewNoteRepository(db *gorm.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

func (r *NoteRepository) Create(note *domain.Note) (*domain.Note, error) {
	m := model.NoteFromDomain(note)
	if m.Title == "" {
		m.Title = domain.DefaultTitle
	}
	if m.ProcessingStatus == "" {
		m.ProcessingStatus = domain.StatusIdle
	}
	if err := r.db.Create(m).Error; err != nil {
		return nil, errors.Wrap(err, "note create")
	}
	return m.ToDomain(), nil
}

func (r *NoteRepository) Get(id int64, uid int64) (*domain.Note, error) {
	var m model.Note
	err := r.db.Where("id = ? AND uid = ?", id, uid).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "note get")
	}
	return m.ToDomain(), nil
}

func (r *NoteRepository) List(uid int64, page, pageSize int) ([]*domain.Note, int64, error) {
	var total int64
	if err := r.db.Model(&model.Note{}).Where("uid = ?", uid).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "note count")
	}

	var rows []model.Note
	offset := (page - 1) * pageSize
	err := r.db.Where("uid = ?", uid).
		Order("updated_at DESC").
		Offset(offset).Limit(pageSize).
		Find(&rows).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "note list")
	}

	notes := make([]*domain.Note, 0, len(rows))
	for i := range rows {
		notes = append(notes, rows[i].ToDomain())
	}
	return notes, total, nil
}

func (r *NoteRepository) Update(note *domain.Note) error {
	m := model.NoteFromDomain(note)
	result := r.db.Model(&model.Note{}).
		Where("id = ? AND uid = ?", m.ID, m.UID).
		Select("title", "text", "excerpt", "voice_notes", "files", "images", "source_url").
		Updates(m)
	if result.Error != nil {
		return errors.Wrap(result.Error, "note update")
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *NoteRepository) Delete(id int64, uid int64) error {
	result := r.db.Where("id = ? AND uid = ?", id, uid).Delete(&model.Note{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "note delete")
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *NoteRepository) Count(uid int64) (int64, error) {
	var total int64
	err := r.db.Model(&model.Note{}).Where("uid = ?", uid).Count(&total).Error
	return total, errors.Wrap(err, "note count")
}

func (r *NoteRepository) SetStatus(id int64, uid int64, status string) error {
	result := r.db.Model(&model.Note{}).
		Where("id = ? AND uid = ?", id, uid).
		Update("processing_status", status)
	if result.Error != nil {
		return errors.Wrap(result.Error, "note set status")
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateProcessed writes the enriched content, the transcription list,
// the file attachment list and the completed status in a single pass.
func (r *NoteRepository) UpdateProcessed(id int64, uid int64, res *domain.EnrichmentResult) error {
	m := &model.Note{
		Text:             res.Content,
		Transcriptions:   res.Transcriptions,
		Files:            res.Files,
		ProcessingStatus: domain.StatusCompleted,
		ProcessingError:  res.ProcessingError,
		ProcessedAt:      time.Now().Unix(),
	}
	result := r.db.Model(&model.Note{}).
		Where("id = ? AND uid = ?", id, uid).
		Select("text", "transcriptions", "files", "processing_status", "processing_error", "processed_at").
		Updates(m)
	if result.Error != nil {
		return errors.Wrap(result.Error, "note update processed")
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateMetadata writes title and excerpt independently: an empty
// string means the corresponding column stays as it is.
func (r *NoteRepository) UpdateMetadata(id int64, uid int64, title, excerpt string) error {
	updates := map[string]interface{}{}
	if title != "" {
		updates["title"] = title
	}
	if excerpt != "" {
		updates["excerpt"] = excerpt
	}
	if len(updates) == 0 {
		return nil
	}

	result := r.db.Model(&model.Note{}).
		Where("id = ? AND uid = ?", id, uid).
		Updates(updates)
	if result.Error != nil {
		return errors.Wrap(result.Error, "note update metadata")
	}
	return nil
}

func (r *NoteRepository) UpdateProcessingError(id int64, uid int64, message string) error {
	result := r.db.Model(&model.Note{}).
		Where("id = ? AND uid = ?", id, uid).
		Updates(map[string]interface{}{
			"processing_status": domain.StatusError,
			"processing_error":  message,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "note update processing error")
	}
	return nil
}

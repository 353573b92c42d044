package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"baudboard/internal/model"
)

type LabelRepository struct {
	db *gorm.DB
}

func NewLabelRepository(db *gorm.DB) *LabelRepository {
	return &LabelRepository{db: db}
}

// CreateLabel adds a new label to the database
func (r *LabelRepository) CreateLabel(ctx context.Context, label *model.Label) error {
	if err := r.db.WithContext(ctx).Create(label).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateLabelName
		}
		return err
	}
	return nil
}

// GetLabel retrieves a label by its ID
func (r *LabelRepository) GetLabel(ctx context.Context, id uuid.UUID) (*model.Label, error) {
	var label model.Label
	result := r.db.WithContext(ctx).First(&label, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrLabelNotFound
		}
		return nil, result.Error
	}
	return &label, nil
}

// FindLabelByName retrieves the label of a board with the given name
func (r *LabelRepository) FindLabelByName(ctx context.Context, boardID uuid.UUID, name string) (*model.Label, error) {
	var label model.Label
	result := r.db.WithContext(ctx).Where("board_id = ? AND name = ?", boardID, name).First(&label)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrLabelNotFound
		}
		return nil, result.Error
	}
	return &label, nil
}

// ListLabels retrieves all labels for a specific board
func (r *LabelRepository) ListLabels(ctx context.Context, boardID uuid.UUID) ([]model.Label, error) {
	var labels []model.Label
	result := r.db.WithContext(ctx).Where("board_id = ?", boardID).Order("name").Find(&labels)
	if result.Error != nil {
		return nil, result.Error
	}
	return labels, nil
}

// UpdateLabel updates an existing label
func (r *LabelRepository) UpdateLabel(ctx context.Context, label *model.Label) error {
	result := r.db.WithContext(ctx).Model(label).
		Updates(map[string]interface{}{"name": label.Name, "color": label.Color})
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return ErrDuplicateLabelName
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLabelNotFound
	}
	return nil
}

// DeleteLabel removes a label by its ID
func (r *LabelRepository) DeleteLabel(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Label{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLabelNotFound
	}
	return nil
}

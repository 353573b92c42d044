package repository

import (
	"context"
	"errors"
	"sort"

	"baudboard/internal/model"
	"baudboard/internal/ordering"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ColumnRepository struct {
	db *gorm.DB
}

func NewColumnRepository(db *gorm.DB) *ColumnRepository {
	return &ColumnRepository{db: db}
}

func (r *ColumnRepository) CreateColumn(ctx context.Context, column *model.Column) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(column).Error
}

func (r *ColumnRepository) GetColumn(ctx context.Context, id uuid.UUID) (*model.Column, error) {
	var column model.Column
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&column).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrColumnNotFound
		}
		return nil, err
	}
	return &column, nil
}

// LockColumn takes a row lock on the column. Card membership changes of a
// column are serialized through this lock.
func (r *ColumnRepository) LockColumn(ctx context.Context, id uuid.UUID) (*model.Column, error) {
	var column model.Column
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&column).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrColumnNotFound
		}
		return nil, err
	}
	return &column, nil
}

// ListColumns returns the columns of a board ordered by position.
func (r *ColumnRepository) ListColumns(ctx context.Context, boardID uuid.UUID) ([]model.Column, error) {
	var columns []model.Column
	err := r.db.WithContext(ctx).Where("board_id = ?", boardID).Order("position").Find(&columns).Error
	return columns, err
}

// LockColumns locks every column of a board in id order and returns them
// ordered by position. Operations that rewrite column positions or card rows
// of several columns take this lock set after the board lock.
func (r *ColumnRepository) LockColumns(ctx context.Context, boardID uuid.UUID) ([]model.Column, error) {
	var columns []model.Column
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("board_id = ?", boardID).
		Order("id").
		Find(&columns).Error
	if err != nil {
		return nil, err
	}
	sort.SliceStable(columns, func(i, j int) bool { return columns[i].Position < columns[j].Position })
	return columns, nil
}

// GetColumnsByIDs returns the columns that exist among ids, in no particular order.
func (r *ColumnRepository) GetColumnsByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Column, error) {
	var columns []model.Column
	if len(ids) == 0 {
		return columns, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&columns).Error
	return columns, err
}

// UpdateColumn saves name and color. Position is only changed through
// SetColumnPositions.
func (r *ColumnRepository) UpdateColumn(ctx context.Context, column *model.Column) error {
	result := r.db.WithContext(ctx).Model(column).
		Updates(map[string]interface{}{"name": column.Name, "color": column.Color})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrColumnNotFound
	}
	return nil
}

func (r *ColumnRepository) DeleteColumn(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Column{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrColumnNotFound
	}
	return nil
}

// SetColumnPositions writes placements computed by the ordering package.
func (r *ColumnRepository) SetColumnPositions(ctx context.Context, placements []ordering.Placement) error {
	for _, p := range placements {
		result := r.db.WithContext(ctx).Model(&model.Column{}).
			Where("id = ?", p.ID).
			UpdateColumn("position", p.Position)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrColumnNotFound
		}
	}
	return nil
}

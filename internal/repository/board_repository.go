package repository

import (
	"context"
	"errors"

	"baudboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BoardRepository struct {
	db *gorm.DB
}

func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

func (r *BoardRepository) CreateBoard(ctx context.Context, board *model.Board) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(board).Error
}

func (r *BoardRepository) ListBoards(ctx context.Context) ([]model.Board, error) {
	var boards []model.Board
	err := r.db.WithContext(ctx).Order("created_at").Find(&boards).Error
	return boards, err
}

func (r *BoardRepository) GetBoard(ctx context.Context, id uuid.UUID) (*model.Board, error) {
	var board model.Board
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&board).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, err
	}
	return &board, nil
}

// GetBoardDetail loads a board with its columns and their cards, both ordered
// by position.
func (r *BoardRepository) GetBoardDetail(ctx context.Context, id uuid.UUID) (*model.Board, error) {
	var board model.Board
	err := r.db.WithContext(ctx).
		Preload("Columns", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Columns.Cards", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Where("id = ?", id).
		First(&board).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, err
	}
	return &board, nil
}

// LockBoard takes a row lock on the board for the rest of the transaction.
// Column membership changes of a board are serialized through this lock.
func (r *BoardRepository) LockBoard(ctx context.Context, id uuid.UUID) (*model.Board, error) {
	var board model.Board
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&board).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, err
	}
	return &board, nil
}

func (r *BoardRepository) UpdateBoard(ctx context.Context, board *model.Board) error {
	result := r.db.WithContext(ctx).Model(board).Update("name", board.Name)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBoardNotFound
	}
	return nil
}

// DeleteBoard removes the board together with its cards, columns and labels.
func (r *BoardRepository) DeleteBoard(ctx context.Context, id uuid.UUID) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("board_id = ?", id).Delete(&model.Card{}).Error; err != nil {
		return err
	}
	if err := db.Where("board_id = ?", id).Delete(&model.Column{}).Error; err != nil {
		return err
	}
	if err := db.Where("board_id = ?", id).Delete(&model.Label{}).Error; err != nil {
		return err
	}
	result := db.Delete(&model.Board{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBoardNotFound
	}
	return nil
}

package repository

import (
	"context"
	"errors"
	"time"

	"baudboard/internal/model"
	"baudboard/internal/ordering"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CardRepository struct {
	db *gorm.DB
}

func NewCardRepository(db *gorm.DB) *CardRepository {
	return &CardRepository{db: db}
}

// CreateCard adds a new card to the database
func (r *CardRepository) CreateCard(ctx context.Context, card *model.Card) error {
	return r.db.WithContext(ctx).Create(card).Error
}

// GetCard retrieves a card by its ID
func (r *CardRepository) GetCard(ctx context.Context, id uuid.UUID) (*model.Card, error) {
	return r.first(r.db.WithContext(ctx), id)
}

// LockCard retrieves a card and locks its row until the transaction ends
func (r *CardRepository) LockCard(ctx context.Context, id uuid.UUID) (*model.Card, error) {
	return r.first(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *CardRepository) first(db *gorm.DB, id uuid.UUID) (*model.Card, error) {
	var card model.Card
	if err := db.First(&card, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, err
	}
	return &card, nil
}

// ListCards retrieves all cards in a specific column ordered by position
func (r *CardRepository) ListCards(ctx context.Context, columnID uuid.UUID) ([]model.Card, error) {
	var cards []model.Card
	result := r.db.WithContext(ctx).Where("column_id = ?", columnID).Order("position").Find(&cards)
	if result.Error != nil {
		return nil, result.Error
	}
	return cards, nil
}

// UpdateCard saves the editable fields of a card. Placement fields are
// written through MoveCard and SetCardPositions.
func (r *CardRepository) UpdateCard(ctx context.Context, card *model.Card) error {
	result := r.db.WithContext(ctx).Model(card).
		Select("title", "description", "priority", "labels").
		Updates(card)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCardNotFound
	}
	return nil
}

// MoveCard writes the board, column and position of a card and bumps its
// update timestamp
func (r *CardRepository) MoveCard(ctx context.Context, card *model.Card) error {
	card.UpdatedAt = time.Now()
	result := r.db.WithContext(ctx).Model(&model.Card{}).
		Where("id = ?", card.ID).
		UpdateColumns(map[string]interface{}{
			"board_id":   card.BoardID,
			"column_id":  card.ColumnID,
			"position":   card.Position,
			"updated_at": card.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCardNotFound
	}
	return nil
}

// SetCardPositions writes placements computed by the ordering package without
// touching update timestamps
func (r *CardRepository) SetCardPositions(ctx context.Context, placements []ordering.Placement) error {
	for _, p := range placements {
		result := r.db.WithContext(ctx).Model(&model.Card{}).
			Where("id = ?", p.ID).
			UpdateColumn("position", p.Position)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrCardNotFound
		}
	}
	return nil
}

// DeleteCard removes a card by its ID
func (r *CardRepository) DeleteCard(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Card{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCardNotFound
	}
	return nil
}

// DeleteCardsInColumn removes every card of a column
func (r *CardRepository) DeleteCardsInColumn(ctx context.Context, columnID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("column_id = ?", columnID).Delete(&model.Card{}).Error
}

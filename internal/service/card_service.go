package service

import (
	"context"
	"fmt"
	"strings"

	"baudboard/internal/model"
	"baudboard/internal/ordering"
	"baudboard/internal/repository"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// CardInput holds the fields of a new card.
type CardInput struct {
	ColumnID    uuid.UUID
	Title       string
	Description *string
	Priority    model.Priority
	Labels      []model.CardLabel
}

// CardChanges holds the editable fields of a card; nil leaves a field
// unchanged.
type CardChanges struct {
	Title       *string
	Description *string
	Priority    *model.Priority
	Labels      *[]model.CardLabel
}

type CardService struct {
	store  repository.Store
	cache  BoardCache
	logger *log.Logger
}

func NewCardService(store repository.Store, cache BoardCache, logger *log.Logger) *CardService {
	return &CardService{store: store, cache: cacheOrNop(cache), logger: logger}
}

// Create appends a card to the end of a column of the board.
func (s *CardService) Create(ctx context.Context, boardID uuid.UUID, in CardInput) (*model.Card, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: card title is required", ErrInvalidInput)
	}
	priority := in.Priority
	if priority == "" {
		priority = model.PriorityNone
	}
	if !priority.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPriority, priority)
	}
	labels := in.Labels
	if labels == nil {
		labels = []model.CardLabel{}
	}

	card := &model.Card{
		BoardID:     boardID,
		ColumnID:    in.ColumnID,
		Title:       title,
		Description: in.Description,
		Priority:    priority,
		Labels:      labels,
	}
	err := s.store.Transaction(ctx, func(tx repository.Queries) error {
		if _, err := tx.GetBoard(ctx, boardID); err != nil {
			return err
		}
		column, err := tx.LockColumn(ctx, in.ColumnID)
		if err != nil {
			return err
		}
		if column.BoardID != boardID {
			return fmt.Errorf("%w: column %s does not belong to board %s", ErrInvalidScope, column.ID, boardID)
		}
		cards, err := tx.ListCards(ctx, column.ID)
		if err != nil {
			return err
		}
		card.Position = ordering.Append(cardMembers(cards))
		return tx.CreateCard(ctx, card)
	})
	if err != nil {
		return nil, err
	}

	s.cache.Evict(ctx, boardID)
	s.logger.WithFields(log.Fields{"card_id": card.ID, "column_id": card.ColumnID, "position": card.Position}).Debug("card created")
	return card, nil
}

func (s *CardService) Get(ctx context.Context, id uuid.UUID) (*model.Card, error) {
	return s.store.GetCard(ctx, id)
}

// Update edits title, description, priority and labels. Position and column
// only change through Move.
func (s *CardService) Update(ctx context.Context, id uuid.UUID, changes CardChanges) (*model.Card, error) {
	if changes.Title != nil && strings.TrimSpace(*changes.Title) == "" {
		return nil, fmt.Errorf("%w: card title must not be empty", ErrInvalidInput)
	}
	if changes.Priority != nil && !changes.Priority.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPriority, *changes.Priority)
	}

	var card *model.Card
	err := s.store.Transaction(ctx, func(tx repository.Queries) error {
		var err error
		card, err = tx.LockCard(ctx, id)
		if err != nil {
			return err
		}
		if changes.Title != nil {
			card.Title = strings.TrimSpace(*changes.Title)
		}
		if changes.Description != nil {
			card.Description = changes.Description
		}
		if changes.Priority != nil {
			card.Priority = *changes.Priority
		}
		if changes.Labels != nil {
			card.Labels = *changes.Labels
			if card.Labels == nil {
				card.Labels = []model.CardLabel{}
			}
		}
		return tx.UpdateCard(ctx, card)
	})
	if err != nil {
		return nil, err
	}

	s.cache.Evict(ctx, card.BoardID)
	return card, nil
}

// Delete removes a card and closes the gap it leaves in its column.
func (s *CardService) Delete(ctx context.Context, id uuid.UUID) error {
	var card *model.Card
	err := retryMoved(ctx, s.store, func(tx repository.Queries) error {
		current, err := tx.GetCard(ctx, id)
		if err != nil {
			return err
		}
		if _, err := tx.LockColumn(ctx, current.ColumnID); err != nil {
			return err
		}
		card, err = lockCardIn(ctx, tx, id, current.ColumnID)
		if err != nil {
			return err
		}

		if err := tx.DeleteCard(ctx, id); err != nil {
			return err
		}
		cards, err := tx.ListCards(ctx, card.ColumnID)
		if err != nil {
			return err
		}
		remaining := withoutMember(cardMembers(cards), id)
		placements := ordering.CloseGap(remaining, card.Position)
		if err := ensureDense("cards of column "+card.ColumnID.String(), remaining, placements); err != nil {
			return err
		}
		return tx.SetCardPositions(ctx, placements)
	})
	if err != nil {
		return err
	}

	s.cache.Evict(ctx, card.BoardID)
	s.logger.WithFields(log.Fields{"card_id": id, "column_id": card.ColumnID}).Debug("card deleted")
	return nil
}

// Move places a card at position in column columnID. Within the same column
// the cards between the old and the new slot shift by one; across columns the
// source gap is closed and the target makes room. Moving a card onto its own
// slot writes nothing.
func (s *CardService) Move(ctx context.Context, id, columnID uuid.UUID, position int) (*model.Card, error) {
	if position < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPosition, position)
	}

	var (
		card     *model.Card
		oldBoard uuid.UUID
		changed  bool
	)
	err := retryMoved(ctx, s.store, func(tx repository.Queries) error {
		current, err := tx.GetCard(ctx, id)
		if err != nil {
			return err
		}
		locked, err := lockColumns(ctx, tx, current.ColumnID, columnID)
		if err != nil {
			return err
		}
		card, err = lockCardIn(ctx, tx, id, current.ColumnID)
		if err != nil {
			return err
		}
		oldBoard = card.BoardID

		if card.ColumnID == columnID {
			changed, err = reorderCard(ctx, tx, card, position)
			return err
		}
		changed = true
		return moveCardAcross(ctx, tx, card, locked[columnID], position)
	})
	if err != nil {
		return nil, err
	}

	if changed {
		s.cache.Evict(ctx, oldBoard, card.BoardID)
		s.logger.WithFields(log.Fields{"card_id": id, "column_id": card.ColumnID, "position": card.Position}).Debug("card moved")
	}
	return card, nil
}

// reorderCard moves a card within its column. It reports false, writing
// nothing, when the card already sits at position.
func reorderCard(ctx context.Context, tx repository.Queries, card *model.Card, position int) (bool, error) {
	cards, err := tx.ListCards(ctx, card.ColumnID)
	if err != nil {
		return false, err
	}

	members := cardMembers(cards)
	placements, err := ordering.Reorder(withoutMember(members, card.ID), card.ID, card.Position, position)
	if err != nil {
		return false, err
	}
	if card.Position == position {
		return false, nil
	}
	if err := ensureDense("cards of column "+card.ColumnID.String(), members, placements); err != nil {
		return false, err
	}

	if err := tx.SetCardPositions(ctx, withoutPlacement(placements, card.ID)); err != nil {
		return false, err
	}
	card.Position = position
	return true, tx.MoveCard(ctx, card)
}

func moveCardAcross(ctx context.Context, tx repository.Queries, card *model.Card, target *model.Column, position int) error {
	sourceCards, err := tx.ListCards(ctx, card.ColumnID)
	if err != nil {
		return err
	}
	targetCards, err := tx.ListCards(ctx, target.ID)
	if err != nil {
		return err
	}

	source := withoutMember(cardMembers(sourceCards), card.ID)
	dest := cardMembers(targetCards)
	placements, err := ordering.MoveAcross(source, dest, card.ID, card.Position, position)
	if err != nil {
		return err
	}
	if err := ensureDense("cards of column "+card.ColumnID.String(), source, placements); err != nil {
		return err
	}
	if err := ensureDense("cards of column "+target.ID.String(), append(dest, ordering.Member{ID: card.ID, Position: -1}), placements); err != nil {
		return err
	}

	if err := tx.SetCardPositions(ctx, withoutPlacement(placements, card.ID)); err != nil {
		return err
	}
	card.ColumnID = target.ID
	card.BoardID = target.BoardID
	card.Position = position
	return tx.MoveCard(ctx, card)
}

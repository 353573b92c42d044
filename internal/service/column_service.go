package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"baudboard/internal/model"
	"baudboard/internal/ordering"
	"baudboard/internal/repository"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type ColumnService struct {
	store  repository.Store
	cache  BoardCache
	logger *log.Logger
}

func NewColumnService(store repository.Store, cache BoardCache, logger *log.Logger) *ColumnService {
	return &ColumnService{store: store, cache: cacheOrNop(cache), logger: logger}
}

// Create appends a new column to the end of the board.
func (s *ColumnService) Create(ctx context.Context, boardID uuid.UUID, name, color string) (*model.Column, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: column name is required", ErrInvalidInput)
	}
	if color == "" {
		color = model.DefaultColumnColor
	}

	column := &model.Column{BoardID: boardID, Name: name, Color: color}
	err := s.store.Transaction(ctx, func(tx repository.Queries) error {
		if _, err := tx.LockBoard(ctx, boardID); err != nil {
			return err
		}
		columns, err := tx.ListColumns(ctx, boardID)
		if err != nil {
			return err
		}
		column.Position = ordering.Append(columnMembers(columns))
		return tx.CreateColumn(ctx, column)
	})
	if err != nil {
		return nil, err
	}

	s.cache.Evict(ctx, boardID)
	s.logger.WithFields(log.Fields{"board_id": boardID, "column_id": column.ID, "position": column.Position}).Debug("column created")
	return column, nil
}

// Update changes name and/or color; nil leaves the field unchanged.
func (s *ColumnService) Update(ctx context.Context, id uuid.UUID, name, color *string) (*model.Column, error) {
	if name != nil && strings.TrimSpace(*name) == "" {
		return nil, fmt.Errorf("%w: column name must not be empty", ErrInvalidInput)
	}

	var column *model.Column
	err := s.store.Transaction(ctx, func(tx repository.Queries) error {
		var err error
		column, err = tx.GetColumn(ctx, id)
		if err != nil {
			return err
		}
		if name != nil {
			column.Name = strings.TrimSpace(*name)
		}
		if color != nil {
			column.Color = *color
		}
		return tx.UpdateColumn(ctx, column)
	})
	if err != nil {
		return nil, err
	}

	s.cache.Evict(ctx, column.BoardID)
	return column, nil
}

// Delete removes a column. When other columns remain on the board, the cards
// of the deleted column are appended, in their current order, to the
// remaining column with the lowest position; when it was the only column its
// cards are deleted with it. The remaining columns are renumbered.
func (s *ColumnService) Delete(ctx context.Context, id uuid.UUID) error {
	var (
		boardID   uuid.UUID
		relocated int
	)
	err := s.store.Transaction(ctx, func(tx repository.Queries) error {
		column, err := tx.GetColumn(ctx, id)
		if err != nil {
			return err
		}
		boardID = column.BoardID
		if _, err := tx.LockBoard(ctx, boardID); err != nil {
			return err
		}
		// Every column is locked before any card is read, so no card can be
		// created in or moved into the deleted column behind this snapshot.
		columns, err := tx.LockColumns(ctx, boardID)
		if err != nil {
			return err
		}

		var removed *model.Column
		survivors := make([]model.Column, 0, len(columns))
		for i := range columns {
			if columns[i].ID == id {
				removed = &columns[i]
				continue
			}
			survivors = append(survivors, columns[i])
		}
		if removed == nil {
			return repository.ErrColumnNotFound
		}

		cards, err := tx.ListCards(ctx, id)
		if err != nil {
			return err
		}

		if len(survivors) == 0 {
			if err := tx.DeleteCardsInColumn(ctx, id); err != nil {
				return err
			}
		} else if len(cards) > 0 {
			// survivors is ordered by position, so the first one is the target.
			if err := relocateCards(ctx, tx, cards, survivors[0]); err != nil {
				return err
			}
			relocated = len(cards)
		}

		if err := tx.DeleteColumn(ctx, id); err != nil {
			return err
		}

		remaining := columnMembers(survivors)
		placements := ordering.CloseGap(remaining, removed.Position)
		if err := ensureDense("columns of board "+boardID.String(), remaining, placements); err != nil {
			return err
		}
		return tx.SetColumnPositions(ctx, placements)
	})
	if err != nil {
		return err
	}

	s.cache.Evict(ctx, boardID)
	s.logger.WithFields(log.Fields{"board_id": boardID, "column_id": id, "relocated_cards": relocated}).Debug("column deleted")
	return nil
}

// relocateCards appends cards to target. The caller holds the column locks.
func relocateCards(ctx context.Context, tx repository.Queries, cards []model.Card, target model.Column) error {
	existing, err := tx.ListCards(ctx, target.ID)
	if err != nil {
		return err
	}

	ids := make([]uuid.UUID, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}
	placements := ordering.AppendAll(cardMembers(existing), ids)

	for i := range cards {
		card := cards[i]
		card.ColumnID = target.ID
		card.BoardID = target.BoardID
		card.Position = placements[i].Position
		if err := tx.MoveCard(ctx, &card); err != nil {
			return err
		}
	}
	return nil
}

// Reorder assigns positions to the columns of a board in the order of ids.
// ids must list every column of the board exactly once.
func (s *ColumnService) Reorder(ctx context.Context, boardID uuid.UUID, ids []uuid.UUID) ([]model.Column, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: column_ids list cannot be empty", ErrInvalidInput)
	}

	var columns []model.Column
	err := s.store.Transaction(ctx, func(tx repository.Queries) error {
		if _, err := tx.LockBoard(ctx, boardID); err != nil {
			return err
		}

		requested, err := tx.GetColumnsByIDs(ctx, ids)
		if err != nil {
			return err
		}
		byID := make(map[uuid.UUID]model.Column, len(requested))
		for _, c := range requested {
			byID[c.ID] = c
		}
		for _, id := range ids {
			c, ok := byID[id]
			if !ok {
				return fmt.Errorf("column %s: %w", id, repository.ErrColumnNotFound)
			}
			if c.BoardID != boardID {
				return fmt.Errorf("%w: column %s belongs to another board", ErrInvalidScope, id)
			}
		}

		siblings, err := tx.LockColumns(ctx, boardID)
		if err != nil {
			return err
		}
		if err := sameSet(siblings, ids); err != nil {
			return err
		}

		placements := ordering.ReorderScopes(ids)
		if err := tx.SetColumnPositions(ctx, placements); err != nil {
			return err
		}

		columns = siblings
		positions := make(map[uuid.UUID]int, len(placements))
		for _, p := range placements {
			positions[p.ID] = p.Position
		}
		for i := range columns {
			columns[i].Position = positions[columns[i].ID]
		}
		sort.Slice(columns, func(i, j int) bool { return columns[i].Position < columns[j].Position })
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.Evict(ctx, boardID)
	return columns, nil
}

// sameSet checks that ids names every sibling exactly once.
func sameSet(siblings []model.Column, ids []uuid.UUID) error {
	if len(ids) != len(siblings) {
		return fmt.Errorf("%w: expected all %d columns of the board, got %d", ErrInvalidScope, len(siblings), len(ids))
	}
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return fmt.Errorf("%w: column %s listed twice", ErrInvalidScope, id)
		}
		seen[id] = true
	}
	for _, c := range siblings {
		if !seen[c.ID] {
			return fmt.Errorf("%w: column %s is missing", ErrInvalidScope, c.ID)
		}
	}
	return nil
}

// ListCards returns the cards of a column ordered by position.
func (s *ColumnService) ListCards(ctx context.Context, columnID uuid.UUID) ([]model.Card, error) {
	if _, err := s.store.GetColumn(ctx, columnID); err != nil {
		return nil, err
	}
	return s.store.ListCards(ctx, columnID)
}

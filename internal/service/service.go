// Package service implements board, column, card and label operations. Each
// operation that changes membership or order of a scope runs in one store
// transaction: the scope is locked, its members are read, the ordering
// package computes the new positions and they are written back before commit.
package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"baudboard/internal/model"
	"baudboard/internal/ordering"
	"baudboard/internal/repository"

	"github.com/google/uuid"
)

// BoardCache holds rendered board details. Load also returns the board's
// cache generation; Store must drop the write when an Evict for that board
// happened since, so a detail read before a commit never outlives it.
// Implementations must tolerate being called with ids that were never stored.
type BoardCache interface {
	Load(ctx context.Context, boardID uuid.UUID) (board *model.Board, generation int64, ok bool)
	Store(ctx context.Context, board *model.Board, generation int64)
	Evict(ctx context.Context, boardIDs ...uuid.UUID)
}

type nopCache struct{}

func (nopCache) Load(context.Context, uuid.UUID) (*model.Board, int64, bool) { return nil, 0, false }
func (nopCache) Store(context.Context, *model.Board, int64)                  {}
func (nopCache) Evict(context.Context, ...uuid.UUID)                         {}

func cacheOrNop(c BoardCache) BoardCache {
	if c == nil {
		return nopCache{}
	}
	return c
}

func columnMembers(columns []model.Column) []ordering.Member {
	members := make([]ordering.Member, len(columns))
	for i, c := range columns {
		members[i] = ordering.Member{ID: c.ID, Position: c.Position}
	}
	return members
}

func cardMembers(cards []model.Card) []ordering.Member {
	members := make([]ordering.Member, len(cards))
	for i, c := range cards {
		members[i] = ordering.Member{ID: c.ID, Position: c.Position}
	}
	return members
}

func withoutMember(members []ordering.Member, id uuid.UUID) []ordering.Member {
	out := make([]ordering.Member, 0, len(members))
	for _, m := range members {
		if m.ID != id {
			out = append(out, m)
		}
	}
	return out
}

func withoutPlacement(placements []ordering.Placement, id uuid.UUID) []ordering.Placement {
	out := make([]ordering.Placement, 0, len(placements))
	for _, p := range placements {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}

// ensureDense refuses to commit placements that would leave a scope with
// gaps or duplicates.
func ensureDense(scope string, members []ordering.Member, placements []ordering.Placement) error {
	if err := ordering.Check(ordering.Apply(members, placements)); err != nil {
		return fmt.Errorf("%s: %w", scope, err)
	}
	return nil
}

// Lock order, shared by every operation: board, then columns in ascending id
// order, then cards. Card rows are only locked once their column is held.

// lockColumns locks the given columns in ascending id order.
func lockColumns(ctx context.Context, tx repository.Queries, ids ...uuid.UUID) (map[uuid.UUID]*model.Column, error) {
	sorted := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			sorted = append(sorted, id)
		}
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].String() < sorted[j].String() })

	locked := make(map[uuid.UUID]*model.Column, len(sorted))
	for _, id := range sorted {
		column, err := tx.LockColumn(ctx, id)
		if err != nil {
			return nil, err
		}
		locked[id] = column
	}
	return locked, nil
}

// errCardMoved reports that a card left the column locked for it while the
// transaction waited; the unit of work is retried from a fresh read.
var errCardMoved = errors.New("card moved to another column")

const cardAttempts = 3

// lockCardIn locks a card whose column is already held and checks that it
// is still a member of that column.
func lockCardIn(ctx context.Context, tx repository.Queries, id, columnID uuid.UUID) (*model.Card, error) {
	card, err := tx.LockCard(ctx, id)
	if err != nil {
		return nil, err
	}
	if card.ColumnID != columnID {
		return nil, errCardMoved
	}
	return card, nil
}

// retryMoved runs fn in a transaction, starting over when a card changed
// column under it.
func retryMoved(ctx context.Context, store repository.Store, fn func(tx repository.Queries) error) error {
	var err error
	for attempt := 0; attempt < cardAttempts; attempt++ {
		if err = store.Transaction(ctx, fn); !errors.Is(err, errCardMoved) {
			return err
		}
	}
	return err
}

package service

import (
	"context"
	"io"
	"sort"
	"sync"
	"testing"

	"baudboard/internal/model"
	"baudboard/internal/ordering"
	"baudboard/internal/repository"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func testLogger() *log.Logger {
	logger := log.New()
	logger.SetOutput(io.Discard)
	return logger
}

func seedBoard(t *testing.T, s *fakeStore, name string) uuid.UUID {
	t.Helper()
	board := &model.Board{Name: name}
	require.NoError(t, s.CreateBoard(context.Background(), board))
	return board.ID
}

func seedColumn(t *testing.T, s *fakeStore, boardID uuid.UUID, name string) uuid.UUID {
	t.Helper()
	ctx := context.Background()
	existing, err := s.ListColumns(ctx, boardID)
	require.NoError(t, err)
	column := &model.Column{BoardID: boardID, Name: name, Color: model.DefaultColumnColor, Position: len(existing)}
	require.NoError(t, s.CreateColumn(ctx, column))
	return column.ID
}

func seedCards(t *testing.T, s *fakeStore, columnID uuid.UUID, titles ...string) []uuid.UUID {
	t.Helper()
	ctx := context.Background()
	column, err := s.GetColumn(ctx, columnID)
	require.NoError(t, err)
	existing, err := s.ListCards(ctx, columnID)
	require.NoError(t, err)

	ids := make([]uuid.UUID, len(titles))
	for i, title := range titles {
		card := &model.Card{
			BoardID:  column.BoardID,
			ColumnID: columnID,
			Title:    title,
			Priority: model.PriorityNone,
			Labels:   []model.CardLabel{},
			Position: len(existing) + i,
		}
		require.NoError(t, s.CreateCard(ctx, card))
		ids[i] = card.ID
	}
	return ids
}

// cardTitles returns the titles of a column in position order and fails the
// test when the positions are not 0..n-1.
func cardTitles(t *testing.T, s *fakeStore, columnID uuid.UUID) []string {
	t.Helper()
	cards, err := s.ListCards(context.Background(), columnID)
	require.NoError(t, err)
	titles := make([]string, len(cards))
	for i, c := range cards {
		require.Equal(t, i, c.Position, "card %q", c.Title)
		titles[i] = c.Title
	}
	return titles
}

func columnNames(t *testing.T, s *fakeStore, boardID uuid.UUID) []string {
	t.Helper()
	columns, err := s.ListColumns(context.Background(), boardID)
	require.NoError(t, err)
	names := make([]string, len(columns))
	for i, c := range columns {
		require.Equal(t, i, c.Position, "column %q", c.Name)
		names[i] = c.Name
	}
	return names
}

func totalWrites(s *fakeStore) int {
	n := 0
	for _, c := range s.writes {
		n += c
	}
	return n
}

// spyCache records cache traffic. Like the Redis cache it keeps a
// generation per board and drops stores made with an outdated one.
type spyCache struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*model.Board
	gens    map[uuid.UUID]int64
	loads   int
	evicted []uuid.UUID
}

func newSpyCache() *spyCache {
	return &spyCache{entries: map[uuid.UUID]*model.Board{}, gens: map[uuid.UUID]int64{}}
}

func (c *spyCache) Load(_ context.Context, id uuid.UUID) (*model.Board, int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loads++
	b, ok := c.entries[id]
	return b, c.gens[id], ok
}

func (c *spyCache) Store(_ context.Context, board *model.Board, generation int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gens[board.ID] != generation {
		return
	}
	c.entries[board.ID] = board
}

func (c *spyCache) Evict(_ context.Context, ids ...uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range ids {
		c.gens[id]++
		delete(c.entries, id)
		c.evicted = append(c.evicted, id)
	}
}

// lockingStore wraps fakeStore and records the row locks taken inside
// transactions, in order. Unlocked card reads return the queued staleCards
// rows first, as if another transaction moved the card right after the read.
type lockingStore struct {
	*fakeStore
	locks      []string
	staleCards []model.Card
}

func (l *lockingStore) Transaction(ctx context.Context, fn func(tx repository.Queries) error) error {
	return l.fakeStore.Transaction(ctx, func(repository.Queries) error {
		return fn(l)
	})
}

func (l *lockingStore) LockBoard(ctx context.Context, id uuid.UUID) (*model.Board, error) {
	l.locks = append(l.locks, "board:"+id.String())
	return l.fakeStore.LockBoard(ctx, id)
}

func (l *lockingStore) LockColumns(ctx context.Context, boardID uuid.UUID) ([]model.Column, error) {
	columns, err := l.fakeStore.LockColumns(ctx, boardID)
	ids := make([]string, 0, len(columns))
	for _, c := range columns {
		ids = append(ids, c.ID.String())
	}
	sort.Strings(ids)
	for _, id := range ids {
		l.locks = append(l.locks, "column:"+id)
	}
	return columns, err
}

func (l *lockingStore) LockColumn(ctx context.Context, id uuid.UUID) (*model.Column, error) {
	l.locks = append(l.locks, "column:"+id.String())
	return l.fakeStore.LockColumn(ctx, id)
}

func (l *lockingStore) LockCard(ctx context.Context, id uuid.UUID) (*model.Card, error) {
	l.locks = append(l.locks, "card:"+id.String())
	return l.fakeStore.LockCard(ctx, id)
}

func (l *lockingStore) ListCards(ctx context.Context, columnID uuid.UUID) ([]model.Card, error) {
	l.locks = append(l.locks, "read-cards:"+columnID.String())
	return l.fakeStore.ListCards(ctx, columnID)
}

func (l *lockingStore) GetCard(ctx context.Context, id uuid.UUID) (*model.Card, error) {
	if len(l.staleCards) > 0 && l.staleCards[0].ID == id {
		card := l.staleCards[0]
		l.staleCards = l.staleCards[1:]
		return &card, nil
	}
	return l.fakeStore.GetCard(ctx, id)
}

// indexOf returns the position of event in events, or -1.
func indexOf(events []string, event string) int {
	for i, e := range events {
		if e == event {
			return i
		}
	}
	return -1
}

// failingStore wraps fakeStore and fails the named method once it has been
// called, after the wrapped call has already been applied.
type failingStore struct {
	*fakeStore
	failOn string
	err    error
}

func (f *failingStore) Transaction(ctx context.Context, fn func(tx repository.Queries) error) error {
	return f.fakeStore.Transaction(ctx, func(repository.Queries) error {
		return fn(f)
	})
}

func (f *failingStore) MoveCard(ctx context.Context, card *model.Card) error {
	if err := f.fakeStore.MoveCard(ctx, card); err != nil {
		return err
	}
	if f.failOn == "MoveCard" {
		return f.err
	}
	return nil
}

func (f *failingStore) SetColumnPositions(ctx context.Context, placements []ordering.Placement) error {
	if err := f.fakeStore.SetColumnPositions(ctx, placements); err != nil {
		return err
	}
	if f.failOn == "SetColumnPositions" {
		return f.err
	}
	return nil
}

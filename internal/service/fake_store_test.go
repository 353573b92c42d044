package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"baudboard/internal/model"
	"baudboard/internal/ordering"
	"baudboard/internal/repository"

	"github.com/google/uuid"
)

// fakeStore is an in-memory repository.Store. Transactions snapshot the
// whole state and restore it when the callback fails.
type fakeStore struct {
	mu      sync.Mutex
	boards  map[uuid.UUID]model.Board
	columns map[uuid.UUID]model.Column
	cards   map[uuid.UUID]model.Card
	labels  map[uuid.UUID]model.Label

	// writes counts mutating calls, keyed by method name.
	writes map[string]int
	// touched records every card id whose row was written.
	touched map[uuid.UUID]int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		boards:  map[uuid.UUID]model.Board{},
		columns: map[uuid.UUID]model.Column{},
		cards:   map[uuid.UUID]model.Card{},
		labels:  map[uuid.UUID]model.Label{},
		writes:  map[string]int{},
		touched: map[uuid.UUID]int{},
	}
}

type fakeSnapshot struct {
	boards  map[uuid.UUID]model.Board
	columns map[uuid.UUID]model.Column
	cards   map[uuid.UUID]model.Card
	labels  map[uuid.UUID]model.Label
}

func copyMap[V any](m map[uuid.UUID]V) map[uuid.UUID]V {
	out := make(map[uuid.UUID]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *fakeStore) Transaction(ctx context.Context, fn func(tx repository.Queries) error) error {
	s.mu.Lock()
	snap := fakeSnapshot{copyMap(s.boards), copyMap(s.columns), copyMap(s.cards), copyMap(s.labels)}
	s.mu.Unlock()

	if err := fn(s); err != nil {
		s.mu.Lock()
		s.boards, s.columns, s.cards, s.labels = snap.boards, snap.columns, snap.cards, snap.labels
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *fakeStore) wrote(method string) {
	s.writes[method]++
}

// Boards

func (s *fakeStore) CreateBoard(_ context.Context, board *model.Board) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wrote("CreateBoard")
	board.ID = uuid.New()
	board.CreatedAt = time.Now()
	board.UpdatedAt = board.CreatedAt
	stored := *board
	stored.Columns, stored.Labels = nil, nil
	s.boards[board.ID] = stored
	return nil
}

func (s *fakeStore) ListBoards(_ context.Context) ([]model.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	boards := make([]model.Board, 0, len(s.boards))
	for _, b := range s.boards {
		boards = append(boards, b)
	}
	sort.Slice(boards, func(i, j int) bool { return boards[i].CreatedAt.Before(boards[j].CreatedAt) })
	return boards, nil
}

func (s *fakeStore) GetBoard(_ context.Context, id uuid.UUID) (*model.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.boards[id]
	if !ok {
		return nil, repository.ErrBoardNotFound
	}
	return &b, nil
}

func (s *fakeStore) GetBoardDetail(ctx context.Context, id uuid.UUID) (*model.Board, error) {
	board, err := s.GetBoard(ctx, id)
	if err != nil {
		return nil, err
	}
	columns, _ := s.ListColumns(ctx, id)
	for i := range columns {
		columns[i].Cards, _ = s.ListCards(ctx, columns[i].ID)
	}
	board.Columns = columns
	return board, nil
}

func (s *fakeStore) LockBoard(ctx context.Context, id uuid.UUID) (*model.Board, error) {
	return s.GetBoard(ctx, id)
}

func (s *fakeStore) UpdateBoard(_ context.Context, board *model.Board) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wrote("UpdateBoard")
	stored, ok := s.boards[board.ID]
	if !ok {
		return repository.ErrBoardNotFound
	}
	stored.Name = board.Name
	stored.UpdatedAt = time.Now()
	s.boards[board.ID] = stored
	return nil
}

func (s *fakeStore) DeleteBoard(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wrote("DeleteBoard")
	if _, ok := s.boards[id]; !ok {
		return repository.ErrBoardNotFound
	}
	for cid, c := range s.cards {
		if c.BoardID == id {
			delete(s.cards, cid)
		}
	}
	for cid, c := range s.columns {
		if c.BoardID == id {
			delete(s.columns, cid)
		}
	}
	for lid, l := range s.labels {
		if l.BoardID == id {
			delete(s.labels, lid)
		}
	}
	delete(s.boards, id)
	return nil
}

// Columns

func (s *fakeStore) CreateColumn(_ context.Context, column *model.Column) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wrote("CreateColumn")
	column.ID = uuid.New()
	stored := *column
	stored.Cards = nil
	s.columns[column.ID] = stored
	return nil
}

func (s *fakeStore) GetColumn(_ context.Context, id uuid.UUID) (*model.Column, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.columns[id]
	if !ok {
		return nil, repository.ErrColumnNotFound
	}
	return &c, nil
}

func (s *fakeStore) LockColumn(ctx context.Context, id uuid.UUID) (*model.Column, error) {
	return s.GetColumn(ctx, id)
}

func (s *fakeStore) LockColumns(ctx context.Context, boardID uuid.UUID) ([]model.Column, error) {
	return s.ListColumns(ctx, boardID)
}

func (s *fakeStore) ListColumns(_ context.Context, boardID uuid.UUID) ([]model.Column, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var columns []model.Column
	for _, c := range s.columns {
		if c.BoardID == boardID {
			columns = append(columns, c)
		}
	}
	sort.Slice(columns, func(i, j int) bool { return columns[i].Position < columns[j].Position })
	return columns, nil
}

func (s *fakeStore) GetColumnsByIDs(_ context.Context, ids []uuid.UUID) ([]model.Column, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var columns []model.Column
	seen := map[uuid.UUID]bool{}
	for _, id := range ids {
		if c, ok := s.columns[id]; ok && !seen[id] {
			seen[id] = true
			columns = append(columns, c)
		}
	}
	return columns, nil
}

func (s *fakeStore) UpdateColumn(_ context.Context, column *model.Column) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wrote("UpdateColumn")
	stored, ok := s.columns[column.ID]
	if !ok {
		return repository.ErrColumnNotFound
	}
	stored.Name, stored.Color = column.Name, column.Color
	s.columns[column.ID] = stored
	return nil
}

func (s *fakeStore) DeleteColumn(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wrote("DeleteColumn")
	if _, ok := s.columns[id]; !ok {
		return repository.ErrColumnNotFound
	}
	for cid, c := range s.cards {
		if c.ColumnID == id {
			delete(s.cards, cid)
		}
	}
	delete(s.columns, id)
	return nil
}

func (s *fakeStore) SetColumnPositions(_ context.Context, placements []ordering.Placement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range placements {
		s.wrote("SetColumnPositions")
		c, ok := s.columns[p.ID]
		if !ok {
			return repository.ErrColumnNotFound
		}
		c.Position = p.Position
		s.columns[p.ID] = c
	}
	return nil
}

// Cards

func (s *fakeStore) CreateCard(_ context.Context, card *model.Card) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wrote("CreateCard")
	card.ID = uuid.New()
	card.CreatedAt = time.Now()
	card.UpdatedAt = card.CreatedAt
	s.cards[card.ID] = *card
	return nil
}

func (s *fakeStore) GetCard(_ context.Context, id uuid.UUID) (*model.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cards[id]
	if !ok {
		return nil, repository.ErrCardNotFound
	}
	return &c, nil
}

func (s *fakeStore) LockCard(ctx context.Context, id uuid.UUID) (*model.Card, error) {
	return s.GetCard(ctx, id)
}

func (s *fakeStore) ListCards(_ context.Context, columnID uuid.UUID) ([]model.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var cards []model.Card
	for _, c := range s.cards {
		if c.ColumnID == columnID {
			cards = append(cards, c)
		}
	}
	sort.Slice(cards, func(i, j int) bool { return cards[i].Position < cards[j].Position })
	return cards, nil
}

func (s *fakeStore) UpdateCard(_ context.Context, card *model.Card) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wrote("UpdateCard")
	stored, ok := s.cards[card.ID]
	if !ok {
		return repository.ErrCardNotFound
	}
	stored.Title, stored.Description = card.Title, card.Description
	stored.Priority, stored.Labels = card.Priority, card.Labels
	stored.UpdatedAt = time.Now()
	s.cards[card.ID] = stored
	s.touched[card.ID]++
	return nil
}

func (s *fakeStore) MoveCard(_ context.Context, card *model.Card) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wrote("MoveCard")
	stored, ok := s.cards[card.ID]
	if !ok {
		return repository.ErrCardNotFound
	}
	stored.BoardID, stored.ColumnID, stored.Position = card.BoardID, card.ColumnID, card.Position
	stored.UpdatedAt = time.Now()
	s.cards[card.ID] = stored
	s.touched[card.ID]++
	return nil
}

func (s *fakeStore) SetCardPositions(_ context.Context, placements []ordering.Placement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range placements {
		s.wrote("SetCardPositions")
		c, ok := s.cards[p.ID]
		if !ok {
			return repository.ErrCardNotFound
		}
		c.Position = p.Position
		s.cards[p.ID] = c
		s.touched[p.ID]++
	}
	return nil
}

func (s *fakeStore) DeleteCard(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wrote("DeleteCard")
	if _, ok := s.cards[id]; !ok {
		return repository.ErrCardNotFound
	}
	delete(s.cards, id)
	return nil
}

func (s *fakeStore) DeleteCardsInColumn(_ context.Context, columnID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wrote("DeleteCardsInColumn")
	for id, c := range s.cards {
		if c.ColumnID == columnID {
			delete(s.cards, id)
		}
	}
	return nil
}

// Labels

func (s *fakeStore) CreateLabel(_ context.Context, label *model.Label) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wrote("CreateLabel")
	for _, l := range s.labels {
		if l.BoardID == label.BoardID && l.Name == label.Name {
			return repository.ErrDuplicateLabelName
		}
	}
	label.ID = uuid.New()
	s.labels[label.ID] = *label
	return nil
}

func (s *fakeStore) GetLabel(_ context.Context, id uuid.UUID) (*model.Label, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.labels[id]
	if !ok {
		return nil, repository.ErrLabelNotFound
	}
	return &l, nil
}

func (s *fakeStore) FindLabelByName(_ context.Context, boardID uuid.UUID, name string) (*model.Label, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.labels {
		if l.BoardID == boardID && l.Name == name {
			return &l, nil
		}
	}
	return nil, repository.ErrLabelNotFound
}

func (s *fakeStore) ListLabels(_ context.Context, boardID uuid.UUID) ([]model.Label, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var labels []model.Label
	for _, l := range s.labels {
		if l.BoardID == boardID {
			labels = append(labels, l)
		}
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i].Name < labels[j].Name })
	return labels, nil
}

func (s *fakeStore) UpdateLabel(_ context.Context, label *model.Label) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wrote("UpdateLabel")
	if _, ok := s.labels[label.ID]; !ok {
		return repository.ErrLabelNotFound
	}
	s.labels[label.ID] = *label
	return nil
}

func (s *fakeStore) DeleteLabel(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wrote("DeleteLabel")
	if _, ok := s.labels[id]; !ok {
		return repository.ErrLabelNotFound
	}
	delete(s.labels, id)
	return nil
}

var _ repository.Store = (*fakeStore)(nil)

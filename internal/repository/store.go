package repository

import (
	"context"

	"baudboard/internal/model"
	"baudboard/internal/ordering"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BoardQueries defines board persistence operations.
type BoardQueries interface {
	CreateBoard(ctx context.Context, board *model.Board) error
	ListBoards(ctx context.Context) ([]model.Board, error)
	GetBoard(ctx context.Context, id uuid.UUID) (*model.Board, error)
	GetBoardDetail(ctx context.Context, id uuid.UUID) (*model.Board, error)
	LockBoard(ctx context.Context, id uuid.UUID) (*model.Board, error)
	UpdateBoard(ctx context.Context, board *model.Board) error
	DeleteBoard(ctx context.Context, id uuid.UUID) error
}

// ColumnQueries defines column persistence operations.
type ColumnQueries interface {
	CreateColumn(ctx context.Context, column *model.Column) error
	GetColumn(ctx context.Context, id uuid.UUID) (*model.Column, error)
	LockColumn(ctx context.Context, id uuid.UUID) (*model.Column, error)
	ListColumns(ctx context.Context, boardID uuid.UUID) ([]model.Column, error)
	LockColumns(ctx context.Context, boardID uuid.UUID) ([]model.Column, error)
	GetColumnsByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Column, error)
	UpdateColumn(ctx context.Context, column *model.Column) error
	DeleteColumn(ctx context.Context, id uuid.UUID) error
	SetColumnPositions(ctx context.Context, placements []ordering.Placement) error
}

// CardQueries defines card persistence operations.
type CardQueries interface {
	CreateCard(ctx context.Context, card *model.Card) error
	GetCard(ctx context.Context, id uuid.UUID) (*model.Card, error)
	LockCard(ctx context.Context, id uuid.UUID) (*model.Card, error)
	ListCards(ctx context.Context, columnID uuid.UUID) ([]model.Card, error)
	UpdateCard(ctx context.Context, card *model.Card) error
	MoveCard(ctx context.Context, card *model.Card) error
	SetCardPositions(ctx context.Context, placements []ordering.Placement) error
	DeleteCard(ctx context.Context, id uuid.UUID) error
	DeleteCardsInColumn(ctx context.Context, columnID uuid.UUID) error
}

// LabelQueries defines label persistence operations.
type LabelQueries interface {
	CreateLabel(ctx context.Context, label *model.Label) error
	GetLabel(ctx context.Context, id uuid.UUID) (*model.Label, error)
	FindLabelByName(ctx context.Context, boardID uuid.UUID, name string) (*model.Label, error)
	ListLabels(ctx context.Context, boardID uuid.UUID) ([]model.Label, error)
	UpdateLabel(ctx context.Context, label *model.Label) error
	DeleteLabel(ctx context.Context, id uuid.UUID) error
}

// Queries is everything a unit of work can read and write.
type Queries interface {
	BoardQueries
	ColumnQueries
	CardQueries
	LabelQueries
}

// Store is Queries plus the ability to open a transaction. Every call made
// through the Queries handed to fn belongs to that transaction; it commits
// when fn returns nil and rolls back otherwise.
type Store interface {
	Queries
	Transaction(ctx context.Context, fn func(tx Queries) error) error
}

// GormStore implements Store on top of gorm.
type GormStore struct {
	db *gorm.DB
	*BoardRepository
	*ColumnRepository
	*CardRepository
	*LabelRepository
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{
		db:               db,
		BoardRepository:  NewBoardRepository(db),
		ColumnRepository: NewColumnRepository(db),
		CardRepository:   NewCardRepository(db),
		LabelRepository:  NewLabelRepository(db),
	}
}

func (s *GormStore) Transaction(ctx context.Context, fn func(tx Queries) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewGormStore(tx))
	})
}

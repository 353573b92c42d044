package service

import (
	"context"
	"fmt"
	"strings"

	"baudboard/internal/config"
	"baudboard/internal/model"
	"baudboard/internal/repository"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type BoardService struct {
	store    repository.Store
	cache    BoardCache
	template config.BoardTemplate
	logger   *log.Logger
}

func NewBoardService(store repository.Store, cache BoardCache, template config.BoardTemplate, logger *log.Logger) *BoardService {
	return &BoardService{
		store:    store,
		cache:    cacheOrNop(cache),
		template: template,
		logger:   logger,
	}
}

// Create creates a board together with the columns of the board template.
func (s *BoardService) Create(ctx context.Context, name string) (*model.Board, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: board name is required", ErrInvalidInput)
	}

	board := &model.Board{Name: name}
	err := s.store.Transaction(ctx, func(tx repository.Queries) error {
		if err := tx.CreateBoard(ctx, board); err != nil {
			return fmt.Errorf("create board: %w", err)
		}
		for i, col := range s.template.Columns {
			color := col.Color
			if color == "" {
				color = model.DefaultColumnColor
			}
			column := model.Column{BoardID: board.ID, Name: col.Name, Color: color, Position: i}
			if err := tx.CreateColumn(ctx, &column); err != nil {
				return fmt.Errorf("create column %q: %w", col.Name, err)
			}
			column.Cards = []model.Card{}
			board.Columns = append(board.Columns, column)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(log.Fields{"board_id": board.ID, "columns": len(board.Columns)}).Debug("board created")
	return board, nil
}

func (s *BoardService) List(ctx context.Context) ([]model.Board, error) {
	return s.store.ListBoards(ctx)
}

// Get returns the board with its columns and cards ordered by position.
func (s *BoardService) Get(ctx context.Context, id uuid.UUID) (*model.Board, error) {
	board, generation, ok := s.cache.Load(ctx, id)
	if ok {
		return board, nil
	}

	board, err := s.store.GetBoardDetail(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cache.Store(ctx, board, generation)
	return board, nil
}

func (s *BoardService) Rename(ctx context.Context, id uuid.UUID, name string) (*model.Board, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: board name is required", ErrInvalidInput)
	}

	err := s.store.Transaction(ctx, func(tx repository.Queries) error {
		board, err := tx.LockBoard(ctx, id)
		if err != nil {
			return err
		}
		board.Name = name
		return tx.UpdateBoard(ctx, board)
	})
	if err != nil {
		return nil, err
	}

	s.cache.Evict(ctx, id)
	return s.Get(ctx, id)
}

// Delete removes the board with all of its columns, cards and labels.
func (s *BoardService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.store.Transaction(ctx, func(tx repository.Queries) error {
		if _, err := tx.LockBoard(ctx, id); err != nil {
			return err
		}
		if _, err := tx.LockColumns(ctx, id); err != nil {
			return err
		}
		return tx.DeleteBoard(ctx, id)
	})
	if err != nil {
		return err
	}

	s.cache.Evict(ctx, id)
	s.logger.WithField("board_id", id).Debug("board deleted")
	return nil
}

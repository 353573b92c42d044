package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"baudboard/internal/model"
	"baudboard/internal/repository"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// LabelService manages the label registry of a board. Labels attached to
// cards are snapshots and are not checked against the registry.
type LabelService struct {
	store  repository.Store
	logger *log.Logger
}

func NewLabelService(store repository.Store, logger *log.Logger) *LabelService {
	return &LabelService{store: store, logger: logger}
}

func (s *LabelService) Create(ctx context.Context, boardID uuid.UUID, name, color string) (*model.Label, error) {
	name = strings.TrimSpace(name)
	if name == "" || color == "" {
		return nil, fmt.Errorf("%w: label name and color are required", ErrInvalidInput)
	}

	label := &model.Label{BoardID: boardID, Name: name, Color: color}
	err := s.store.Transaction(ctx, func(tx repository.Queries) error {
		if _, err := tx.LockBoard(ctx, boardID); err != nil {
			return err
		}
		if err := ensureNameFree(ctx, tx, boardID, name, uuid.Nil); err != nil {
			return err
		}
		return translateDuplicate(tx.CreateLabel(ctx, label), name)
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(log.Fields{"board_id": boardID, "label_id": label.ID}).Debug("label created")
	return label, nil
}

func (s *LabelService) List(ctx context.Context, boardID uuid.UUID) ([]model.Label, error) {
	if _, err := s.store.GetBoard(ctx, boardID); err != nil {
		return nil, err
	}
	return s.store.ListLabels(ctx, boardID)
}

func (s *LabelService) Get(ctx context.Context, id uuid.UUID) (*model.Label, error) {
	return s.store.GetLabel(ctx, id)
}

func (s *LabelService) Update(ctx context.Context, id uuid.UUID, name, color string) (*model.Label, error) {
	name = strings.TrimSpace(name)
	if name == "" || color == "" {
		return nil, fmt.Errorf("%w: label name and color are required", ErrInvalidInput)
	}

	var label *model.Label
	err := s.store.Transaction(ctx, func(tx repository.Queries) error {
		var err error
		label, err = tx.GetLabel(ctx, id)
		if err != nil {
			return err
		}
		if _, err := tx.LockBoard(ctx, label.BoardID); err != nil {
			return err
		}
		if err := ensureNameFree(ctx, tx, label.BoardID, name, id); err != nil {
			return err
		}
		label.Name = name
		label.Color = color
		return translateDuplicate(tx.UpdateLabel(ctx, label), name)
	})
	if err != nil {
		return nil, err
	}
	return label, nil
}

func (s *LabelService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.store.DeleteLabel(ctx, id)
}

// ensureNameFree fails when another label of the board already uses name.
func ensureNameFree(ctx context.Context, tx repository.Queries, boardID uuid.UUID, name string, self uuid.UUID) error {
	existing, err := tx.FindLabelByName(ctx, boardID, name)
	switch {
	case errors.Is(err, repository.ErrLabelNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID == self:
		return nil
	default:
		return fmt.Errorf("%w: label %q already exists on this board", ErrDuplicateName, name)
	}
}

func translateDuplicate(err error, name string) error {
	if errors.Is(err, repository.ErrDuplicateLabelName) {
		return fmt.Errorf("%w: label %q already exists on this board", ErrDuplicateName, name)
	}
	return err
}

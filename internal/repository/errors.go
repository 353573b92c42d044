package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Common repository errors
var (
	// ErrNotFound is wrapped by every entity-specific not-found error
	ErrNotFound = errors.New("not found")

	// ErrBoardNotFound is returned when a board is not found
	ErrBoardNotFound = fmt.Errorf("board %w", ErrNotFound)

	// ErrColumnNotFound is returned when a column is not found
	ErrColumnNotFound = fmt.Errorf("column %w", ErrNotFound)

	// ErrCardNotFound is returned when a card is not found
	ErrCardNotFound = fmt.Errorf("card %w", ErrNotFound)

	// ErrLabelNotFound is returned when a label is not found
	ErrLabelNotFound = fmt.Errorf("label %w", ErrNotFound)

	// ErrDuplicateLabelName is returned when a board already has a label with the same name
	ErrDuplicateLabelName = errors.New("label name already used on this board")
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

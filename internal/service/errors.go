package service

import (
	"errors"

	"baudboard/internal/ordering"
	"baudboard/internal/repository"
)

// Errors returned by the services. Handlers translate them to status codes
// with errors.Is; every one of them is raised before any write is made.
var (
	// ErrNotFound wraps every missing board, column, card or label.
	ErrNotFound = repository.ErrNotFound

	// ErrInvalidPosition is returned for a target position outside the scope.
	ErrInvalidPosition = ordering.ErrInvalidPosition

	// ErrInvalidScope is returned when ids span more than one parent or do not
	// form the complete sibling set.
	ErrInvalidScope = errors.New("invalid scope")

	// ErrDuplicateName is returned when a label name is already used on a board.
	ErrDuplicateName = errors.New("duplicate name")

	// ErrInvalidPriority is returned for an unknown card priority.
	ErrInvalidPriority = errors.New("invalid priority")

	// ErrInvalidInput is returned for empty names, titles or id lists.
	ErrInvalidInput = errors.New("invalid input")
)

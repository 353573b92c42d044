package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Priority is the urgency bucket of a card.
type Priority string

const (
	PriorityNone   Priority = "none"
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Priorities lists every accepted priority, lowest first.
var Priorities = []Priority{PriorityNone, PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	for _, known := range Priorities {
		if p == known {
			return true
		}
	}
	return false
}

// CardLabel is a snapshot of a label copied onto a card. It is not a
// reference into the board's label registry.
type CardLabel struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type Card struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BoardID     uuid.UUID `gorm:"type:uuid;not null;index"`
	ColumnID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Title       string    `gorm:"not null"`
	Description *string
	Position    int                            `gorm:"not null"`
	Priority    Priority                       `gorm:"not null;default:'none'"`
	Labels      datatypes.JSONSlice[CardLabel] `gorm:"type:jsonb;not null;default:'[]'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

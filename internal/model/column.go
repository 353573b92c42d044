package model

import (
	"github.com/google/uuid"
)

// DefaultColumnColor is used when a column is created without a color.
const DefaultColumnColor = "#6B7280"

type Column struct {
	ID       uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BoardID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Name     string    `gorm:"not null"`
	Color    string    `gorm:"not null;default:'#6B7280'"`
	Position int       `gorm:"not null"`

	Cards []Card `gorm:"foreignKey:ColumnID"`
}

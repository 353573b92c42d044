package handler

import (
	"time"

	"baudboard/internal/model"
)

type BoardResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BoardDetailResponse is a board with its columns and their cards, both
// ordered by position.
type BoardDetailResponse struct {
	BoardResponse
	Columns []ColumnDetailResponse `json:"columns"`
}

type ColumnResponse struct {
	ID       string `json:"id"`
	BoardID  string `json:"board_id"`
	Name     string `json:"name"`
	Color    string `json:"color"`
	Position int    `json:"position"`
}

type ColumnDetailResponse struct {
	ColumnResponse
	Cards []CardResponse `json:"cards"`
}

type CardLabelPayload struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color" binding:"required,hexcolor"`
}

type CardResponse struct {
	ID          string             `json:"id"`
	BoardID     string             `json:"board_id"`
	ColumnID    string             `json:"column_id"`
	Title       string             `json:"title"`
	Description *string            `json:"description"`
	Position    int                `json:"position"`
	Priority    string             `json:"priority"`
	Labels      []CardLabelPayload `json:"labels"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

type LabelResponse struct {
	ID      string `json:"id"`
	BoardID string `json:"board_id"`
	Name    string `json:"name"`
	Color   string `json:"color"`
}

func newBoardResponse(b *model.Board) BoardResponse {
	return BoardResponse{
		ID:        b.ID.String(),
		Name:      b.Name,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func newBoardDetailResponse(b *model.Board) BoardDetailResponse {
	columns := make([]ColumnDetailResponse, len(b.Columns))
	for i := range b.Columns {
		cards := make([]CardResponse, len(b.Columns[i].Cards))
		for j := range b.Columns[i].Cards {
			cards[j] = newCardResponse(&b.Columns[i].Cards[j])
		}
		columns[i] = ColumnDetailResponse{ColumnResponse: newColumnResponse(&b.Columns[i]), Cards: cards}
	}
	return BoardDetailResponse{BoardResponse: newBoardResponse(b), Columns: columns}
}

func newColumnResponse(c *model.Column) ColumnResponse {
	return ColumnResponse{
		ID:       c.ID.String(),
		BoardID:  c.BoardID.String(),
		Name:     c.Name,
		Color:    c.Color,
		Position: c.Position,
	}
}

func newCardResponse(c *model.Card) CardResponse {
	labels := make([]CardLabelPayload, len(c.Labels))
	for i, l := range c.Labels {
		labels[i] = CardLabelPayload{Name: l.Name, Color: l.Color}
	}
	return CardResponse{
		ID:          c.ID.String(),
		BoardID:     c.BoardID.String(),
		ColumnID:    c.ColumnID.String(),
		Title:       c.Title,
		Description: c.Description,
		Position:    c.Position,
		Priority:    string(c.Priority),
		Labels:      labels,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func newLabelResponse(l *model.Label) LabelResponse {
	return LabelResponse{
		ID:      l.ID.String(),
		BoardID: l.BoardID.String(),
		Name:    l.Name,
		Color:   l.Color,
	}
}

func toCardLabels(in []CardLabelPayload) []model.CardLabel {
	labels := make([]model.CardLabel, len(in))
	for i, l := range in {
		labels[i] = model.CardLabel{Name: l.Name, Color: l.Color}
	}
	return labels
}

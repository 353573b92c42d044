package handler

import (
	"context"
	"net/http"

	"baudboard/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ColumnService interface {
	Create(ctx context.Context, boardID uuid.UUID, name, color string) (*model.Column, error)
	Update(ctx context.Context, id uuid.UUID, name, color *string) (*model.Column, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Reorder(ctx context.Context, boardID uuid.UUID, ids []uuid.UUID) ([]model.Column, error)
	ListCards(ctx context.Context, columnID uuid.UUID) ([]model.Card, error)
}

type ColumnHandler struct {
	columns ColumnService
}

func NewColumnHandler(columns ColumnService) *ColumnHandler {
	return &ColumnHandler{columns: columns}
}

type CreateColumnRequest struct {
	Name  string `json:"name" binding:"required,max=255"`
	Color string `json:"color" binding:"omitempty,hexcolor"`
}

type UpdateColumnRequest struct {
	Name  *string `json:"name" binding:"omitempty,max=255"`
	Color *string `json:"color" binding:"omitempty,hexcolor"`
}

type ReorderColumnsRequest struct {
	ColumnIDs []string `json:"column_ids" binding:"required,min=1,dive,uuid"`
}

// Create godoc
// @Summary  Append a column to a board
// @Tags     Columns
// @Accept   json
// @Produce  json
// @Param    id      path      string               true  "Board ID"
// @Param    column  body      CreateColumnRequest  true  "Column"
// @Success  201     {object}  ColumnResponse
// @Failure  404     {object}  map[string]string
// @Router   /api/boards/{id}/columns [post]
func (h *ColumnHandler) Create(c *gin.Context) {
	boardID, ok := parseID(c, "id", "board")
	if !ok {
		return
	}

	var req CreateColumnRequest
	if !bindJSON(c, &req) {
		return
	}

	column, err := h.columns.Create(c.Request.Context(), boardID, req.Name, req.Color)
	if err != nil {
		respondError(c, err, "Failed to create column")
		return
	}

	c.JSON(http.StatusCreated, newColumnResponse(column))
}

// Update godoc
// @Summary  Change a column's name or color
// @Tags     Columns
// @Accept   json
// @Produce  json
// @Param    id      path      string               true  "Column ID"
// @Param    column  body      UpdateColumnRequest  true  "Column"
// @Success  200     {object}  ColumnResponse
// @Failure  404     {object}  map[string]string
// @Router   /api/columns/{id} [put]
func (h *ColumnHandler) Update(c *gin.Context) {
	columnID, ok := parseID(c, "id", "column")
	if !ok {
		return
	}

	var req UpdateColumnRequest
	if !bindJSON(c, &req) {
		return
	}

	column, err := h.columns.Update(c.Request.Context(), columnID, req.Name, req.Color)
	if err != nil {
		respondError(c, err, "Failed to update column")
		return
	}

	c.JSON(http.StatusOK, newColumnResponse(column))
}

// Delete godoc
// @Summary      Delete a column
// @Description  Cards move to the first remaining column; they are deleted when no column remains.
// @Tags         Columns
// @Param        id  path  string  true  "Column ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /api/columns/{id} [delete]
func (h *ColumnHandler) Delete(c *gin.Context) {
	columnID, ok := parseID(c, "id", "column")
	if !ok {
		return
	}

	if err := h.columns.Delete(c.Request.Context(), columnID); err != nil {
		respondError(c, err, "Failed to delete column")
		return
	}

	c.Status(http.StatusNoContent)
}

// Reorder godoc
// @Summary  Reorder all columns of a board
// @Tags     Columns
// @Accept   json
// @Produce  json
// @Param    id     path      string                 true  "Board ID"
// @Param    order  body      ReorderColumnsRequest  true  "Every column id of the board in the new order"
// @Success  200    {array}   ColumnResponse
// @Failure  400    {object}  map[string]string
// @Failure  404    {object}  map[string]string
// @Router   /api/boards/{id}/columns/reorder [put]
func (h *ColumnHandler) Reorder(c *gin.Context) {
	boardID, ok := parseID(c, "id", "board")
	if !ok {
		return
	}

	var req ReorderColumnsRequest
	if !bindJSON(c, &req) {
		return
	}

	ids := make([]uuid.UUID, len(req.ColumnIDs))
	for i, raw := range req.ColumnIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column ID format"})
			return
		}
		ids[i] = id
	}

	columns, err := h.columns.Reorder(c.Request.Context(), boardID, ids)
	if err != nil {
		respondError(c, err, "Failed to reorder columns")
		return
	}

	response := make([]ColumnResponse, len(columns))
	for i := range columns {
		response[i] = newColumnResponse(&columns[i])
	}
	c.JSON(http.StatusOK, response)
}

// GetCards godoc
// @Summary  List the cards of a column
// @Tags     Columns
// @Produce  json
// @Param    id   path     string  true  "Column ID"
// @Success  200  {array}  CardResponse
// @Failure  404  {object}  map[string]string
// @Router   /api/columns/{id}/cards [get]
func (h *ColumnHandler) GetCards(c *gin.Context) {
	columnID, ok := parseID(c, "id", "column")
	if !ok {
		return
	}

	cards, err := h.columns.ListCards(c.Request.Context(), columnID)
	if err != nil {
		respondError(c, err, "Failed to retrieve cards")
		return
	}

	response := make([]CardResponse, len(cards))
	for i := range cards {
		response[i] = newCardResponse(&cards[i])
	}
	c.JSON(http.StatusOK, response)
}

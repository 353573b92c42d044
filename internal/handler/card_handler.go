package handler

import (
	"context"
	"net/http"

	"baudboard/internal/model"
	"baudboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CardService interface {
	Create(ctx context.Context, boardID uuid.UUID, in service.CardInput) (*model.Card, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Card, error)
	Update(ctx context.Context, id uuid.UUID, changes service.CardChanges) (*model.Card, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Move(ctx context.Context, id, columnID uuid.UUID, position int) (*model.Card, error)
}

type CardHandler struct {
	cards CardService
}

func NewCardHandler(cards CardService) *CardHandler {
	return &CardHandler{cards: cards}
}

// CreateCardRequest appends a card to the end of a column of the board.
type CreateCardRequest struct {
	ColumnID    string             `json:"column_id" binding:"required,uuid"`
	Title       string             `json:"title" binding:"required,max=255"`
	Description *string            `json:"description"`
	Priority    string             `json:"priority" binding:"omitempty,priority"`
	Labels      []CardLabelPayload `json:"labels" binding:"omitempty,dive"`
}

// UpdateCardRequest edits a card; omitted fields stay as they are.
type UpdateCardRequest struct {
	Title       *string             `json:"title" binding:"omitempty,max=255"`
	Description *string             `json:"description"`
	Priority    *string             `json:"priority" binding:"omitempty,priority"`
	Labels      *[]CardLabelPayload `json:"labels" binding:"omitempty,dive"`
}

// MoveCardRequest places a card at position in column_id.
type MoveCardRequest struct {
	ColumnID string `json:"column_id" binding:"required,uuid"`
	Position *int   `json:"position" binding:"required"`
}

// Create godoc
// @Summary  Create a card at the end of a column
// @Tags     Cards
// @Accept   json
// @Produce  json
// @Param    id    path      string             true  "Board ID"
// @Param    card  body      CreateCardRequest  true  "Card"
// @Success  201   {object}  CardResponse
// @Failure  400   {object}  map[string]string
// @Failure  404   {object}  map[string]string
// @Router   /api/boards/{id}/cards [post]
func (h *CardHandler) Create(c *gin.Context) {
	boardID, ok := parseID(c, "id", "board")
	if !ok {
		return
	}

	var req CreateCardRequest
	if !bindJSON(c, &req) {
		return
	}

	columnID, err := uuid.Parse(req.ColumnID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column ID format"})
		return
	}

	card, err := h.cards.Create(c.Request.Context(), boardID, service.CardInput{
		ColumnID:    columnID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    model.Priority(req.Priority),
		Labels:      toCardLabels(req.Labels),
	})
	if err != nil {
		respondError(c, err, "Failed to create card")
		return
	}

	c.JSON(http.StatusCreated, newCardResponse(card))
}

// GetByID godoc
// @Summary  Get a card
// @Tags     Cards
// @Produce  json
// @Param    id   path      string  true  "Card ID"
// @Success  200  {object}  CardResponse
// @Failure  404  {object}  map[string]string
// @Router   /api/cards/{id} [get]
func (h *CardHandler) GetByID(c *gin.Context) {
	cardID, ok := parseID(c, "id", "card")
	if !ok {
		return
	}

	card, err := h.cards.Get(c.Request.Context(), cardID)
	if err != nil {
		respondError(c, err, "Failed to retrieve card")
		return
	}

	c.JSON(http.StatusOK, newCardResponse(card))
}

// Update godoc
// @Summary  Edit a card's title, description, priority or labels
// @Tags     Cards
// @Accept   json
// @Produce  json
// @Param    id    path      string             true  "Card ID"
// @Param    card  body      UpdateCardRequest  true  "Changes"
// @Success  200   {object}  CardResponse
// @Failure  400   {object}  map[string]string
// @Failure  404   {object}  map[string]string
// @Router   /api/cards/{id} [put]
func (h *CardHandler) Update(c *gin.Context) {
	cardID, ok := parseID(c, "id", "card")
	if !ok {
		return
	}

	var req UpdateCardRequest
	if !bindJSON(c, &req) {
		return
	}

	changes := service.CardChanges{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Priority != nil {
		p := model.Priority(*req.Priority)
		changes.Priority = &p
	}
	if req.Labels != nil {
		labels := toCardLabels(*req.Labels)
		changes.Labels = &labels
	}

	card, err := h.cards.Update(c.Request.Context(), cardID, changes)
	if err != nil {
		respondError(c, err, "Failed to update card")
		return
	}

	c.JSON(http.StatusOK, newCardResponse(card))
}

// Delete godoc
// @Summary  Delete a card
// @Tags     Cards
// @Param    id  path  string  true  "Card ID"
// @Success  204
// @Failure  404  {object}  map[string]string
// @Router   /api/cards/{id} [delete]
func (h *CardHandler) Delete(c *gin.Context) {
	cardID, ok := parseID(c, "id", "card")
	if !ok {
		return
	}

	if err := h.cards.Delete(c.Request.Context(), cardID); err != nil {
		respondError(c, err, "Failed to delete card")
		return
	}

	c.Status(http.StatusNoContent)
}

// Move godoc
// @Summary      Move a card
// @Description  Moves a card within its column or into another column at the given position.
// @Tags         Cards
// @Accept       json
// @Produce      json
// @Param        id    path      string           true  "Card ID"
// @Param        move  body      MoveCardRequest  true  "Target"
// @Success      200   {object}  CardResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/cards/{id}/move [put]
func (h *CardHandler) Move(c *gin.Context) {
	cardID, ok := parseID(c, "id", "card")
	if !ok {
		return
	}

	var req MoveCardRequest
	if !bindJSON(c, &req) {
		return
	}

	columnID, err := uuid.Parse(req.ColumnID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column ID format"})
		return
	}

	card, err := h.cards.Move(c.Request.Context(), cardID, columnID, *req.Position)
	if err != nil {
		respondError(c, err, "Failed to move card")
		return
	}

	c.JSON(http.StatusOK, newCardResponse(card))
}

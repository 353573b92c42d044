package handler

import (
	"context"
	"net/http"

	"baudboard/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BoardService interface {
	Create(ctx context.Context, name string) (*model.Board, error)
	List(ctx context.Context) ([]model.Board, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Board, error)
	Rename(ctx context.Context, id uuid.UUID, name string) (*model.Board, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type BoardHandler struct {
	boards BoardService
}

func NewBoardHandler(boards BoardService) *BoardHandler {
	return &BoardHandler{boards: boards}
}

type BoardRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

// Create godoc
// @Summary  Create a board with the default columns
// @Tags     Boards
// @Accept   json
// @Produce  json
// @Param    board  body      BoardRequest  true  "Board"
// @Success  201    {object}  BoardDetailResponse
// @Failure  400    {object}  map[string]string
// @Router   /api/boards [post]
func (h *BoardHandler) Create(c *gin.Context) {
	var req BoardRequest
	if !bindJSON(c, &req) {
		return
	}

	board, err := h.boards.Create(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err, "Failed to create board")
		return
	}

	c.JSON(http.StatusCreated, newBoardDetailResponse(board))
}

// GetAll godoc
// @Summary  List boards
// @Tags     Boards
// @Produce  json
// @Success  200  {array}  BoardResponse
// @Router   /api/boards [get]
func (h *BoardHandler) GetAll(c *gin.Context) {
	boards, err := h.boards.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to retrieve boards")
		return
	}

	response := make([]BoardResponse, len(boards))
	for i := range boards {
		response[i] = newBoardResponse(&boards[i])
	}
	c.JSON(http.StatusOK, response)
}

// GetByID godoc
// @Summary  Get a board with its columns and cards
// @Tags     Boards
// @Produce  json
// @Param    id   path      string  true  "Board ID"
// @Success  200  {object}  BoardDetailResponse
// @Failure  404  {object}  map[string]string
// @Router   /api/boards/{id} [get]
func (h *BoardHandler) GetByID(c *gin.Context) {
	boardID, ok := parseID(c, "id", "board")
	if !ok {
		return
	}

	board, err := h.boards.Get(c.Request.Context(), boardID)
	if err != nil {
		respondError(c, err, "Failed to retrieve board")
		return
	}

	c.JSON(http.StatusOK, newBoardDetailResponse(board))
}

// Update godoc
// @Summary  Rename a board
// @Tags     Boards
// @Accept   json
// @Produce  json
// @Param    id     path      string        true  "Board ID"
// @Param    board  body      BoardRequest  true  "Board"
// @Success  200    {object}  BoardDetailResponse
// @Failure  404    {object}  map[string]string
// @Router   /api/boards/{id} [put]
func (h *BoardHandler) Update(c *gin.Context) {
	boardID, ok := parseID(c, "id", "board")
	if !ok {
		return
	}

	var req BoardRequest
	if !bindJSON(c, &req) {
		return
	}

	board, err := h.boards.Rename(c.Request.Context(), boardID, req.Name)
	if err != nil {
		respondError(c, err, "Failed to update board")
		return
	}

	c.JSON(http.StatusOK, newBoardDetailResponse(board))
}

// Delete godoc
// @Summary  Delete a board with its columns, cards and labels
// @Tags     Boards
// @Param    id  path  string  true  "Board ID"
// @Success  204
// @Failure  404  {object}  map[string]string
// @Router   /api/boards/{id} [delete]
func (h *BoardHandler) Delete(c *gin.Context) {
	boardID, ok := parseID(c, "id", "board")
	if !ok {
		return
	}

	if err := h.boards.Delete(c.Request.Context(), boardID); err != nil {
		respondError(c, err, "Failed to delete board")
		return
	}

	c.Status(http.StatusNoContent)
}

// Health godoc
// @Summary  Liveness check
// @Tags     Health
// @Produce  json
// @Success  200  {object}  map[string]string
// @Router   /api/health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

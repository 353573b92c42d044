package handler

import (
	"context"
	"net/http"

	"baudboard/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LabelService interface {
	Create(ctx context.Context, boardID uuid.UUID, name, color string) (*model.Label, error)
	List(ctx context.Context, boardID uuid.UUID) ([]model.Label, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Label, error)
	Update(ctx context.Context, id uuid.UUID, name, color string) (*model.Label, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type LabelHandler struct {
	labels LabelService
}

func NewLabelHandler(labels LabelService) *LabelHandler {
	return &LabelHandler{labels: labels}
}

type LabelRequest struct {
	Name  string `json:"name" binding:"required,max=50"`
	Color string `json:"color" binding:"required,hexcolor"`
}

// Create godoc
// @Summary  Add a label to a board's registry
// @Tags     Labels
// @Accept   json
// @Produce  json
// @Param    id     path      string        true  "Board ID"
// @Param    label  body      LabelRequest  true  "Label"
// @Success  201    {object}  LabelResponse
// @Failure  404    {object}  map[string]string
// @Failure  409    {object}  map[string]string
// @Router   /api/boards/{id}/labels [post]
func (h *LabelHandler) Create(c *gin.Context) {
	boardID, ok := parseID(c, "id", "board")
	if !ok {
		return
	}

	var req LabelRequest
	if !bindJSON(c, &req) {
		return
	}

	label, err := h.labels.Create(c.Request.Context(), boardID, req.Name, req.Color)
	if err != nil {
		respondError(c, err, "Failed to create label")
		return
	}

	c.JSON(http.StatusCreated, newLabelResponse(label))
}

// GetByBoardID godoc
// @Summary  List the labels of a board
// @Tags     Labels
// @Produce  json
// @Param    id   path     string  true  "Board ID"
// @Success  200  {array}  LabelResponse
// @Failure  404  {object}  map[string]string
// @Router   /api/boards/{id}/labels [get]
func (h *LabelHandler) GetByBoardID(c *gin.Context) {
	boardID, ok := parseID(c, "id", "board")
	if !ok {
		return
	}

	labels, err := h.labels.List(c.Request.Context(), boardID)
	if err != nil {
		respondError(c, err, "Failed to retrieve labels")
		return
	}

	response := make([]LabelResponse, len(labels))
	for i := range labels {
		response[i] = newLabelResponse(&labels[i])
	}
	c.JSON(http.StatusOK, response)
}

// GetByID godoc
// @Summary  Get a label
// @Tags     Labels
// @Produce  json
// @Param    id   path      string  true  "Label ID"
// @Success  200  {object}  LabelResponse
// @Failure  404  {object}  map[string]string
// @Router   /api/labels/{id} [get]
func (h *LabelHandler) GetByID(c *gin.Context) {
	labelID, ok := parseID(c, "id", "label")
	if !ok {
		return
	}

	label, err := h.labels.Get(c.Request.Context(), labelID)
	if err != nil {
		respondError(c, err, "Failed to retrieve label")
		return
	}

	c.JSON(http.StatusOK, newLabelResponse(label))
}

// Update godoc
// @Summary  Rename or recolor a label
// @Tags     Labels
// @Accept   json
// @Produce  json
// @Param    id     path      string        true  "Label ID"
// @Param    label  body      LabelRequest  true  "Label"
// @Success  200    {object}  LabelResponse
// @Failure  404    {object}  map[string]string
// @Failure  409    {object}  map[string]string
// @Router   /api/labels/{id} [put]
func (h *LabelHandler) Update(c *gin.Context) {
	labelID, ok := parseID(c, "id", "label")
	if !ok {
		return
	}

	var req LabelRequest
	if !bindJSON(c, &req) {
		return
	}

	label, err := h.labels.Update(c.Request.Context(), labelID, req.Name, req.Color)
	if err != nil {
		respondError(c, err, "Failed to update label")
		return
	}

	c.JSON(http.StatusOK, newLabelResponse(label))
}

// Delete godoc
// @Summary  Remove a label from the registry
// @Tags     Labels
// @Param    id  path  string  true  "Label ID"
// @Success  204
// @Failure  404  {object}  map[string]string
// @Router   /api/labels/{id} [delete]
func (h *LabelHandler) Delete(c *gin.Context) {
	labelID, ok := parseID(c, "id", "label")
	if !ok {
		return
	}

	if err := h.labels.Delete(c.Request.Context(), labelID); err != nil {
		respondError(c, err, "Failed to delete label")
		return
	}

	c.Status(http.StatusNoContent)
}

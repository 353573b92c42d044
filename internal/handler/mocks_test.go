package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"baudboard/internal/handler"
	"baudboard/internal/model"
	"baudboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBoardService struct {
	mock.Mock
}

func (m *MockBoardService) Create(ctx context.Context, name string) (*model.Board, error) {
	args := m.Called(ctx, name)
	board, _ := args.Get(0).(*model.Board)
	return board, args.Error(1)
}

func (m *MockBoardService) List(ctx context.Context) ([]model.Board, error) {
	args := m.Called(ctx)
	boards, _ := args.Get(0).([]model.Board)
	return boards, args.Error(1)
}

func (m *MockBoardService) Get(ctx context.Context, id uuid.UUID) (*model.Board, error) {
	args := m.Called(ctx, id)
	board, _ := args.Get(0).(*model.Board)
	return board, args.Error(1)
}

func (m *MockBoardService) Rename(ctx context.Context, id uuid.UUID, name string) (*model.Board, error) {
	args := m.Called(ctx, id, name)
	board, _ := args.Get(0).(*model.Board)
	return board, args.Error(1)
}

func (m *MockBoardService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockColumnService struct {
	mock.Mock
}

func (m *MockColumnService) Create(ctx context.Context, boardID uuid.UUID, name, color string) (*model.Column, error) {
	args := m.Called(ctx, boardID, name, color)
	column, _ := args.Get(0).(*model.Column)
	return column, args.Error(1)
}

func (m *MockColumnService) Update(ctx context.Context, id uuid.UUID, name, color *string) (*model.Column, error) {
	args := m.Called(ctx, id, name, color)
	column, _ := args.Get(0).(*model.Column)
	return column, args.Error(1)
}

func (m *MockColumnService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockColumnService) Reorder(ctx context.Context, boardID uuid.UUID, ids []uuid.UUID) ([]model.Column, error) {
	args := m.Called(ctx, boardID, ids)
	columns, _ := args.Get(0).([]model.Column)
	return columns, args.Error(1)
}

func (m *MockColumnService) ListCards(ctx context.Context, columnID uuid.UUID) ([]model.Card, error) {
	args := m.Called(ctx, columnID)
	cards, _ := args.Get(0).([]model.Card)
	return cards, args.Error(1)
}

type MockCardService struct {
	mock.Mock
}

func (m *MockCardService) Create(ctx context.Context, boardID uuid.UUID, in service.CardInput) (*model.Card, error) {
	args := m.Called(ctx, boardID, in)
	card, _ := args.Get(0).(*model.Card)
	return card, args.Error(1)
}

func (m *MockCardService) Get(ctx context.Context, id uuid.UUID) (*model.Card, error) {
	args := m.Called(ctx, id)
	card, _ := args.Get(0).(*model.Card)
	return card, args.Error(1)
}

func (m *MockCardService) Update(ctx context.Context, id uuid.UUID, changes service.CardChanges) (*model.Card, error) {
	args := m.Called(ctx, id, changes)
	card, _ := args.Get(0).(*model.Card)
	return card, args.Error(1)
}

func (m *MockCardService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCardService) Move(ctx context.Context, id, columnID uuid.UUID, position int) (*model.Card, error) {
	args := m.Called(ctx, id, columnID, position)
	card, _ := args.Get(0).(*model.Card)
	return card, args.Error(1)
}

type MockLabelService struct {
	mock.Mock
}

func (m *MockLabelService) Create(ctx context.Context, boardID uuid.UUID, name, color string) (*model.Label, error) {
	args := m.Called(ctx, boardID, name, color)
	label, _ := args.Get(0).(*model.Label)
	return label, args.Error(1)
}

func (m *MockLabelService) List(ctx context.Context, boardID uuid.UUID) ([]model.Label, error) {
	args := m.Called(ctx, boardID)
	labels, _ := args.Get(0).([]model.Label)
	return labels, args.Error(1)
}

func (m *MockLabelService) Get(ctx context.Context, id uuid.UUID) (*model.Label, error) {
	args := m.Called(ctx, id)
	label, _ := args.Get(0).(*model.Label)
	return label, args.Error(1)
}

func (m *MockLabelService) Update(ctx context.Context, id uuid.UUID, name, color string) (*model.Label, error) {
	args := m.Called(ctx, id, name, color)
	label, _ := args.Get(0).(*model.Label)
	return label, args.Error(1)
}

func (m *MockLabelService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mocks struct {
	boards  *MockBoardService
	columns *MockColumnService
	cards   *MockCardService
	labels  *MockLabelService
}

func setupRouter(t *testing.T) (*gin.Engine, *mocks) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, handler.RegisterValidators())

	m := &mocks{
		boards:  new(MockBoardService),
		columns: new(MockColumnService),
		cards:   new(MockCardService),
		labels:  new(MockLabelService),
	}
	boardHandler := handler.NewBoardHandler(m.boards)
	columnHandler := handler.NewColumnHandler(m.columns)
	cardHandler := handler.NewCardHandler(m.cards)
	labelHandler := handler.NewLabelHandler(m.labels)

	r := gin.New()
	api := r.Group("/api")
	api.GET("/health", handler.Health)
	api.POST("/boards", boardHandler.Create)
	api.GET("/boards", boardHandler.GetAll)
	api.GET("/boards/:id", boardHandler.GetByID)
	api.PUT("/boards/:id", boardHandler.Update)
	api.DELETE("/boards/:id", boardHandler.Delete)
	api.POST("/boards/:id/columns", columnHandler.Create)
	api.PUT("/boards/:id/columns/reorder", columnHandler.Reorder)
	api.PUT("/columns/:id", columnHandler.Update)
	api.DELETE("/columns/:id", columnHandler.Delete)
	api.GET("/columns/:id/cards", columnHandler.GetCards)
	api.POST("/boards/:id/cards", cardHandler.Create)
	api.GET("/cards/:id", cardHandler.GetByID)
	api.PUT("/cards/:id", cardHandler.Update)
	api.DELETE("/cards/:id", cardHandler.Delete)
	api.PUT("/cards/:id/move", cardHandler.Move)
	api.GET("/boards/:id/labels", labelHandler.GetByBoardID)
	api.POST("/boards/:id/labels", labelHandler.Create)
	api.GET("/labels/:id", labelHandler.GetByID)
	api.PUT("/labels/:id", labelHandler.Update)
	api.DELETE("/labels/:id", labelHandler.Delete)

	t.Cleanup(func() {
		m.boards.AssertExpectations(t)
		m.columns.AssertExpectations(t)
		m.cards.AssertExpectations(t)
		m.labels.AssertExpectations(t)
	})
	return r, m
}

func doRequest(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			_ = json.NewEncoder(&buf).Encode(b)
		}
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func decode[T any](t *testing.T, resp *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out), resp.Body.String())
	return out
}

package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tablon-app/tablon-backend/internal/store"
	"github.com/tablon-app/tablon-backend/types"
)

// MockCommentStore implements store.CommentStore for health handler tests.
type MockCommentStore struct {
	mock.Mock
}

func (m *MockCommentStore) CreateComment(ctx context.Context, comment *types.Comment) (int64, error) {
	args := m.Called(ctx, comment)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCommentStore) ListComments(ctx context.Context, limit, offset int) ([]*types.Comment, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*types.Comment), args.Error(1)
}

func (m *MockCommentStore) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockCommentStore) Ready() bool {
	return m.Called().Bool(0)
}

func (m *MockCommentStore) Close() error {
	return m.Called().Error(0)
}

var _ store.CommentStore = (*MockCommentStore)(nil)

func getHealth(st store.CommentStore) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)

	h := NewHealthHandler(st)
	r := gin.New()
	r.GET("/api/health", h.Health)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	r.ServeHTTP(w, req)
	return w
}

func TestHealthDatabaseUp(t *testing.T) {
	st := new(MockCommentStore)
	st.On("Ready").Return(true)
	st.On("Ping", mock.Anything).Return(nil)

	w := getHealth(st)
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.True(t, resp.DB)
	assert.Equal(t, "ok", resp.Message)
}

func TestHealthDatabaseNotReady(t *testing.T) {
	st := new(MockCommentStore)
	st.On("Ready").Return(false)

	w := getHealth(st)
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.False(t, resp.DB)
	assert.Equal(t, "database unavailable", resp.Message)
	st.AssertNotCalled(t, "Ping", mock.Anything)
}

func TestHealthDatabasePingFails(t *testing.T) {
	st := new(MockCommentStore)
	st.On("Ready").Return(true)
	st.On("Ping", mock.Anything).Return(assert.AnError)

	w := getHealth(st)
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.DB)
}

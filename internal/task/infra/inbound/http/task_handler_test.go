package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/davicafu/taskboard/internal/mocks"
	"github.com/davicafu/taskboard/internal/task/application"
	taskDomain "github.com/davicafu/taskboard/internal/task/domain"
	taskHTTP "github.com/davicafu/taskboard/internal/task/infra/inbound/http"
	"github.com/davicafu/taskboard/internal/task/infra/outbound/snapshot"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Message string `json:"message"`
		Field   string `json:"field"`
	} `json:"error"`
}

// setupRouter monta el router real sobre un tablero ya sembrado.
func setupRouter(t *testing.T) (*gin.Engine, *application.BoardService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	service := application.NewBoardService(
		snapshot.NewRepo(mocks.NewFlakySlot(), "tasks"),
		nil,
		nil,
		zap.NewNop(),
		application.WithClock(func() time.Time { return time.Date(2025, 8, 10, 9, 0, 0, 0, time.UTC) }),
	)
	require.NoError(t, service.Load(context.Background()))

	r := gin.New()
	taskHTTP.RegisterBoardRoutes(r, taskHTTP.NewBoardHandler(service))
	return r, service
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func TestGetBoard_HTTPContract(t *testing.T) {
	r, _ := setupRouter(t)

	rec, env := doJSON(t, r, http.MethodGet, "/board", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	var board application.Board
	require.NoError(t, json.Unmarshal(env.Data, &board))
	assert.Equal(t, taskDomain.FilterAll, board.Filter)
	assert.False(t, board.Loading)
	require.Len(t, board.Tasks, 2)
	assert.Equal(t, "Task Manager", board.Tasks[0].Title)
}

func TestCreateTask_HTTP(t *testing.T) {
	r, service := setupRouter(t)

	rec, env := doJSON(t, r, http.MethodPost, "/tasks", taskDomain.RawInput{Title: "X", DueDate: "2025-12-01", Priority: "high"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	var task taskDomain.Task
	require.NoError(t, json.Unmarshal(env.Data, &task))
	assert.Equal(t, "X", task.Title)
	assert.Equal(t, taskDomain.PriorityHigh, task.Priority)
	assert.Len(t, service.Tasks(), 3)
}

func TestCreateTask_ValidationError(t *testing.T) {
	r, service := setupRouter(t)

	rec, env := doJSON(t, r, http.MethodPost, "/tasks", taskDomain.RawInput{Title: "X", DueDate: "mañana"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "dueDate", env.Error.Field)
	assert.Equal(t, "Due date must be a valid date (YYYY-MM-DD).", env.Error.Message)
	assert.Len(t, service.Tasks(), 2)
}

func TestUpdateTask_HTTP(t *testing.T) {
	r, service := setupRouter(t)
	id := service.Tasks()[0].ID

	rec, env := doJSON(t, r, http.MethodPut, "/tasks/"+id.String(), taskDomain.RawInput{Title: "Editada", DueDate: "2025-12-01"})

	assert.Equal(t, http.StatusOK, rec.Code)
	var task taskDomain.Task
	require.NoError(t, json.Unmarshal(env.Data, &task))
	assert.Equal(t, id, task.ID)
	assert.Equal(t, "Editada", task.Title)

	// Id inexistente: no-op
	rec, _ = doJSON(t, r, http.MethodPut, "/tasks/"+uuid.NewString(), taskDomain.RawInput{Title: "Z", DueDate: "2025-12-01"})
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// Id mal formado
	rec, _ = doJSON(t, r, http.MethodPut, "/tasks/no-es-uuid", taskDomain.RawInput{Title: "Z", DueDate: "2025-12-01"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestToggleAndDelete_HTTP(t *testing.T) {
	r, service := setupRouter(t)
	id := service.Tasks()[0].ID

	rec, env := doJSON(t, r, http.MethodPost, "/tasks/"+id.String()+"/toggle", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	var task taskDomain.Task
	require.NoError(t, json.Unmarshal(env.Data, &task))
	assert.Equal(t, taskDomain.TaskCompleted, task.Status)

	rec, _ = doJSON(t, r, http.MethodDelete, "/tasks/"+id.String(), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Len(t, service.Tasks(), 1)

	rec, _ = doJSON(t, r, http.MethodPost, "/tasks/"+id.String()+"/toggle", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestSetFilter_HTTP(t *testing.T) {
	r, service := setupRouter(t)

	rec, env := doJSON(t, r, http.MethodPut, "/filter", gin.H{"filter": "completed"})
	assert.Equal(t, http.StatusOK, rec.Code)
	var board application.Board
	require.NoError(t, json.Unmarshal(env.Data, &board))
	assert.Equal(t, taskDomain.FilterCompleted, board.Filter)
	require.Len(t, board.Tasks, 1)
	assert.Equal(t, "Team Meeting", board.Tasks[0].Title)

	rec, _ = doJSON(t, r, http.MethodPut, "/filter", gin.H{"filter": "archived"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, taskDomain.FilterCompleted, service.Filter())
}

func TestReorder_HTTP(t *testing.T) {
	r, _ := setupRouter(t)
	_, _ = doJSON(t, r, http.MethodPost, "/tasks", taskDomain.RawInput{Title: "X", DueDate: "2025-12-01"})

	// Vista: Task Manager, X, Team Meeting. Mover X arriba.
	rec, env := doJSON(t, r, http.MethodPost, "/reorder", gin.H{"from": 1, "to": 0})

	assert.Equal(t, http.StatusOK, rec.Code)
	var res struct {
		Moved bool              `json:"moved"`
		Board application.Board `json:"board"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.True(t, res.Moved)
	require.Len(t, res.Board.Tasks, 3)
	assert.Equal(t, "X", res.Board.Tasks[0].Title)

	// Una completada no se mueve
	rec, env = doJSON(t, r, http.MethodPost, "/reorder", gin.H{"from": 2, "to": 0})
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.False(t, res.Moved)

	// Faltan índices
	rec, _ = doJSON(t, r, http.MethodPost, "/reorder", gin.H{"from": 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMutationWhileLoading_HTTP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := application.NewBoardService(snapshot.NewRepo(mocks.NewFlakySlot(), "tasks"), nil, nil, zap.NewNop())
	r := gin.New()
	taskHTTP.RegisterBoardRoutes(r, taskHTTP.NewBoardHandler(service))

	rec, env := doJSON(t, r, http.MethodPost, "/tasks", taskDomain.RawInput{Title: "X", DueDate: "2025-12-01"})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.NotNil(t, env.Error)

	rec, env = doJSON(t, r, http.MethodGet, "/board", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	var board application.Board
	require.NoError(t, json.Unmarshal(env.Data, &board))
	assert.True(t, board.Loading)
}

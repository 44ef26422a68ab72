// en internal/task/infra/inbound/http/task_handler.go
package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/davicafu/taskboard/internal/task/application"
	taskDomain "github.com/davicafu/taskboard/internal/task/domain"
	"github.com/davicafu/taskboard/pkg/utils"
)

// BoardHandler traduce las peticiones de la vista a operaciones del tablero.
type BoardHandler struct {
	service *application.BoardService
}

func NewBoardHandler(service *application.BoardService) *BoardHandler {
	return &BoardHandler{service: service}
}

// GetBoard endpoint GET /board
func (h *BoardHandler) GetBoard(c *gin.Context) {
	utils.SendSuccess(c, http.StatusOK, h.service.Board(c.Request.Context()))
}

// ListTasks endpoint GET /tasks
func (h *BoardHandler) ListTasks(c *gin.Context) {
	utils.SendSuccess(c, http.StatusOK, h.service.ProjectedTasks(c.Request.Context()))
}

// CreateTask endpoint POST /tasks
func (h *BoardHandler) CreateTask(c *gin.Context) {
	h.submit(c, nil)
}

// UpdateTask endpoint PUT /tasks/:id
func (h *BoardHandler) UpdateTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	h.submit(c, &id)
}

// submit es el envío del formulario: crea si editingID es nil y edita si no.
func (h *BoardHandler) submit(c *gin.Context, editingID *uuid.UUID) {
	var req taskDomain.RawInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	task, err := h.service.AddOrUpdateTask(c.Request.Context(), req, editingID)
	if err != nil {
		var verr *taskDomain.ValidationError
		if errors.As(err, &verr) {
			utils.SendFieldError(c, verr.Field, verr.Message)
			return
		}
		sendServiceError(c, err)
		return
	}

	// Editar una tarea que ya no existe no hace nada.
	if task == nil {
		c.Status(http.StatusNoContent)
		return
	}

	status := http.StatusOK
	if editingID == nil {
		status = http.StatusCreated
	}
	utils.SendSuccess(c, status, task)
}

// DeleteTask endpoint DELETE /tasks/:id
func (h *BoardHandler) DeleteTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteTask(c.Request.Context(), id); err != nil {
		sendServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ToggleTask endpoint POST /tasks/:id/toggle
func (h *BoardHandler) ToggleTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	task, err := h.service.ToggleTask(c.Request.Context(), id)
	if err != nil {
		sendServiceError(c, err)
		return
	}
	if task == nil {
		c.Status(http.StatusNoContent)
		return
	}

	utils.SendSuccess(c, http.StatusOK, task)
}

// SetFilter endpoint PUT /filter
func (h *BoardHandler) SetFilter(c *gin.Context) {
	var req struct {
		Filter string `json:"filter" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	if err := h.service.SetFilter(req.Filter); err != nil {
		if errors.Is(err, taskDomain.ErrUnknownFilter) {
			utils.SendBadRequest(c, err.Error())
			return
		}
		utils.SendInternalServerError(c, err.Error())
		return
	}

	utils.SendSuccess(c, http.StatusOK, h.service.Board(c.Request.Context()))
}

// ReorderTask endpoint POST /reorder
func (h *BoardHandler) ReorderTask(c *gin.Context) {
	// Punteros para distinguir 0 de "no enviado"
	var req struct {
		From *int `json:"from" binding:"required"`
		To   *int `json:"to" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	moved, err := h.service.ReorderTask(c.Request.Context(), *req.From, *req.To)
	if err != nil {
		sendServiceError(c, err)
		return
	}

	utils.SendSuccess(c, http.StatusOK, gin.H{
		"moved": moved,
		"board": h.service.Board(c.Request.Context()),
	})
}

// sendServiceError traduce los errores del servicio que no son de validación.
func sendServiceError(c *gin.Context, err error) {
	if errors.Is(err, application.ErrBoardLoading) {
		utils.SendServiceUnavailable(c, err.Error())
		return
	}
	utils.SendInternalServerError(c, err.Error())
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid task id")
		return uuid.Nil, false
	}
	return id, true
}

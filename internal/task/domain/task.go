package domain

import (
	"time"

	sharedBus "github.com/davicafu/taskboard/internal/shared/platform/bus"
	"github.com/google/uuid"
)

// DateLayout es el formato ISO 8601 (solo fecha) de DueDate.
const DateLayout = "2006-01-02"

type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskCompleted TaskStatus = "completed"
)

func (s TaskStatus) Valid() bool {
	return s == TaskPending || s == TaskCompleted
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// OrDefault devuelve medium cuando la prioridad no se ha indicado.
func (p TaskPriority) OrDefault() TaskPriority {
	if p == "" {
		return PriorityMedium
	}
	return p
}

// Task es la única entidad del tablero. Los tags JSON son el formato persistido.
type Task struct {
	ID          uuid.UUID    `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	DueDate     string       `json:"dueDate"`
	Status      TaskStatus   `json:"status"`
	CreatedAt   time.Time    `json:"createdAt"`
	Priority    TaskPriority `json:"priority"`
}

func (t Task) PartitionKey() string {
	return t.ID.String()
}

func (t Task) IsCompleted() bool {
	return t.Status == TaskCompleted
}

// --- Métodos de dominio ---

// Toggle alterna entre pending y completed. No existe ningún otro estado destino.
func (t *Task) Toggle() {
	if t.Status == TaskCompleted {
		t.Status = TaskPending
		return
	}
	t.Status = TaskCompleted
}

// IsOverdue indica si la tarea sigue abierta y su fecha límite es anterior a today.
// Se compara solo la fecha; una DueDate ilegible nunca se considera vencida.
func (t Task) IsOverdue(today time.Time) bool {
	if t.IsCompleted() {
		return false
	}
	due, err := time.Parse(DateLayout, t.DueDate)
	if err != nil {
		return false
	}
	return due.Before(truncateDay(today))
}

// truncateDay lleva un instante a la medianoche UTC de su fecha de calendario local.
func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Draft es una tarea validada que todavía no tiene identidad.
type Draft struct {
	Title       string
	Description string
	DueDate     string
	Priority    TaskPriority
}

// Patch contiene los campos editables. Los punteros nil no se tocan.
type Patch struct {
	Title       *string
	Description *string
	DueDate     *string
	Priority    *TaskPriority
}

// PatchFromDraft construye un Patch que sobrescribe todos los campos del formulario.
func PatchFromDraft(d Draft) Patch {
	return Patch{
		Title:       &d.Title,
		Description: &d.Description,
		DueDate:     &d.DueDate,
		Priority:    &d.Priority,
	}
}

// Verificación estática para asegurar que Task implementa la interfaz
var _ sharedBus.Keyer = Task{}

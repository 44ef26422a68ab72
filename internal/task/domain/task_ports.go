package domain

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrInvalidTask     = errors.New("invalid task")
	ErrCorruptSnapshot = errors.New("corrupt task snapshot")
	ErrEmptySnapshot   = errors.New("empty task snapshot")
	ErrUnknownFilter   = errors.New("unknown filter")
	ErrSlotNotFound    = errors.New("slot not found")
)

// ValidationError describe el primer campo del formulario que no es válido.
// Message es el texto que la vista muestra tal cual.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is permite errors.Is(err, ErrInvalidTask).
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidTask
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// --- Persistencia ---

// Slot es un almacén clave-valor durable. Cada backend (fichero, sqlite,
// postgres, mongo, redis, memoria) guarda un único valor opaco por nombre.
type Slot interface {
	// Get devuelve ErrSlotNotFound si el nombre nunca se ha escrito.
	Get(ctx context.Context, name string) ([]byte, error)
	Put(ctx context.Context, name string, value []byte) error
}

// SnapshotRepository lee y escribe la lista completa de tareas.
type SnapshotRepository interface {
	// Read devuelve ErrEmptySnapshot o ErrCorruptSnapshot cuando hay que sembrar.
	Read(ctx context.Context) ([]Task, error)
	Write(ctx context.Context, tasks []Task) error
}

// --- Analítica ---

// ActivityRecord es una fila del registro de actividad del tablero.
type ActivityRecord struct {
	EventType string
	Task      Task
	Position  int
	EventTime time.Time
}

type TaskActivityRepository interface {
	LogBatch(ctx context.Context, records []ActivityRecord) error
}

// ---------- Helpers comunes (cache keys, etc.) ----------

// ProjectionCacheKey identifica una proyección concreta del tablero.
func ProjectionCacheKey(session string, version uint64, filter Filter, today time.Time) string {
	return fmt.Sprintf("projection:%s:%d:%s:%s", session, version, filter, today.Format(DateLayout))
}

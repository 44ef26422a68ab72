package domain

import (
	"reflect"

	sharedEvents "github.com/davicafu/taskboard/internal/shared/events"
	"github.com/google/uuid"
)

// Las constantes de los tipos de evento se definen aquí, como valores string.
const (
	TaskCreated   = "task.created"
	TaskUpdated   = "task.updated"
	TaskDeleted   = "task.deleted"
	TaskToggled   = "task.toggled"
	TaskReordered = "task.reordered"
)

const TaskTopic = "task"

// TaskChanged es el payload de todos los eventos del tablero: la tarea
// afectada (tal como quedó, o como era antes de borrarse) y el orden resultante.
type TaskChanged struct {
	Task    Task        `json:"task"`
	Order   []uuid.UUID `json:"order"`
	Version uint64      `json:"version"`
}

func (e TaskChanged) PartitionKey() string {
	return e.Task.ID.String()
}

// Position devuelve el índice de la tarea en Order, o -1 si ya no está.
func (e TaskChanged) Position() int {
	for i, id := range e.Order {
		if id == e.Task.ID {
			return i
		}
	}
	return -1
}

func NewEventRegistry() map[string]sharedEvents.EventMetadata {
	meta := sharedEvents.EventMetadata{
		Type:  reflect.TypeOf(TaskChanged{}),
		Topic: TaskTopic,
	}
	return map[string]sharedEvents.EventMetadata{
		TaskCreated:   meta,
		TaskUpdated:   meta,
		TaskDeleted:   meta,
		TaskToggled:   meta,
		TaskReordered: meta,
	}
}

package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// TaskStore es la colección canónica y ordenada de tareas. Es inmutable:
// cada cambio produce un TaskStore nuevo con una versión mayor.
type TaskStore struct {
	tasks   []Task
	version uint64
}

// Load construye un TaskStore a partir de un snapshot persistido. Falla con
// ErrCorruptSnapshot si algún registro no tiene forma de Task.
func Load(snapshot []Task) (TaskStore, error) {
	seen := make(map[uuid.UUID]struct{}, len(snapshot))
	tasks := make([]Task, 0, len(snapshot))

	for i, t := range snapshot {
		if t.ID == uuid.Nil {
			return TaskStore{}, fmt.Errorf("%w: record %d has no id", ErrCorruptSnapshot, i)
		}
		if _, dup := seen[t.ID]; dup {
			return TaskStore{}, fmt.Errorf("%w: duplicate id %s", ErrCorruptSnapshot, t.ID)
		}
		if t.Title == "" {
			return TaskStore{}, fmt.Errorf("%w: task %s has empty title", ErrCorruptSnapshot, t.ID)
		}
		if strings.TrimSpace(t.DueDate) == "" {
			return TaskStore{}, fmt.Errorf("%w: task %s has no due date", ErrCorruptSnapshot, t.ID)
		}
		if t.CreatedAt.IsZero() {
			return TaskStore{}, fmt.Errorf("%w: task %s has no creation time", ErrCorruptSnapshot, t.ID)
		}
		if !t.Status.Valid() {
			return TaskStore{}, fmt.Errorf("%w: task %s has status %q", ErrCorruptSnapshot, t.ID, t.Status)
		}
		t.Priority = t.Priority.OrDefault()
		if !t.Priority.Valid() {
			return TaskStore{}, fmt.Errorf("%w: task %s has priority %q", ErrCorruptSnapshot, t.ID, t.Priority)
		}
		seen[t.ID] = struct{}{}
		tasks = append(tasks, t)
	}

	return TaskStore{tasks: tasks, version: 1}, nil
}

// Replace devuelve un TaskStore con el nuevo orden. El llamante garantiza
// que los ids siguen siendo únicos.
func (s TaskStore) Replace(newOrder []Task) TaskStore {
	tasks := make([]Task, len(newOrder))
	copy(tasks, newOrder)
	return TaskStore{tasks: tasks, version: s.version + 1}
}

// Tasks devuelve una copia de la secuencia completa.
func (s TaskStore) Tasks() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s TaskStore) Len() int {
	return len(s.tasks)
}

func (s TaskStore) Version() uint64 {
	return s.version
}

// Find busca una tarea por id y devuelve su posición en el orden canónico.
func (s TaskStore) Find(id uuid.UUID) (Task, int, bool) {
	for i, t := range s.tasks {
		if t.ID == id {
			return t, i, true
		}
	}
	return Task{}, -1, false
}

func (s TaskStore) contains(id uuid.UUID) bool {
	_, _, ok := s.Find(id)
	return ok
}

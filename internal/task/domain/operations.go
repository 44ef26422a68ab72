package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// IDGenerator produce identificadores nuevos. En producción es uuid.New.
type IDGenerator func() uuid.UUID

// Create añade una tarea pendiente al final del tablero.
// Aunque el borrador ya pasó por Validate, aquí se rechaza la entrada degenerada.
func Create(s TaskStore, d Draft, now time.Time, newID IDGenerator) (TaskStore, Task, error) {
	if strings.TrimSpace(d.Title) == "" {
		return s, Task{}, newValidationError("title", msgTitleRequired)
	}
	if strings.TrimSpace(d.DueDate) == "" {
		return s, Task{}, newValidationError("dueDate", msgDueDateRequired)
	}
	priority := d.Priority.OrDefault()
	if !priority.Valid() {
		return s, Task{}, newValidationError("priority", msgPriorityInvalid)
	}

	id := newID()
	for id == uuid.Nil || s.contains(id) {
		id = newID()
	}

	task := Task{
		ID:          id,
		Title:       d.Title,
		Description: d.Description,
		DueDate:     d.DueDate,
		Status:      TaskPending,
		CreatedAt:   now.UTC(),
		Priority:    priority,
	}

	next := append(s.Tasks(), task)
	return s.Replace(next), task, nil
}

// Update fusiona el patch en la tarea indicada. ID, Status y CreatedAt no cambian.
func Update(s TaskStore, id uuid.UUID, p Patch) (TaskStore, error) {
	current, idx, ok := s.Find(id)
	if !ok {
		return s, ErrTaskNotFound
	}

	if p.Title != nil {
		if strings.TrimSpace(*p.Title) == "" {
			return s, newValidationError("title", msgTitleRequired)
		}
		current.Title = *p.Title
	}
	if p.Description != nil {
		current.Description = *p.Description
	}
	if p.DueDate != nil {
		if strings.TrimSpace(*p.DueDate) == "" {
			return s, newValidationError("dueDate", msgDueDateRequired)
		}
		current.DueDate = *p.DueDate
	}
	if p.Priority != nil {
		priority := p.Priority.OrDefault()
		if !priority.Valid() {
			return s, newValidationError("priority", msgPriorityInvalid)
		}
		current.Priority = priority
	}

	next := s.Tasks()
	next[idx] = current
	return s.Replace(next), nil
}

// Delete elimina la tarea de forma definitiva.
func Delete(s TaskStore, id uuid.UUID) (TaskStore, error) {
	_, idx, ok := s.Find(id)
	if !ok {
		return s, ErrTaskNotFound
	}
	tasks := s.Tasks()
	next := append(tasks[:idx], tasks[idx+1:]...)
	return s.Replace(next), nil
}

func ToggleStatus(s TaskStore, id uuid.UUID) (TaskStore, error) {
	current, idx, ok := s.Find(id)
	if !ok {
		return s, ErrTaskNotFound
	}
	current.Toggle()
	next := s.Tasks()
	next[idx] = current
	return s.Replace(next), nil
}

// Reorder mueve la tarea que está en from dentro de la secuencia mostrada
// (view) a la posición to y reconcilia el resultado con el orden canónico.
//
// La reconciliación se hace por id: las posiciones del store que ocupan las
// tareas pendientes visibles se rellenan con esas mismas tareas en su nuevo
// orden relativo. Las completadas y las ocultas por el filtro no se mueven.
// Devuelve false cuando el movimiento se ignora.
func Reorder(s TaskStore, from, to int, view []Task) (TaskStore, bool) {
	if from < 0 || from >= len(view) || to < 0 || to >= len(view) || from == to {
		return s, false
	}
	dragged := view[from]
	if stored, _, ok := s.Find(dragged.ID); !ok || dragged.IsCompleted() || stored.IsCompleted() {
		return s, false
	}

	moved := make([]Task, 0, len(view))
	moved = append(moved, view[:from]...)
	moved = append(moved, view[from+1:]...)
	moved = append(moved[:to], append([]Task{dragged}, moved[to:]...)...)

	// Nuevo orden relativo de las pendientes visibles que siguen en el store.
	var order []uuid.UUID
	visible := make(map[uuid.UUID]struct{}, len(moved))
	for _, t := range moved {
		if stored, _, ok := s.Find(t.ID); !ok || stored.IsCompleted() {
			continue
		}
		if _, dup := visible[t.ID]; dup {
			continue
		}
		visible[t.ID] = struct{}{}
		order = append(order, t.ID)
	}

	next := s.Tasks()
	k := 0
	for i, t := range next {
		if _, ok := visible[t.ID]; !ok {
			continue
		}
		replacement, _, _ := s.Find(order[k])
		next[i] = replacement
		k++
	}

	return s.Replace(next), true
}

package domain

import (
	"fmt"
	"time"
)

// Filter selecciona qué tareas entran en la proyección.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterPending   Filter = "pending"
	FilterCompleted Filter = "completed"
	FilterOverdue   Filter = "overdue"
)

// Filters en el orden en que la vista los presenta.
var Filters = []Filter{FilterAll, FilterPending, FilterCompleted, FilterOverdue}

func ParseFilter(name string) (Filter, error) {
	for _, f := range Filters {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFilter, name)
}

func (f Filter) matches(t Task, today time.Time) bool {
	switch f {
	case FilterAll:
		return true
	case FilterPending:
		return t.Status == TaskPending
	case FilterCompleted:
		return t.Status == TaskCompleted
	case FilterOverdue:
		return t.IsOverdue(today)
	}
	return false
}

// Project filtra el store y coloca las completadas detrás del resto.
// Es una partición estable: dentro de cada grupo se respeta el orden canónico.
// Nunca modifica el store y devuelve siempre un slice nuevo.
func Project(s TaskStore, f Filter, today time.Time) []Task {
	open := make([]Task, 0, len(s.tasks))
	var done []Task
	for _, t := range s.tasks {
		if !f.matches(t, today) {
			continue
		}
		if t.IsCompleted() {
			done = append(done, t)
			continue
		}
		open = append(open, t)
	}
	return append(open, done...)
}

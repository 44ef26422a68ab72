package domain

import "time"

// DefaultTasks son las dos tareas de ejemplo con las que se siembra un
// tablero vacío o corrupto.
func DefaultTasks(now time.Time, newID IDGenerator) []Task {
	return []Task{
		{
			ID:          newID(),
			Title:       "Task Manager",
			Description: "React assessment.",
			DueDate:     "2025-07-28",
			Status:      TaskPending,
			CreatedAt:   now.UTC(),
			Priority:    PriorityHigh,
		},
		{
			ID:          newID(),
			Title:       "Team Meeting",
			Description: "Frontend.",
			DueDate:     "2025-07-25",
			Status:      TaskCompleted,
			CreatedAt:   now.UTC(),
			Priority:    PriorityMedium,
		},
	}
}

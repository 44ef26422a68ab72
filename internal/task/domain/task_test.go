package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// TestTask_ToggleInvolution valida que alternar dos veces deja la tarea como estaba.
func TestTask_ToggleInvolution(t *testing.T) {
	// Arrange
	original := Task{
		ID:          uuid.New(),
		Title:       "Revisar PR",
		Description: "backend",
		DueDate:     "2025-12-01",
		Status:      TaskPending,
		CreatedAt:   time.Date(2025, 11, 1, 10, 0, 0, 0, time.UTC),
		Priority:    PriorityLow,
	}
	task := original

	// Act
	task.Toggle()
	afterOne := task
	task.Toggle()

	// Assert
	assert.Equal(t, TaskCompleted, afterOne.Status, "El primer toggle debería completar la tarea")
	assert.Equal(t, original, task, "Dos toggles deberían devolver la tarea original")
}

func TestTask_IsOverdue(t *testing.T) {
	today := time.Date(2025, 8, 10, 15, 30, 0, 0, time.UTC)

	cases := []struct {
		name string
		task Task
		want bool
	}{
		{"pendiente vencida", Task{Status: TaskPending, DueDate: "2025-08-09"}, true},
		{"pendiente hoy", Task{Status: TaskPending, DueDate: "2025-08-10"}, false},
		{"pendiente futura", Task{Status: TaskPending, DueDate: "2025-08-11"}, false},
		{"completada vencida", Task{Status: TaskCompleted, DueDate: "2025-08-09"}, false},
		{"fecha ilegible", Task{Status: TaskPending, DueDate: "mañana"}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.task.IsOverdue(today))
		})
	}
}

func TestTask_IsOverdue_UsesLocalCalendarDay(t *testing.T) {
	// 23:30 del día 10 en UTC-5 ya es día 11 en UTC; cuenta el día local.
	loc := time.FixedZone("UTC-5", -5*60*60)
	today := time.Date(2025, 8, 10, 23, 30, 0, 0, loc)

	task := Task{Status: TaskPending, DueDate: "2025-08-10"}

	assert.False(t, task.IsOverdue(today))
}

func TestTaskPriority_OrDefault(t *testing.T) {
	assert.Equal(t, PriorityMedium, TaskPriority("").OrDefault())
	assert.Equal(t, PriorityHigh, PriorityHigh.OrDefault())
	assert.False(t, TaskPriority("urgent").Valid())
}

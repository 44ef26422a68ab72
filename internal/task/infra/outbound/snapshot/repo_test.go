package snapshot

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davicafu/taskboard/internal/mocks"
	taskDomain "github.com/davicafu/taskboard/internal/task/domain"
)

func TestRepo_RoundTrip(t *testing.T) {
	// Arrange
	slot := mocks.NewFlakySlot()
	repo := NewRepo(slot, "")
	ctx := context.Background()
	tasks := []taskDomain.Task{
		{
			ID:        uuid.New(),
			Title:     "A",
			DueDate:   "2025-12-01",
			Status:    taskDomain.TaskPending,
			CreatedAt: time.Date(2025, 11, 1, 8, 0, 0, 0, time.UTC),
			Priority:  taskDomain.PriorityHigh,
		},
		{
			ID:        uuid.New(),
			Title:     "B",
			DueDate:   "2025-12-02",
			Status:    taskDomain.TaskCompleted,
			CreatedAt: time.Date(2025, 11, 2, 8, 0, 0, 0, time.UTC),
			Priority:  taskDomain.PriorityLow,
		},
	}

	// Act
	require.NoError(t, repo.Write(ctx, tasks))
	got, err := repo.Read(ctx)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, tasks, got)
	_, ok := slot.Raw(DefaultSlotName)
	assert.True(t, ok, "Sin nombre se usa el slot por defecto")
}

func TestRepo_ReadEmpty(t *testing.T) {
	ctx := context.Background()

	cases := map[string][]byte{
		"vacío":    []byte(""),
		"espacios": []byte("  \n"),
		"null":     []byte("null"),
		"array":    []byte("[]"),
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			slot := mocks.NewFlakySlot()
			slot.Seed("tasks", raw)

			_, err := NewRepo(slot, "tasks").Read(ctx)

			assert.ErrorIs(t, err, taskDomain.ErrEmptySnapshot)
		})
	}

	t.Run("ausente", func(t *testing.T) {
		_, err := NewRepo(mocks.NewFlakySlot(), "tasks").Read(ctx)
		assert.ErrorIs(t, err, taskDomain.ErrEmptySnapshot)
	})
}

func TestRepo_ReadCorrupt(t *testing.T) {
	ctx := context.Background()

	for _, raw := range []string{`{not json`, `{"id":"x"}`, `"texto"`, `[1,2]`} {
		slot := mocks.NewFlakySlot()
		slot.Seed("tasks", []byte(raw))

		_, err := NewRepo(slot, "tasks").Read(ctx)

		assert.ErrorIs(t, err, taskDomain.ErrCorruptSnapshot, raw)
	}
}

func TestRepo_BackendErrorsAreWrapped(t *testing.T) {
	slot := mocks.NewFlakySlot()
	slot.FailGet = true
	slot.FailPut = true
	repo := NewRepo(slot, "tasks")

	_, err := repo.Read(context.Background())
	assert.ErrorIs(t, err, mocks.ErrSlotDown)
	assert.NotErrorIs(t, err, taskDomain.ErrEmptySnapshot)

	err = repo.Write(context.Background(), nil)
	assert.ErrorIs(t, err, mocks.ErrSlotDown)
}

func TestRepo_WriteNilAsEmptyArray(t *testing.T) {
	slot := mocks.NewFlakySlot()

	require.NoError(t, NewRepo(slot, "tasks").Write(context.Background(), nil))

	raw, _ := slot.Raw("tasks")
	assert.Equal(t, "[]", string(raw))
}

package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormValidator_Valid(t *testing.T) {
	fv := NewFormValidator()

	draft, err := fv.Validate(RawInput{Title: "  X  ", Description: " libre ", DueDate: "2025-12-01"})

	require.NoError(t, err)
	assert.Equal(t, "X", draft.Title)
	assert.Equal(t, " libre ", draft.Description, "La descripción no se recorta")
	assert.Equal(t, "2025-12-01", draft.DueDate)
	assert.Equal(t, PriorityMedium, draft.Priority)
}

func TestFormValidator_FirstFailureWins(t *testing.T) {
	fv := NewFormValidator()

	cases := []struct {
		name  string
		input RawInput
		field string
		msg   string
	}{
		{"todo vacío", RawInput{}, "title", "Title is required."},
		{"solo espacios", RawInput{Title: "   ", DueDate: "2025-12-01"}, "title", "Title is required."},
		{"sin fecha", RawInput{Title: "X"}, "dueDate", "Due date is required."},
		{"fecha mal formada", RawInput{Title: "X", DueDate: "01/12/2025"}, "dueDate", "Due date must be a valid date (YYYY-MM-DD)."},
		{"prioridad desconocida", RawInput{Title: "X", DueDate: "2025-12-01", Priority: "urgent"}, "priority", "Priority must be low, medium or high."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := fv.Validate(tc.input)

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidTask)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tc.field, verr.Field)
			assert.Equal(t, tc.msg, verr.Error())
		})
	}
}

func TestFormValidator_KeepsExplicitPriority(t *testing.T) {
	draft, err := NewFormValidator().Validate(RawInput{Title: "X", DueDate: "2025-12-01", Priority: "low"})

	require.NoError(t, err)
	assert.Equal(t, PriorityLow, draft.Priority)
}

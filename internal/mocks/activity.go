package mocks

import (
	"context"

	taskDomain "github.com/davicafu/taskboard/internal/task/domain"
	"github.com/stretchr/testify/mock"
)

// MockActivityRepository simula el registro de actividad.
type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) LogBatch(ctx context.Context, records []taskDomain.ActivityRecord) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

var _ taskDomain.TaskActivityRepository = (*MockActivityRepository)(nil)

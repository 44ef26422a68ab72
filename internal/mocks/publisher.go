package mocks

import (
	"context"
	"encoding/json"
	"sync"

	sharedEvents "github.com/davicafu/taskboard/internal/shared/events"
	"github.com/stretchr/testify/mock"
)

// MockPublisher simula un publisher con testify/mock.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event interface{}) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// RecordingPublisher guarda los eventos de integración publicados, en orden.
type RecordingPublisher struct {
	mu        sync.Mutex
	Published []sharedEvents.IntegrationEvent
}

func (p *RecordingPublisher) Publish(ctx context.Context, event interface{}) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	var ie sharedEvents.IntegrationEvent
	if err := json.Unmarshal(data, &ie); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.Published = append(p.Published, ie)
	return nil
}

// Types devuelve los tipos de evento publicados en orden.
func (p *RecordingPublisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	types := make([]string, len(p.Published))
	for i, e := range p.Published {
		types[i] = e.Type
	}
	return types
}

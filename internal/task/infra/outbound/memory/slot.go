package memory

import (
	"context"
	"sync"

	taskDomain "github.com/davicafu/taskboard/internal/task/domain"
)

// Slot guarda los valores en un mapa. Sirve de backend "memory" y para tests.
type Slot struct {
	mu     sync.RWMutex
	values map[string][]byte
	writes int
}

func NewSlot() *Slot {
	return &Slot{values: make(map[string][]byte)}
}

func (s *Slot) Get(ctx context.Context, name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[name]
	if !ok {
		return nil, taskDomain.ErrSlotNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (s *Slot) Put(ctx context.Context, name string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := make([]byte, len(value))
	copy(v, value)
	s.values[name] = v
	s.writes++
	return nil
}

// WriteCount devuelve cuántas veces se ha llamado a Put.
func (s *Slot) WriteCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}

var _ taskDomain.Slot = (*Slot)(nil)

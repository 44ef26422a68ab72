package mocks

import (
	"context"
	"errors"
	"sync"

	taskDomain "github.com/davicafu/taskboard/internal/task/domain"
)

var ErrSlotDown = errors.New("slot backend down")

// FlakySlot es un slot en memoria al que se le pueden forzar fallos.
type FlakySlot struct {
	mu       sync.Mutex
	values   map[string][]byte
	FailGet  bool
	FailPut  bool
	GetCalls int
	PutCalls int
}

func NewFlakySlot() *FlakySlot {
	return &FlakySlot{values: make(map[string][]byte)}
}

// Seed escribe un valor crudo directamente, sin pasar por Put.
func (s *FlakySlot) Seed(name string, value []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[name] = value
}

func (s *FlakySlot) Raw(name string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[name]
	return v, ok
}

func (s *FlakySlot) Get(ctx context.Context, name string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.GetCalls++
	if s.FailGet {
		return nil, ErrSlotDown
	}
	v, ok := s.values[name]
	if !ok {
		return nil, taskDomain.ErrSlotNotFound
	}
	return v, nil
}

func (s *FlakySlot) Put(ctx context.Context, name string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.PutCalls++
	if s.FailPut {
		return ErrSlotDown
	}
	s.values[name] = append([]byte(nil), value...)
	return nil
}

var _ taskDomain.Slot = (*FlakySlot)(nil)

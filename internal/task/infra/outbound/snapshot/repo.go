// Package snapshot serializa el tablero completo en un único slot durable.
package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	taskDomain "github.com/davicafu/taskboard/internal/task/domain"
)

// DefaultSlotName es el nombre del slot donde vive el tablero.
const DefaultSlotName = "tasks"

// Repo implementa taskDomain.SnapshotRepository sobre cualquier Slot.
type Repo struct {
	slot taskDomain.Slot
	name string
}

func NewRepo(slot taskDomain.Slot, name string) *Repo {
	if name == "" {
		name = DefaultSlotName
	}
	return &Repo{slot: slot, name: name}
}

// Read decodifica el slot. Ausente, vacío o "[]" devuelve ErrEmptySnapshot;
// cualquier cosa que no sea un array de tareas devuelve ErrCorruptSnapshot.
// Los errores de I/O del backend se devuelven envueltos tal cual.
func (r *Repo) Read(ctx context.Context) ([]taskDomain.Task, error) {
	data, err := r.slot.Get(ctx, r.name)
	if err != nil {
		if errors.Is(err, taskDomain.ErrSlotNotFound) {
			return nil, taskDomain.ErrEmptySnapshot
		}
		return nil, fmt.Errorf("read slot %q: %w", r.name, err)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, taskDomain.ErrEmptySnapshot
	}

	var tasks []taskDomain.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("%w: %v", taskDomain.ErrCorruptSnapshot, err)
	}
	if len(tasks) == 0 {
		return nil, taskDomain.ErrEmptySnapshot
	}

	return tasks, nil
}

// Write sobrescribe el slot con la lista completa.
func (r *Repo) Write(ctx context.Context, tasks []taskDomain.Task) error {
	if tasks == nil {
		tasks = []taskDomain.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := r.slot.Put(ctx, r.name, data); err != nil {
		return fmt.Errorf("write slot %q: %w", r.name, err)
	}
	return nil
}

// Verificación estática de la interfaz.
var _ taskDomain.SnapshotRepository = (*Repo)(nil)

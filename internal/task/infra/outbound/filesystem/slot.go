package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	taskDomain "github.com/davicafu/taskboard/internal/task/domain"
)

// JSONFileSlot guarda cada slot en un fichero <dir>/<name>.json.
type JSONFileSlot struct {
	dir string
	mu  sync.Mutex // Evita escrituras cruzadas sobre el mismo fichero.
}

func NewJSONFileSlot(dir string) *JSONFileSlot {
	return &JSONFileSlot{dir: dir}
}

func (s *JSONFileSlot) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// Get lee el fichero del slot. Si no existe devuelve ErrSlotNotFound.
func (s *JSONFileSlot) Get(ctx context.Context, name string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, taskDomain.ErrSlotNotFound
		}
		return nil, err
	}
	return data, nil
}

// Put escribe en un fichero temporal y lo renombra, así un corte a mitad
// de escritura nunca deja un snapshot a medias.
func (s *JSONFileSlot) Put(ctx context.Context, name string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create slot dir: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) // Se ignora si el Rename() fue exitoso

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), s.path(name))
}

var _ taskDomain.Slot = (*JSONFileSlot)(nil)

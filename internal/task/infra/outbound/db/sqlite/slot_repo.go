package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// _ "github.com/mattn/go-sqlite3" // better performance but requires gcc
	_ "modernc.org/sqlite"

	taskDomain "github.com/davicafu/taskboard/internal/task/domain"
)

// SlotRepoSQLite guarda los slots en la tabla 'slots' de SQLite.
type SlotRepoSQLite struct {
	db *sql.DB
}

func NewSlotRepoSQLite(db *sql.DB) *SlotRepoSQLite {
	return &SlotRepoSQLite{db: db}
}

func (r *SlotRepoSQLite) Get(ctx context.Context, name string) ([]byte, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM slots WHERE name = ?`, name).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, taskDomain.ErrSlotNotFound
		}
		return nil, fmt.Errorf("db scan error: %w", err)
	}
	return []byte(value), nil
}

// Put hace un upsert del valor del slot.
func (r *SlotRepoSQLite) Put(ctx context.Context, name string, value []byte) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO slots (name, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		name, string(value), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// ------------------ Inicialización de DB ------------------

// InitSQLite crea la tabla slots si no existe
func InitSQLite(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS slots (
            name TEXT PRIMARY KEY,
            value TEXT NOT NULL,
            updated_at DATETIME NOT NULL
        )
    `)
	return err
}

var _ taskDomain.Slot = (*SlotRepoSQLite)(nil)

package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	taskDomain "github.com/davicafu/taskboard/internal/task/domain"

	_ "github.com/jackc/pgx/v5/stdlib" // Driver de PostgreSQL
)

// SlotRepoPostgres implementa taskDomain.Slot para PostgreSQL.
type SlotRepoPostgres struct {
	db *sql.DB
}

func NewSlotRepoPostgres(db *sql.DB) *SlotRepoPostgres {
	return &SlotRepoPostgres{db: db}
}

func (r *SlotRepoPostgres) Get(ctx context.Context, name string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM slots WHERE name=$1`, name).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, taskDomain.ErrSlotNotFound
		}
		return nil, fmt.Errorf("db scan error: %w", err)
	}
	return value, nil
}

func (r *SlotRepoPostgres) Put(ctx context.Context, name string, value []byte) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO slots (name, value, updated_at) VALUES ($1, $2, $3)
		 ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		name, value, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// ------------------ Inicialización del Esquema ------------------

// InitPostgresSlotSchema crea la tabla 'slots' si no existe.
// El valor se guarda como BYTEA: un snapshot corrupto se tiene que poder leer
// para que el tablero lo detecte y siembre las tareas por defecto.
func InitPostgresSlotSchema(db *sql.DB) error {
	_, err := db.Exec(`
    CREATE TABLE IF NOT EXISTS slots (
        name TEXT PRIMARY KEY,
        value BYTEA NOT NULL,
        updated_at TIMESTAMP WITH TIME ZONE NOT NULL
    )`)
	if err != nil {
		return fmt.Errorf("failed to create slots table: %w", err)
	}
	return nil
}

var _ taskDomain.Slot = (*SlotRepoPostgres)(nil)

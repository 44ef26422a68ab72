package clickhouse

import (
	"context"
	"database/sql"
	"fmt"

	taskDomain "github.com/davicafu/taskboard/internal/task/domain"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// TaskActivityRepo implementa TaskActivityRepository para ClickHouse.
type TaskActivityRepo struct {
	db *sql.DB
}

// NewTaskActivityRepo abre la conexión y comprueba que responde.
func NewTaskActivityRepo(addr string, dbName string) (*TaskActivityRepo, error) {
	conn := clickhouse.OpenDB(&clickhouse.Options{
		Addr: []string{addr},
		Auth: clickhouse.Auth{
			Database: dbName,
		},
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
	})

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("could not ping clickhouse: %w", err)
	}

	return &TaskActivityRepo{db: conn}, nil
}

// LogBatch inserta un lote de registros de actividad. ClickHouse funciona mejor con inserciones en lotes.
func (r *TaskActivityRepo) LogBatch(ctx context.Context, records []taskDomain.ActivityRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO task_activity (event_type, id, title, status, priority, due_date, position, created_at, event_time)")
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err := stmt.ExecContext(
			ctx,
			rec.EventType,
			rec.Task.ID,
			rec.Task.Title,
			string(rec.Task.Status),
			string(rec.Task.Priority),
			rec.Task.DueDate,
			int32(rec.Position),
			rec.Task.CreatedAt,
			rec.EventTime,
		); err != nil {
			// Si un registro falla, hacemos rollback de todo el lote.
			tx.Rollback()
			return fmt.Errorf("failed to exec statement for task %s: %w", rec.Task.ID, err)
		}
	}

	return tx.Commit()
}

// InitSchema crea la tabla en ClickHouse si no existe.
// Se particiona por mes y se ordena por tipo de evento y tiempo.
func (r *TaskActivityRepo) InitSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS task_activity (
			event_type  String,
			id          UUID,
			title       String,
			status      String,
			priority    String,
			due_date    String,
			position    Int32,
			created_at  DateTime64(3),
			event_time  DateTime64(3)
		) ENGINE = MergeTree()
		PARTITION BY toYYYYMM(event_time)
		ORDER BY (event_type, event_time);
	`
	_, err := r.db.Exec(query)
	return err
}

func (r *TaskActivityRepo) Close() error {
	return r.db.Close()
}

// Verificación estática de la interfaz.
var _ taskDomain.TaskActivityRepository = (*TaskActivityRepo)(nil)

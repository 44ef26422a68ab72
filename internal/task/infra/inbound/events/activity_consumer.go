// en internal/task/infra/inbound/events/activity_consumer.go
package events

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	sharedEvents "github.com/davicafu/taskboard/internal/shared/events"
	sharedUtils "github.com/davicafu/taskboard/internal/shared/infra/utils"
	taskDomain "github.com/davicafu/taskboard/internal/task/domain"
)

// ActivityConsumer escucha el change feed del tablero y lo vuelca en el
// registro de actividad. Sin repositorio solo deja traza en el log.
type ActivityConsumer struct {
	repo     taskDomain.TaskActivityRepository
	registry map[string]sharedEvents.EventMetadata
	log      *zap.Logger
}

func NewActivityConsumer(repo taskDomain.TaskActivityRepository, log *zap.Logger) *ActivityConsumer {
	return &ActivityConsumer{
		repo:     repo,
		registry: taskDomain.NewEventRegistry(),
		log:      log,
	}
}

// HandleMessage es el punto de entrada para un nuevo mensaje/evento.
func (c *ActivityConsumer) HandleMessage(ctx context.Context, key string, payload []byte) {
	var base sharedEvents.IntegrationEvent
	if err := json.Unmarshal(payload, &base); err != nil {
		c.log.Warn("Failed to unmarshal integration event", zap.String("key", key), zap.Error(err))
		return
	}

	if _, ok := c.registry[base.Type]; !ok {
		c.log.Warn("Unknown task event type", zap.String("type", base.Type), zap.String("key", key))
		return
	}

	sharedUtils.UnmarshalAndHandle[taskDomain.TaskChanged](c.log, base.Data, func(evt taskDomain.TaskChanged) {
		record := taskDomain.ActivityRecord{
			EventType: base.Type,
			Task:      evt.Task,
			Position:  evt.Position(),
			EventTime: base.Timestamp,
		}
		c.record(ctx, record)
	})
}

func (c *ActivityConsumer) record(ctx context.Context, rec taskDomain.ActivityRecord) {
	if c.repo == nil {
		c.log.Info("Task activity",
			zap.String("event_type", rec.EventType),
			zap.String("task_id", rec.Task.ID.String()),
			zap.Int("position", rec.Position),
		)
		return
	}

	logCtx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()

	if err := c.repo.LogBatch(logCtx, []taskDomain.ActivityRecord{rec}); err != nil {
		c.log.Warn("Failed to record task activity",
			zap.String("event_type", rec.EventType),
			zap.String("task_id", rec.Task.ID.String()),
			zap.Error(err),
		)
	}
}

// BackgroundConsumerChan inicia una goroutine para consumir eventos de un canal.
func BackgroundConsumerChan(ctx context.Context, ch <-chan interface{}, consumer *ActivityConsumer) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				consumer.log.Info("ActivityConsumer stopped")
				return
			case msg := <-ch:
				// El bus en memoria entrega el evento ya serializado.
				if payload, ok := msg.([]byte); ok {
					consumer.HandleMessage(ctx, "", payload)
				}
			}
		}
	}()
}

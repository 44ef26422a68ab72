package bus

import "context"

// Keyer lo implementan los eventos que necesitan una clave de partición estable.
type Keyer interface {
	PartitionKey() string
}

// La semántica de topic/nombre y formato del payload la decides en los adapters.
type EventPublisher interface {
	Publish(ctx context.Context, event interface{}) error
}

package events

import (
	"encoding/json"
	"reflect"
	"time"
)

// Base de todos los eventos de integración
type IntegrationEvent struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Key       string          `json:"key,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"` // contenido específico del evento
}

// PartitionKey permite que los publishers particionen por la clave del agregado.
func (e IntegrationEvent) PartitionKey() string {
	return e.Key
}

type EventMetadata struct {
	Type  reflect.Type
	Topic string
}

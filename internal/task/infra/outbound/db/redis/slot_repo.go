package redis

import (
	"context"

	goredis "github.com/go-redis/redis/v8"

	taskDomain "github.com/davicafu/taskboard/internal/task/domain"
)

// SlotRepoRedis guarda cada slot en una clave "slot:<name>" sin caducidad.
type SlotRepoRedis struct {
	client *goredis.Client
}

func NewSlotRepoRedis(client *goredis.Client) *SlotRepoRedis {
	return &SlotRepoRedis{client: client}
}

func slotKey(name string) string {
	return "slot:" + name
}

func (r *SlotRepoRedis) Get(ctx context.Context, name string) ([]byte, error) {
	data, err := r.client.Get(ctx, slotKey(name)).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, taskDomain.ErrSlotNotFound
		}
		return nil, err
	}
	return data, nil
}

func (r *SlotRepoRedis) Put(ctx context.Context, name string, value []byte) error {
	return r.client.Set(ctx, slotKey(name), value, 0).Err()
}

var _ taskDomain.Slot = (*SlotRepoRedis)(nil)

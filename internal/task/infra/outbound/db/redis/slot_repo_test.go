package redis

import (
	"context"
	"os"
	"testing"

	goredis "github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	taskDomain "github.com/davicafu/taskboard/internal/task/domain"
)

func TestSlotRepoRedis_Integration(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR no está configurada, saltando test de integración con Redis")
	}

	client := goredis.NewClient(&goredis.Options{Addr: addr})
	defer client.Close()
	ctx := context.Background()
	require.NoError(t, client.Ping(ctx).Err())

	repo := NewSlotRepoRedis(client)
	name := "test-" + uuid.NewString()
	defer client.Del(ctx, slotKey(name))

	_, err := repo.Get(ctx, name)
	assert.ErrorIs(t, err, taskDomain.ErrSlotNotFound)

	require.NoError(t, repo.Put(ctx, name, []byte(`[]`)))
	got, err := repo.Get(ctx, name)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))
}

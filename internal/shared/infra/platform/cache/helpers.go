package cache

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// AsyncCacheSet actualiza caché en background sin bloquear
func AsyncCacheSet(cache Cache, key string, value interface{}, ttl int, log *zap.Logger) {
	if cache == nil {
		return
	}

	go func() {
		// Contexto propio: la escritura en caché no depende de la petición que la originó.
		cacheCtx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
		defer cancel()

		if err := cache.Set(cacheCtx, key, value, ttl); err != nil {
			log.Warn("Cache update failed",
				zap.String("key", key),
				zap.Error(err))
		}
	}()
}

// GetOrMiss consulta la caché y trata cualquier error como un 'miss', dejando traza.
func GetOrMiss(ctx context.Context, cache Cache, key string, dest interface{}, log *zap.Logger) bool {
	if cache == nil {
		return false
	}
	hit, err := cache.Get(ctx, key, dest)
	if err != nil {
		log.Warn("Cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return hit
}

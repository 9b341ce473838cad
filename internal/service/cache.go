package service

import (
	"context"
	"log"
	"time"

	"solarscope/internal/repository"
)

// cacheGet/cacheSet — общий best-effort доступ к кэшу читающих методов.
// cacheRepo == nil (ingest-бинарь без Redis) просто выключает кэширование.

func cacheGet(ctx context.Context, cacheRepo repository.CacheRepository, key string, dest interface{}) bool {
	if cacheRepo == nil {
		return false
	}
	ok, err := cacheRepo.GetJSON(ctx, key, dest)
	return err == nil && ok
}

func cacheSet(ctx context.Context, cacheRepo repository.CacheRepository, key string, value interface{}, ttl time.Duration) {
	if cacheRepo == nil {
		return
	}
	if err := cacheRepo.SetJSON(ctx, key, value, ttl); err != nil {
		log.Printf("Failed to cache %s: %v", key, err)
	}
}

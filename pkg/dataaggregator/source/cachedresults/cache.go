package cachedresults

import (
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/redis/go-redis/v9"
)

const defaultExpiration = 90 * time.Minute

type Cache struct {
	Cache *cache.Cache[string]
}

func (c *Cache) Setup(client *redis.Client) {
	redisStore := redisstore.NewRedis(client, store.WithExpiration(defaultExpiration))

	c.Cache = cache.New[string](redisStore)
}

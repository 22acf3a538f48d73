package geocode

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	Logger "github.com/wantsapp/wants-backend/utils/log"
)

const geocodeCacheTTL = 24 * time.Hour

// CachedGeocoder caches successful geocode resolutions in redis. Zero-result
// and failed lookups are not cached so a typo fixed upstream resolves
// immediately.
type CachedGeocoder struct {
	inner  Geocoder
	client *redis.Client
}

func NewCachedGeocoder(inner Geocoder) *CachedGeocoder {
	return &CachedGeocoder{
		inner: inner,
		client: redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%s", os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT")),
			Password: os.Getenv("REDIS_PASSWD"),
			DB:       0, // use default DB
		}),
	}
}

func geocodeCacheKey(address string) string {
	sum := md5.Sum([]byte(address))
	return "geocode_" + hex.EncodeToString(sum[:])
}

func (g *CachedGeocoder) Resolve(ctx context.Context, address string) (*Result, error) {
	key := geocodeCacheKey(address)

	cached, err := g.client.Get(ctx, key).Result()
	if err == nil {
		var result Result
		if err := json.Unmarshal([]byte(cached), &result); err == nil {
			return &result, nil
		}
		// Corrupt cache entry, fall through to the real geocoder.
		Logger.Log.Warn("dropping corrupt geocode cache entry for key ", key)
		g.client.Del(ctx, key)
	} else if err != redis.Nil {
		return nil, err
	}

	result, err := g.inner.Resolve(ctx, address)
	if err != nil || result == nil {
		return result, err
	}

	encoded, err := json.Marshal(result)
	if err == nil {
		g.client.Set(ctx, key, encoded, geocodeCacheTTL)
	}
	return result, nil
}

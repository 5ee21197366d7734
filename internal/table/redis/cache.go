package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis"
	"github.com/golang/glog"
	"github.com/krancour/memberadmin"
	"github.com/krancour/memberadmin/internal/table"
	"github.com/pkg/errors"
)

// DefaultKey is the key under which cached members are stored when no other
// key is specified.
const DefaultKey = "memberadmin:members"

type cachingLoader struct {
	redisClient *redis.Client
	key         string
	ttl         time.Duration
	next        table.Loader
	logf        table.LogFunc
}

// NewCachingLoader returns a table.Loader that serves members from Redis when
// they are present under the specified key. On a miss, members are obtained
// from the next Loader and written to Redis with the specified TTL. A TTL of
// zero means cached members never expire. Redis being unavailable is logged
// and does not prevent members from being loaded.
func NewCachingLoader(
	redisClient *redis.Client,
	key string,
	ttl time.Duration,
	next table.Loader,
	logf table.LogFunc,
) table.Loader {
	if key == "" {
		key = DefaultKey
	}
	if logf == nil {
		logf = glog.Warningf
	}
	return &cachingLoader{
		redisClient: redisClient,
		key:         key,
		ttl:         ttl,
		next:        next,
		logf:        logf,
	}
}

func (c *cachingLoader) Load(ctx context.Context) ([]memberadmin.Member, error) {
	if members, ok := c.cached(); ok {
		return members, nil
	}
	members, err := c.next.Load(ctx)
	if err != nil {
		return nil, err
	}
	membersBytes, err := json.Marshal(members)
	if err != nil {
		c.logf("error marshaling members for cache: %s", err)
		return members, nil
	}
	if err := c.redisClient.Set(c.key, membersBytes, c.ttl).Err(); err != nil {
		c.logf(
			"%s",
			errors.Wrapf(err, "error caching members under key %q", c.key),
		)
	}
	return members, nil
}

func (c *cachingLoader) cached() ([]memberadmin.Member, bool) {
	membersBytes, err := c.redisClient.Get(c.key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logf(
			"%s",
			errors.Wrapf(err, "error reading cached members under key %q", c.key),
		)
		return nil, false
	}
	members := []memberadmin.Member{}
	if err := json.Unmarshal(membersBytes, &members); err != nil {
		c.logf(
			"%s",
			errors.Wrapf(err, "error decoding cached members under key %q", c.key),
		)
		return nil, false
	}
	return members, true
}

// Invalidate removes any cached members so that the next Load consults the
// underlying Loader.
func Invalidate(redisClient *redis.Client, key string) error {
	if key == "" {
		key = DefaultKey
	}
	if err := redisClient.Del(key).Err(); err != nil {
		return errors.Wrapf(err, "error deleting cached members under key %q", key)
	}
	return nil
}

package source

import (
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/krancour/memberadmin/internal/mongodb"
	"github.com/krancour/memberadmin/internal/redis"
	"github.com/krancour/memberadmin/internal/table"
	tableMongodb "github.com/krancour/memberadmin/internal/table/mongodb"
	tableRedis "github.com/krancour/memberadmin/internal/table/redis"
	"github.com/krancour/memberadmin/internal/table/web"
	"github.com/pkg/errors"
)

const envconfigPrefix = "MEMBERS_SOURCE"

// Type enumerates the supported kinds of member source.
type Type string

const (
	// TypeWeb loads members from a JSON array served over HTTP(S).
	TypeWeb Type = "web"
	// TypeMongoDB loads members from a MongoDB collection.
	TypeMongoDB Type = "mongodb"
)

type config struct {
	Type          Type          `envconfig:"TYPE" default:"web"`
	URL           string        `envconfig:"URL"`
	AllowInsecure bool          `envconfig:"ALLOW_INSECURE"`
	Timeout       time.Duration `envconfig:"TIMEOUT" default:"10s"`
	MaxAttempts   uint8         `envconfig:"MAX_ATTEMPTS" default:"3"`
	MaxBackoff    time.Duration `envconfig:"MAX_BACKOFF" default:"5s"`
	CacheEnabled  bool          `envconfig:"CACHE_ENABLED"`
	CacheKey      string        `envconfig:"CACHE_KEY" default:"memberadmin:members"` // nolint: lll
	CacheTTL      time.Duration `envconfig:"CACHE_TTL" default:"5m"`
}

func getConfigFromEnvironment() (config, error) {
	c := config{}
	if err := envconfig.Process(envconfigPrefix, &c); err != nil {
		return c, errors.Wrap(
			err,
			"error getting member source configuration from environment",
		)
	}
	switch c.Type {
	case TypeWeb, TypeMongoDB:
	default:
		return c, errors.Errorf(
			"unrecognized member source type %q; expected %q or %q",
			c.Type,
			TypeWeb,
			TypeMongoDB,
		)
	}
	return c, nil
}

// GetLoaderFromEnvironment returns the table.Loader described by environment
// variables. When caching is enabled, the loader is wrapped so that members
// are served from Redis whenever possible.
func GetLoaderFromEnvironment() (table.Loader, error) {
	c, err := getConfigFromEnvironment()
	if err != nil {
		return nil, err
	}
	var loader table.Loader
	switch c.Type {
	case TypeMongoDB:
		database, err := mongodb.Database()
		if err != nil {
			return nil, err
		}
		if loader, err = tableMongodb.NewLoader(database); err != nil {
			return nil, err
		}
	default:
		if loader, err = web.NewLoader(c.webLoaderConfig()); err != nil {
			return nil, err
		}
	}
	if !c.CacheEnabled {
		return loader, nil
	}
	redisClient, err := redis.Client()
	if err != nil {
		return nil, err
	}
	return tableRedis.NewCachingLoader(
		redisClient,
		c.CacheKey,
		c.CacheTTL,
		loader,
		nil,
	), nil
}

func (c config) webLoaderConfig() web.LoaderConfig {
	loaderConfig := web.NewLoaderConfigWithDefaults()
	if c.URL != "" {
		loaderConfig.URL = c.URL
	}
	loaderConfig.AllowInsecure = c.AllowInsecure
	loaderConfig.Timeout = c.Timeout
	loaderConfig.MaxAttempts = c.MaxAttempts
	loaderConfig.MaxBackoff = c.MaxBackoff
	return loaderConfig
}

// InvalidateCacheFromEnvironment discards any members cached for the source
// described by environment variables so that the next load consults the
// source itself. It does nothing when caching is disabled.
func InvalidateCacheFromEnvironment() error {
	c, err := getConfigFromEnvironment()
	if err != nil {
		return err
	}
	if !c.CacheEnabled {
		return nil
	}
	redisClient, err := redis.Client()
	if err != nil {
		return err
	}
	defer redisClient.Close()
	return tableRedis.Invalidate(redisClient, c.CacheKey)
}

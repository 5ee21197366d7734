package redis

import (
	"crypto/tls"
	"fmt"

	"github.com/go-redis/redis"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

const envconfigPrefix = "REDIS"

// config represents common configuration options for a Redis connection
type config struct {
	Host       string `envconfig:"HOST" required:"true"`
	Port       int    `envconfig:"PORT" default:"6379"`
	Password   string `envconfig:"PASSWORD"`
	DB         int    `envconfig:"DB"`
	EnableTLS  bool   `envconfig:"ENABLE_TLS"`
	MaxRetries int    `envconfig:"MAX_RETRIES" default:"5"`
}

// Client returns a connection to a Redis database specified by environment
// variables. The connection is verified before it is returned.
func Client() (*redis.Client, error) {
	c := config{}
	if err := envconfig.Process(envconfigPrefix, &c); err != nil {
		return nil, errors.Wrap(
			err,
			"error getting redis configuration from environment",
		)
	}
	redisClient := redis.NewClient(c.options())
	if err := redisClient.Ping().Err(); err != nil {
		return nil, errors.Wrapf(
			err,
			"error pinging redis at %s",
			c.address(),
		)
	}
	return redisClient, nil
}

func (c config) address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c config) options() *redis.Options {
	redisOpts := &redis.Options{
		Addr:       c.address(),
		Password:   c.Password,
		DB:         c.DB,
		MaxRetries: c.MaxRetries,
	}
	if c.EnableTLS {
		redisOpts.TLSConfig = &tls.Config{
			ServerName: c.Host,
		}
	}
	return redisOpts
}

package sessions

import (
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

const envconfigPrefix = "API_SERVER"

// Config represents configuration options for table sessions.
type Config interface {
	// TTL returns how long a session may go unused before it expires. Zero
	// means sessions never expire.
	TTL() time.Duration
}

type config struct {
	TTLAttr time.Duration `envconfig:"SESSION_TTL"`
}

// NewConfigWithDefaults returns a Config object with default values already
// applied. Callers are then free to set custom values for the remaining fields
// and/or override default values.
func NewConfigWithDefaults() Config {
	return &config{TTLAttr: 30 * time.Minute}
}

// GetConfigFromEnvironment returns configuration derived from environment
// variables
func GetConfigFromEnvironment() (Config, error) {
	c := NewConfigWithDefaults().(*config)
	if err := envconfig.Process(envconfigPrefix, c); err != nil {
		return c, errors.Wrap(
			err,
			"error getting session configuration from environment",
		)
	}
	if c.TTLAttr < 0 {
		return c, errors.Errorf(
			"SESSION_TTL must not be negative; got %s",
			c.TTLAttr,
		)
	}
	return c, nil
}

func (c *config) TTL() time.Duration {
	return c.TTLAttr
}

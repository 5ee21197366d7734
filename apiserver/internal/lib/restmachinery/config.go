package restmachinery

import (
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

const envconfigPrefix = "API_SERVER"

// Config represents configuration options for the REST API server.
type Config interface {
	// Port returns the port the server listens on.
	Port() int
	// TLSEnabled returns whether TLS is enabled.
	TLSEnabled() bool
	// TLSCertPath returns the path to a certificate. It is only meaningful when
	// TLS is enabled.
	TLSCertPath() string
	// TLSKeyPath returns the path to a private key. It is only meaningful when
	// TLS is enabled.
	TLSKeyPath() string
	// AllowedOrigins returns the origins permitted to make cross-origin
	// requests. Empty means all origins.
	AllowedOrigins() []string
	// HealthCheckTimeout returns how long each health check may run. Zero
	// means health checks are bounded only by the request.
	HealthCheckTimeout() time.Duration
}

type config struct {
	PortAttr               int           `envconfig:"PORT"`
	TLSEnabledAttr         bool          `envconfig:"TLS_ENABLED"`
	TLSCertPathAttr        string        `envconfig:"TLS_CERT_PATH"`
	TLSKeyPathAttr         string        `envconfig:"TLS_KEY_PATH"`
	AllowedOriginsAttr     []string      `envconfig:"CORS_ALLOWED_ORIGINS"`
	HealthCheckTimeoutAttr time.Duration `envconfig:"HEALTH_CHECK_TIMEOUT"`
}

// NewConfigWithDefaults returns a Config object with default values already
// applied. Callers are then free to set custom values for the remaining fields
// and/or override default values.
func NewConfigWithDefaults() Config {
	return &config{
		PortAttr:               8080,
		HealthCheckTimeoutAttr: 5 * time.Second,
	}
}

// GetConfigFromEnvironment returns configuration derived from environment
// variables
func GetConfigFromEnvironment() (Config, error) {
	c := NewConfigWithDefaults().(*config)
	if err := envconfig.Process(envconfigPrefix, c); err != nil {
		return c, errors.Wrap(
			err,
			"error getting API server configuration from environment",
		)
	}
	if c.TLSEnabledAttr {
		if c.TLSCertPathAttr == "" {
			return c, errors.New(
				"with TLS enabled, a value is required for the " +
					"TLS_CERT_PATH environment variable",
			)
		}
		if c.TLSKeyPathAttr == "" {
			return c, errors.New(
				"with TLS enabled, a value is required for the " +
					"TLS_KEY_PATH environment variable",
			)
		}
	}
	return c, nil
}

func (c *config) Port() int {
	return c.PortAttr
}

func (c *config) TLSEnabled() bool {
	return c.TLSEnabledAttr
}

func (c *config) TLSCertPath() string {
	return c.TLSCertPathAttr
}

func (c *config) TLSKeyPath() string {
	return c.TLSKeyPathAttr
}

func (c *config) AllowedOrigins() []string {
	return c.AllowedOriginsAttr
}

func (c *config) HealthCheckTimeout() time.Duration {
	return c.HealthCheckTimeoutAttr
}

package restmachinery

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewConfigWithDefaults(t *testing.T) {
	c := NewConfigWithDefaults()
	require.Equal(t, 8080, c.Port())
	require.False(t, c.TLSEnabled())
	require.Empty(t, c.AllowedOrigins())
	require.Equal(t, 5*time.Second, c.HealthCheckTimeout())
}

func TestGetConfigFromEnvironment(t *testing.T) {
	testCases := []struct {
		name       string
		setup      func()
		assertions func(Config, error)
	}{
		{
			name: "TLS enabled without cert path",
			setup: func() {
				os.Setenv("API_SERVER_TLS_ENABLED", "true")
			},
			assertions: func(_ Config, err error) {
				require.Error(t, err)
				require.Contains(t, err.Error(), "TLS_CERT_PATH")
			},
		},
		{
			name: "TLS enabled without key path",
			setup: func() {
				os.Setenv("API_SERVER_TLS_ENABLED", "true")
				os.Setenv("API_SERVER_TLS_CERT_PATH", "/app/certs/tls.crt")
			},
			assertions: func(_ Config, err error) {
				require.Error(t, err)
				require.Contains(t, err.Error(), "TLS_KEY_PATH")
			},
		},
		{
			name: "success",
			setup: func() {
				os.Setenv("API_SERVER_PORT", "9090")
				os.Setenv("API_SERVER_TLS_ENABLED", "true")
				os.Setenv("API_SERVER_TLS_CERT_PATH", "/app/certs/tls.crt")
				os.Setenv("API_SERVER_TLS_KEY_PATH", "/app/certs/tls.key")
				os.Setenv("API_SERVER_HEALTH_CHECK_TIMEOUT", "2s")
				os.Setenv(
					"API_SERVER_CORS_ALLOWED_ORIGINS",
					"http://localhost:3000,https://admin.example.com",
				)
			},
			assertions: func(c Config, err error) {
				require.NoError(t, err)
				require.Equal(t, 9090, c.Port())
				require.True(t, c.TLSEnabled())
				require.Equal(t, "/app/certs/tls.crt", c.TLSCertPath())
				require.Equal(t, "/app/certs/tls.key", c.TLSKeyPath())
				require.Equal(
					t,
					[]string{"http://localhost:3000", "https://admin.example.com"},
					c.AllowedOrigins(),
				)
				require.Equal(t, 2*time.Second, c.HealthCheckTimeout())
			},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			unsetAPIServerEnv()
			defer unsetAPIServerEnv()
			testCase.setup()
			c, err := GetConfigFromEnvironment()
			testCase.assertions(c, err)
		})
	}
}

func unsetAPIServerEnv() {
	for _, suffix := range []string{
		"PORT",
		"TLS_ENABLED",
		"TLS_CERT_PATH",
		"TLS_KEY_PATH",
		"CORS_ALLOWED_ORIGINS",
		"HEALTH_CHECK_TIMEOUT",
	} {
		os.Unsetenv(envconfigPrefix + "_" + suffix)
	}
}

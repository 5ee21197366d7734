package restmachinery

import (
	"context"
	"fmt"
	"net/http"
	"sort"

	"github.com/golang/glog"
	"github.com/gorilla/mux"
	"github.com/krancour/memberadmin/internal/file"
	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// Server is an interface for the component that responds to HTTP API requests
type Server interface {
	// ListenAndServe causes the API server to start serving HTTP requests. It
	// will block until an error occurs and will return that error.
	ListenAndServe() error
}

// HealthCheck reports whether some dependency of the API server is usable.
type HealthCheck func(context.Context) error

type healthReport struct {
	Healthy bool `json:"healthy"`
	// Checks maps the name of each dependency to "ok" or to the reason it is
	// unusable.
	Checks map[string]string `json:"checks,omitempty"`
}

type server struct {
	*BaseEndpoints // The server itself exposes health check endpoints
	config         Config
	healthChecks   map[string]HealthCheck
	handler        http.Handler
}

// NewServer returns a REST API server. Its health check endpoint runs every
// provided HealthCheck and reports the server unhealthy if any of them fail.
func NewServer(
	config Config,
	baseEndpoints *BaseEndpoints,
	endpoints []Endpoints,
	healthChecks map[string]HealthCheck,
) Server {
	router := mux.NewRouter()
	router.StrictSlash(true)

	for _, eps := range endpoints {
		eps.Register(router)
	}

	s := &server{
		BaseEndpoints: baseEndpoints,
		config:        config,
		healthChecks:  healthChecks,
		handler: cors.New(
			cors.Options{
				AllowedOrigins: config.AllowedOrigins(),
				AllowedMethods: []string{
					http.MethodDelete,
					http.MethodGet,
					http.MethodPatch,
					http.MethodPost,
					http.MethodPut,
				},
			},
		).Handler(router),
	}

	// Health check
	router.HandleFunc(
		"/healthz",
		s.checkHealth, // No filters applied to this request
	).Methods(http.MethodGet)

	return s
}

func (s *server) ListenAndServe() error {
	address := fmt.Sprintf(":%d", s.config.Port())
	if s.config.TLSEnabled() &&
		file.Exists(s.config.TLSCertPath()) &&
		file.Exists(s.config.TLSKeyPath()) {
		glog.Infof(
			"API server is listening with TLS enabled on 0.0.0.0:%d",
			s.config.Port(),
		)
		return http.ListenAndServeTLS(
			address,
			s.config.TLSCertPath(),
			s.config.TLSKeyPath(),
			s.handler,
		)
	}
	glog.Infof(
		"API server is listening without TLS on 0.0.0.0:%d",
		s.config.Port(),
	)
	return http.ListenAndServe(
		address,
		h2c.NewHandler(s.handler, &http2.Server{}),
	)
}

func (s *server) checkHealth(
	w http.ResponseWriter,
	r *http.Request,
) {
	report := healthReport{
		Healthy: true,
		Checks:  map[string]string{},
	}
	names := make([]string, 0, len(s.healthChecks))
	for name := range s.healthChecks {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := s.runHealthCheck(r.Context(), s.healthChecks[name]); err != nil {
			glog.Warningf("health check %q failed: %s", name, err)
			report.Healthy = false
			report.Checks[name] = err.Error()
			continue
		}
		report.Checks[name] = "ok"
	}
	statusCode := http.StatusOK
	if !report.Healthy {
		statusCode = http.StatusServiceUnavailable
	}
	s.WriteAPIResponse(w, statusCode, report)
}

func (s *server) runHealthCheck(
	ctx context.Context,
	check HealthCheck,
) error {
	if timeout := s.config.HealthCheckTimeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return check(ctx)
}

package main

import (
	"context"

	"github.com/krancour/memberadmin/apiserver/internal/lib/restmachinery"
	"github.com/krancour/memberadmin/apiserver/internal/sessions"
	sessionsREST "github.com/krancour/memberadmin/apiserver/internal/sessions/rest"
	"github.com/krancour/memberadmin/internal/source"
	"github.com/krancour/memberadmin/internal/table"
	"github.com/pkg/errors"
)

func getAPIServerFromEnvironment() (restmachinery.Server, error) {

	// API server config
	apiConfig, err := restmachinery.GetConfigFromEnvironment()
	if err != nil {
		return nil, err
	}

	// Member source
	loader, err := source.GetLoaderFromEnvironment()
	if err != nil {
		return nil, err
	}

	// Sessions
	sessionsConfig, err := sessions.GetConfigFromEnvironment()
	if err != nil {
		return nil, err
	}
	sessionsService := sessions.NewService(
		sessions.NewMemoryStore(sessionsConfig.TTL()),
		loader,
		nil,
	)

	baseEndpoints := &restmachinery.BaseEndpoints{
		RequestLogFilter: restmachinery.NewRequestLogFilter(),
	}

	return restmachinery.NewServer(
		apiConfig,
		baseEndpoints,
		[]restmachinery.Endpoints{
			sessionsREST.NewEndpoints(baseEndpoints, sessionsService),
		},
		map[string]restmachinery.HealthCheck{
			"memberSource": sourceHealthCheck(loader),
		},
	), nil
}

// sourceHealthCheck returns a restmachinery.HealthCheck that fails whenever
// members cannot be loaded from the provided Loader.
func sourceHealthCheck(loader table.Loader) restmachinery.HealthCheck {
	return func(ctx context.Context) error {
		if _, err := loader.Load(ctx); err != nil {
			return errors.Wrap(err, "error loading members")
		}
		return nil
	}
}

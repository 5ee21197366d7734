package restmachinery

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type testEndpoints struct {
	registered bool
}

func (t *testEndpoints) Register(router *mux.Router) {
	t.registered = true
	router.HandleFunc(
		"/v1/foo",
		func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		},
	).Methods(http.MethodGet)
}

func TestNewServer(t *testing.T) {
	eps := &testEndpoints{}
	s := NewServer(
		NewConfigWithDefaults(),
		&BaseEndpoints{},
		[]Endpoints{eps},
		nil,
	)
	require.IsType(t, &server{}, s)
	require.True(t, eps.registered)
	require.NotNil(t, s.(*server).handler)
}

func TestServerRoutes(t *testing.T) {
	s := NewServer(
		NewConfigWithDefaults(),
		&BaseEndpoints{},
		[]Endpoints{&testEndpoints{}},
		nil,
	)
	testServer := httptest.NewServer(s.(*server).handler)
	defer testServer.Close()

	resp, err := http.Get(testServer.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(testServer.URL + "/v1/foo")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusTeapot, resp.StatusCode)

	req, err := http.NewRequest(http.MethodOptions, testServer.URL+"/v1/foo", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	require.Equal(
		t,
		http.MethodPatch,
		resp.Header.Get("Access-Control-Allow-Methods"),
	)
}

func TestServerHealthChecks(t *testing.T) {
	ok := func(context.Context) error { return nil }
	broken := func(context.Context) error {
		return errors.New("connection refused")
	}
	slow := func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}
	cfg := NewConfigWithDefaults().(*config)
	cfg.HealthCheckTimeoutAttr = 10 * time.Millisecond
	testCases := []struct {
		name           string
		healthChecks   map[string]HealthCheck
		expectedCode   int
		expectedReport healthReport
	}{
		{
			name:           "no checks",
			expectedCode:   http.StatusOK,
			expectedReport: healthReport{Healthy: true},
		},
		{
			name:         "all checks pass",
			healthChecks: map[string]HealthCheck{"memberSource": ok},
			expectedCode: http.StatusOK,
			expectedReport: healthReport{
				Healthy: true,
				Checks:  map[string]string{"memberSource": "ok"},
			},
		},
		{
			name: "a check fails",
			healthChecks: map[string]HealthCheck{
				"memberSource": broken,
				"other":        ok,
			},
			expectedCode: http.StatusServiceUnavailable,
			expectedReport: healthReport{
				Checks: map[string]string{
					"memberSource": "connection refused",
					"other":        "ok",
				},
			},
		},
		{
			name:         "a check times out",
			healthChecks: map[string]HealthCheck{"memberSource": slow},
			expectedCode: http.StatusServiceUnavailable,
			expectedReport: healthReport{
				Checks: map[string]string{
					"memberSource": context.DeadlineExceeded.Error(),
				},
			},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			s := NewServer(cfg, &BaseEndpoints{}, nil, testCase.healthChecks)
			rr := httptest.NewRecorder()
			req, err := http.NewRequest(http.MethodGet, "/healthz", nil)
			require.NoError(t, err)
			s.(*server).handler.ServeHTTP(rr, req)
			require.Equal(t, testCase.expectedCode, rr.Code)
			report := healthReport{}
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &report))
			require.Equal(t, testCase.expectedReport, report)
		})
	}
}

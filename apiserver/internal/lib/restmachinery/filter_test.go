package restmachinery

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRequestLogFilter(t *testing.T) {
	var messages []string
	f := &requestLogFilter{
		logf: func(format string, args ...interface{}) {
			messages = append(messages, fmt.Sprintf(format, args...))
		},
	}
	req, err := http.NewRequest(http.MethodDelete, "/v1/sessions/foo", nil)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	handlerCalled := false
	f.Decorate(func(w http.ResponseWriter, _ *http.Request) {
		handlerCalled = true
		w.WriteHeader(http.StatusNotFound)
	})(rr, req)
	require.True(t, handlerCalled)
	require.Equal(t, http.StatusNotFound, rr.Code)
	require.Len(t, messages, 1)
	require.Contains(t, messages[0], "DELETE /v1/sessions/foo 404")
}

func TestRequestLogFilterDefaultsToOK(t *testing.T) {
	var messages []string
	f := &requestLogFilter{
		logf: func(format string, args ...interface{}) {
			messages = append(messages, fmt.Sprintf(format, args...))
		},
	}
	req, err := http.NewRequest(http.MethodGet, "/v1/sessions/foo", nil)
	require.NoError(t, err)
	f.Decorate(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("{}"))
	})(httptest.NewRecorder(), req)
	require.Len(t, messages, 1)
	require.Contains(t, messages[0], "GET /v1/sessions/foo 200")
}

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/krancour/memberadmin"
	"github.com/stretchr/testify/require"
)

func TestNewBaseClient(t *testing.T) {
	requireBaseClient(
		t,
		NewBaseClient(testAPIAddress+"/", testClientAllowInsecure),
	)
}

func TestBaseClientSubmitRequest(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodPut, r.Method)
				require.Equal(t, "/v1/foo", r.URL.Path)
				require.Equal(t, "bar", r.URL.Query().Get("foo"))
				require.Equal(t, "application/json", r.Header.Get("Content-Type"))
				require.Equal(t, "baz", r.Header.Get("X-Foo"))
				bodyBytes, err := ioutil.ReadAll(r.Body)
				require.NoError(t, err)
				require.JSONEq(t, `{"query":"admin"}`, string(bodyBytes))
				w.WriteHeader(http.StatusAccepted)
				fmt.Fprintln(w, `{"result":"ok"}`)
			},
		),
	)
	defer server.Close()
	respObj := struct {
		Result string `json:"result"`
	}{}
	err := NewBaseClient(server.URL, false).ExecuteRequest(
		context.Background(),
		OutboundRequest{
			Method:      http.MethodPut,
			Path:        "v1/foo",
			QueryParams: map[string]string{"foo": "bar"},
			Headers:     map[string]string{"X-Foo": "baz"},
			ReqBodyObj: map[string]string{
				"query": "admin",
			},
			SuccessCode: http.StatusAccepted,
			RespObj:     &respObj,
		},
	)
	require.NoError(t, err)
	require.Equal(t, "ok", respObj.Result)
}

func TestBaseClientErrorMapping(t *testing.T) {
	testCases := []struct {
		name       string
		statusCode int
		body       interface{}
		assertions func(error)
	}{
		{
			name:       "bad request",
			statusCode: http.StatusBadRequest,
			body:       memberadmin.NewErrBadRequest("nope"),
			assertions: func(err error) {
				require.IsType(t, &memberadmin.ErrBadRequest{}, err)
				require.Equal(t, "nope", err.(*memberadmin.ErrBadRequest).Reason)
			},
		},
		{
			name:       "not found",
			statusCode: http.StatusNotFound,
			body:       memberadmin.NewErrNotFound("Member", "42"),
			assertions: func(err error) {
				require.IsType(t, &memberadmin.ErrNotFound{}, err)
				require.Equal(t, "Member with id 42 not found.", err.Error())
			},
		},
		{
			name:       "conflict",
			statusCode: http.StatusConflict,
			body:       memberadmin.NewErrConflict("Session", "foo", "exists"),
			assertions: func(err error) {
				require.IsType(t, &memberadmin.ErrConflict{}, err)
			},
		},
		{
			name:       "not supported",
			statusCode: http.StatusNotImplemented,
			body:       memberadmin.NewErrNotSupported("nope"),
			assertions: func(err error) {
				require.IsType(t, &memberadmin.ErrNotSupported{}, err)
			},
		},
		{
			name:       "internal server error",
			statusCode: http.StatusInternalServerError,
			body:       memberadmin.NewErrInternalServer(),
			assertions: func(err error) {
				require.IsType(t, &memberadmin.ErrInternalServer{}, err)
			},
		},
		{
			name:       "unexpected status",
			statusCode: http.StatusTeapot,
			body:       struct{}{},
			assertions: func(err error) {
				require.Error(t, err)
				require.Contains(t, err.Error(), "received 418")
			},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			server := httptest.NewServer(
				http.HandlerFunc(
					func(w http.ResponseWriter, r *http.Request) {
						bodyBytes, err := json.Marshal(testCase.body)
						require.NoError(t, err)
						w.WriteHeader(testCase.statusCode)
						fmt.Fprintln(w, string(bodyBytes))
					},
				),
			)
			defer server.Close()
			err := NewBaseClient(server.URL, false).ExecuteRequest(
				context.Background(),
				OutboundRequest{
					Method:      http.MethodGet,
					Path:        "v1/foo",
					SuccessCode: http.StatusOK,
				},
			)
			testCase.assertions(err)
		})
	}
}

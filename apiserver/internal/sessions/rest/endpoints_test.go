package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/krancour/memberadmin"
	"github.com/krancour/memberadmin/apiserver/internal/lib/restmachinery"
	"github.com/krancour/memberadmin/apiserver/internal/sessions"
	"github.com/stretchr/testify/require"
)

type fakeLoader struct {
	members []memberadmin.Member
}

func (f *fakeLoader) Load(context.Context) ([]memberadmin.Member, error) {
	return f.members, nil
}

func newTestServer(t *testing.T, memberCount int) *httptest.Server {
	members := make([]memberadmin.Member, memberCount)
	for i := range members {
		members[i] = memberadmin.Member{
			ID:    i + 1,
			Name:  fmt.Sprintf("Member %d", i+1),
			Email: fmt.Sprintf("member%d@mailinator.com", i+1),
			Role:  memberadmin.RoleMember,
		}
	}
	router := mux.NewRouter()
	NewEndpoints(
		&restmachinery.BaseEndpoints{
			RequestLogFilter: restmachinery.NewRequestLogFilter(),
		},
		sessions.NewService(
			sessions.NewMemoryStore(0),
			&fakeLoader{members: members},
			func(string, ...interface{}) {},
		),
	).Register(router)
	return httptest.NewServer(router)
}

func doRequest(
	t *testing.T,
	method string,
	url string,
	body string,
	respObj interface{},
) int {
	var bodyReader *bytes.Buffer
	if body != "" {
		bodyReader = bytes.NewBufferString(body)
	} else {
		bodyReader = &bytes.Buffer{}
	}
	req, err := http.NewRequest(method, url, bodyReader)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if respObj != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(respObj))
	}
	return resp.StatusCode
}

func createSession(t *testing.T, server *httptest.Server) string {
	session := memberadmin.Session{}
	code := doRequest(
		t,
		http.MethodPost,
		server.URL+"/v1/sessions",
		"",
		&session,
	)
	require.Equal(t, http.StatusCreated, code)
	require.NotEmpty(t, session.ID)
	return session.ID
}

func TestSessionLifecycle(t *testing.T) {
	server := newTestServer(t, 15)
	defer server.Close()
	id := createSession(t, server)
	sessionURL := fmt.Sprintf("%s/v1/sessions/%s", server.URL, id)

	session := memberadmin.Session{}
	code := doRequest(t, http.MethodGet, sessionURL, "", &session)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, id, session.ID)
	require.Equal(t, 15, session.View.TotalCount)
	require.Equal(t, 2, session.View.TotalPages)
	require.Len(t, session.View.Members, 10)

	code = doRequest(t, http.MethodDelete, sessionURL, "", nil)
	require.Equal(t, http.StatusOK, code)

	errNotFound := memberadmin.ErrNotFound{}
	code = doRequest(t, http.MethodGet, sessionURL, "", &errNotFound)
	require.Equal(t, http.StatusNotFound, code)
	require.Equal(t, "Session", errNotFound.Type)
	require.Equal(t, id, errNotFound.ID)
}

func TestTableOperations(t *testing.T) {
	server := newTestServer(t, 15)
	defer server.Close()
	sessionURL := fmt.Sprintf(
		"%s/v1/sessions/%s",
		server.URL,
		createSession(t, server),
	)

	view := memberadmin.TableView{}
	code := doRequest(
		t,
		http.MethodPut,
		sessionURL+"/page",
		`{"page": 2}`,
		&view,
	)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, 2, view.CurrentPage)
	require.Len(t, view.Members, 5)

	view = memberadmin.TableView{}
	code = doRequest(
		t,
		http.MethodPut,
		sessionURL+"/page",
		`{"page": 3}`,
		&view,
	)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, 2, view.CurrentPage)

	view = memberadmin.TableView{}
	code = doRequest(
		t,
		http.MethodPut,
		sessionURL+"/search",
		`{"query": "member1"}`,
		&view,
	)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, 1, view.CurrentPage)
	require.Equal(t, "member1", view.SearchQuery)
	require.Equal(t, 7, view.FilteredCount) // 1, 10-15

	view = memberadmin.TableView{}
	code = doRequest(t, http.MethodPost, sessionURL+"/select-all", "", &view)
	require.Equal(t, http.StatusOK, code)
	require.True(t, view.SelectAll)

	view = memberadmin.TableView{}
	code = doRequest(
		t,
		http.MethodPost,
		sessionURL+"/members/10/edit",
		"",
		&view,
	)
	require.Equal(t, http.StatusOK, code)
	require.NotNil(t, view.EditingID)
	require.Equal(t, 10, *view.EditingID)

	view = memberadmin.TableView{}
	code = doRequest(
		t,
		http.MethodPatch,
		sessionURL+"/members/10",
		`{"field": "name", "value": "Tenth"}`,
		&view,
	)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "Tenth", view.Members[1].Name)

	view = memberadmin.TableView{}
	code = doRequest(
		t,
		http.MethodPost,
		sessionURL+"/members/10/save",
		"",
		&view,
	)
	require.Equal(t, http.StatusOK, code)
	require.Nil(t, view.EditingID)
	require.Equal(t, "Tenth", view.Members[1].Name)

	view = memberadmin.TableView{}
	code = doRequest(
		t,
		http.MethodPost,
		sessionURL+"/members/11/edit",
		"",
		&view,
	)
	require.Equal(t, http.StatusOK, code)
	errBadRequest := memberadmin.ErrBadRequest{}
	code = doRequest(
		t,
		http.MethodDelete,
		sessionURL+"/members/12/edit",
		"",
		&errBadRequest,
	)
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, "member 12 is not being edited", errBadRequest.Reason)
	view = memberadmin.TableView{}
	code = doRequest(
		t,
		http.MethodDelete,
		sessionURL+"/members/11/edit",
		"",
		&view,
	)
	require.Equal(t, http.StatusOK, code)
	require.Nil(t, view.EditingID)

	view = memberadmin.TableView{}
	code = doRequest(
		t,
		http.MethodDelete,
		sessionURL+"/members/1",
		"",
		&view,
	)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, 14, view.TotalCount)
	require.Equal(t, 6, view.FilteredCount)
}

func TestErrorResponses(t *testing.T) {
	server := newTestServer(t, 3)
	defer server.Close()
	sessionURL := fmt.Sprintf(
		"%s/v1/sessions/%s",
		server.URL,
		createSession(t, server),
	)
	testCases := []struct {
		name         string
		method       string
		path         string
		body         string
		expectedCode int
	}{
		{
			name:         "non-integer member ID",
			method:       http.MethodPost,
			path:         "/members/abc/edit",
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "unknown member",
			method:       http.MethodDelete,
			path:         "/members/99",
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "page body fails validation",
			method:       http.MethodPut,
			path:         "/page",
			body:         `{"page": "two"}`,
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "search body missing",
			method:       http.MethodPut,
			path:         "/search",
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "unknown field",
			method:       http.MethodPatch,
			path:         "/members/1",
			body:         `{"field": "role", "value": "admin"}`,
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "edit field of member not being edited",
			method:       http.MethodPatch,
			path:         "/members/1",
			body:         `{"field": "name", "value": "foo"}`,
			expectedCode: http.StatusBadRequest,
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			errObj := map[string]interface{}{}
			code := doRequest(
				t,
				testCase.method,
				sessionURL+testCase.path,
				testCase.body,
				&errObj,
			)
			require.Equal(t, testCase.expectedCode, code)
			require.Contains(t, errObj["kind"], "Error")
		})
	}
}

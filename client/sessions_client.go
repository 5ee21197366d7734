package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/krancour/memberadmin"
)

// SessionsClient is the specialized client for managing table sessions hosted
// by the memberadmin API server.
type SessionsClient interface {
	// Create creates a new session. Its members are loaded by the server.
	Create(context.Context) (memberadmin.Session, error)
	// Get retrieves a session by ID.
	Get(context.Context, string) (memberadmin.Session, error)
	// Delete deletes a session by ID.
	Delete(context.Context, string) error
	// Search sets the search query of a session.
	Search(
		ctx context.Context,
		id string,
		query string,
	) (memberadmin.TableView, error)
	// SetPage moves a session to the specified page.
	SetPage(
		ctx context.Context,
		id string,
		page int,
	) (memberadmin.TableView, error)
	// ToggleSelectAll flips the select-all flag of a session.
	ToggleSelectAll(ctx context.Context, id string) (memberadmin.TableView, error)
	// BeginEdit puts a member into inline-edit mode.
	BeginEdit(
		ctx context.Context,
		id string,
		memberID int,
	) (memberadmin.TableView, error)
	// CancelEdit discards the draft of the member being edited.
	CancelEdit(
		ctx context.Context,
		id string,
		memberID int,
	) (memberadmin.TableView, error)
	// EditField changes one field of the draft of the member being edited.
	EditField(
		ctx context.Context,
		id string,
		memberID int,
		field memberadmin.Field,
		value string,
	) (memberadmin.TableView, error)
	// SaveEdit commits the draft of the member being edited.
	SaveEdit(
		ctx context.Context,
		id string,
		memberID int,
	) (memberadmin.TableView, error)
	// DeleteMember removes a member from a session.
	DeleteMember(
		ctx context.Context,
		id string,
		memberID int,
	) (memberadmin.TableView, error)
}

type sessionsClient struct {
	*BaseClient
}

// NewSessionsClient returns a specialized client for managing table sessions.
func NewSessionsClient(apiAddress string, allowInsecure bool) SessionsClient {
	return &sessionsClient{
		BaseClient: NewBaseClient(apiAddress, allowInsecure),
	}
}

func (s *sessionsClient) Create(
	ctx context.Context,
) (memberadmin.Session, error) {
	session := memberadmin.Session{}
	err := s.ExecuteRequest(
		ctx,
		OutboundRequest{
			Method:      http.MethodPost,
			Path:        "v1/sessions",
			SuccessCode: http.StatusCreated,
			RespObj:     &session,
		},
	)
	return session, err
}

func (s *sessionsClient) Get(
	ctx context.Context,
	id string,
) (memberadmin.Session, error) {
	session := memberadmin.Session{}
	err := s.ExecuteRequest(
		ctx,
		OutboundRequest{
			Method:      http.MethodGet,
			Path:        fmt.Sprintf("v1/sessions/%s", id),
			SuccessCode: http.StatusOK,
			RespObj:     &session,
		},
	)
	return session, err
}

func (s *sessionsClient) Delete(ctx context.Context, id string) error {
	return s.ExecuteRequest(
		ctx,
		OutboundRequest{
			Method:      http.MethodDelete,
			Path:        fmt.Sprintf("v1/sessions/%s", id),
			SuccessCode: http.StatusOK,
		},
	)
}

func (s *sessionsClient) Search(
	ctx context.Context,
	id string,
	query string,
) (memberadmin.TableView, error) {
	return s.view(
		ctx,
		http.MethodPut,
		fmt.Sprintf("v1/sessions/%s/search", id),
		struct {
			Query string `json:"query"`
		}{
			Query: query,
		},
	)
}

func (s *sessionsClient) SetPage(
	ctx context.Context,
	id string,
	page int,
) (memberadmin.TableView, error) {
	return s.view(
		ctx,
		http.MethodPut,
		fmt.Sprintf("v1/sessions/%s/page", id),
		struct {
			Page int `json:"page"`
		}{
			Page: page,
		},
	)
}

func (s *sessionsClient) ToggleSelectAll(
	ctx context.Context,
	id string,
) (memberadmin.TableView, error) {
	return s.view(
		ctx,
		http.MethodPost,
		fmt.Sprintf("v1/sessions/%s/select-all", id),
		nil,
	)
}

func (s *sessionsClient) BeginEdit(
	ctx context.Context,
	id string,
	memberID int,
) (memberadmin.TableView, error) {
	return s.view(
		ctx,
		http.MethodPost,
		fmt.Sprintf("v1/sessions/%s/members/%d/edit", id, memberID),
		nil,
	)
}

func (s *sessionsClient) CancelEdit(
	ctx context.Context,
	id string,
	memberID int,
) (memberadmin.TableView, error) {
	return s.view(
		ctx,
		http.MethodDelete,
		fmt.Sprintf("v1/sessions/%s/members/%d/edit", id, memberID),
		nil,
	)
}

func (s *sessionsClient) EditField(
	ctx context.Context,
	id string,
	memberID int,
	field memberadmin.Field,
	value string,
) (memberadmin.TableView, error) {
	return s.view(
		ctx,
		http.MethodPatch,
		fmt.Sprintf("v1/sessions/%s/members/%d", id, memberID),
		struct {
			Field memberadmin.Field `json:"field"`
			Value string            `json:"value"`
		}{
			Field: field,
			Value: value,
		},
	)
}

func (s *sessionsClient) SaveEdit(
	ctx context.Context,
	id string,
	memberID int,
) (memberadmin.TableView, error) {
	return s.view(
		ctx,
		http.MethodPost,
		fmt.Sprintf("v1/sessions/%s/members/%d/save", id, memberID),
		nil,
	)
}

func (s *sessionsClient) DeleteMember(
	ctx context.Context,
	id string,
	memberID int,
) (memberadmin.TableView, error) {
	return s.view(
		ctx,
		http.MethodDelete,
		fmt.Sprintf("v1/sessions/%s/members/%d", id, memberID),
		nil,
	)
}

// view submits a request whose response is a TableView.
func (s *sessionsClient) view(
	ctx context.Context,
	method string,
	path string,
	reqBodyObj interface{},
) (memberadmin.TableView, error) {
	view := memberadmin.TableView{}
	err := s.ExecuteRequest(
		ctx,
		OutboundRequest{
			Method:      method,
			Path:        path,
			ReqBodyObj:  reqBodyObj,
			SuccessCode: http.StatusOK,
			RespObj:     &view,
		},
	)
	return view, err
}

package rest

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/krancour/memberadmin"
	"github.com/krancour/memberadmin/apiserver/internal/lib/restmachinery"
	"github.com/krancour/memberadmin/apiserver/internal/sessions"
)

type endpoints struct {
	*restmachinery.BaseEndpoints
	service sessions.Service
}

// NewEndpoints returns the REST API endpoints for table sessions.
func NewEndpoints(
	baseEndpoints *restmachinery.BaseEndpoints,
	service sessions.Service,
) restmachinery.Endpoints {
	return &endpoints{
		BaseEndpoints: baseEndpoints,
		service:       service,
	}
}

func (e *endpoints) Register(router *mux.Router) {
	// Create session
	router.HandleFunc(
		"/v1/sessions",
		e.RequestLogFilter.Decorate(e.create),
	).Methods(http.MethodPost)

	// Get session
	router.HandleFunc(
		"/v1/sessions/{id}",
		e.RequestLogFilter.Decorate(e.get),
	).Methods(http.MethodGet)

	// Delete session
	router.HandleFunc(
		"/v1/sessions/{id}",
		e.RequestLogFilter.Decorate(e.delete),
	).Methods(http.MethodDelete)

	// Search
	router.HandleFunc(
		"/v1/sessions/{id}/search",
		e.RequestLogFilter.Decorate(e.search),
	).Methods(http.MethodPut)

	// Change page
	router.HandleFunc(
		"/v1/sessions/{id}/page",
		e.RequestLogFilter.Decorate(e.setPage),
	).Methods(http.MethodPut)

	// Toggle select all
	router.HandleFunc(
		"/v1/sessions/{id}/select-all",
		e.RequestLogFilter.Decorate(e.toggleSelectAll),
	).Methods(http.MethodPost)

	// Begin edit
	router.HandleFunc(
		"/v1/sessions/{id}/members/{memberID}/edit",
		e.RequestLogFilter.Decorate(e.beginEdit),
	).Methods(http.MethodPost)

	// Cancel edit
	router.HandleFunc(
		"/v1/sessions/{id}/members/{memberID}/edit",
		e.RequestLogFilter.Decorate(e.cancelEdit),
	).Methods(http.MethodDelete)

	// Edit field
	router.HandleFunc(
		"/v1/sessions/{id}/members/{memberID}",
		e.RequestLogFilter.Decorate(e.editField),
	).Methods(http.MethodPatch)

	// Save edit
	router.HandleFunc(
		"/v1/sessions/{id}/members/{memberID}/save",
		e.RequestLogFilter.Decorate(e.saveEdit),
	).Methods(http.MethodPost)

	// Delete member
	router.HandleFunc(
		"/v1/sessions/{id}/members/{memberID}",
		e.RequestLogFilter.Decorate(e.deleteMember),
	).Methods(http.MethodDelete)
}

func (e *endpoints) create(w http.ResponseWriter, r *http.Request) {
	e.ServeRequest(
		restmachinery.InboundRequest{
			W: w,
			R: r,
			EndpointLogic: func() (interface{}, error) {
				return e.service.Create(r.Context())
			},
			SuccessCode: http.StatusCreated,
		},
	)
}

func (e *endpoints) get(w http.ResponseWriter, r *http.Request) {
	e.ServeRequest(
		restmachinery.InboundRequest{
			W: w,
			R: r,
			EndpointLogic: func() (interface{}, error) {
				return e.service.Get(r.Context(), mux.Vars(r)["id"])
			},
			SuccessCode: http.StatusOK,
		},
	)
}

func (e *endpoints) delete(w http.ResponseWriter, r *http.Request) {
	e.ServeRequest(
		restmachinery.InboundRequest{
			W: w,
			R: r,
			EndpointLogic: func() (interface{}, error) {
				return nil, e.service.Delete(r.Context(), mux.Vars(r)["id"])
			},
			SuccessCode: http.StatusOK,
		},
	)
}

func (e *endpoints) search(w http.ResponseWriter, r *http.Request) {
	body := struct {
		Query string `json:"query"`
	}{}
	e.ServeRequest(
		restmachinery.InboundRequest{
			W:                   w,
			R:                   r,
			ReqBodySchemaLoader: searchSchemaLoader,
			ReqBodyObj:          &body,
			EndpointLogic: func() (interface{}, error) {
				return e.service.Search(r.Context(), mux.Vars(r)["id"], body.Query)
			},
			SuccessCode: http.StatusOK,
		},
	)
}

func (e *endpoints) setPage(w http.ResponseWriter, r *http.Request) {
	body := struct {
		Page int `json:"page"`
	}{}
	e.ServeRequest(
		restmachinery.InboundRequest{
			W:                   w,
			R:                   r,
			ReqBodySchemaLoader: pageSchemaLoader,
			ReqBodyObj:          &body,
			EndpointLogic: func() (interface{}, error) {
				return e.service.SetPage(r.Context(), mux.Vars(r)["id"], body.Page)
			},
			SuccessCode: http.StatusOK,
		},
	)
}

func (e *endpoints) toggleSelectAll(w http.ResponseWriter, r *http.Request) {
	e.ServeRequest(
		restmachinery.InboundRequest{
			W: w,
			R: r,
			EndpointLogic: func() (interface{}, error) {
				return e.service.ToggleSelectAll(r.Context(), mux.Vars(r)["id"])
			},
			SuccessCode: http.StatusOK,
		},
	)
}

func (e *endpoints) beginEdit(w http.ResponseWriter, r *http.Request) {
	e.ServeRequest(
		restmachinery.InboundRequest{
			W: w,
			R: r,
			EndpointLogic: func() (interface{}, error) {
				memberID, err := memberIDFromRequest(r)
				if err != nil {
					return nil, err
				}
				return e.service.BeginEdit(r.Context(), mux.Vars(r)["id"], memberID)
			},
			SuccessCode: http.StatusOK,
		},
	)
}

func (e *endpoints) cancelEdit(w http.ResponseWriter, r *http.Request) {
	e.ServeRequest(
		restmachinery.InboundRequest{
			W: w,
			R: r,
			EndpointLogic: func() (interface{}, error) {
				memberID, err := memberIDFromRequest(r)
				if err != nil {
					return nil, err
				}
				return e.service.CancelEdit(r.Context(), mux.Vars(r)["id"], memberID)
			},
			SuccessCode: http.StatusOK,
		},
	)
}

func (e *endpoints) editField(w http.ResponseWriter, r *http.Request) {
	body := struct {
		Field string `json:"field"`
		Value string `json:"value"`
	}{}
	e.ServeRequest(
		restmachinery.InboundRequest{
			W:                   w,
			R:                   r,
			ReqBodySchemaLoader: fieldEditSchemaLoader,
			ReqBodyObj:          &body,
			EndpointLogic: func() (interface{}, error) {
				memberID, err := memberIDFromRequest(r)
				if err != nil {
					return nil, err
				}
				field, err := memberadmin.ParseField(body.Field)
				if err != nil {
					return nil, err
				}
				return e.service.EditField(
					r.Context(),
					mux.Vars(r)["id"],
					memberID,
					field,
					body.Value,
				)
			},
			SuccessCode: http.StatusOK,
		},
	)
}

func (e *endpoints) saveEdit(w http.ResponseWriter, r *http.Request) {
	e.ServeRequest(
		restmachinery.InboundRequest{
			W: w,
			R: r,
			EndpointLogic: func() (interface{}, error) {
				memberID, err := memberIDFromRequest(r)
				if err != nil {
					return nil, err
				}
				return e.service.SaveEdit(r.Context(), mux.Vars(r)["id"], memberID)
			},
			SuccessCode: http.StatusOK,
		},
	)
}

func (e *endpoints) deleteMember(w http.ResponseWriter, r *http.Request) {
	e.ServeRequest(
		restmachinery.InboundRequest{
			W: w,
			R: r,
			EndpointLogic: func() (interface{}, error) {
				memberID, err := memberIDFromRequest(r)
				if err != nil {
					return nil, err
				}
				return e.service.DeleteMember(
					r.Context(),
					mux.Vars(r)["id"],
					memberID,
				)
			},
			SuccessCode: http.StatusOK,
		},
	)
}

func memberIDFromRequest(r *http.Request) (int, error) {
	memberIDStr := mux.Vars(r)["memberID"]
	memberID, err := strconv.Atoi(memberIDStr)
	if err != nil {
		return 0, memberadmin.NewErrBadRequest(
			fmt.Sprintf("Invalid member ID %q; must be an integer.", memberIDStr),
		)
	}
	return memberID, nil
}

package main

import (
	"context"

	"github.com/krancour/memberadmin"
	"github.com/krancour/memberadmin/client"
	"github.com/krancour/memberadmin/internal/table"
	"github.com/pkg/errors"
)

// tableSession abstracts over an admin table held in this process and one
// hosted by an API server. Every operation returns the resulting view.
type tableSession interface {
	// LoadError describes why members could not be loaded, if they couldn't.
	LoadError() string
	Show() (memberadmin.TableView, error)
	Search(query string) (memberadmin.TableView, error)
	SetPage(page int) (memberadmin.TableView, error)
	FirstPage() (memberadmin.TableView, error)
	PreviousPage() (memberadmin.TableView, error)
	NextPage() (memberadmin.TableView, error)
	LastPage() (memberadmin.TableView, error)
	ToggleSelectAll() (memberadmin.TableView, error)
	BeginEdit(memberID int) (memberadmin.TableView, error)
	// EditField and SaveEdit apply to whichever member is being edited.
	EditField(
		field memberadmin.Field,
		value string,
	) (memberadmin.TableView, error)
	SaveEdit() (memberadmin.TableView, error)
	CancelEdit() (memberadmin.TableView, error)
	DeleteMember(memberID int) (memberadmin.TableView, error)
	Close() error
}

var errNotEditing = memberadmin.NewErrBadRequest(
	"No member is being edited; use `edit ID` first.",
)

type localSession struct {
	manager   *table.Manager
	loadError string
}

// newLocalSession returns a tableSession backed by a table.Manager in this
// process. A load failure is recorded rather than returned.
func newLocalSession(
	ctx context.Context,
	loader table.Loader,
	logf table.LogFunc,
) tableSession {
	l := &localSession{
		manager: table.NewManager(logf),
	}
	if err := l.manager.Load(ctx, loader); err != nil {
		l.loadError = err.Error()
	}
	return l
}

func (l *localSession) LoadError() string {
	return l.loadError
}

func (l *localSession) Show() (memberadmin.TableView, error) {
	return l.manager.View(), nil
}

func (l *localSession) Search(query string) (memberadmin.TableView, error) {
	l.manager.SetSearchQuery(query)
	return l.manager.View(), nil
}

func (l *localSession) SetPage(page int) (memberadmin.TableView, error) {
	l.manager.SetPage(page)
	return l.manager.View(), nil
}

func (l *localSession) FirstPage() (memberadmin.TableView, error) {
	l.manager.FirstPage()
	return l.manager.View(), nil
}

func (l *localSession) PreviousPage() (memberadmin.TableView, error) {
	l.manager.PreviousPage()
	return l.manager.View(), nil
}

func (l *localSession) NextPage() (memberadmin.TableView, error) {
	l.manager.NextPage()
	return l.manager.View(), nil
}

func (l *localSession) LastPage() (memberadmin.TableView, error) {
	l.manager.LastPage()
	return l.manager.View(), nil
}

func (l *localSession) ToggleSelectAll() (memberadmin.TableView, error) {
	l.manager.ToggleSelectAll()
	return l.manager.View(), nil
}

func (l *localSession) BeginEdit(memberID int) (memberadmin.TableView, error) {
	if err := l.manager.BeginEdit(memberID); err != nil {
		return memberadmin.TableView{}, err
	}
	return l.manager.View(), nil
}

func (l *localSession) EditField(
	field memberadmin.Field,
	value string,
) (memberadmin.TableView, error) {
	editingID := l.manager.View().EditingID
	if editingID == nil {
		return memberadmin.TableView{}, errNotEditing
	}
	if err := l.manager.EditField(*editingID, field, value); err != nil {
		return memberadmin.TableView{}, err
	}
	return l.manager.View(), nil
}

func (l *localSession) SaveEdit() (memberadmin.TableView, error) {
	editingID := l.manager.View().EditingID
	if editingID == nil {
		return memberadmin.TableView{}, errNotEditing
	}
	if err := l.manager.SaveEdit(*editingID); err != nil {
		return memberadmin.TableView{}, err
	}
	return l.manager.View(), nil
}

func (l *localSession) CancelEdit() (memberadmin.TableView, error) {
	l.manager.CancelEdit()
	return l.manager.View(), nil
}

func (l *localSession) DeleteMember(
	memberID int,
) (memberadmin.TableView, error) {
	if err := l.manager.DeleteRecord(memberID); err != nil {
		return memberadmin.TableView{}, err
	}
	return l.manager.View(), nil
}

func (l *localSession) Close() error {
	return nil
}

type remoteSession struct {
	ctx       context.Context
	client    client.SessionsClient
	id        string
	loadError string
	// view is the most recent view returned by the server. Relative page moves
	// and edits of the current member are computed from it.
	view memberadmin.TableView
}

// newRemoteSession creates a table session on the API server and returns a
// tableSession that operates on it.
func newRemoteSession(
	ctx context.Context,
	sessionsClient client.SessionsClient,
) (tableSession, error) {
	session, err := sessionsClient.Create(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "error creating table session")
	}
	return &remoteSession{
		ctx:       ctx,
		client:    sessionsClient,
		id:        session.ID,
		loadError: session.LoadError,
		view:      session.View,
	}, nil
}

func (r *remoteSession) LoadError() string {
	return r.loadError
}

// record remembers a view returned by the server.
func (r *remoteSession) record(
	view memberadmin.TableView,
	err error,
) (memberadmin.TableView, error) {
	if err != nil {
		return memberadmin.TableView{}, err
	}
	r.view = view
	return view, nil
}

func (r *remoteSession) Show() (memberadmin.TableView, error) {
	session, err := r.client.Get(r.ctx, r.id)
	return r.record(session.View, err)
}

func (r *remoteSession) Search(query string) (memberadmin.TableView, error) {
	return r.record(r.client.Search(r.ctx, r.id, query))
}

func (r *remoteSession) SetPage(page int) (memberadmin.TableView, error) {
	return r.record(r.client.SetPage(r.ctx, r.id, page))
}

func (r *remoteSession) FirstPage() (memberadmin.TableView, error) {
	return r.SetPage(1)
}

func (r *remoteSession) PreviousPage() (memberadmin.TableView, error) {
	return r.SetPage(r.view.CurrentPage - 1)
}

func (r *remoteSession) NextPage() (memberadmin.TableView, error) {
	return r.SetPage(r.view.CurrentPage + 1)
}

func (r *remoteSession) LastPage() (memberadmin.TableView, error) {
	return r.SetPage(r.view.TotalPages)
}

func (r *remoteSession) ToggleSelectAll() (memberadmin.TableView, error) {
	return r.record(r.client.ToggleSelectAll(r.ctx, r.id))
}

func (r *remoteSession) BeginEdit(memberID int) (memberadmin.TableView, error) {
	return r.record(r.client.BeginEdit(r.ctx, r.id, memberID))
}

func (r *remoteSession) EditField(
	field memberadmin.Field,
	value string,
) (memberadmin.TableView, error) {
	if r.view.EditingID == nil {
		return memberadmin.TableView{}, errNotEditing
	}
	return r.record(
		r.client.EditField(r.ctx, r.id, *r.view.EditingID, field, value),
	)
}

func (r *remoteSession) SaveEdit() (memberadmin.TableView, error) {
	if r.view.EditingID == nil {
		return memberadmin.TableView{}, errNotEditing
	}
	return r.record(r.client.SaveEdit(r.ctx, r.id, *r.view.EditingID))
}

func (r *remoteSession) CancelEdit() (memberadmin.TableView, error) {
	if r.view.EditingID == nil {
		return r.view, nil
	}
	return r.record(r.client.CancelEdit(r.ctx, r.id, *r.view.EditingID))
}

func (r *remoteSession) DeleteMember(
	memberID int,
) (memberadmin.TableView, error) {
	return r.record(r.client.DeleteMember(r.ctx, r.id, memberID))
}

func (r *remoteSession) Close() error {
	if err := r.client.Delete(r.ctx, r.id); err != nil {
		return errors.Wrapf(err, "error deleting table session %s", r.id)
	}
	return nil
}

// closeSession closes the provided session and logs any failure to do so. It
// is meant to be deferred.
func closeSession(session tableSession, logf table.LogFunc) {
	if err := session.Close(); err != nil {
		logf("%s", err)
	}
}

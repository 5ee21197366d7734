package sessions

import (
	"context"
	"fmt"
	"time"

	"github.com/krancour/memberadmin"
	"github.com/krancour/memberadmin/internal/table"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
)

// Service is the specialized interface for managing table sessions. It's
// decoupled from underlying technology choices (e.g. data store) to keep
// business logic reusable and consistent while the underlying tech stack
// remains free to change.
type Service interface {
	// Create creates a new session and loads its members. A failure to load
	// does not fail creation. The session starts empty and the returned Session
	// describes the failure.
	Create(context.Context) (memberadmin.Session, error)
	// Get retrieves a single session specified by its identifier.
	Get(context.Context, string) (memberadmin.Session, error)
	// Delete deletes a single session specified by its identifier.
	Delete(context.Context, string) error
	// Search sets the search query of the specified session.
	Search(
		ctx context.Context,
		id string,
		query string,
	) (memberadmin.TableView, error)
	// SetPage moves the specified session to the specified page. Out-of-range
	// pages leave the view unchanged.
	SetPage(
		ctx context.Context,
		id string,
		page int,
	) (memberadmin.TableView, error)
	// ToggleSelectAll flips the select-all flag of the specified session.
	ToggleSelectAll(ctx context.Context, id string) (memberadmin.TableView, error)
	// BeginEdit puts a member into inline-edit mode.
	BeginEdit(
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
	// CancelEdit discards the draft of the specified member. Nothing happens if
	// no edit is in progress. An *ErrBadRequest is returned if a different
	// member is being edited.
	CancelEdit(
		ctx context.Context,
		id string,
		memberID int,
	) (memberadmin.TableView, error)
	// DeleteMember removes a member from the specified session.
	DeleteMember(
		ctx context.Context,
		id string,
		memberID int,
	) (memberadmin.TableView, error)
}

type service struct {
	store  Store
	loader table.Loader
	logf   table.LogFunc
}

// NewService returns a specialized interface for managing table sessions.
// Every new session loads its members using the provided Loader. Errors
// encountered by sessions are sent to the provided LogFunc or, if it is nil,
// logged with glog.
func NewService(
	store Store,
	loader table.Loader,
	logf table.LogFunc,
) Service {
	return &service{
		store:  store,
		loader: loader,
		logf:   logf,
	}
}

func (s *service) Create(ctx context.Context) (memberadmin.Session, error) {
	now := time.Now()
	t := &Table{
		ObjectMeta: memberadmin.ObjectMeta{
			ID:      uuid.NewV4().String(),
			Created: &now,
		},
		manager: table.NewManager(s.logf),
	}
	if err := t.manager.Load(ctx, s.loader); err != nil {
		t.LoadError = err.Error()
	}
	if err := s.store.Create(ctx, t); err != nil {
		return memberadmin.Session{},
			errors.Wrapf(err, "error storing new session %q", t.ID)
	}
	return s.sessionFor(t)
}

func (s *service) Get(
	ctx context.Context,
	id string,
) (memberadmin.Session, error) {
	t, err := s.store.Get(ctx, id)
	if err != nil {
		return memberadmin.Session{},
			errors.Wrapf(err, "error retrieving session %q from store", id)
	}
	return s.sessionFor(t)
}

func (s *service) sessionFor(t *Table) (memberadmin.Session, error) {
	session := memberadmin.Session{
		ObjectMeta: t.ObjectMeta,
		LoadError:  t.LoadError,
	}
	if err := t.Do(func(m *table.Manager) error {
		session.View = m.View()
		return nil
	}); err != nil {
		return memberadmin.Session{},
			errors.Wrapf(err, "error reading session %q", t.ID)
	}
	return session, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return errors.Wrapf(err, "error deleting session %q from store", id)
	}
	return nil
}

func (s *service) Search(
	ctx context.Context,
	id string,
	query string,
) (memberadmin.TableView, error) {
	return s.do(ctx, id, func(m *table.Manager) error {
		m.SetSearchQuery(query)
		return nil
	})
}

func (s *service) SetPage(
	ctx context.Context,
	id string,
	page int,
) (memberadmin.TableView, error) {
	return s.do(ctx, id, func(m *table.Manager) error {
		m.SetPage(page)
		return nil
	})
}

func (s *service) ToggleSelectAll(
	ctx context.Context,
	id string,
) (memberadmin.TableView, error) {
	return s.do(ctx, id, func(m *table.Manager) error {
		m.ToggleSelectAll()
		return nil
	})
}

func (s *service) BeginEdit(
	ctx context.Context,
	id string,
	memberID int,
) (memberadmin.TableView, error) {
	return s.do(ctx, id, func(m *table.Manager) error {
		return m.BeginEdit(memberID)
	})
}

func (s *service) EditField(
	ctx context.Context,
	id string,
	memberID int,
	field memberadmin.Field,
	value string,
) (memberadmin.TableView, error) {
	return s.do(ctx, id, func(m *table.Manager) error {
		return m.EditField(memberID, field, value)
	})
}

func (s *service) SaveEdit(
	ctx context.Context,
	id string,
	memberID int,
) (memberadmin.TableView, error) {
	return s.do(ctx, id, func(m *table.Manager) error {
		return m.SaveEdit(memberID)
	})
}

func (s *service) CancelEdit(
	ctx context.Context,
	id string,
	memberID int,
) (memberadmin.TableView, error) {
	return s.do(ctx, id, func(m *table.Manager) error {
		if editingID, ok := m.EditingID(); ok && editingID != memberID {
			return memberadmin.NewErrBadRequest(
				fmt.Sprintf("member %d is not being edited", memberID),
				fmt.Sprintf("member %d is being edited", editingID),
			)
		}
		m.CancelEdit()
		return nil
	})
}

func (s *service) DeleteMember(
	ctx context.Context,
	id string,
	memberID int,
) (memberadmin.TableView, error) {
	return s.do(ctx, id, func(m *table.Manager) error {
		return m.DeleteRecord(memberID)
	})
}

// do retrieves the specified session, applies fn to its Manager, and returns
// the resulting view. If fn fails, the view is not returned.
func (s *service) do(
	ctx context.Context,
	id string,
	fn func(*table.Manager) error,
) (memberadmin.TableView, error) {
	t, err := s.store.Get(ctx, id)
	if err != nil {
		return memberadmin.TableView{},
			errors.Wrapf(err, "error retrieving session %q from store", id)
	}
	var view memberadmin.TableView
	if err := t.Do(func(m *table.Manager) error {
		if err := fn(m); err != nil {
			return err
		}
		view = m.View()
		return nil
	}); err != nil {
		return memberadmin.TableView{},
			errors.Wrapf(err, "error updating session %q", id)
	}
	return view, nil
}

package table

import (
	"context"
	"fmt"
	"strconv"

	"github.com/golang/glog"
	"github.com/krancour/memberadmin"
	"github.com/pkg/errors"
)

const memberType = "Member"

// Manager owns the state of a single admin table. Every operation runs to
// completion synchronously. A Manager is not safe for concurrent use; callers
// that share one across goroutines must serialize access to it.
type Manager struct {
	records     []memberadmin.Member
	searchQuery string
	currentPage int
	editingID   *int
	// draft is the staged copy of the member being edited. It is only written
	// back to records when the edit is saved.
	draft     memberadmin.Member
	selectAll bool
	logf      LogFunc
}

// NewManager returns an empty Manager. Errors worth reporting are sent to the
// provided LogFunc. If it is nil, they are logged with glog.
func NewManager(logf LogFunc) *Manager {
	if logf == nil {
		logf = glog.Errorf
	}
	return &Manager{
		records:     []memberadmin.Member{},
		currentPage: 1,
		logf:        logf,
	}
}

// Load replaces the Manager's entire collection with the members returned by
// the provided Loader. Members that are invalid or whose id duplicates that of
// an earlier member are logged and skipped. If the Loader fails, the failure is
// logged, the existing collection is left in place, and an *ErrLoad is
// returned.
func (m *Manager) Load(ctx context.Context, loader Loader) error {
	members, err := loader.Load(ctx)
	if err != nil {
		m.logf("error loading members: %s", err)
		if loadErr, ok := errors.Cause(err).(*memberadmin.ErrLoad); ok {
			return loadErr
		}
		return memberadmin.NewErrLoad("member source", err.Error())
	}
	m.records = m.sanitize(members)
	m.clearEdit()
	m.clampPage()
	return nil
}

func (m *Manager) sanitize(
	members []memberadmin.Member,
) []memberadmin.Member {
	sanitized := make([]memberadmin.Member, 0, len(members))
	seen := map[int]struct{}{}
	for _, member := range members {
		if err := member.Validate(); err != nil {
			m.logf("skipping member: %s", err)
			continue
		}
		if _, ok := seen[member.ID]; ok {
			m.logf("skipping member: id %d is not unique", member.ID)
			continue
		}
		seen[member.ID] = struct{}{}
		sanitized = append(sanitized, member)
	}
	return sanitized
}

// Records returns a copy of the Manager's committed collection.
func (m *Manager) Records() []memberadmin.Member {
	records := make([]memberadmin.Member, len(m.records))
	copy(records, m.records)
	return records
}

// View returns the view derived from the Manager's current state.
func (m *Manager) View() memberadmin.TableView {
	filtered := Filter(m.records, m.searchQuery)
	page := Paginate(filtered, m.currentPage, PageSize)
	if m.editingID != nil {
		for i := range page {
			if page[i].ID == *m.editingID {
				page[i] = m.draft
			}
		}
	}
	view := memberadmin.TableView{
		Members:       page,
		CurrentPage:   m.currentPage,
		TotalPages:    TotalPages(len(filtered), PageSize),
		PageSize:      PageSize,
		FilteredCount: len(filtered),
		TotalCount:    len(m.records),
		SearchQuery:   m.searchQuery,
		SelectAll:     m.selectAll,
	}
	if m.editingID != nil {
		id := *m.editingID
		view.EditingID = &id
	}
	return view
}

func (m *Manager) totalPages() int {
	return TotalPages(len(Filter(m.records, m.searchQuery)), PageSize)
}

// SetSearchQuery sets the search query and returns to the first page.
func (m *Manager) SetSearchQuery(query string) {
	m.searchQuery = query
	m.currentPage = 1
}

// SetPage moves to the specified 1-based page. Pages outside the range
// [1, total pages] are ignored. The return value indicates whether the
// requested page was in range.
func (m *Manager) SetPage(page int) bool {
	if page < 1 || page > m.totalPages() {
		return false
	}
	m.currentPage = page
	return true
}

// FirstPage moves to the first page.
func (m *Manager) FirstPage() bool {
	return m.SetPage(1)
}

// PreviousPage moves back one page, if there is one.
func (m *Manager) PreviousPage() bool {
	return m.SetPage(m.currentPage - 1)
}

// NextPage moves forward one page, if there is one.
func (m *Manager) NextPage() bool {
	return m.SetPage(m.currentPage + 1)
}

// LastPage moves to the last page.
func (m *Manager) LastPage() bool {
	return m.SetPage(m.totalPages())
}

// ToggleSelectAll flips the select-all flag. It has no effect on any member.
func (m *Manager) ToggleSelectAll() {
	m.selectAll = !m.selectAll
}

// BeginEdit puts the specified member into inline-edit mode by staging a
// draft copy of it. Any edit already in progress is abandoned and its unsaved
// changes are discarded.
func (m *Manager) BeginEdit(id int) error {
	i, err := m.indexOf(id)
	if err != nil {
		return err
	}
	m.editingID = &id
	m.draft = m.records[i]
	return nil
}

// EditField changes one field of the draft of the member being edited. The
// change is visible in the view immediately but is not committed until the
// edit is saved.
func (m *Manager) EditField(
	id int,
	field memberadmin.Field,
	value string,
) error {
	if m.editingID == nil || *m.editingID != id {
		return memberadmin.NewErrBadRequest(
			fmt.Sprintf("member %d is not being edited", id),
		)
	}
	f, err := memberadmin.ParseField(string(field))
	if err != nil {
		return err
	}
	m.draft = m.draft.With(f, value)
	return nil
}

// SaveEdit ends inline-edit mode. If the specified member is the one being
// edited, its draft replaces it in the collection.
func (m *Manager) SaveEdit(id int) error {
	i, err := m.indexOf(id)
	if err != nil {
		return err
	}
	if m.editingID != nil && *m.editingID == id {
		m.records = m.replaced(i, m.draft)
	}
	m.clearEdit()
	m.clampPage()
	return nil
}

// EditingID returns the id of the member being edited. The bool is false when
// no edit is in progress.
func (m *Manager) EditingID() (int, bool) {
	if m.editingID == nil {
		return 0, false
	}
	return *m.editingID, true
}

// CancelEdit discards the draft of the member being edited, if any.
func (m *Manager) CancelEdit() {
	m.clearEdit()
}

// DeleteRecord removes the specified member from the collection. If the
// current page no longer exists afterwards, the last page becomes current.
func (m *Manager) DeleteRecord(id int) error {
	i, err := m.indexOf(id)
	if err != nil {
		return err
	}
	records := make([]memberadmin.Member, 0, len(m.records)-1)
	records = append(records, m.records[:i]...)
	m.records = append(records, m.records[i+1:]...)
	if m.editingID != nil && *m.editingID == id {
		m.clearEdit()
	}
	m.clampPage()
	return nil
}

// indexOf finds the first member with the specified id. If there is none, the
// failure is logged and an *ErrNotFound is returned.
func (m *Manager) indexOf(id int) (int, error) {
	for i, member := range m.records {
		if member.ID == id {
			return i, nil
		}
	}
	err := memberadmin.NewErrNotFound(memberType, strconv.Itoa(id))
	m.logf("%s", err)
	return -1, err
}

func (m *Manager) replaced(
	i int,
	member memberadmin.Member,
) []memberadmin.Member {
	records := make([]memberadmin.Member, len(m.records))
	copy(records, m.records)
	records[i] = member
	return records
}

func (m *Manager) clearEdit() {
	m.editingID = nil
	m.draft = memberadmin.Member{}
}

func (m *Manager) clampPage() {
	if totalPages := m.totalPages(); m.currentPage > totalPages {
		m.currentPage = totalPages
	}
	if m.currentPage < 1 {
		m.currentPage = 1
	}
}

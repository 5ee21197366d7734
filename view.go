package memberadmin

import "encoding/json"

// TableView is the read-only, derived state of an admin table that every
// presentation renders from. It is recomputed after every operation.
type TableView struct {
	// Members is the current page of members matching the search query. If a
	// member on this page is being edited, its staged (unsaved) values are
	// shown.
	Members       []Member `json:"members"`
	CurrentPage   int      `json:"currentPage"`
	TotalPages    int      `json:"totalPages"`
	PageSize      int      `json:"pageSize"`
	FilteredCount int      `json:"filteredCount"`
	TotalCount    int      `json:"totalCount"`
	SearchQuery   string   `json:"searchQuery"`
	// EditingID is the id of the member in inline-edit mode, if any.
	EditingID *int `json:"editingID"`
	SelectAll bool `json:"selectAll"`
}

// MarshalJSON amends TableView instances with type metadata.
func (t TableView) MarshalJSON() ([]byte, error) {
	type Alias TableView
	return json.Marshal(
		struct {
			TypeMeta `json:",inline"`
			Alias    `json:",inline"`
		}{
			TypeMeta: newTypeMeta("TableView"),
			Alias:    (Alias)(t),
		},
	)
}

// IsEditing returns true if the member with the specified id is in inline-edit
// mode.
func (t TableView) IsEditing(id int) bool {
	return t.EditingID != nil && *t.EditingID == id
}

// HasPreviousPage returns true if there is a page before the current one.
func (t TableView) HasPreviousPage() bool {
	return t.CurrentPage > 1
}

// HasNextPage returns true if there is a page after the current one.
func (t TableView) HasNextPage() bool {
	return t.CurrentPage < t.TotalPages
}

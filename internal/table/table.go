// Package table implements the in-memory state of an admin table of members:
// the loaded collection, the search query, the pagination cursor, the inline
// edit cursor and the select-all toggle, along with the view derived from
// them.
package table

import (
	"context"
	"math"

	"github.com/krancour/memberadmin"
)

// PageSize is the number of members on a full page.
const PageSize = 10

// Loader is the interface for components that can retrieve the full
// collection of members from some source.
type Loader interface {
	// Load returns every member the source knows about, in source order.
	Load(context.Context) ([]memberadmin.Member, error)
}

// LogFunc is the signature of the sink that receives human-readable error
// messages from a Manager.
type LogFunc func(format string, args ...interface{})

// Filter returns, in their original relative order, the members matching the
// provided query. The returned slice never aliases the input.
func Filter(
	members []memberadmin.Member,
	query string,
) []memberadmin.Member {
	filtered := make([]memberadmin.Member, 0, len(members))
	for _, member := range members {
		if member.Matches(query) {
			filtered = append(filtered, member)
		}
	}
	return filtered
}

// Paginate returns the specified 1-based page of the provided members. Pages
// that fall outside the bounds of the collection are empty.
func Paginate(
	members []memberadmin.Member,
	page int,
	pageSize int,
) []memberadmin.Member {
	if page < 1 || pageSize < 1 {
		return []memberadmin.Member{}
	}
	start := (page - 1) * pageSize
	if start >= len(members) {
		return []memberadmin.Member{}
	}
	end := start + pageSize
	if end > len(members) {
		end = len(members)
	}
	paginated := make([]memberadmin.Member, end-start)
	copy(paginated, members[start:end])
	return paginated
}

// TotalPages returns the number of pages needed to show count members. An
// empty collection still has one (empty) page.
func TotalPages(count int, pageSize int) int {
	if count <= 0 || pageSize < 1 {
		return 1
	}
	return int(math.Ceil(float64(count) / float64(pageSize)))
}

package memberadmin

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Role represents the access level of a Member.
type Role string

const (
	// RoleMember is the role of an ordinary Member.
	RoleMember Role = "member"
	// RoleAdmin is the role of an administrative Member.
	RoleAdmin Role = "admin"
)

// Valid returns true if the Role is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleMember || r == RoleAdmin
}

// Field identifies one of the fields of a Member that may be edited inline.
type Field string

const (
	// FieldName identifies a Member's Name.
	FieldName Field = "name"
	// FieldEmail identifies a Member's Email.
	FieldEmail Field = "email"
)

// ParseField returns the Field named by the provided string. Matching is
// case-insensitive.
func ParseField(str string) (Field, error) {
	switch f := Field(strings.ToLower(strings.TrimSpace(str))); f {
	case FieldName, FieldEmail:
		return f, nil
	}
	return "", NewErrBadRequest(
		fmt.Sprintf("%q is not an editable field", str),
		fmt.Sprintf("editable fields are %q and %q", FieldName, FieldEmail),
	)
}

// Member represents a single row of the admin table.
type Member struct {
	// ID uniquely identifies the Member. It is assigned by the source the
	// Member was loaded from and never changes.
	ID    int    `json:"id" bson:"id"`
	Name  string `json:"name" bson:"name"`
	Email string `json:"email" bson:"email"`
	Role  Role   `json:"role" bson:"role"`
}

// MarshalJSON amends Member instances with type metadata so that clients do
// not need to be concerned with the tedium of doing so.
func (m Member) MarshalJSON() ([]byte, error) {
	type Alias Member
	return json.Marshal(
		struct {
			TypeMeta `json:",inline"`
			Alias    `json:",inline"`
		}{
			TypeMeta: newTypeMeta("Member"),
			Alias:    (Alias)(m),
		},
	)
}

// UnmarshalJSON accepts the Member's id either as a JSON number or as a
// string of decimal digits. Some sources serve ids as strings.
func (m *Member) UnmarshalJSON(data []byte) error {
	type Alias Member
	aux := struct {
		ID json.RawMessage `json:"id"`
		*Alias
	}{
		Alias: (*Alias)(m),
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	rawID := bytes.TrimSpace(aux.ID)
	if len(rawID) == 0 || bytes.Equal(rawID, []byte("null")) {
		m.ID = 0
		return nil
	}
	if rawID[0] == '"' {
		var idStr string
		if err := json.Unmarshal(rawID, &idStr); err != nil {
			return errors.Wrap(err, "error unmarshaling member id")
		}
		id, err := strconv.Atoi(strings.TrimSpace(idStr))
		if err != nil {
			return errors.Errorf("member id %q is not an integer", idStr)
		}
		m.ID = id
		return nil
	}
	return errors.Wrap(
		json.Unmarshal(rawID, &m.ID),
		"error unmarshaling member id",
	)
}

// Validate returns an *ErrBadRequest describing every problem with the Member
// or nil if there are none.
func (m Member) Validate() error {
	var problems []string
	if m.ID < 1 {
		problems = append(problems, "id must be a positive integer")
	}
	if strings.TrimSpace(m.Name) == "" {
		problems = append(problems, "name is required")
	}
	if strings.TrimSpace(m.Email) == "" {
		problems = append(problems, "email is required")
	}
	if !m.Role.Valid() {
		problems = append(
			problems,
			fmt.Sprintf("role %q is not one of %q or %q", m.Role, RoleMember, RoleAdmin),
		)
	}
	if len(problems) > 0 {
		return NewErrBadRequest(fmt.Sprintf("member %d is invalid", m.ID), problems...)
	}
	return nil
}

// Matches returns true if the Member satisfies the provided search query. The
// id, rendered as decimal text, must contain the query verbatim. The name,
// email, and role are matched case-insensitively. An empty query matches
// every Member.
func (m Member) Matches(query string) bool {
	if query == "" {
		return true
	}
	if strings.Contains(strconv.Itoa(m.ID), query) {
		return true
	}
	lowerQuery := strings.ToLower(query)
	return strings.Contains(strings.ToLower(m.Name), lowerQuery) ||
		strings.Contains(strings.ToLower(m.Email), lowerQuery) ||
		strings.Contains(strings.ToLower(string(m.Role)), lowerQuery)
}

// With returns a copy of the Member with the specified Field set to the
// provided value.
func (m Member) With(field Field, value string) Member {
	switch field {
	case FieldName:
		m.Name = value
	case FieldEmail:
		m.Email = value
	}
	return m
}

package memberadmin

import "encoding/json"

// Session represents a table session hosted by the API server. Each session
// owns an independent admin table that lives only as long as the session.
type Session struct {
	ObjectMeta `json:"metadata"`
	View       TableView `json:"view"`
	// LoadError, if set, describes why the session's member source could not
	// be loaded when the session was created. Such a session starts empty.
	LoadError string `json:"loadError,omitempty"`
}

// MarshalJSON amends Session instances with type metadata.
func (s Session) MarshalJSON() ([]byte, error) {
	type Alias Session
	return json.Marshal(
		struct {
			TypeMeta `json:",inline"`
			Alias    `json:",inline"`
		}{
			TypeMeta: newTypeMeta("Session"),
			Alias:    (Alias)(s),
		},
	)
}

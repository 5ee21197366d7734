package memberadmin

import "fmt"

// ErrLoad represents a failure to fetch or parse the member collection from
// its source. It is never fatal. Whatever was loaded previously (possibly
// nothing) remains in place.
type ErrLoad struct {
	TypeMeta `json:",inline"`
	Source   string `json:"source"`
	Reason   string `json:"reason"`
}

func NewErrLoad(source string, reason string) *ErrLoad {
	return &ErrLoad{
		TypeMeta: newTypeMeta("LoadError"),
		Source:   source,
		Reason:   reason,
	}
}

func (e *ErrLoad) Error() string {
	return fmt.Sprintf("Could not load members from %s: %s", e.Source, e.Reason)
}

type ErrBadRequest struct {
	TypeMeta `json:",inline"`
	Reason   string   `json:"reason"`
	Details  []string `json:"details,omitempty"`
}

func NewErrBadRequest(reason string, details ...string) *ErrBadRequest {
	return &ErrBadRequest{
		TypeMeta: newTypeMeta("BadRequestError"),
		Reason:   reason,
		Details:  details,
	}
}

func (e *ErrBadRequest) Error() string {
	if len(e.Details) == 0 {
		return fmt.Sprintf("Bad request: %s", e.Reason)
	}
	msg := fmt.Sprintf("Bad request: %s:", e.Reason)
	for i, detail := range e.Details {
		msg = fmt.Sprintf("%s\n  %d. %s", msg, i, detail)
	}
	return msg
}

type ErrNotFound struct {
	TypeMeta `json:",inline"`
	Type     string `json:"type"`
	ID       string `json:"id"`
}

func NewErrNotFound(tipe, id string) *ErrNotFound {
	return &ErrNotFound{
		TypeMeta: newTypeMeta("NotFoundError"),
		Type:     tipe,
		ID:       id,
	}
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s with id %s not found.", e.Type, e.ID)
}

type ErrConflict struct {
	TypeMeta `json:",inline"`
	Type     string `json:"type"`
	ID       string `json:"id"`
	Reason   string `json:"reason"`
}

func NewErrConflict(tipe string, id string, reason string) *ErrConflict {
	return &ErrConflict{
		TypeMeta: newTypeMeta("ConflictError"),
		Type:     tipe,
		ID:       id,
		Reason:   reason,
	}
}

func (e *ErrConflict) Error() string {
	return e.Reason
}

type ErrInternalServer struct {
	TypeMeta `json:",inline"`
}

func NewErrInternalServer() *ErrInternalServer {
	return &ErrInternalServer{
		TypeMeta: newTypeMeta("InternalServerError"),
	}
}

func (e *ErrInternalServer) Error() string {
	return "An internal server error occurred."
}

type ErrNotSupported struct {
	TypeMeta `json:",inline"`
	Details  string `json:"reason"`
}

func NewErrNotSupported(details string) *ErrNotSupported {
	return &ErrNotSupported{
		TypeMeta: newTypeMeta("NotSupportedError"),
		Details:  details,
	}
}

func (e *ErrNotSupported) Error() string {
	return e.Details
}

package memberadmin

import "time"

// APIVersion represents the API and major version thereof with which this
// version of memberadmin is compatible.
const APIVersion = "github.com/krancour/memberadmin/v1"

// TypeMeta represents metadata about a resource type to help clients and
// servers mutually head off potential confusion over types (and versions of
// thereof) sent over the wire.
type TypeMeta struct {
	// Kind specifies the type of a serialized resource.
	Kind string `json:"kind,omitempty"`
	// APIVersion specifies the major version of the memberadmin API with which
	// the client or server having serialized the resource is compatible.
	APIVersion string `json:"apiVersion,omitempty"`
}

func newTypeMeta(kind string) TypeMeta {
	return TypeMeta{
		APIVersion: APIVersion,
		Kind:       kind,
	}
}

// ObjectMeta represents metadata about an instance of a resource.
type ObjectMeta struct {
	// ID is an immutable resource identifier.
	ID string `json:"id,omitempty"`
	// Created indicates the time at which a resource was created. This is
	// recorded by the system.
	Created *time.Time `json:"created,omitempty"`
}

package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Sources and the database index
// return these (optionally wrapped) so callers can branch with errors.Is:
// - ErrNoDatabase: no operator record set could be obtained at all
// - ErrInvalidRecord: a record set is structurally unusable (bad enum, missing name)
// - ErrNotFound: a requested database or row does not exist
// - ErrUnavailable: the backing store is temporarily unreachable
var (
	ErrNoDatabase    = errors.New("no operator database")
	ErrInvalidRecord = errors.New("invalid operator record")
	ErrNotFound      = errors.New("not found")
	ErrUnavailable   = errors.New("unavailable")
)

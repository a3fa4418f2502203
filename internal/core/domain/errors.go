package domain

import "go.trai.ch/zerr"

var (
	// ErrNotFound is returned when the repository root or the snapshot file does not exist.
	ErrNotFound = zerr.New("not found")

	// ErrPermission is returned when the repository root, an entry, or the output location is not accessible.
	ErrPermission = zerr.New("permission denied")

	// ErrCacheCorrupt is returned when a snapshot file is unreadable, malformed, or internally inconsistent.
	ErrCacheCorrupt = zerr.New("snapshot cache is corrupt")

	// ErrValidation is returned when a caller supplies an invalid argument, such as a negative limit.
	ErrValidation = zerr.New("validation failed")

	// ErrNoSnapshot is returned when a catalog is queried before any snapshot has been loaded.
	ErrNoSnapshot = zerr.New("no snapshot loaded")
)

// Kind tags err with the given sentinel so callers can match it with errors.Is
// while keeping the original cause and its metadata reachable.
func Kind(kind, err error) error {
	if err == nil {
		return kind
	}
	return &kindError{kind: kind, err: err}
}

type kindError struct {
	kind error
	err  error
}

func (e *kindError) Error() string {
	return e.kind.Error() + ": " + e.err.Error()
}

func (e *kindError) Unwrap() []error {
	return []error{e.kind, e.err}
}

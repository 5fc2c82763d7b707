package schema

import "errors"

// Sentinel errors returned across package boundaries. Match them with errors.Is.
var (
	// ErrStoreNotInitialized is returned when a project is read or updated
	// before its store and project rows exist.
	ErrStoreNotInitialized = errors.New("store is not initialized")

	// ErrOldSchema is returned when the store predates the current schema.
	ErrOldSchema = errors.New("store schema is out of date, run 'hammer db migrate'")

	// ErrUnknownAuthor means an author could not be resolved even after mailmap lookup.
	ErrUnknownAuthor = errors.New("unknown author")

	// ErrMalformedPattern is returned for a file pattern that is neither a string nor a list of strings.
	ErrMalformedPattern = errors.New("malformed file pattern")

	// ErrNoCommits is returned when a project has no processed commits yet.
	ErrNoCommits = errors.New("no commits have been processed")
)

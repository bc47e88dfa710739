package domain

import "go.trai.ch/zerr"

var (
	// ErrDuplicateNode is returned when registering an identifier that
	// already has a node. This is a programmer error in a collaborator
	// and is surfaced rather than silently ignored.
	ErrDuplicateNode = zerr.New("node already registered")

	// ErrUnreadableResource is returned when a resource transformation
	// collaborator cannot locate a file it was asked to read.
	ErrUnreadableResource = zerr.New("resource not readable")

	// ErrTransformFailed is returned when a resource transformation
	// reports errors. The enclosing operation fails rather than
	// proceeding with partial output.
	ErrTransformFailed = zerr.New("resource transformation failed")

	// ErrWatchStartFailed is returned when the file watcher cannot be
	// started. Watch failures are fatal to the watch session.
	ErrWatchStartFailed = zerr.New("failed to start file watcher")

	// ErrConfigReadFailed is returned when the session config file
	// cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the session config file
	// cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigNotFound is returned when no session config file exists
	// between the working directory and the filesystem root.
	ErrConfigNotFound = zerr.New("could not find incr.yaml")

	// ErrNoRootsConfigured is returned when the session config declares
	// no watch roots.
	ErrNoRootsConfigured = zerr.New("no watch roots configured")

	// ErrInvalidStrategy is returned when the watch strategy is neither
	// "native" nor "poll".
	ErrInvalidStrategy = zerr.New("invalid watch strategy, expected 'native' or 'poll'")

	// ErrFileOpenFailed is returned when a file cannot be opened.
	ErrFileOpenFailed = zerr.New("failed to open file")

	// ErrFileHashFailed is returned when hashing a file fails.
	ErrFileHashFailed = zerr.New("failed to hash file content")

	// ErrResolveFailed is returned when a referenced resource cannot be
	// resolved relative to its containing unit.
	ErrResolveFailed = zerr.New("failed to resolve resource")
)

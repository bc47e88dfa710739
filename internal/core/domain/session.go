package domain

import "time"

// WatchStrategy selects how filesystem changes are detected.
type WatchStrategy string

const (
	// StrategyNative uses OS file notifications.
	StrategyNative WatchStrategy = "native"
	// StrategyPoll scans watch roots at a fixed interval, for
	// filesystems without native notification support.
	StrategyPoll WatchStrategy = "poll"
)

// ConfigFileName is the session configuration file, searched for upward
// from the working directory.
const ConfigFileName = "incr.yaml"

const (
	// DefaultPollInterval is the scan interval for the polling strategy.
	DefaultPollInterval = 2 * time.Second
	// DefaultDebounceWindow is the window used to coalesce filesystem
	// bursts into one invalidation batch.
	DefaultDebounceWindow = 50 * time.Millisecond
)

// Session describes one watch session: where to watch, how, and which
// entry points are tracked as targets.
type Session struct {
	// Root is the directory the config was loaded from. All relative
	// paths in the session resolve against it.
	Root string
	// WatchRoots are the directories watched for changes.
	WatchRoots []string
	// Ignore lists directory names excluded from watching.
	Ignore []string
	// Strategy selects native notifications or polling.
	Strategy WatchStrategy
	// PollInterval applies when Strategy is StrategyPoll.
	PollInterval time.Duration
	// DebounceWindow is the batch coalescing window.
	DebounceWindow time.Duration
	// PrimaryExtensions identify primary-language sources; anything
	// else is treated as a resource for fan-out purposes.
	PrimaryExtensions []string
	// Targets are the entry-point files registered as targets.
	Targets []string
}

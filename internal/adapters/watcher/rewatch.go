package watcher

import (
	"runtime"

	"github.com/fsnotify/fsnotify"
)

// RewatchPolicy re-arms the watch for a directory after an event was
// delivered for one of its files. On some platforms the underlying
// notification mechanism fails to re-arm after a fast delete+recreate
// sequence; cycling the handle restores delivery.
type RewatchPolicy func(w *fsnotify.Watcher, dir string) error

// DefaultRewatchPolicy returns the rewatch policy for the current
// platform. Most platforms need none.
func DefaultRewatchPolicy() RewatchPolicy {
	return rewatchPolicyFor(runtime.GOOS)
}

func rewatchPolicyFor(goos string) RewatchPolicy {
	if goos == "windows" {
		return cycleWatch
	}
	return nil
}

// cycleWatch drops and re-acquires the watch handle for a directory.
func cycleWatch(w *fsnotify.Watcher, dir string) error {
	// Remove fails when the handle already died with the directory;
	// re-adding is what matters.
	_ = w.Remove(dir)
	return w.Add(dir)
}

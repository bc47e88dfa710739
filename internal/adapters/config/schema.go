package config

// Incrfile represents the structure of the incr.yaml configuration file.
type Incrfile struct {
	Version           string    `yaml:"version"`
	Root              string    `yaml:"root"`
	Watch             *WatchDTO `yaml:"watch"`
	PrimaryExtensions []string  `yaml:"primaryExtensions"`
	Targets           []string  `yaml:"targets"`
}

// WatchDTO represents the watch section of the configuration.
type WatchDTO struct {
	Roots          []string `yaml:"roots"`
	Ignore         []string `yaml:"ignore"`
	Strategy       string   `yaml:"strategy"`
	PollIntervalMs int      `yaml:"pollIntervalMs"`
	DebounceMs     int      `yaml:"debounceMs"`
}

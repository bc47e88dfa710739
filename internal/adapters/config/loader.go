// Package config provides the configuration loader for incr.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/incr/internal/core/domain"
	"go.trai.ch/incr/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load searches for incr.yaml upward from cwd and returns the resolved
// watch session.
func (l *Loader) Load(cwd string) (*domain.Session, error) {
	configPath, err := l.findConfiguration(cwd)
	if err != nil {
		return nil, err
	}

	var incrfile Incrfile
	if err := readAndUnmarshalYAML(configPath, &incrfile); err != nil {
		return nil, err
	}

	return l.resolve(configPath, &incrfile)
}

// findConfiguration walks up from cwd until it finds incr.yaml or hits
// the filesystem root.
func (l *Loader) findConfiguration(cwd string) (string, error) {
	currentDir := cwd

	for {
		configPath := filepath.Join(currentDir, domain.ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			break
		}
		currentDir = parentDir
	}

	return "", zerr.With(domain.ErrConfigNotFound, "cwd", cwd)
}

// resolve turns the raw DTO into a validated session with all relative
// paths anchored at the config's directory.
func (l *Loader) resolve(configPath string, incrfile *Incrfile) (*domain.Session, error) {
	root := resolveRoot(configPath, incrfile.Root)

	watch := incrfile.Watch
	if watch == nil {
		watch = &WatchDTO{}
	}

	strategy, err := resolveStrategy(watch.Strategy)
	if err != nil {
		return nil, err
	}

	if len(watch.Roots) == 0 {
		return nil, zerr.With(domain.ErrNoRootsConfigured, "config", configPath)
	}

	if strategy == domain.StrategyNative && watch.PollIntervalMs != 0 {
		l.Logger.Warn(fmt.Sprintf("'pollIntervalMs' defined in %s has no effect with the native strategy", domain.ConfigFileName))
	}

	session := &domain.Session{
		Root:              root,
		WatchRoots:        resolvePaths(root, watch.Roots),
		Ignore:            watch.Ignore,
		Strategy:          strategy,
		PollInterval:      millisOrDefault(watch.PollIntervalMs, domain.DefaultPollInterval),
		DebounceWindow:    millisOrDefault(watch.DebounceMs, domain.DefaultDebounceWindow),
		PrimaryExtensions: normalizeExtensions(incrfile.PrimaryExtensions),
		Targets:           resolvePaths(root, incrfile.Targets),
	}
	return session, nil
}

func resolveStrategy(raw string) (domain.WatchStrategy, error) {
	switch domain.WatchStrategy(raw) {
	case "":
		return domain.StrategyNative, nil
	case domain.StrategyNative:
		return domain.StrategyNative, nil
	case domain.StrategyPoll:
		return domain.StrategyPoll, nil
	default:
		return "", zerr.With(domain.ErrInvalidStrategy, "strategy", raw)
	}
}

func resolveRoot(configPath, configuredRoot string) string {
	configDir := filepath.Dir(configPath)
	if configuredRoot == "" {
		return filepath.Clean(configDir)
	}
	if filepath.IsAbs(configuredRoot) {
		return filepath.Clean(configuredRoot)
	}
	return filepath.Clean(filepath.Join(configDir, configuredRoot))
}

// resolvePaths anchors relative paths at root and canonicalizes them.
func resolvePaths(root string, paths []string) []string {
	resolved := make([]string, 0, len(paths))
	for _, p := range paths {
		if !filepath.IsAbs(p) {
			p = filepath.Join(root, p)
		}
		resolved = append(resolved, domain.CanonicalPath(p))
	}
	return resolved
}

// normalizeExtensions lowercases extensions and ensures a leading dot.
func normalizeExtensions(extensions []string) []string {
	if len(extensions) == 0 {
		return nil
	}
	normalized := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized = append(normalized, ext)
	}
	return normalized
}

func millisOrDefault(ms int, fallback time.Duration) time.Duration {
	if ms <= 0 {
		return fallback
	}
	return time.Duration(ms) * time.Millisecond
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is validated by caller
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}

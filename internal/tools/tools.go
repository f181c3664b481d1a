// Package tools locates the external ffmpeg and ImageMagick binaries and
// keeps the resulting settings in a name/value registry.
package tools

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sort"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/surfaceview/internal/logger"
)

// Setting names.
const (
	FFmpeg      = "ffmpeg_binary"
	ImageMagick = "imagemagick_binary"
)

// Sentinel setting values.
const (
	// AutoDetect asks Detect to search for the binary.
	AutoDetect = "auto-detect"
	// Unset marks a binary that auto-detection could not find.
	Unset = "unset"
)

var (
	// ErrUnknownSetting is returned by Get for a name that was never set.
	ErrUnknownSetting = errors.New("unknown setting")
	// ErrBinaryNotExecutable is returned by Detect when an explicitly
	// configured binary cannot be started.
	ErrBinaryNotExecutable = errors.New("binary not executable")
)

// candidates lists the names tried, in order, when a binary is auto-detected.
var candidates = map[string][]string{
	FFmpeg:      {"ffmpeg", "ffmpeg.exe"},
	ImageMagick: {"convert"},
}

// Prober reports whether the binary at path can be started.
type Prober func(ctx context.Context, path string) error

// Registry holds the tool settings. It is not safe for concurrent use.
type Registry struct {
	settings map[string]string
	probe    Prober
}

// Option configures a Registry.
type Option func(*Registry)

// WithProber replaces the process-spawning probe.
func WithProber(p Prober) Option {
	return func(r *Registry) {
		r.probe = p
	}
}

// NewRegistry returns a registry with both binaries set to AutoDetect.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		settings: map[string]string{
			FFmpeg:      AutoDetect,
			ImageMagick: AutoDetect,
		},
		probe: Probe,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get returns the value of a setting.
func (r *Registry) Get(name string) (string, error) {
	v, ok := r.settings[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownSetting, name)
	}
	return v, nil
}

// Change merges overrides into the registry. New names are added.
func (r *Registry) Change(overrides map[string]string) {
	for k, v := range overrides {
		r.settings[k] = v
	}
}

// ChangeFromFile merges a YAML mapping of setting names to values.
func (r *Registry) ChangeFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading tool settings: %w", err)
	}

	var overrides map[string]string
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return fmt.Errorf("parsing tool settings %s: %w", path, err)
	}
	r.Change(overrides)
	return nil
}

// Names returns the known setting names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.settings))
	for k := range r.settings {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Detect resolves both binaries. An AutoDetect value is replaced by the
// first candidate that starts, or Unset if none does. Any other value is an
// explicit path that must start, or Detect fails with ErrBinaryNotExecutable.
func (r *Registry) Detect(ctx context.Context) error {
	for _, name := range []string{FFmpeg, ImageMagick} {
		resolved, err := r.resolve(ctx, name, r.settings[name])
		if err != nil {
			return err
		}
		r.settings[name] = resolved
		logger.Debug("tool resolved", zap.String("setting", name), zap.String("value", resolved))
	}
	return nil
}

func (r *Registry) resolve(ctx context.Context, name, value string) (string, error) {
	switch value {
	case "", AutoDetect:
		for _, c := range candidates[name] {
			if r.probe(ctx, c) == nil {
				return c, nil
			}
		}
		return Unset, nil
	case Unset:
		return Unset, nil
	}

	if err := r.probe(ctx, value); err != nil {
		return "", fmt.Errorf("%w: %s=%q (the path might be wrong): %v", ErrBinaryNotExecutable, name, value, err)
	}
	return value, nil
}

// Found reports whether the named binary starts with its current setting.
func (r *Registry) Found(ctx context.Context, name string) bool {
	v, ok := r.settings[name]
	if !ok || v == Unset || v == AutoDetect {
		return false
	}
	return r.probe(ctx, v) == nil
}

// Probe starts path with no arguments and waits for it to exit. The exit
// status is ignored: a binary that runs and complains about missing
// arguments still counts as found.
func Probe(ctx context.Context, path string) error {
	cmd := exec.CommandContext(ctx, path)
	err := cmd.Run()

	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package persona

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"go.yaml.in/yaml/v3"
)

// ErrUnknown is returned by Get for persona names not in the registry.
var ErrUnknown = errors.New("unknown persona")

// configFile is the on-disk shape of the persona configuration.
type configFile struct {
	Personas map[string]Profile `yaml:"personas"`
}

// snapshot is one immutable generation of the registry. Readers hold a
// snapshot pointer for the duration of a call, so a concurrent reload
// can never expose a partially built profile set.
type snapshot struct {
	profiles map[string]Profile
	names    []string
	source   string // "file" or "builtin"
}

// Registry serves persona profiles. All read paths go through an atomic
// snapshot pointer; Reload publishes a fully built replacement and swaps
// the pointer, so get/list never observe torn state.
type Registry struct {
	path string
	cur  atomic.Pointer[snapshot]
}

// Load builds a registry from the YAML file at path. A missing or
// unparsable file falls back to the built-in profiles with a warning on
// w; loading never fails outright.
func Load(path string, w io.Writer) *Registry {
	r := &Registry{path: path}
	snap, err := buildSnapshot(path)
	if err != nil {
		fmt.Fprintf(w, "warning: persona config %s: %v; using built-in profiles\n", path, err)
	}
	r.cur.Store(snap)
	return r
}

// buildSnapshot reads and validates the persona file. On any failure it
// returns the built-in snapshot alongside the error.
func buildSnapshot(path string) (*snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return builtinSnapshot(), fmt.Errorf("reading: %w", err)
	}

	var cfg configFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return builtinSnapshot(), fmt.Errorf("parsing: %w", err)
	}
	if len(cfg.Personas) == 0 {
		return builtinSnapshot(), fmt.Errorf("no personas configured")
	}

	profiles := make(map[string]Profile, len(cfg.Personas))
	for name, p := range cfg.Personas {
		p.Name = name
		if err := p.Validate(); err != nil {
			return builtinSnapshot(), err
		}
		profiles[name] = p
	}

	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)

	return &snapshot{profiles: profiles, names: names, source: "file"}, nil
}

func builtinSnapshot() *snapshot {
	defaults := builtinProfiles()
	profiles := make(map[string]Profile, len(defaults))
	names := make([]string, 0, len(defaults))
	for _, p := range defaults {
		profiles[p.Name] = p
		names = append(names, p.Name)
	}
	return &snapshot{profiles: profiles, names: names, source: "builtin"}
}

// Get returns the profile for name or ErrUnknown.
func (r *Registry) Get(name string) (Profile, error) {
	snap := r.cur.Load()
	p, ok := snap.profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q (available: %v)", ErrUnknown, name, snap.names)
	}
	return p, nil
}

// Names returns the registered persona names in stable order.
func (r *Registry) Names() []string {
	names := r.cur.Load().names
	out := make([]string, len(names))
	copy(out, names)
	return out
}

// Len returns the number of registered profiles.
func (r *Registry) Len() int {
	return len(r.cur.Load().profiles)
}

// Source reports where the current snapshot came from: "file" or "builtin".
func (r *Registry) Source() string {
	return r.cur.Load().source
}

// Reload re-reads the configuration file and atomically replaces the
// registry. It returns the before and after profile counts. A failed
// re-read falls back to the built-in profiles, mirroring Load.
func (r *Registry) Reload(w io.Writer) (before, after int) {
	before = r.Len()
	snap, err := buildSnapshot(r.path)
	if err != nil {
		fmt.Fprintf(w, "warning: persona reload %s: %v; using built-in profiles\n", r.path, err)
	}
	r.cur.Store(snap)
	after = len(snap.profiles)
	fmt.Fprintf(w, "persona registry reloaded: %d -> %d profiles\n", before, after)
	return before, after
}

// Watch reloads the registry whenever the configuration file changes.
// It blocks until ctx is done. Watcher errors are reported to w and do
// not stop the watch; a registry without a file path returns immediately.
func (r *Registry) Watch(ctx context.Context, w io.Writer) error {
	if r.path == "" {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors replace files on save, which would
	// invalidate a direct file watch.
	dir := filepath.Dir(r.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	target := filepath.Clean(r.path)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			r.Reload(w)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(w, "warning: persona watcher: %v\n", err)
		}
	}
}

// Package policy resolves the host deny-list: the names of execution
// mechanisms an administrator has disabled.
//
// A deny-list is assembled from one or more sources (environment variables,
// php.ini-style files, static configuration). The raw strings are merged and
// split on whitespace and commas; lookups are exact name matches.
//
// Default returns a process-wide list computed once from DefaultSources and
// never recomputed. Callers that need a different list build their own with
// Load and hand it to the executor explicitly.
package policy

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"sync"
)

const (
	// EnvDisableFunctions is the primary environment variable holding disabled mechanism names.
	EnvDisableFunctions = "SB_EXEC_DISABLE_FUNCTIONS"
	// EnvFuncBlacklist is a secondary environment variable merged into the deny-list.
	EnvFuncBlacklist = "SB_EXEC_FUNC_BLACKLIST"
)

var separators = regexp.MustCompile(`[\s,]+`)

// Parse splits a raw deny-list string into names.
func Parse(raw string) []string {
	var names []string
	for _, name := range separators.Split(raw, -1) {
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

// DenyList is an immutable set of disabled mechanism names.
// A nil *DenyList denies nothing.
type DenyList struct {
	names []string
	set   map[string]struct{}
}

// New returns a DenyList containing names. Duplicates are collapsed and the
// first occurrence order is kept.
func New(names ...string) *DenyList {
	d := &DenyList{set: make(map[string]struct{}, len(names))}
	for _, name := range names {
		if name == "" {
			continue
		}
		if _, ok := d.set[name]; ok {
			continue
		}
		d.set[name] = struct{}{}
		d.names = append(d.names, name)
	}
	return d
}

// Contains reports whether name is disabled.
func (d *DenyList) Contains(name string) bool {
	if d == nil {
		return false
	}
	_, ok := d.set[name]
	return ok
}

// Names returns the disabled names in source order.
func (d *DenyList) Names() []string {
	if d == nil {
		return nil
	}
	return slices.Clone(d.names)
}

// Len returns the number of distinct disabled names.
func (d *DenyList) Len() int {
	if d == nil {
		return 0
	}
	return len(d.names)
}

// String returns the names joined by commas.
func (d *DenyList) String() string {
	if d == nil {
		return ""
	}
	return strings.Join(d.names, ",")
}

// Load merges the raw strings of all sources into a DenyList.
func Load(sources ...Source) (*DenyList, error) {
	parts := make([]string, 0, len(sources))
	for _, src := range sources {
		raw, err := src.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load deny-list source %s: %w", src.Name(), err)
		}
		parts = append(parts, raw)
	}
	return New(Parse(strings.Join(parts, " "))...), nil
}

// DefaultSources returns the sources consulted by Default.
func DefaultSources() []Source {
	return []Source{
		EnvSource(EnvDisableFunctions),
		EnvSource(EnvFuncBlacklist),
	}
}

var (
	// defaultList is the process-wide deny-list, written once by defaultOnce
	defaultList *DenyList
	defaultOnce sync.Once
)

// Default returns the process-wide deny-list. It is computed on the first call
// and the same list is returned for the rest of the process lifetime.
func Default() *DenyList {
	defaultOnce.Do(func() {
		list, err := Load(DefaultSources()...)
		if err != nil {
			list = New()
		}
		defaultList = list
	})
	return defaultList
}

package policy

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/ini.v1"
)

// DefaultINIKeys are the php.ini directives read by an INISource with no Keys.
var DefaultINIKeys = []string{"disable_functions", "suhosin.executor.func.blacklist"}

// Source supplies one raw deny-list string.
type Source interface {
	// Name identifies the source in error messages.
	Name() string
	// Load returns the raw, unsplit deny-list string.
	Load() (string, error)
}

// EnvSource reads the named environment variable. An unset variable
// contributes nothing.
type EnvSource string

// Name implements Source.
func (s EnvSource) Name() string {
	return "env:" + string(s)
}

// Load implements Source.
func (s EnvSource) Load() (string, error) {
	return os.Getenv(string(s)), nil
}

// StaticSource contributes a fixed list of names.
type StaticSource []string

// Name implements Source.
func (s StaticSource) Name() string {
	return "static"
}

// Load implements Source.
func (s StaticSource) Load() (string, error) {
	return strings.Join(s, " "), nil
}

// INISource reads deny-list directives from a php.ini-style file. Every
// section is searched, so both top-level directives and directives under a
// [PHP] section are found. A missing file contributes nothing.
type INISource struct {
	Path string
	// Keys are the directive names to read. Defaults to DefaultINIKeys.
	Keys []string
}

// Name implements Source.
func (s INISource) Name() string {
	return "ini:" + s.Path
}

// Load implements Source.
func (s INISource) Load() (string, error) {
	if _, err := os.Stat(s.Path); errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}

	cfg, err := ini.LoadSources(ini.LoadOptions{AllowBooleanKeys: true}, s.Path)
	if err != nil {
		return "", fmt.Errorf("failed to load ini file: %w", err)
	}

	keys := s.Keys
	if len(keys) == 0 {
		keys = DefaultINIKeys
	}

	var values []string
	for _, section := range cfg.Sections() {
		for _, key := range keys {
			if section.HasKey(key) {
				values = append(values, section.Key(key).String())
			}
		}
	}

	return strings.Join(values, " "), nil
}

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"reflect"
	"slices"
	"strings"

	"github.com/saltyorg/sb-exec/internal/command"
	"github.com/saltyorg/sb-exec/internal/executor"
	"github.com/saltyorg/sb-exec/internal/logging"
	"github.com/saltyorg/sb-exec/internal/policy"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the CLI looks for its configuration file.
const DefaultPath = "/etc/sb-exec/config.yml"

// Config represents the sb-exec configuration file.
type Config struct {
	Shell           ShellConfig  `yaml:"shell" validate:"required"`
	EscapeArguments bool         `yaml:"escape_arguments"`
	Verbosity       int          `yaml:"verbosity" validate:"min=0,max=2"`
	Policy          PolicyConfig `yaml:"policy"`
}

// ShellConfig holds the interpreter used to run command lines.
type ShellConfig struct {
	Path string `yaml:"path" validate:"required"`
	Flag string `yaml:"flag" validate:"required"`
}

// PolicyConfig lists the sources merged into the deny-list.
type PolicyConfig struct {
	Disabled []string `yaml:"disabled" validate:"dive,mechanism"`
	Env      []string `yaml:"env" validate:"dive,required"`
	INIFiles []string `yaml:"ini_files" validate:"dive,required"`
	INIKeys  []string `yaml:"ini_keys" validate:"dive,required"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Shell: ShellConfig{
			Path: "sh",
			Flag: "-c",
		},
		EscapeArguments: true,
		Policy: PolicyConfig{
			Env:     []string{policy.EnvDisableFunctions, policy.EnvFuncBlacklist},
			INIKeys: slices.Clone(policy.DefaultINIKeys),
		},
	}
}

// Load reads and validates the configuration at path. A missing file yields
// the defaults; unknown keys are rejected.
func Load(path string, verbosity int) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logging.Debug(verbosity, "No config file at %s, using defaults", path)
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	logging.Trace(verbosity, "Loaded config from %s: %+v", path, *cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// mechanismValidator accepts only known execution mechanism names.
func mechanismValidator(fl validator.FieldLevel) bool {
	_, ok := executor.ParseMechanism(fl.Field().String())
	return ok
}

// yamlTagName reports fields by their YAML key in validation errors.
func yamlTagName(field reflect.StructField) string {
	name := strings.Split(field.Tag.Get("yaml"), ",")[0]
	if name == "-" {
		return ""
	}
	return name
}

// Validate checks the configuration and returns the first problem found.
func (c *Config) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(yamlTagName)
	if err := validate.RegisterValidation("mechanism", mechanismValidator); err != nil {
		return fmt.Errorf("failed to register mechanism validator: %w", err)
	}

	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	for _, e := range validationErrors {
		// Namespace is "Config.<yaml path>"
		_, fieldPath, _ := strings.Cut(e.Namespace(), ".")

		switch e.Tag() {
		case "required":
			return fmt.Errorf("field '%s' is required", fieldPath)
		case "mechanism":
			return fmt.Errorf("field '%s' must be one of %s, got: %v", fieldPath, mechanismList(), e.Value())
		case "min", "max":
			return fmt.Errorf("field '%s' must be between 0 and 2, got: %v", fieldPath, e.Value())
		default:
			return fmt.Errorf("field '%s' is invalid: %s", fieldPath, e.Error())
		}
	}
	return err
}

func mechanismList() string {
	names := make([]string, 0, len(executor.Mechanisms()))
	for _, m := range executor.Mechanisms() {
		names = append(names, string(m))
	}
	return strings.Join(names, ", ")
}

// Sources returns the deny-list sources described by the policy section.
func (c *Config) Sources() []policy.Source {
	var sources []policy.Source
	for _, name := range c.Policy.Env {
		sources = append(sources, policy.EnvSource(name))
	}
	for _, path := range c.Policy.INIFiles {
		sources = append(sources, policy.INISource{Path: path, Keys: c.Policy.INIKeys})
	}
	if len(c.Policy.Disabled) > 0 {
		sources = append(sources, policy.StaticSource(c.Policy.Disabled))
	}
	return sources
}

// usesDefaultPolicy reports whether the policy section matches the default
// sources exactly, in which case the process-wide list can be shared.
func (c *Config) usesDefaultPolicy() bool {
	def := Default().Policy
	return len(c.Policy.Disabled) == 0 &&
		len(c.Policy.INIFiles) == 0 &&
		slices.Equal(c.Policy.Env, def.Env)
}

// DenyList resolves the deny-list for this configuration.
func (c *Config) DenyList() (*policy.DenyList, error) {
	if c.usesDefaultPolicy() {
		return policy.Default(), nil
	}
	return policy.Load(c.Sources()...)
}

// ExecutorOptions returns the executor options for this configuration.
func (c *Config) ExecutorOptions() ([]executor.Option, error) {
	list, err := c.DenyList()
	if err != nil {
		return nil, err
	}
	return []executor.Option{
		executor.WithDenyList(list),
		executor.WithShell(c.Shell.Path, c.Shell.Flag),
		executor.WithVerbosity(c.Verbosity),
	}, nil
}

// CommandOptions returns the command builder options for this configuration.
func (c *Config) CommandOptions() []command.Option {
	return []command.Option{command.WithEscapeArguments(c.EscapeArguments)}
}

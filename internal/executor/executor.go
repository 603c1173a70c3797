// Package executor runs a built command line through the first usable of
// several execution mechanisms.
//
// The mechanisms are tried in a fixed priority order:
//
//	exec, shell_exec, passthru, popen, proc_open, system
//
// A mechanism is usable when it is present on the host and its name is not in
// the deny-list. Fallback happens only on unavailability; once a mechanism has
// been chosen its failure is returned to the caller unchanged.
//
// Basic usage:
//
//	out, err := executor.Run("date", command.Args("-u", "+%y%m%d"))
//	if err != nil {
//	    var execErr *executor.ExecError
//	    if errors.As(err, &execErr) {
//	        fmt.Println(execErr.Code, execErr.Message)
//	    }
//	}
//
// All calls block until the child exits. There is no timeout or cancellation.
package executor

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/saltyorg/sb-exec/internal/command"
	"github.com/saltyorg/sb-exec/internal/logging"
	"github.com/saltyorg/sb-exec/internal/policy"
)

// Mechanism names an execution mechanism. The name doubles as its deny-list key.
type Mechanism string

const (
	MechanismExec      Mechanism = "exec"
	MechanismShellExec Mechanism = "shell_exec"
	MechanismPassthru  Mechanism = "passthru"
	MechanismPopen     Mechanism = "popen"
	MechanismProcOpen  Mechanism = "proc_open"
	MechanismSystem    Mechanism = "system"
)

// Mechanisms returns every mechanism in priority order.
func Mechanisms() []Mechanism {
	return []Mechanism{
		MechanismExec,
		MechanismShellExec,
		MechanismPassthru,
		MechanismPopen,
		MechanismProcOpen,
		MechanismSystem,
	}
}

// ParseMechanism returns the mechanism with the given name.
func ParseMechanism(name string) (Mechanism, bool) {
	m := Mechanism(name)
	return m, slices.Contains(Mechanisms(), m)
}

// Strategy runs a command line through one mechanism.
type Strategy interface {
	// Mechanism returns the mechanism this strategy implements.
	Mechanism() Mechanism
	// Available reports whether the mechanism is present on this host.
	Available() bool
	// Execute runs the command line and returns its captured output.
	Execute(command string) (string, error)
}

// Options configures an Executor.
type Options struct {
	DenyList   *policy.DenyList
	ShellPath  string
	ShellFlag  string
	Stderr     io.Writer
	Verbosity  int
	Strategies []Strategy
}

// Option is a functional option for New.
type Option func(*Options)

// WithDenyList sets the deny-list consulted during selection.
func WithDenyList(list *policy.DenyList) Option {
	return func(o *Options) {
		o.DenyList = list
	}
}

// WithShell sets the interpreter used by the built-in strategies.
func WithShell(path, flag string) Option {
	return func(o *Options) {
		o.ShellPath = path
		o.ShellFlag = flag
	}
}

// WithStderr sets where the child's stderr goes for mechanisms that do not capture it.
func WithStderr(w io.Writer) Option {
	return func(o *Options) {
		o.Stderr = w
	}
}

// WithVerbosity sets the debug verbosity.
func WithVerbosity(verbosity int) Option {
	return func(o *Options) {
		o.Verbosity = verbosity
	}
}

// WithStrategies replaces the built-in registry. Order is priority order.
func WithStrategies(strategies ...Strategy) Option {
	return func(o *Options) {
		o.Strategies = strategies
	}
}

// Executor selects and runs a strategy for each command.
type Executor struct {
	denyList   *policy.DenyList
	strategies []Strategy
	verbosity  int
}

// New creates an Executor. Without WithDenyList the process-wide default
// deny-list is used.
func New(opts ...Option) *Executor {
	o := Options{
		ShellPath: "sh",
		ShellFlag: "-c",
		Stderr:    os.Stderr,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if o.DenyList == nil {
		o.DenyList = policy.Default()
	}
	if o.Stderr == nil {
		o.Stderr = io.Discard
	}
	strategies := o.Strategies
	if strategies == nil {
		strategies = builtinStrategies(shell{path: o.ShellPath, flag: o.ShellFlag, stderr: o.Stderr})
	}

	return &Executor{
		denyList:   o.DenyList,
		strategies: strategies,
		verbosity:  o.Verbosity,
	}
}

// Strategies returns the registry in priority order.
func (e *Executor) Strategies() []Strategy {
	return slices.Clone(e.strategies)
}

// Denied reports whether m is in the deny-list.
func (e *Executor) Denied(m Mechanism) bool {
	return e.denyList.Contains(string(m))
}

// DenyList returns the deny-list consulted during selection.
func (e *Executor) DenyList() *policy.DenyList {
	return e.denyList
}

// Select returns the first strategy that is available and not denied.
func (e *Executor) Select() (Strategy, error) {
	for _, s := range e.strategies {
		if e.Denied(s.Mechanism()) {
			logging.Trace(e.verbosity, "skipping %s: denied", s.Mechanism())
			continue
		}
		if !s.Available() {
			logging.Trace(e.verbosity, "skipping %s: unavailable", s.Mechanism())
			continue
		}
		return s, nil
	}
	return nil, ErrAllDisabled
}

// Run builds the command and executes it with the first usable strategy.
func (e *Executor) Run(program string, args []*string, opts ...command.Option) (string, error) {
	line, err := command.Build(program, args, opts...)
	if err != nil {
		return "", err
	}

	s, err := e.Select()
	if err != nil {
		return "", newExecError(line, "", 0, err)
	}
	return e.execute(s, line)
}

// RunWith builds the command and executes it with the given mechanism,
// ignoring the deny-list.
func (e *Executor) RunWith(m Mechanism, program string, args []*string, opts ...command.Option) (string, error) {
	line, err := command.Build(program, args, opts...)
	if err != nil {
		return "", err
	}

	for _, s := range e.strategies {
		if s.Mechanism() == m {
			return e.execute(s, line)
		}
	}
	return "", newExecError(line, "", 0, fmt.Errorf("unknown mechanism %q", m))
}

func (e *Executor) execute(s Strategy, line string) (string, error) {
	logging.Debug(e.verbosity, "running %s: %s", s.Mechanism(), line)
	out, err := s.Execute(line)
	if err != nil {
		return "", err
	}
	logging.Trace(e.verbosity, "output of %s:\n%s", s.Mechanism(), out)
	return out, nil
}

// Run executes a command with a default Executor.
func Run(program string, args []*string, opts ...command.Option) (string, error) {
	return New().Run(program, args, opts...)
}

// Exec runs a command with the exec mechanism.
func Exec(program string, args []*string, opts ...command.Option) (string, error) {
	return New().RunWith(MechanismExec, program, args, opts...)
}

// ShellExec runs a command with the shell_exec mechanism.
func ShellExec(program string, args []*string, opts ...command.Option) (string, error) {
	return New().RunWith(MechanismShellExec, program, args, opts...)
}

// Passthru runs a command with the passthru mechanism.
func Passthru(program string, args []*string, opts ...command.Option) (string, error) {
	return New().RunWith(MechanismPassthru, program, args, opts...)
}

// Popen runs a command with the popen mechanism.
func Popen(program string, args []*string, opts ...command.Option) (string, error) {
	return New().RunWith(MechanismPopen, program, args, opts...)
}

// ProcOpen runs a command with the proc_open mechanism.
func ProcOpen(program string, args []*string, opts ...command.Option) (string, error) {
	return New().RunWith(MechanismProcOpen, program, args, opts...)
}

// System runs a command with the system mechanism.
func System(program string, args []*string, opts ...command.Option) (string, error) {
	return New().RunWith(MechanismSystem, program, args, opts...)
}

// Package command builds shell-ready command lines from a program name and an
// ordered argument list.
//
// The program is escaped so shell metacharacters lose their special meaning
// while the program stays an executable invocation (it may carry its own
// flags, e.g. "ls -la"). Each argument is single-quoted so it reaches the
// program as one token, unless escaping is disabled, in which case arguments
// are passed through verbatim and may carry deliberate shell operators.
//
//	line, err := command.Build("ps", command.Args("a", "a b"))
//	// line == "ps 'a' 'a b'"
//
// A nil argument is an explicit "no value" placeholder and is dropped:
//
//	line, err := command.Build("ls", []*string{
//	    command.ArgIf(long, "-l"),
//	    command.Arg("/tmp"),
//	})
package command

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidArgument is returned when a command cannot be built from the
// supplied program or arguments.
var ErrInvalidArgument = errors.New("invalid argument")

// Options controls how a command line is built.
type Options struct {
	// EscapeArguments quotes every argument so it is passed as a single token.
	// Defaults to true.
	EscapeArguments bool
}

// Option configures Options.
type Option func(*Options)

// DefaultOptions returns the options used when no Option is given.
func DefaultOptions() Options {
	return Options{EscapeArguments: true}
}

// WithEscapeArguments sets whether arguments are shell-quoted.
func WithEscapeArguments(escape bool) Option {
	return func(o *Options) {
		o.EscapeArguments = escape
	}
}

// WithRawArguments disables argument quoting.
func WithRawArguments() Option {
	return WithEscapeArguments(false)
}

// NewOptions applies opts on top of DefaultOptions.
func NewOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Arg returns a pointer to value for use in an argument list.
func Arg(value string) *string {
	return &value
}

// ArgIf returns Arg(value) when cond is true and nil otherwise.
func ArgIf(cond bool, value string) *string {
	if !cond {
		return nil
	}
	return Arg(value)
}

// Args converts values into an argument list with no placeholders.
func Args(values ...string) []*string {
	args := make([]*string, len(values))
	for i := range values {
		args[i] = Arg(values[i])
	}
	return args
}

// Build returns the command line for program and args.
//
// The program is trimmed and must not be empty. Nil arguments are skipped.
// Neither the program nor any argument may contain a NUL byte.
func Build(program string, args []*string, opts ...Option) (string, error) {
	o := NewOptions(opts...)

	program = strings.TrimSpace(program)
	if program == "" {
		return "", fmt.Errorf("%w: empty program", ErrInvalidArgument)
	}
	if strings.IndexByte(program, 0) >= 0 {
		return "", fmt.Errorf("%w: program contains a NUL byte", ErrInvalidArgument)
	}

	tokens := make([]string, 0, len(args)+1)
	tokens = append(tokens, EscapeCommand(program))

	for i, arg := range args {
		if arg == nil {
			continue
		}
		if strings.IndexByte(*arg, 0) >= 0 {
			return "", fmt.Errorf("%w: argument %d contains a NUL byte", ErrInvalidArgument, i)
		}
		if o.EscapeArguments {
			tokens = append(tokens, QuoteArg(*arg))
		} else {
			tokens = append(tokens, *arg)
		}
	}

	return strings.Join(tokens, " "), nil
}

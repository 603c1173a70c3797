package tty

import (
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// DefaultWidth is used when stdout is not a terminal or its size is unknown.
const DefaultWidth = 80

// isInteractive stores whether stdout is connected to a terminal.
// This is checked once at package initialization to avoid repeated syscalls.
var isInteractive bool

func init() {
	isInteractive = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// IsInteractive returns whether stdout is connected to a terminal.
// Returns false if output is redirected, piped, or in a non-interactive environment.
func IsInteractive() bool {
	return isInteractive
}

// Width returns the terminal width of stdout, or DefaultWidth.
func Width() int {
	if !isInteractive {
		return DefaultWidth
	}
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return DefaultWidth
	}
	return width
}

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/saltyorg/sb-exec/cmd"
	"github.com/saltyorg/sb-exec/internal/errors"
	"github.com/saltyorg/sb-exec/internal/runtime"
	"github.com/saltyorg/sb-exec/internal/signals"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// customErrorHandler handles error formatting with proper line break support.
// Unlike the default handler, this respects \n characters in error messages
// and renders each line separately for better readability.
func customErrorHandler(w io.Writer, styles fang.Styles, err error) {
	fmt.Fprintf(w, "%s\n", styles.ErrorHeader.String())

	errorText := err.Error()
	// Width and transform are unset so captured command output keeps its formatting
	lineStyle := styles.ErrorText.UnsetTransform().UnsetWidth()
	for line := range strings.SplitSeq(errorText, "\n") {
		if line != "" {
			fmt.Fprintf(w, "%s\n", lineStyle.Render(line))
		} else {
			fmt.Fprintf(w, "\n")
		}
	}

	if !strings.HasSuffix(errorText, "\n") {
		fmt.Fprintf(w, "\n")
	}
}

// colorProfile maps SB_EXEC_COLOR_PROFILE values to a termenv profile.
// Unknown or empty values select truecolor.
func colorProfile(value string) termenv.Profile {
	switch value {
	case "ansi256":
		return termenv.ANSI256
	case "ansi":
		return termenv.ANSI
	case "ascii":
		return termenv.Ascii
	default:
		return termenv.TrueColor
	}
}

func main() {
	// Valid values: truecolor, ansi256, ansi, ascii
	profile := colorProfile(os.Getenv("SB_EXEC_COLOR_PROFILE"))
	switch profile {
	case termenv.TrueColor:
		_ = os.Setenv("COLORTERM", "truecolor")
	case termenv.ANSI256:
		_ = os.Setenv("COLORTERM", "256color")
	}
	lipgloss.SetColorProfile(profile)

	sigManager := signals.GetGlobalManager()
	ctx := sigManager.Context()

	if err := fang.Execute(ctx, cmd.GetRootCommand(),
		fang.WithErrorHandler(customErrorHandler),
		fang.WithVersion(runtime.VersionString()),
	); err != nil {
		if errors.HandleInterruptError(err) || sigManager.IsShutdown() {
			os.Exit(sigManager.ExitCode())
		}
		os.Exit(errors.ExitCode(err))
	}

	if sigManager.IsShutdown() {
		os.Exit(sigManager.ExitCode())
	}
	os.Exit(0)
}

package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/saltyorg/sb-exec/internal/signals"

	"github.com/charmbracelet/fang"
	"github.com/muesli/termenv"
)

func TestColorProfile(t *testing.T) {
	tests := []struct {
		value string
		want  termenv.Profile
	}{
		{"", termenv.TrueColor},
		{"truecolor", termenv.TrueColor},
		{"ansi256", termenv.ANSI256},
		{"ansi", termenv.ANSI},
		{"ascii", termenv.Ascii},
		{"bogus", termenv.TrueColor},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			if got := colorProfile(tt.value); got != tt.want {
				t.Errorf("colorProfile(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestCustomErrorHandlerKeepsLines(t *testing.T) {
	var buf bytes.Buffer
	customErrorHandler(&buf, fang.Styles{}, errors.New("unknown strategy 'x'\nValid strategies: exec"))

	out := buf.String()
	for _, want := range []string{"unknown strategy 'x'", "Valid strategies: exec"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output:\n%s", want, out)
		}
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("Expected output to end with a newline")
	}
}

func TestSignalManagerInitialization(t *testing.T) {
	sigManager := signals.GetGlobalManager()
	if sigManager == nil {
		t.Fatal("Signal manager should not be nil")
	}

	select {
	case <-sigManager.Context().Done():
		t.Error("Context should not be done immediately")
	default:
	}
}

package logging

import (
	"bytes"
	"testing"
)

func TestLevels(t *testing.T) {
	tests := []struct {
		name string
		log  func()
		want string
	}{
		{"debug silent at 0", func() { Debug(0, "hidden %d", 1) }, ""},
		{"debug at 1", func() { Debug(1, "shown %d", 1) }, "DEBUG: shown 1\n"},
		{"trace silent at 1", func() { Trace(1, "hidden") }, ""},
		{"trace at 2", func() { Trace(2, "raw %q", "x") }, "TRACE: raw \"x\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			prev := SetOutput(&buf)
			defer SetOutput(prev)

			tt.log()
			if got := buf.String(); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

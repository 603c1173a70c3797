package policy

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", nil},
		{"whitespace only", " \t\n ", nil},
		{"commas", "exec,system", []string{"exec", "system"}},
		{"mixed separators", " exec , popen\tproc_open\n,, system ", []string{"exec", "popen", "proc_open", "system"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.raw)
			if !slices.Equal(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestDenyList(t *testing.T) {
	d := New("exec", "system", "exec", "")

	if !d.Contains("exec") || !d.Contains("system") {
		t.Errorf("expected exec and system to be denied, got %v", d.Names())
	}
	if d.Contains("popen") {
		t.Error("expected popen to be allowed")
	}
	if d.Contains("exe") {
		t.Error("expected exact name matching")
	}
	if d.Len() != 2 {
		t.Errorf("expected 2 names, got %d", d.Len())
	}
	if d.String() != "exec,system" {
		t.Errorf("expected 'exec,system', got %q", d.String())
	}

	names := d.Names()
	names[0] = "mutated"
	if !d.Contains("exec") {
		t.Error("Names must return a copy")
	}
}

func TestNilDenyList(t *testing.T) {
	var d *DenyList
	if d.Contains("exec") {
		t.Error("nil deny-list must deny nothing")
	}
	if d.Len() != 0 || d.Names() != nil || d.String() != "" {
		t.Error("nil deny-list must be empty")
	}
}

func TestLoadMergesSources(t *testing.T) {
	t.Setenv("POLICY_TEST_PRIMARY", "exec, shell_exec")
	t.Setenv("POLICY_TEST_SECONDARY", "system")

	d, err := Load(
		EnvSource("POLICY_TEST_PRIMARY"),
		EnvSource("POLICY_TEST_SECONDARY"),
		EnvSource("POLICY_TEST_UNSET"),
		StaticSource{"popen", "exec"},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"exec", "shell_exec", "system", "popen"}
	if !slices.Equal(d.Names(), want) {
		t.Errorf("expected %v, got %v", want, d.Names())
	}
}

func TestINISource(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "php.ini")

	content := `; host policy
disable_functions = "exec,passthru"

[PHP]
suhosin.executor.func.blacklist = popen, proc_open ; inline comment
memory_limit = 128M
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write ini file: %v", err)
	}

	d, err := Load(INISource{Path: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, name := range []string{"exec", "passthru", "popen", "proc_open"} {
		if !d.Contains(name) {
			t.Errorf("expected %s to be denied, got %v", name, d.Names())
		}
	}
	if d.Contains("128M") || d.Contains("memory_limit") {
		t.Errorf("unrelated directives must be ignored, got %v", d.Names())
	}
}

func TestINISourceCustomKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.ini")
	if err := os.WriteFile(path, []byte("blocked = system\ndisable_functions = exec\n"), 0o644); err != nil {
		t.Fatalf("failed to write ini file: %v", err)
	}

	d, err := Load(INISource{Path: path, Keys: []string{"blocked"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(d.Names(), []string{"system"}) {
		t.Errorf("expected [system], got %v", d.Names())
	}
}

func TestINISourceMissingFile(t *testing.T) {
	d, err := Load(INISource{Path: "/non/existent/php.ini"})
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if d.Len() != 0 {
		t.Errorf("expected empty deny-list, got %v", d.Names())
	}
}

func TestINISourceInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.ini")
	if err := os.WriteFile(path, []byte("[unterminated\n"), 0o644); err != nil {
		t.Fatalf("failed to write ini file: %v", err)
	}

	if _, err := Load(INISource{Path: path}); err == nil {
		t.Error("expected error for malformed ini file")
	}
}

func TestDefaultIsComputedOnce(t *testing.T) {
	first := Default()
	t.Setenv(EnvDisableFunctions, "exec")
	second := Default()

	if first != second {
		t.Error("expected Default to return the same list on every call")
	}
}

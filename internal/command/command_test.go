package command

import (
	"errors"
	"strings"
	"testing"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name    string
		program string
		args    []*string
		opts    []Option
		want    string
	}{
		{
			name:    "quotes every argument",
			program: "ps",
			args:    Args("a", "a b"),
			want:    "ps 'a' 'a b'",
		},
		{
			name:    "no arguments",
			program: "date",
			want:    "date",
		},
		{
			name:    "program is trimmed",
			program: "  uptime \n",
			want:    "uptime",
		},
		{
			name:    "program keeps its own flags",
			program: "ls -la",
			args:    Args("/tmp"),
			want:    "ls -la '/tmp'",
		},
		{
			name:    "nil arguments are dropped",
			program: "ls",
			args:    []*string{nil, Arg("-l"), nil, Arg("/srv"), nil},
			want:    "ls '-l' '/srv'",
		},
		{
			name:    "only nil arguments",
			program: "ls",
			args:    []*string{nil, nil},
			want:    "ls",
		},
		{
			name:    "embedded single quote",
			program: "echo",
			args:    Args("it's"),
			want:    `echo 'it'\''s'`,
		},
		{
			name:    "empty argument stays a token",
			program: "printf",
			args:    Args(""),
			want:    "printf ''",
		},
		{
			name:    "raw arguments pass through",
			program: "ls",
			args:    Args("-1", "|", "wc", "-l"),
			opts:    []Option{WithRawArguments()},
			want:    "ls -1 | wc -l",
		},
		{
			name:    "explicit escaping",
			program: "echo",
			args:    Args("$HOME"),
			opts:    []Option{WithEscapeArguments(true)},
			want:    "echo '$HOME'",
		},
		{
			name:    "program metacharacters are escaped",
			program: "ls; rm -rf /",
			want:    `ls\; rm -rf /`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Build(tt.program, tt.args, tt.opts...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestBuildRejectsBlankProgram(t *testing.T) {
	for _, program := range []string{"", " ", "\t\n"} {
		for _, args := range [][]*string{nil, Args("a"), {nil}} {
			_, err := Build(program, args)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("Build(%q, %d args): expected ErrInvalidArgument, got %v", program, len(args), err)
			}
		}
	}
}

func TestBuildRejectsNULBytes(t *testing.T) {
	if _, err := Build("ec\x00ho", nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for program, got %v", err)
	}
	if _, err := Build("echo", Args("a\x00b")); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for argument, got %v", err)
	}
}

func TestBuildNilEntriesNeverProduceTokens(t *testing.T) {
	args := []*string{nil, Arg("x"), nil, nil, Arg("y"), nil}
	got, err := Build("cmd", args)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tokens := strings.Split(got, " ")
	if len(tokens) != 3 {
		t.Fatalf("expected 3 tokens, got %d: %q", len(tokens), got)
	}
	for _, tok := range tokens {
		if tok == "" || tok == "''" {
			t.Errorf("unexpected empty token in %q", got)
		}
	}
}

func TestBuildRawPreservesMetacharacters(t *testing.T) {
	raw := []string{"a;b", "`id`", "$(whoami)", "x > /dev/null", "'q'"}
	got, err := Build("echo", Args(raw...), WithRawArguments())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "echo " + strings.Join(raw, " ")
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	args := []*string{Arg("a b"), nil, Arg("c'd")}
	first, err := Build("tool --flag", args)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Build("tool --flag", args)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Errorf("expected identical results, got %q and %q", first, second)
	}
}

func TestArgIf(t *testing.T) {
	if ArgIf(false, "-v") != nil {
		t.Error("expected nil for false condition")
	}
	if v := ArgIf(true, "-v"); v == nil || *v != "-v" {
		t.Errorf("expected pointer to '-v', got %v", v)
	}
}

func TestEscapeCommand(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ls", "ls"},
		{"a|b", `a\|b`},
		{"a&b", `a\&b`},
		{"`id`", "\\`id\\`"},
		{"$(id)", `\$\(id\)`},
		{`a\b`, `a\\b`},
		{"a\nb", "a\\\nb"},
		{"*?~<>^[]{}#", `\*\?\~\<\>\^\[\]\{\}\#`},
		{`echo "paired"`, `echo "paired"`},
		{`echo 'paired'`, `echo 'paired'`},
		{`echo "unpaired`, `echo \"unpaired`},
		{`it's`, `it\'s`},
		{`"a'b"`, `"a\'b"`},
		{`'a'b'`, `'a'b\'`},
	}

	for _, tt := range tests {
		if got := EscapeCommand(tt.in); got != tt.want {
			t.Errorf("EscapeCommand(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestQuoteArg(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "''"},
		{"a", "'a'"},
		{"a b", "'a b'"},
		{"$HOME", "'$HOME'"},
		{"it's", `'it'\''s'`},
		{"''", `''\'''\'''`},
	}

	for _, tt := range tests {
		if got := QuoteArg(tt.in); got != tt.want {
			t.Errorf("QuoteArg(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestNewOptions(t *testing.T) {
	if !NewOptions().EscapeArguments {
		t.Error("expected escaping to be enabled by default")
	}
	if NewOptions(WithRawArguments()).EscapeArguments {
		t.Error("expected WithRawArguments to disable escaping")
	}
	if !NewOptions(WithRawArguments(), WithEscapeArguments(true)).EscapeArguments {
		t.Error("expected later options to win")
	}
}

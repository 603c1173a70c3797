package executor

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"os/exec"
	"strings"
	"unicode"

	"golang.org/x/sync/errgroup"
)

// shell runs command lines through an interpreter, e.g. "sh -c <line>".
type shell struct {
	path string
	flag string
	// stderr receives the child's stderr for mechanisms that do not capture it
	stderr io.Writer
}

// command returns an unstarted process for line. Stdin is the null device.
func (s shell) command(line string) *exec.Cmd {
	return exec.Command(s.path, s.flag, line)
}

// available reports whether the interpreter can be found.
func (s shell) available() bool {
	_, err := exec.LookPath(s.path)
	return err == nil
}

// exitStatus extracts the exit status from an error returned by Wait or Run.
// ok is false when err does not carry a status, e.g. the process never started.
func exitStatus(err error) (code int, ok bool) {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), true
	}
	return 0, false
}

// statusError turns the result of a status-tracking mechanism into an
// ExecError, or nil on success.
func statusError(line, message string, err error) error {
	if err == nil {
		return nil
	}
	code, _ := exitStatus(err)
	return newExecError(line, message, code, err)
}

// lastLine returns the final line of out with trailing whitespace removed.
func lastLine(out string) string {
	out = strings.TrimRightFunc(out, unicode.IsSpace)
	if i := strings.LastIndexByte(out, '\n'); i >= 0 {
		return out[i+1:]
	}
	return out
}

// execStrategy reads stdout line by line and checks the exit status.
type execStrategy struct{ sh shell }

func (s *execStrategy) Mechanism() Mechanism { return MechanismExec }
func (s *execStrategy) Available() bool      { return s.sh.available() }

func (s *execStrategy) Execute(line string) (string, error) {
	cmd := s.sh.command(line)
	cmd.Stderr = s.sh.stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return "", newExecError(line, "", 0, err)
	}
	if err := cmd.Start(); err != nil {
		return "", newExecError(line, "", 0, err)
	}

	out, readErr := readTrimmedLines(stdout)
	if readErr != nil {
		// keep the child from blocking on a full pipe
		_, _ = io.Copy(io.Discard, stdout)
	}

	waitErr := cmd.Wait()

	if err := statusError(line, out, waitErr); err != nil {
		return "", err
	}
	if readErr != nil {
		return "", newExecError(line, out, 0, readErr)
	}
	return out, nil
}

// readTrimmedLines reads r to EOF and joins its lines without a separator,
// stripping trailing whitespace from each. Lines have no length limit.
func readTrimmedLines(r io.Reader) (string, error) {
	reader := bufio.NewReader(r)
	var b strings.Builder
	for {
		chunk, err := reader.ReadString('\n')
		b.WriteString(strings.TrimRightFunc(chunk, unicode.IsSpace))
		if errors.Is(err, io.EOF) {
			return b.String(), nil
		}
		if err != nil {
			return b.String(), err
		}
	}
}

// passthruStrategy attaches an in-memory buffer as the child's stdout for the
// duration of the call and checks the exit status.
type passthruStrategy struct{ sh shell }

func (s *passthruStrategy) Mechanism() Mechanism { return MechanismPassthru }
func (s *passthruStrategy) Available() bool      { return s.sh.available() }

func (s *passthruStrategy) Execute(line string) (string, error) {
	var buf bytes.Buffer
	cmd := s.sh.command(line)
	cmd.Stdout = &buf
	cmd.Stderr = s.sh.stderr

	err := cmd.Run()
	if err := statusError(line, buf.String(), err); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// shellExecStrategy returns the full stdout. It only fails when the shell
// itself cannot be run; the exit status is not reported.
type shellExecStrategy struct{ sh shell }

func (s *shellExecStrategy) Mechanism() Mechanism { return MechanismShellExec }
func (s *shellExecStrategy) Available() bool      { return s.sh.available() }

func (s *shellExecStrategy) Execute(line string) (string, error) {
	var buf bytes.Buffer
	cmd := s.sh.command(line)
	cmd.Stdout = &buf
	cmd.Stderr = s.sh.stderr

	if err := cmd.Run(); err != nil {
		if _, ok := exitStatus(err); !ok {
			return "", newExecError(line, "", 0, err)
		}
	}
	return buf.String(), nil
}

// popenStrategy reads stdout from a one-way pipe. An exit status is not an
// error; only failures to open, read or close the pipe are.
type popenStrategy struct{ sh shell }

func (s *popenStrategy) Mechanism() Mechanism { return MechanismPopen }
func (s *popenStrategy) Available() bool      { return s.sh.available() }

func (s *popenStrategy) Execute(line string) (string, error) {
	cmd := s.sh.command(line)
	cmd.Stderr = s.sh.stderr

	pipe, err := cmd.StdoutPipe()
	if err != nil {
		return "", newExecError(line, "", 0, err)
	}
	if err := cmd.Start(); err != nil {
		return "", newExecError(line, "", 0, err)
	}

	out, readErr := io.ReadAll(pipe)
	waitErr := cmd.Wait()

	if readErr != nil {
		return "", newExecError(line, "", 0, readErr)
	}
	if waitErr != nil {
		if _, ok := exitStatus(waitErr); !ok {
			return "", newExecError(line, "", 0, waitErr)
		}
	}
	return string(out), nil
}

// procOpenStrategy captures stdout and stderr over separate pipes and checks
// the exit status. It is the only mechanism that reports stderr.
type procOpenStrategy struct{ sh shell }

func (s *procOpenStrategy) Mechanism() Mechanism { return MechanismProcOpen }
func (s *procOpenStrategy) Available() bool      { return s.sh.available() }

func (s *procOpenStrategy) Execute(line string) (string, error) {
	cmd := s.sh.command(line)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return "", newExecError(line, "", 0, err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return "", newExecError(line, "", 0, err)
	}
	if err := cmd.Start(); err != nil {
		return "", newExecError(line, "", 0, err)
	}

	// both pipes are drained concurrently so neither can fill up and stall the child
	var outBuf, errBuf bytes.Buffer
	var g errgroup.Group
	g.Go(func() error {
		_, err := io.Copy(&outBuf, stdout)
		return err
	})
	g.Go(func() error {
		_, err := io.Copy(&errBuf, stderr)
		return err
	})
	readErr := g.Wait()
	waitErr := cmd.Wait()

	if err := statusError(line, errBuf.String(), waitErr); err != nil {
		return "", err
	}
	if readErr != nil {
		return "", newExecError(line, errBuf.String(), 0, readErr)
	}
	return outBuf.String(), nil
}

// systemStrategy returns only the last line of stdout and checks the exit
// status. The full output is kept for the error message.
type systemStrategy struct{ sh shell }

func (s *systemStrategy) Mechanism() Mechanism { return MechanismSystem }
func (s *systemStrategy) Available() bool      { return s.sh.available() }

func (s *systemStrategy) Execute(line string) (string, error) {
	var buf bytes.Buffer
	cmd := s.sh.command(line)
	cmd.Stdout = &buf
	cmd.Stderr = s.sh.stderr

	err := cmd.Run()
	if err := statusError(line, buf.String(), err); err != nil {
		return "", err
	}
	return lastLine(buf.String()), nil
}

// builtinStrategies returns the built-in adapters in priority order.
func builtinStrategies(sh shell) []Strategy {
	return []Strategy{
		&execStrategy{sh: sh},
		&shellExecStrategy{sh: sh},
		&passthruStrategy{sh: sh},
		&popenStrategy{sh: sh},
		&procOpenStrategy{sh: sh},
		&systemStrategy{sh: sh},
	}
}

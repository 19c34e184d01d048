package shell

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// stderrTailSize bounds the stderr kept for error messages.
const stderrTailSize = 4096

// Command is one external program invocation.
type Command struct {
	Name string
	Args []string

	// Dir is the working directory. Empty means the current directory.
	Dir string

	// Stdin is fed to the program when non-empty. Generators that ask
	// questions receive their scripted answers this way.
	Stdin string

	// Env overlays the inherited environment.
	Env map[string]string
}

// String renders the command line for logs.
func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Runner executes external commands. Tests substitute a fake.
type Runner interface {
	Run(ctx context.Context, cmd Command) error
}

// ExecRunner runs commands with os/exec, streaming their output.
type ExecRunner struct {
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
}

// NewExecRunner creates an ExecRunner. Nil writers discard output.
func NewExecRunner(stdout, stderr io.Writer, logger *slog.Logger) *ExecRunner {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ExecRunner{stdout: stdout, stderr: stderr, logger: logger}
}

// Run executes cmd and blocks until it exits. A non-zero exit yields a
// *CommandError; a missing executable yields ErrCommandNotFound.
func (r *ExecRunner) Run(ctx context.Context, c Command) error {
	path, err := exec.LookPath(c.Name)
	if err != nil {
		return &os.PathError{Op: "exec", Path: c.Name, Err: errors.Join(ErrCommandNotFound, err)}
	}

	cmd := exec.CommandContext(ctx, path, c.Args...)
	cmd.Dir = c.Dir
	if c.Stdin != "" {
		cmd.Stdin = strings.NewReader(c.Stdin)
	}
	if len(c.Env) > 0 {
		cmd.Env = cmd.Environ()
		for k, v := range c.Env {
			cmd.Env = append(cmd.Env, k+"="+v)
		}
	}

	tail := &tailBuffer{limit: stderrTailSize}
	cmd.Stdout = r.stdout
	cmd.Stderr = io.MultiWriter(r.stderr, tail)

	r.logger.Debug("running command", "cmd", c.String(), "dir", c.Dir)

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &CommandError{
				Command:  c.Name,
				Args:     c.Args,
				Dir:      c.Dir,
				ExitCode: exitErr.ExitCode(),
				Stderr:   tail.String(),
			}
		}
		return err
	}
	return nil
}

// tailBuffer keeps the last limit bytes written to it.
type tailBuffer struct {
	limit int
	buf   []byte
}

func (b *tailBuffer) Write(p []byte) (int, error) {
	b.buf = append(b.buf, p...)
	if over := len(b.buf) - b.limit; over > 0 {
		b.buf = b.buf[over:]
	}
	return len(p), nil
}

func (b *tailBuffer) String() string {
	return string(b.buf)
}

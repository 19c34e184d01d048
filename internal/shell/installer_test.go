package shell

import (
	"context"
	"errors"
	"testing"
)

type fakeRunner struct {
	calls []Command
	err   error
}

func (f *fakeRunner) Run(_ context.Context, c Command) error {
	f.calls = append(f.calls, c)
	return f.err
}

func TestPackageInstaller(t *testing.T) {
	t.Run("default_manager", func(t *testing.T) {
		r := &fakeRunner{}
		inst, err := NewPackageInstaller(r, "")
		if err != nil {
			t.Fatalf("NewPackageInstaller error: %v", err)
		}
		if inst.Manager() != "pnpm" {
			t.Errorf("Manager() = %q, want pnpm", inst.Manager())
		}
		if err := inst.Install(context.Background(), "/tmp/app"); err != nil {
			t.Fatalf("Install error: %v", err)
		}
		if len(r.calls) != 1 {
			t.Fatalf("expected 1 call, got %d", len(r.calls))
		}
		got := r.calls[0]
		if got.Name != "pnpm" || len(got.Args) != 1 || got.Args[0] != "install" || got.Dir != "/tmp/app" {
			t.Errorf("unexpected command %+v", got)
		}
	})

	t.Run("unsupported_manager", func(t *testing.T) {
		_, err := NewPackageInstaller(&fakeRunner{}, "pip")
		if !errors.Is(err, ErrUnsupportedPackageManager) {
			t.Errorf("expected ErrUnsupportedPackageManager, got %v", err)
		}
	})

	t.Run("failure_propagates", func(t *testing.T) {
		failure := &CommandError{Command: "npm", Args: []string{"install"}, ExitCode: 1}
		inst, _ := NewPackageInstaller(&fakeRunner{err: failure}, "npm")
		err := inst.Install(context.Background(), t.TempDir())
		if !errors.Is(err, ErrCommandFailed) {
			t.Errorf("expected ErrCommandFailed, got %v", err)
		}
	})
}

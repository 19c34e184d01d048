package blueprint

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// GenerateFunc runs an external generator that must create dir/name.
type GenerateFunc func(ctx context.Context, dir, name string) error

// StageOptions tunes Stage.
type StageOptions struct {
	// Dir is where the staged directory is created. Defaults to the parent
	// of the target.
	Dir string

	// Prefix starts the staged directory name. Defaults to the target's
	// base name.
	Prefix string

	// Prepare runs on the staged output before it replaces the target.
	Prepare func(stagePath string) error
}

// StageName returns a collision-resistant name of the form <prefix>-temp-<id>.
func StageName(prefix string) string {
	return fmt.Sprintf("%s-temp-%s", prefix, uuid.NewString()[:8])
}

// Stage lets a generator that insists on creating its own directory produce
// output for target.
//
// The generator runs with opts.Dir as its working directory and is asked
// to create a fresh, uniquely named directory there. Once it returns, the
// staged directory must exist. Then Prepare runs, the existing target is
// removed, and the staged directory is renamed onto the target. The staged
// directory is removed on any failure; the target is left as is when the
// failure happens before the swap.
func Stage(ctx context.Context, target string, generate GenerateFunc, opts StageOptions) (err error) {
	dir := opts.Dir
	if dir == "" {
		dir = filepath.Dir(target)
	}
	prefix := opts.Prefix
	if prefix == "" {
		prefix = filepath.Base(target)
	}

	name := StageName(prefix)
	stagePath := filepath.Join(dir, name)

	defer func() {
		if err != nil {
			_ = os.RemoveAll(stagePath)
		}
	}()

	if err = os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create staging directory: %w", err)
	}

	if err = generate(ctx, dir, name); err != nil {
		return fmt.Errorf("generate %s: %w", name, err)
	}

	info, statErr := os.Stat(stagePath)
	if statErr != nil || !info.IsDir() {
		err = fmt.Errorf("%w: %s", ErrStageMissing, stagePath)
		if statErr != nil && !errors.Is(statErr, os.ErrNotExist) {
			err = fmt.Errorf("%w: %s: %w", ErrStageMissing, stagePath, statErr)
		}
		return err
	}

	if opts.Prepare != nil {
		if err = opts.Prepare(stagePath); err != nil {
			return fmt.Errorf("prepare staged output: %w", err)
		}
	}

	if err = os.RemoveAll(target); err != nil {
		return fmt.Errorf("remove %s: %w", target, err)
	}
	if err = os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create parent of %s: %w", target, err)
	}
	if err = os.Rename(stagePath, target); err != nil {
		return fmt.Errorf("move staged output into %s: %w", target, err)
	}
	return nil
}

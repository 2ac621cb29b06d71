package generator

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Operation is a file system mutation that can be validated before it is
// executed.
//
// Validate checks whether the operation would succeed without mutating
// the filesystem, so a dry run of the whole batch leaves the target
// untouched. force=true skips conflict checks (file already exists).
//
// Execute performs the mutation, creating missing parent directories,
// and should only run after Validate succeeded. Description returns a
// human-readable summary for reporting.
type Operation interface {
	Validate(ctx context.Context, force bool) error
	Execute(ctx context.Context) error
	Description() string
}

// WriteFileOp creates a file with the given content.
//
// Empty content is allowed, nil content is not. Unless forced, writing
// over an existing file is a conflict. Overwrite marks operations that
// rewrite a file the workflow itself created earlier in the run (the
// manifest), which is never a conflict.
type WriteFileOp struct {
	Path      string      // Absolute file path to create
	Content   []byte      // File content (can be empty, must not be nil)
	Mode      fs.FileMode // File permissions (e.g., 0644)
	Overwrite bool        // Skip the conflict check for this op
}

func (op *WriteFileOp) Validate(ctx context.Context, force bool) error {
	if !force && !op.Overwrite {
		if _, err := os.Stat(op.Path); err == nil {
			return fmt.Errorf("file already exists: %s", op.Path)
		}
	}

	if op.Content == nil {
		return fmt.Errorf("content is nil for file: %s", op.Path)
	}

	return nil
}

func (op *WriteFileOp) Execute(ctx context.Context) error {
	dir := filepath.Dir(op.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(op.Path, op.Content, op.Mode)
}

func (op *WriteFileOp) Description() string {
	return fmt.Sprintf("Create %s (%d bytes)", op.Path, len(op.Content))
}

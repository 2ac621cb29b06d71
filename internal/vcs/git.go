// Package vcs wraps the git operations the creation workflow needs:
// detection, repository init, staging, and the initial commit.
package vcs

import (
	"context"
	"fmt"
	"os/exec"

	kexec "github.com/kindling-cli/kindling/internal/exec"
)

// lookPath is swapped in tests.
var lookPath = exec.LookPath

// Client runs git against one project directory.
type Client struct {
	dir  string
	exec *kexec.Executor
}

// NewClient creates a git client for the target directory.
func NewClient(dir string) *Client {
	return &Client{
		dir:  dir,
		exec: kexec.New(&kexec.Options{Dir: dir}),
	}
}

// SetExecutor replaces the underlying executor. Tests use this with a
// helper-process mock.
func (c *Client) SetExecutor(e *kexec.Executor) {
	c.exec = e
}

// Detected reports whether the git binary is on PATH.
func (c *Client) Detected() bool {
	_, err := lookPath("git")
	return err == nil
}

// Init initializes a repository in the project directory. Failure is
// fatal to the creation run.
func (c *Client) Init(ctx context.Context) error {
	if out, err := c.exec.RunOutput(ctx, "git", "init"); err != nil {
		return fmt.Errorf("git init failed: %w (output: %s)", err, out)
	}
	return nil
}

// AddAll stages every file in the project directory.
func (c *Client) AddAll(ctx context.Context) error {
	if out, err := c.exec.RunOutput(ctx, "git", "add", "-A"); err != nil {
		return fmt.Errorf("git add failed: %w (output: %s)", err, out)
	}
	return nil
}

// Commit creates a commit with the given message. Callers downgrade a
// failure here to a warning: a host without committer identity should
// still get a scaffolded project.
func (c *Client) Commit(ctx context.Context, message string) error {
	if out, err := c.exec.RunOutput(ctx, "git", "commit", "-m", message); err != nil {
		return fmt.Errorf("git commit failed: %w (output: %s)", err, out)
	}
	return nil
}

// Package pm selects and drives the package manager that installs a
// scaffolded project's dependencies.
//
// Choice precedence: explicit CLI flag, then saved configuration, then
// Yarn if present, then a version-gated PNPM, then NPM as the fallback.
package pm

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/Masterminds/semver/v3"

	kexec "github.com/kindling-cli/kindling/internal/exec"
)

// Known package manager binaries.
const (
	NPM  = "npm"
	Yarn = "yarn"
	PNPM = "pnpm"
)

// pnpmConstraint gates PNPM: older majors had incompatible lockfiles.
var pnpmConstraint = mustConstraint(">= 3.0.0")

// Detector probes the host for alternative package managers.
type Detector interface {
	// HasYarn reports whether the yarn binary is on PATH.
	HasYarn() bool
	// PnpmVersion returns pnpm's version when the binary is on PATH.
	PnpmVersion() (string, bool)
}

// Choose applies the package-manager precedence. Pure function, no side
// effects beyond what the detector already performed.
func Choose(flag, saved string, det Detector) string {
	if flag != "" {
		return flag
	}
	if saved != "" {
		return saved
	}
	if det.HasYarn() {
		return Yarn
	}
	if v, ok := det.PnpmVersion(); ok && pnpmSupported(v) {
		return PNPM
	}
	return NPM
}

// HasAlternative reports whether the host offers a usable alternative to
// NPM. The interview only asks for a package manager when a real choice
// exists.
func HasAlternative(det Detector) bool {
	if det.HasYarn() {
		return true
	}
	v, ok := det.PnpmVersion()
	return ok && pnpmSupported(v)
}

func pnpmSupported(version string) bool {
	v, err := semver.NewVersion(version)
	if err != nil {
		return false
	}
	return pnpmConstraint.Check(v)
}

func mustConstraint(s string) *semver.Constraints {
	c, err := semver.NewConstraint(s)
	if err != nil {
		panic(err)
	}
	return c
}

// lookPath is swapped in tests.
var lookPath = exec.LookPath

// HostDetector probes the real host environment.
type HostDetector struct {
	exec *kexec.Executor
}

// NewHostDetector creates a detector backed by PATH lookups and process
// execution.
func NewHostDetector() *HostDetector {
	return &HostDetector{exec: kexec.New(nil)}
}

func (d *HostDetector) HasYarn() bool {
	_, err := lookPath(Yarn)
	return err == nil
}

func (d *HostDetector) PnpmVersion() (string, bool) {
	if _, err := lookPath(PNPM); err != nil {
		return "", false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	out, err := d.exec.RunOutput(ctx, PNPM, "--version")
	if err != nil {
		return "", false
	}
	return out, true
}

// Manager drives one package manager binary against one project
// directory.
type Manager struct {
	dir  string
	bin  string
	exec *kexec.Executor
}

// NewManager creates a manager for the chosen binary in the target
// directory.
func NewManager(dir, bin string) *Manager {
	return &Manager{
		dir:  dir,
		bin:  bin,
		exec: kexec.New(&kexec.Options{Dir: dir}),
	}
}

// Name returns the package manager binary name.
func (m *Manager) Name() string { return m.bin }

// Install installs the dependencies declared in the manifest. The
// spawned process is awaited to completion; failures are fatal to the
// creation run.
func (m *Manager) Install(ctx context.Context) error {
	msg := fmt.Sprintf("Installing dependencies with %s", m.bin)
	if err := m.exec.RunWithSpinner(ctx, msg, m.bin, "install"); err != nil {
		return fmt.Errorf("installing dependencies: %w", err)
	}
	return nil
}

package toolchain

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gookit/color"

	"github.com/bartekus/devup/internal/execx"
)

// Default search locations for the AutoHotkey compiler, which does not
// register itself on PATH.
var defaultCompilerDirs = []string{
	`C:\Program Files\AutoHotkey\Compiler`,
	`C:\Program Files (x86)\AutoHotkey\Compiler`,
}

// Reconciler guarantees that every tool a later stage invokes is resolvable
// by name before that stage runs, installing missing ones through Chocolatey.
type Reconciler struct {
	runner execx.Runner
	env    *execx.Context

	// Overridable in tests.
	compilerDirs []string
	cargoBinDir  func() (string, error)
}

func NewReconciler(runner execx.Runner, env *execx.Context) *Reconciler {
	return &Reconciler{
		runner:       runner,
		env:          env,
		compilerDirs: defaultCompilerDirs,
		cargoBinDir: func() (string, error) {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			return filepath.Join(home, ".cargo", "bin"), nil
		},
	}
}

// Ensure probes req.Command and installs req.Package when the probe fails.
// It does not re-probe afterwards: outside the hard requirements handled in
// Run, the guarantee is "attempted install", not "verified install".
// TODO: re-verify after install once the autohotkey package reliably
// registers its shims; today a re-probe here would false-negative.
func (r *Reconciler) Ensure(ctx context.Context, req Requirement) error {
	if _, err := r.runner.LookPath(req.Command); err == nil {
		color.Info.Printf("%s is already installed\n", req.Command)
		return nil
	}
	color.Warn.Printf("%s not found, installing %s (%s)\n", req.Command, req.Package, req.Hint)
	if err := r.runner.Run(ctx, "choco", "install", req.Package, "-y", "--accept-license"); err != nil {
		return fmt.Errorf("installing %s: %w", req.Package, err)
	}
	return nil
}

// Run reconciles every tool the pipeline needs, in dependency order, and
// returns the resolved path of the Ahk2Exe compiler for the compile stage.
// The first failure aborts; nothing installed up to that point is rolled
// back.
func (r *Reconciler) Run(ctx context.Context) (string, error) {
	// Chocolatey cannot bootstrap itself.
	if _, err := r.runner.LookPath("choco"); err != nil {
		return "", fmt.Errorf("%w: install it from https://chocolatey.org/install and re-run devup", ErrInstallerMissing)
	}
	color.Info.Println("chocolatey is available")

	if err := r.Ensure(ctx, reqNode); err != nil {
		return "", err
	}
	if err := r.ensurePnpm(ctx); err != nil {
		return "", err
	}
	if err := r.ensureRust(ctx); err != nil {
		return "", err
	}
	if err := r.ensureTauriCLI(ctx); err != nil {
		return "", err
	}
	if err := r.Ensure(ctx, reqNSIS); err != nil {
		return "", err
	}
	if err := r.Ensure(ctx, reqAHK); err != nil {
		return "", err
	}
	return r.locateCompiler()
}

// ensurePnpm installs pnpm through npm's global mechanism rather than
// Chocolatey. Everything UI-side depends on it, so absence after the install
// attempt is fatal.
func (r *Reconciler) ensurePnpm(ctx context.Context) error {
	if _, err := r.runner.LookPath("pnpm"); err == nil {
		color.Info.Println("pnpm is already installed")
		return nil
	}
	color.Warn.Println("pnpm not found, installing via npm")
	if err := r.runner.Run(ctx, "npm", "install", "-g", "pnpm"); err != nil {
		return fmt.Errorf("installing pnpm: %w", err)
	}
	if _, err := r.runner.LookPath("pnpm"); err != nil {
		return &HardRequirementError{Command: "pnpm"}
	}
	return nil
}

// ensureRust reconciles rustup generically, then unconditionally runs its
// non-interactive self-install and appends the cargo bin directory to this
// run's lookup path so cargo and the tauri CLI resolve in later spawns.
func (r *Reconciler) ensureRust(ctx context.Context) error {
	if err := r.Ensure(ctx, reqRust); err != nil {
		return err
	}
	if err := r.runner.Run(ctx, "rustup-init", "-y", "--no-modify-path"); err != nil {
		return fmt.Errorf("rust toolchain setup: %w", err)
	}
	dir, err := r.cargoBinDir()
	if err != nil {
		return err
	}
	r.env.AddDir(dir)
	return nil
}

// ensureTauriCLI installs the tauri cargo plugin with a locked lockfile.
// The whole desktop build runs through it, so it is verified after install.
func (r *Reconciler) ensureTauriCLI(ctx context.Context) error {
	if _, err := r.runner.LookPath("cargo-tauri"); err == nil {
		color.Info.Println("tauri CLI is already installed")
		return nil
	}
	color.Warn.Println("tauri CLI not found, installing via cargo")
	if err := r.runner.Run(ctx, "cargo", "install", "tauri-cli", "--locked"); err != nil {
		return fmt.Errorf("installing tauri-cli: %w", err)
	}
	if _, err := r.runner.LookPath("cargo-tauri"); err != nil {
		return &HardRequirementError{Command: "cargo-tauri"}
	}
	return nil
}

// locateCompiler searches the fixed AutoHotkey install directories for the
// script compiler, which never appears on PATH.
func (r *Reconciler) locateCompiler() (string, error) {
	for _, dir := range r.compilerDirs {
		candidate := filepath.Join(dir, "Ahk2Exe.exe")
		if fi, err := os.Stat(candidate); err == nil && !fi.IsDir() {
			color.Info.Printf("script compiler found at %s\n", candidate)
			return candidate, nil
		}
	}
	return "", &CompilerNotFoundError{Package: "autohotkey", Searched: r.compilerDirs}
}

// Package toolchain reconciles the set of build tools the pipeline needs:
// probe each one on the lookup path, install it through Chocolatey when
// absent, and fail the run for the tools everything downstream depends on.
package toolchain

import (
	"errors"
	"fmt"
	"strings"
)

// Requirement names one executable the build needs, the Chocolatey package
// that provides it, and a hint shown when it has to be installed.
// Requirements are fixed at process start and never mutated.
type Requirement struct {
	Command string
	Package string
	Hint    string
}

// The generic reconciliation table. pnpm, the tauri CLI and the Ahk2Exe
// compiler follow bespoke paths in Reconciler.Run.
var (
	reqNode = Requirement{Command: "node", Package: "nodejs-lts", Hint: "Node.js runtime for the UI toolchain"}
	reqRust = Requirement{Command: "rustup", Package: "rustup.install", Hint: "Rust toolchain manager for the desktop shell"}
	reqNSIS = Requirement{Command: "makensis", Package: "nsis", Hint: "NSIS installer generator"}
	reqAHK  = Requirement{Command: "AutoHotkey64", Package: "autohotkey", Hint: "AutoHotkey v2 runtime and compiler"}
)

// ErrInstallerMissing marks the one failure the reconciler cannot install its
// way out of: Chocolatey itself is absent.
var ErrInstallerMissing = errors.New("chocolatey not found")

// HardRequirementError reports a tool that is still unresolvable after an
// install attempt. Only pnpm and the tauri CLI are held to this standard.
type HardRequirementError struct {
	Command string
}

func (e *HardRequirementError) Error() string {
	return fmt.Sprintf("%s is still not available after installation; cannot continue", e.Command)
}

// CompilerNotFoundError reports that the Ahk2Exe compiler was found in none
// of its known install directories.
type CompilerNotFoundError struct {
	Package  string
	Searched []string
}

func (e *CompilerNotFoundError) Error() string {
	return fmt.Sprintf("Ahk2Exe.exe not found in %s; install the %s package and re-run",
		strings.Join(e.Searched, ", "), e.Package)
}

package toolchain

import (
	"os"
	"path/filepath"

	"github.com/bartekus/devup/internal/execx"
)

// ToolStatus is one row of a probe-only pass over the tool set.
type ToolStatus struct {
	Tool    string `yaml:"tool"`
	Present bool   `yaml:"present"`
	Path    string `yaml:"path,omitempty"`
	Hint    string `yaml:"hint,omitempty"`
}

// Status probes every tool the pipeline would need, including the
// special-cased ones, without installing anything. Probing is read-only:
// repeated calls report the same result.
func Status(runner execx.Runner) []ToolStatus {
	return status(runner, defaultCompilerDirs)
}

func status(runner execx.Runner, compilerDirs []string) []ToolStatus {
	probes := []struct {
		command string
		hint    string
	}{
		{"choco", "base installer; must be installed manually"},
		{reqNode.Command, reqNode.Hint},
		{"pnpm", "UI dependency manager; installed via npm"},
		{reqRust.Command, reqRust.Hint},
		{"cargo-tauri", "desktop shell build CLI; installed via cargo"},
		{reqNSIS.Command, reqNSIS.Hint},
		{reqAHK.Command, reqAHK.Hint},
	}

	out := make([]ToolStatus, 0, len(probes)+1)
	for _, p := range probes {
		st := ToolStatus{Tool: p.command, Hint: p.hint}
		if path, err := runner.LookPath(p.command); err == nil {
			st.Present = true
			st.Path = path
		}
		out = append(out, st)
	}

	// The script compiler lives off-PATH in a fixed install directory.
	compiler := ToolStatus{Tool: "Ahk2Exe", Hint: "script compiler; searched in the AutoHotkey install directories"}
	for _, dir := range compilerDirs {
		candidate := filepath.Join(dir, "Ahk2Exe.exe")
		if fi, err := os.Stat(candidate); err == nil && !fi.IsDir() {
			compiler.Present = true
			compiler.Path = candidate
			break
		}
	}
	return append(out, compiler)
}

package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/bartekus/devup/internal/execx"
	"github.com/bartekus/devup/internal/workdir"
)

const (
	helperSource = "helper.ahk"
	helperBinary = "glance-helper.exe"
	uiDir        = "ui"
	shellDir     = "desktop"
	artifactName = "glance"
)

// PreconditionError reports a file the next stage depends on that is absent
// before the stage runs, as opposed to a build command that failed.
type PreconditionError struct {
	What string
	Path string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s not found at %s", e.What, e.Path)
}

// Plan carries everything the stages need: the repo root the build runs in,
// the resolved script compiler, the run's execution context, and the launch
// mode. The located artifact path flows from the locate stage to the launch
// stage and nowhere else.
type Plan struct {
	Root         string
	Headless     bool
	CompilerPath string
	Runner       execx.Runner

	artifact string
}

// Stages returns the build sequence in execution order.
func (p *Plan) Stages() []Stage {
	return []Stage{
		{Name: "compile helper", Run: p.compileHelper},
		{Name: "build ui", Run: p.buildUI},
		{Name: "build desktop shell", Run: p.buildShell},
		{Name: "locate artifact", Run: p.locateArtifact},
		{Name: "launch", Run: p.launch},
	}
}

// compileHelper turns helper.ahk into a standalone executable. The base
// runtime ships next to the compiler, one directory up in the v2 layout.
func (p *Plan) compileHelper(ctx context.Context) error {
	base := filepath.Join(filepath.Dir(p.CompilerPath), "..", "v2", "AutoHotkey64.exe")
	return p.Runner.Run(ctx, p.CompilerPath,
		"/in", filepath.Join(p.Root, helperSource),
		"/out", filepath.Join(p.Root, helperBinary),
		"/base", base,
	)
}

// buildUI installs and builds the web bundle inside ui/. The manifest check
// is a precondition, not a build failure: a repo without it is broken in a
// way pnpm cannot report usefully.
func (p *Plan) buildUI(ctx context.Context) error {
	manifest := filepath.Join(p.Root, uiDir, "package.json")
	if _, err := os.Stat(manifest); err != nil {
		return &PreconditionError{What: "UI manifest", Path: manifest}
	}
	return workdir.In(filepath.Join(p.Root, uiDir), func() error {
		if err := p.Runner.Run(ctx, "pnpm", "install"); err != nil {
			return err
		}
		return p.Runner.Run(ctx, "pnpm", "build")
	})
}

func (p *Plan) buildShell(ctx context.Context) error {
	return workdir.In(filepath.Join(p.Root, shellDir), func() error {
		return p.Runner.Run(ctx, "cargo", "tauri", "build", "--release")
	})
}

// locateArtifact resolves the shell build's release output and records it
// for the launch stage. The error carries the full attempted path.
func (p *Plan) locateArtifact(_ context.Context) error {
	name := artifactName
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	path := filepath.Join(p.Root, shellDir, "src-tauri", "target", "release", name)
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if _, err := os.Stat(path); err != nil {
		return &PreconditionError{What: "release artifact", Path: path}
	}
	p.artifact = path
	return nil
}

// launch spawns the built app and returns as soon as the spawn succeeds; the
// app's own lifetime and exit status are not this run's concern.
func (p *Plan) launch(ctx context.Context) error {
	if p.Headless {
		return p.Runner.Start(ctx, p.artifact, "--headless")
	}
	return p.Runner.Start(ctx, p.artifact)
}

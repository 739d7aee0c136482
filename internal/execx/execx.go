// Package execx spawns the external tools the bootstrap drives.
//
// Lookup-path additions made during a run (the cargo bin directory) are
// carried in an explicit Context value threaded into every probe and spawn,
// never written back into the process environment.
package execx

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Context is the execution environment for child processes: the environment
// inherited at construction time plus an ordered list of extra lookup
// directories appended to PATH.
type Context struct {
	environ []string
	extra   []string
}

func NewContext() *Context {
	return &Context{environ: os.Environ()}
}

// AddDir appends dir to the lookup path for every subsequent probe and spawn.
// The change lives in this value only; the process environment is untouched.
func (c *Context) AddDir(dir string) {
	c.extra = append(c.extra, dir)
}

// Path renders the augmented search path.
func (c *Context) Path() string {
	path := os.Getenv("PATH")
	for _, dir := range c.extra {
		path = path + string(os.PathListSeparator) + dir
	}
	return path
}

// Environ returns the child environment with PATH replaced by the augmented
// search path.
func (c *Context) Environ() []string {
	env := make([]string, 0, len(c.environ)+1)
	for _, kv := range c.environ {
		if strings.HasPrefix(kv, "PATH=") || strings.HasPrefix(kv, "Path=") {
			continue
		}
		env = append(env, kv)
	}
	return append(env, "PATH="+c.Path())
}

// Runner abstracts tool invocation. External tools are opaque collaborators:
// the only signal consumed from them is exit status, surfaced as a plain
// error. Run blocks until the child exits, with no timeout.
type Runner interface {
	LookPath(name string) (string, error)
	Run(ctx context.Context, name string, args ...string) error
	Start(ctx context.Context, name string, args ...string) error
}

// System is the real Runner. Child stdout/stderr pass straight through to
// the user; the augmented PATH from Env is injected into every child.
type System struct {
	Env *Context
}

func NewSystem(env *Context) *System {
	return &System{Env: env}
}

// LookPath resolves name on the inherited PATH first, then in the Context's
// extra directories.
func (s *System) LookPath(name string) (string, error) {
	if p, err := exec.LookPath(name); err == nil {
		return p, nil
	}
	for _, dir := range s.Env.extra {
		candidate := filepath.Join(dir, name)
		if runtime.GOOS == "windows" && filepath.Ext(candidate) == "" {
			candidate += ".exe"
		}
		if fi, err := os.Stat(candidate); err == nil && !fi.IsDir() {
			return candidate, nil
		}
	}
	return "", &exec.Error{Name: name, Err: exec.ErrNotFound}
}

func (s *System) command(ctx context.Context, name string, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = s.Env.Environ()
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	return cmd
}

// Run executes name and blocks until it exits.
func (s *System) Run(ctx context.Context, name string, args ...string) error {
	if err := s.command(ctx, name, args...).Run(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// Start spawns name without waiting for it. Used for the final launch, whose
// lifetime outlives this run.
func (s *System) Start(ctx context.Context, name string, args ...string) error {
	cmd := s.command(ctx, name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return cmd.Process.Release()
}

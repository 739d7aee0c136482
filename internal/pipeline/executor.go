// Package pipeline runs the fixed build sequence for the glance desktop app
// and launches the result. Stages run strictly in declaration order; the
// first failure aborts every later stage with no retry and no cleanup of
// partial output.
package pipeline

import (
	"context"
	"fmt"

	"github.com/gookit/color"
)

// Stage is one discrete step of the build. Run may shell out; it signals
// only success or failure.
type Stage struct {
	Name string
	Run  func(ctx context.Context) error
}

// State describes where a run is in its linear lifecycle.
type State string

const (
	StateNotStarted State = "not-started"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// StateRunning marks the stage currently executing.
func StateRunning(stage string) State {
	return State("running:" + stage)
}

// StageError is the terminal outcome of a failed run: which stage failed and
// why. There is no recovery transition out of it.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %q failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Executor walks a stage list exactly once, top to bottom.
type Executor struct {
	stages []Stage
	state  State
}

func NewExecutor(stages []Stage) *Executor {
	return &Executor{stages: stages, state: StateNotStarted}
}

// State reports the executor's current lifecycle state.
func (e *Executor) State() State { return e.state }

// Execute runs every stage in order, halting on the first failure. A stage
// is never attempted when any predecessor failed.
func (e *Executor) Execute(ctx context.Context) error {
	for _, stage := range e.stages {
		e.state = StateRunning(stage.Name)
		color.Bold.Printf("==> %s\n", stage.Name)
		if err := stage.Run(ctx); err != nil {
			e.state = StateFailed
			failed := &StageError{Stage: stage.Name, Err: err}
			color.Danger.Println(failed.Error())
			return failed
		}
	}
	e.state = StateSucceeded
	return nil
}

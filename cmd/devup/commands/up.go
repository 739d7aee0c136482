// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"errors"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/bartekus/devup/cmd/devup/internal/clierr"
	"github.com/bartekus/devup/internal/execx"
	"github.com/bartekus/devup/internal/pipeline"
	"github.com/bartekus/devup/internal/toolchain"
)

// Exit codes by failure class. 1 stays reserved for anything unclassified.
const (
	exitEnvironment    = 2 // base installer absent
	exitReconciliation = 3 // hard-required tool missing after install
	exitPrecondition   = 4 // expected file absent before a dependent stage
	exitDelegated      = 5 // an invoked tool exited nonzero
)

func newUpCmd() *cobra.Command {
	var headless bool

	cmd := &cobra.Command{
		Use:   "up",
		Short: "Reconcile toolchains, build glance, and launch it",
		Long: `Verifies (and installs where possible) every required build tool, then
compiles the helper binary, builds the UI bundle and the desktop shell in
release mode, and launches the produced executable. Aborts on the first
failure; nothing is retried or rolled back.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUp(cmd.Context(), headless)
		},
	}
	cmd.Flags().BoolVar(&headless, "headless", false, "launch the built app in background/tray mode")
	return cmd
}

func runUp(ctx context.Context, headless bool) error {
	env := execx.NewContext()
	runner := execx.NewSystem(env)

	compiler, err := toolchain.NewReconciler(runner, env).Run(ctx)
	if err != nil {
		return classify(err)
	}

	plan := &pipeline.Plan{
		Root:         ".",
		Headless:     headless,
		CompilerPath: compiler,
		Runner:       runner,
	}
	if err := pipeline.NewExecutor(plan.Stages()).Execute(ctx); err != nil {
		return classify(err)
	}

	color.Info.Println("glance is up")
	return nil
}

// classify maps an error to its exit code per the failure taxonomy. The
// message is left untouched; only the code is attached.
func classify(err error) error {
	var (
		hard     *toolchain.HardRequirementError
		compiler *toolchain.CompilerNotFoundError
		pre      *pipeline.PreconditionError
	)
	switch {
	case errors.Is(err, toolchain.ErrInstallerMissing):
		return clierr.Coded(exitEnvironment, err)
	case errors.As(err, &hard):
		return clierr.Coded(exitReconciliation, err)
	case errors.As(err, &compiler), errors.As(err, &pre):
		return clierr.Coded(exitPrecondition, err)
	default:
		return clierr.Coded(exitDelegated, err)
	}
}

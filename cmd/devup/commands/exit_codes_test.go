package commands

import (
	"errors"
	"fmt"
	"testing"

	"github.com/bartekus/devup/cmd/devup/internal/clierr"
	"github.com/bartekus/devup/internal/pipeline"
	"github.com/bartekus/devup/internal/toolchain"
)

func TestClassifyExitCodes(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "installer missing is environment-fatal",
			err:  fmt.Errorf("%w: install it", toolchain.ErrInstallerMissing),
			want: exitEnvironment,
		},
		{
			name: "hard requirement is reconciliation-fatal",
			err:  &toolchain.HardRequirementError{Command: "pnpm"},
			want: exitReconciliation,
		},
		{
			name: "compiler not found is precondition-fatal",
			err:  &toolchain.CompilerNotFoundError{Package: "autohotkey"},
			want: exitPrecondition,
		},
		{
			name: "stage precondition is precondition-fatal even when wrapped",
			err: &pipeline.StageError{
				Stage: "build ui",
				Err:   &pipeline.PreconditionError{What: "UI manifest", Path: "ui/package.json"},
			},
			want: exitPrecondition,
		},
		{
			name: "failed build command is delegated-fatal",
			err: &pipeline.StageError{
				Stage: "build desktop shell",
				Err:   errors.New("cargo: exit status 101"),
			},
			want: exitDelegated,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := clierr.ExitCodeOf(classify(tc.err))
			if got != tc.want {
				t.Errorf("classify(%v) exit code = %d, want %d", tc.err, got, tc.want)
			}
		})
	}

	if classify(nil) != nil {
		t.Error("classify(nil) must be nil")
	}

	// Classification must not rewrite the user-facing message.
	err := classify(&toolchain.HardRequirementError{Command: "pnpm"})
	if err.Error() != (&toolchain.HardRequirementError{Command: "pnpm"}).Error() {
		t.Errorf("classify altered the message: %q", err.Error())
	}
}

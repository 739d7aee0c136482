// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd constructs the devup root Cobra command.
func NewRootCmd() *cobra.Command {
	version := os.Getenv("DEVUP_VERSION")
	if version == "" {
		version = "0.0.0-dev"
	}

	cmd := &cobra.Command{
		Use:           "devup",
		Short:         "devup - bootstrap and build orchestrator for glance",
		Long:          "devup verifies and installs the build toolchains for the glance desktop app, then drives its full build and launches the result.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number of devup",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "devup version %s\n", version)
		},
	})

	cmd.AddCommand(newUpCmd())
	cmd.AddCommand(newDoctorCmd())

	return cmd
}

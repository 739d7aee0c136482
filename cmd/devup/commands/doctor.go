// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"

	"github.com/gookit/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/bartekus/devup/cmd/devup/internal/clierr"
	"github.com/bartekus/devup/internal/execx"
	"github.com/bartekus/devup/internal/toolchain"
)

func newDoctorCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Probe the required toolchains without installing anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env := execx.NewContext()
			statuses := toolchain.Status(execx.NewSystem(env))

			switch format {
			case "yaml":
				out, err := yaml.Marshal(statuses)
				if err != nil {
					return err
				}
				_, _ = cmd.OutOrStdout().Write(out)
			case "text":
				for _, st := range statuses {
					if st.Present {
						color.Info.Printf("ok      %-14s %s\n", st.Tool, st.Path)
					} else {
						color.Warn.Printf("missing %-14s %s\n", st.Tool, st.Hint)
					}
				}
			default:
				return clierr.Newf(1, "unknown format %q (want text or yaml)", format)
			}

			for _, st := range statuses {
				if !st.Present {
					return clierr.New(1, "some required tools are missing; run devup up to install them")
				}
			}
			if format == "text" {
				fmt.Fprintln(cmd.OutOrStdout(), "all required tools are present")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "output format: text or yaml")
	return cmd
}

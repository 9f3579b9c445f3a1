package main

import (
	"github.com/spf13/cobra"

	"github.com/ghm-dev/ghm/internal/output"
)

const licenseNotice = `ghm is distributed under the MIT License.
See https://opensource.org/licenses/MIT for the full text.`

func newLicenseCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "license",
		Short:   "Print licensing information",
		GroupID: GroupConfig,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output.FromContext(cmd.Context()).Println(licenseNotice)
			return nil
		},
	}
}

package cli

import (
	"github.com/spf13/cobra"
)

func newLoginCmd(deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Enter a new Dynalist API token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return deps.Gate.BeginAcquisition(cmd.Context())
		},
	}
}

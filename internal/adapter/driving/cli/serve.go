package cli

import (
	"github.com/spf13/cobra"
)

func newServeCmd(deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the local JSON API and the location refresh loop",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return deps.Serve(cmd.Context())
		},
	}
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/quickdynalist/internal/application"
	"github.com/ericfisherdev/quickdynalist/internal/domain/model"
)

func newLocationsCmd(deps Deps) *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "locations",
		Short: "List the locations items can be added to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			var (
				locations []model.Location
				err       error
			)
			if refresh {
				if err := deps.Gate.Ensure(ctx); err != nil {
					return fmt.Errorf("authenticate: %w", err)
				}
				locations, err = deps.Locations.Refresh(ctx)
			} else {
				locations, err = deps.Locations.List(ctx)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, loc := range locations {
				fmt.Fprintln(out, application.ShortName(loc.Name))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "rediscover bookmarks from your documents first")

	return cmd
}

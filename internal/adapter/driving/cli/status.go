package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/quickdynalist/internal/domain/model"
)

// CredentialLister lists stored credentials. Values are never printed.
type CredentialLister interface {
	List(ctx context.Context) ([]model.Credential, error)
}

func newStatusCmd(deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether a token is stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "state:    %s\n", deps.Gate.State())
			fmt.Fprintf(out, "database: %s\n", deps.DBPath)

			creds, err := deps.Credentials.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list credentials: %w", err)
			}

			token := "missing"
			for _, c := range creds {
				if c.Service == model.CredentialServiceDynalist && c.Key == model.CredentialKeyToken {
					token = "stored " + c.UpdatedAt.Local().Format(time.DateTime)
				}
			}
			fmt.Fprintf(out, "token:    %s\n", token)
			return nil
		},
	}
}

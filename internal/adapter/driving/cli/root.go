// Package cli is the command-line driving adapter: cobra commands over the
// application services plus the terminal prompter.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/quickdynalist/internal/domain/model"
)

// Gate is the part of the auth gate the commands use.
type Gate interface {
	Ensure(ctx context.Context) error
	BeginAcquisition(ctx context.Context) error
	State() model.AuthState
}

// Submitter sends one item.
type Submitter interface {
	Submit(ctx context.Context, sub model.Submission) error
}

// Locations lists and resolves destinations.
type Locations interface {
	List(ctx context.Context) ([]model.Location, error)
	Refresh(ctx context.Context) ([]model.Location, error)
	Resolve(ctx context.Context, name string) (model.Location, error)
}

// Deps carries everything the commands need. Serve runs the local API until
// ctx is canceled.
type Deps struct {
	Gate        Gate
	Submitter   Submitter
	Locations   Locations
	Credentials CredentialLister
	Prompter    *TerminalPrompter
	DBPath      string
	Serve       func(ctx context.Context) error
}

// NewRootCmd builds the quickdynalist command tree.
func NewRootCmd(deps Deps) *cobra.Command {
	root := &cobra.Command{
		Use:   "quickdynalist",
		Short: "Add items to Dynalist from the command line",
		Long: `quickdynalist adds a single item to your Dynalist inbox or to a bookmarked
location. On first use it asks for a Dynalist API token and stores it locally.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newAddCmd(deps),
		newLoginCmd(deps),
		newStatusCmd(deps),
		newLocationsCmd(deps),
		newServeCmd(deps),
	)

	return root
}

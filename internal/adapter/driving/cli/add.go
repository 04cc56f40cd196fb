package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/quickdynalist/internal/application"
	"github.com/ericfisherdev/quickdynalist/internal/domain/model"
)

type addOptions struct {
	to        string
	note      string
	subject   string
	stripHTML bool
}

func newAddCmd(deps Deps) *cobra.Command {
	var opts addOptions

	cmd := &cobra.Command{
		Use:   "add [text...]",
		Short: "Add an item to the inbox or a bookmarked location",
		Long: `Add one item. Without arguments the item text is read from the terminal.
When the submission fails the text is kept and you are offered a resubmit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd, deps, opts, strings.Join(args, " "))
		},
	}

	cmd.Flags().StringVar(&opts.to, "to", "", "destination location name (default: Inbox)")
	cmd.Flags().StringVar(&opts.note, "note", "", "note attached to the item")
	cmd.Flags().StringVar(&opts.subject, "subject", "", "title used when the text is a link")
	cmd.Flags().BoolVar(&opts.stripHTML, "strip-html", false, "remove HTML markup from the text")

	return cmd
}

func runAdd(cmd *cobra.Command, deps Deps, opts addOptions, text string) error {
	ctx := cmd.Context()

	if err := deps.Gate.Ensure(ctx); err != nil {
		return fmt.Errorf("authenticate: %w", err)
	}

	if strings.TrimSpace(text) == "" {
		var err error
		if text, err = deps.Prompter.ReadLine(ctx, "Item"); err != nil {
			return fmt.Errorf("read item: %w", err)
		}
	}
	if opts.stripHTML {
		text = stripHTML(text)
	}
	text = composeItem(text, opts.subject)

	dest, err := deps.Locations.Resolve(ctx, opts.to)
	if err != nil {
		return err
	}

	sub := model.Submission{Contents: text, Note: opts.note, Destination: dest}
	for {
		err := deps.Submitter.Submit(ctx, sub)
		if err == nil {
			return nil
		}
		if !resubmittable(err) {
			keepItem(cmd, sub.Contents)
			return err
		}

		again, promptErr := deps.Prompter.Confirm(ctx, fmt.Sprintf("Item not added: %q", text))
		if promptErr != nil || !again {
			keepItem(cmd, sub.Contents)
			return err
		}
	}
}

// keepItem echoes unsent contents so they are not lost.
func keepItem(cmd *cobra.Command, contents string) {
	if strings.TrimSpace(contents) != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Item kept: %s\n", contents)
	}
}

// resubmittable reports whether offering the same item again makes sense.
func resubmittable(err error) bool {
	switch {
	case errors.Is(err, application.ErrEmptyContents),
		errors.Is(err, application.ErrNotAuthenticated),
		errors.Is(err, application.ErrSessionEnded),
		errors.Is(err, application.ErrAcquisitionDeclined),
		errors.Is(err, io.EOF):
		return false
	}
	return true
}

package driven

import (
	"context"

	"github.com/ericfisherdev/quickdynalist/internal/domain/model"
)

// DynalistClient defines the driven port for the Dynalist REST API. Every
// call takes the token explicitly so a candidate token can be validated
// before it is stored.
//
// Errors wrap model.ErrTransport, model.ErrMalformedResponse, or a
// *model.APIError (which unwraps to model.ErrRejected).
type DynalistClient interface {
	// ListFiles returns all files visible to the token. It doubles as the
	// token validation call.
	ListFiles(ctx context.Context, token string) ([]model.File, error)

	// AddToInbox appends an item to the account's configured inbox.
	AddToInbox(ctx context.Context, token, content, note string) error

	// InsertItem inserts an item below parentID in the given document.
	// index 0 inserts first, -1 appends.
	InsertItem(ctx context.Context, token, fileID, parentID, content, note string, index int) error

	// ReadDocument returns all nodes of a document.
	ReadDocument(ctx context.Context, token, fileID string) ([]model.Node, error)

	// DocumentVersions returns the current version number per document ID.
	DocumentVersions(ctx context.Context, token string, fileIDs []string) (map[string]int64, error)
}

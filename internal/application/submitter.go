package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/ericfisherdev/quickdynalist/internal/domain/model"
	"github.com/ericfisherdev/quickdynalist/internal/domain/port/driven"
)

// Submitter sends one item per call to Dynalist with the session's token.
//
// A transport failure only raises the submission-failed notice. Any other
// failure (a non-Ok code or an unparseable response) is treated as a
// possible token problem and takes the auth gate's failure path.
type Submitter struct {
	session  *Session
	gate     *AuthGate
	client   driven.DynalistClient
	prompter driven.Prompter
	position model.InsertPosition
	logger   *slog.Logger

	inFlight atomic.Bool
}

// NewSubmitter creates a Submitter. prompter may be nil, in which case no
// notices are shown.
func NewSubmitter(
	session *Session,
	gate *AuthGate,
	client driven.DynalistClient,
	prompter driven.Prompter,
	position model.InsertPosition,
	logger *slog.Logger,
) *Submitter {
	return &Submitter{
		session:  session,
		gate:     gate,
		client:   client,
		prompter: prompter,
		position: position,
		logger:   logger,
	}
}

// Submit issues exactly one request for sub, sending the contents exactly as
// given. Callers keep the contents: the submitter never clears them, so a
// failed item can be resubmitted.
//
// Returns ErrNotAuthenticated, ErrEmptyContents or ErrSubmissionInFlight
// without contacting the API. If ctx ends before the response arrives the
// result is dropped, no notice is shown, and ErrSessionEnded is returned.
func (s *Submitter) Submit(ctx context.Context, sub model.Submission) error {
	if !s.session.IsAuthenticated() {
		return ErrNotAuthenticated
	}

	if strings.TrimSpace(sub.Contents) == "" {
		return ErrEmptyContents
	}

	if !s.inFlight.CompareAndSwap(false, true) {
		return ErrSubmissionInFlight
	}
	defer s.inFlight.Store(false)

	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	if sub.Destination.Name == "" {
		sub.Destination = model.InboxLocation()
	}

	token := s.session.Token()
	task := Go(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.send(ctx, token, sub)
	})
	res := task.Await(ctx)

	if err := ctx.Err(); err != nil {
		s.logger.Debug("submission result dropped", "submission_id", sub.ID, "error", err)
		return fmt.Errorf("%w: %w", ErrSessionEnded, err)
	}

	if res.Err == nil {
		s.logger.Info("item added",
			"submission_id", sub.ID,
			"location", sub.Destination.Name,
		)
		s.notify(driven.NoticeItemAdded)
		return nil
	}

	s.logger.Warn("submission failed",
		"submission_id", sub.ID,
		"location", sub.Destination.Name,
		"error", res.Err,
	)

	if errors.Is(res.Err, model.ErrTransport) {
		s.notify(driven.NoticeSubmissionFailed)
		return fmt.Errorf("submit item: %w", res.Err)
	}

	submitErr := fmt.Errorf("submit item: %w", res.Err)
	if gateErr := s.gate.Fail(ctx); gateErr != nil {
		return errors.Join(submitErr, gateErr)
	}
	return submitErr
}

// InFlight reports whether a submission is currently outstanding.
func (s *Submitter) InFlight() bool {
	return s.inFlight.Load()
}

// send picks the endpoint for the destination.
func (s *Submitter) send(ctx context.Context, token string, sub model.Submission) error {
	if sub.Destination.IsInbox {
		return s.client.AddToInbox(ctx, token, sub.Contents, sub.Note)
	}
	return s.client.InsertItem(ctx, token,
		sub.Destination.FileID,
		sub.Destination.NodeID,
		sub.Contents,
		sub.Note,
		s.position.Index(),
	)
}

func (s *Submitter) notify(notice driven.Notice) {
	if s.prompter != nil {
		s.prompter.Notify(notice)
	}
}

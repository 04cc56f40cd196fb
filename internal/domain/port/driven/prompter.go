package driven

import "context"

// Notice identifies a user-visible message raised by the application layer.
// The driving adapter decides how to render it.
type Notice string

const (
	NoticeItemAdded        Notice = "item_added"
	NoticeSubmissionFailed Notice = "submission_failed"
	NoticeTokenInvalid     Notice = "token_invalid"
	NoticeTokenAccepted    Notice = "token_accepted"
)

// Prompter is the interactive surface the auth gate and the submitter talk
// to. Implementations block until the user answers or ctx is done.
type Prompter interface {
	// Confirm shows the acquisition explanation and reports whether the user
	// wants to proceed.
	Confirm(ctx context.Context, message string) (bool, error)

	// ReadToken asks the user to paste a token.
	ReadToken(ctx context.Context, message string) (string, error)

	// Notify shows a short non-blocking notice.
	Notify(notice Notice)
}

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"

	"github.com/ericfisherdev/quickdynalist/internal/application"
	"github.com/ericfisherdev/quickdynalist/internal/domain/port/driven"
)

var noticeText = map[driven.Notice]string{
	driven.NoticeItemAdded:        "Item added.",
	driven.NoticeSubmissionFailed: "Submission failed. Check your connection and try again.",
	driven.NoticeTokenInvalid:     "Token invalid.",
	driven.NoticeTokenAccepted:    "Token accepted.",
}

// TerminalPrompter implements driven.Prompter on a line-oriented terminal.
type TerminalPrompter struct {
	readMu sync.Mutex
	in     *bufio.Reader
	// readSecret reads one line without echo; nil when input is not a
	// terminal.
	readSecret func() ([]byte, error)

	writeMu sync.Mutex
	out     io.Writer
}

// NewTerminalPrompter creates a prompter reading answers from in and
// writing prompts and notices to out.
func NewTerminalPrompter(in io.Reader, out io.Writer) *TerminalPrompter {
	p := &TerminalPrompter{in: bufio.NewReader(in), out: out}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd := int(f.Fd())
		p.readSecret = func() ([]byte, error) { return term.ReadPassword(fd) }
	}
	return p
}

// Confirm prints message and asks to continue. An empty answer means yes.
func (p *TerminalPrompter) Confirm(ctx context.Context, message string) (bool, error) {
	p.printf("%s\nContinue? [Y/n]: ", message)

	answer, err := p.readLine(ctx)
	if err != nil {
		return false, err
	}

	switch strings.ToLower(answer) {
	case "", "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// ReadToken asks for a token on a line of its own. On a terminal the token
// is not echoed.
func (p *TerminalPrompter) ReadToken(ctx context.Context, message string) (string, error) {
	if p.readSecret == nil {
		return p.ReadLine(ctx, message)
	}

	p.printf("%s: ", message)
	task := application.Go(ctx, func(context.Context) (string, error) {
		p.readMu.Lock()
		defer p.readMu.Unlock()

		secret, err := p.readSecret()
		return strings.TrimSpace(string(secret)), err
	})
	res := task.Await(ctx)
	// The user's newline was swallowed along with the echo.
	p.printf("\n")
	return res.Value, res.Err
}

// ReadLine prints prompt and returns the next trimmed input line.
func (p *TerminalPrompter) ReadLine(ctx context.Context, prompt string) (string, error) {
	p.printf("%s: ", prompt)
	return p.readLine(ctx)
}

// Notify prints the notice text on its own line.
func (p *TerminalPrompter) Notify(notice driven.Notice) {
	text, ok := noticeText[notice]
	if !ok {
		text = string(notice)
	}
	p.printf("%s\n", text)
}

func (p *TerminalPrompter) printf(format string, args ...any) {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	_, _ = fmt.Fprintf(p.out, format, args...)
}

// readLine reads one line in the background so a canceled ctx unblocks the
// caller. A final line without a newline is returned as is; input that ends
// with nothing left yields io.EOF.
func (p *TerminalPrompter) readLine(ctx context.Context) (string, error) {
	task := application.Go(ctx, func(context.Context) (string, error) {
		p.readMu.Lock()
		defer p.readMu.Unlock()

		line, err := p.in.ReadString('\n')
		if errors.Is(err, io.EOF) && line != "" {
			err = nil
		}
		return strings.TrimSpace(line), err
	})

	res := task.Await(ctx)
	return res.Value, res.Err
}

package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/quickdynalist/internal/domain/port/driven"
)

func TestTerminalPrompter_Confirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{input: "\n", want: true},
		{input: "y\n", want: true},
		{input: "YES\n", want: true},
		{input: "n\n", want: false},
		{input: "nope\n", want: false},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			var out bytes.Buffer
			p := NewTerminalPrompter(strings.NewReader(tt.input), &out)

			got, err := p.Confirm(context.Background(), "Need a token.")

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "Need a token.\nContinue? [Y/n]: ", out.String())
		})
	}
}

func TestTerminalPrompter_ConfirmEOF(t *testing.T) {
	p := NewTerminalPrompter(strings.NewReader(""), io.Discard)

	_, err := p.Confirm(context.Background(), "Need a token.")

	assert.ErrorIs(t, err, io.EOF)
}

func TestTerminalPrompter_ReadTokenTrims(t *testing.T) {
	var out bytes.Buffer
	p := NewTerminalPrompter(strings.NewReader("  abc123 \r\n"), &out)

	token, err := p.ReadToken(context.Background(), "Paste token")

	require.NoError(t, err)
	assert.Equal(t, "abc123", token)
	assert.Equal(t, "Paste token: ", out.String())
}

func TestTerminalPrompter_ReadTokenWithoutEcho(t *testing.T) {
	var out bytes.Buffer
	p := NewTerminalPrompter(strings.NewReader("next line\n"), &out)
	p.readSecret = func() ([]byte, error) { return []byte(" abc123 "), nil }

	token, err := p.ReadToken(context.Background(), "Paste token")

	require.NoError(t, err)
	assert.Equal(t, "abc123", token)
	assert.Equal(t, "Paste token: \n", out.String(), "the token never reaches the output")

	line, err := p.ReadLine(context.Background(), "Item")
	require.NoError(t, err)
	assert.Equal(t, "next line", line, "buffered input is left for later prompts")
}

func TestTerminalPrompter_ReadTokenWithoutEchoError(t *testing.T) {
	p := NewTerminalPrompter(strings.NewReader(""), io.Discard)
	p.readSecret = func() ([]byte, error) { return nil, io.EOF }

	_, err := p.ReadToken(context.Background(), "Paste token")

	assert.ErrorIs(t, err, io.EOF)
}

func TestNewTerminalPrompter_PipedInputEchoes(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = r.Close()
		_ = w.Close()
	})

	p := NewTerminalPrompter(r, io.Discard)

	assert.Nil(t, p.readSecret, "a pipe is not a terminal")
}

func TestTerminalPrompter_LastLineWithoutNewline(t *testing.T) {
	p := NewTerminalPrompter(strings.NewReader("first\nabc123"), io.Discard)

	first, err := p.ReadLine(context.Background(), "one")
	require.NoError(t, err)
	second, err := p.ReadLine(context.Background(), "two")
	require.NoError(t, err)

	assert.Equal(t, "first", first)
	assert.Equal(t, "abc123", second)
}

func TestTerminalPrompter_ReadCanceled(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	p := NewTerminalPrompter(r, io.Discard)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := p.ReadLine(ctx, "Item")

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestTerminalPrompter_Notify(t *testing.T) {
	var out bytes.Buffer
	p := NewTerminalPrompter(strings.NewReader(""), &out)

	p.Notify(driven.NoticeItemAdded)
	p.Notify(driven.NoticeTokenInvalid)

	assert.Equal(t, "Item added.\nToken invalid.\n", out.String())
}

// Package browser implements the Browser port with the platform's default viewer.
package browser

import (
	"fmt"
	"io"
	"log/slog"

	clibrowser "github.com/cli/browser"

	"github.com/ericfisherdev/quickdynalist/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.Browser = (*System)(nil)

// System opens URLs with github.com/cli/browser. Output of the launched
// helper (xdg-open, open, rundll32) is discarded so it cannot interleave with
// the interactive prompt.
type System struct {
	logger *slog.Logger
}

// NewSystem creates a System browser.
func NewSystem(logger *slog.Logger) *System {
	clibrowser.Stdout = io.Discard
	clibrowser.Stderr = io.Discard
	return &System{logger: logger}
}

// OpenURL opens url in the default browser.
func (s *System) OpenURL(url string) error {
	if err := clibrowser.OpenURL(url); err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}
	s.logger.Debug("browser opened", "url", url)
	return nil
}

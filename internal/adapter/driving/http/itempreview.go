package httphandler

import (
	"bytes"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// itemRenderer renders an item the way Dynalist displays it: the content as
// a single line of inline markdown and the note as markdown blocks that keep
// their line breaks. Output is always sanitized.
type itemRenderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func newItemRenderer() *itemRenderer {
	policy := bluemonday.UGCPolicy()
	policy.AddTargetBlankToFullyQualifiedLinks(true)

	return &itemRenderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithHardWraps(), html.WithUnsafe()),
		),
		policy: policy,
	}
}

// content renders item contents without the enclosing paragraph.
func (r *itemRenderer) content(src string) string {
	out := strings.TrimSpace(r.render(src))
	if strings.Count(out, "<p>") == 1 && strings.HasPrefix(out, "<p>") && strings.HasSuffix(out, "</p>") {
		out = strings.TrimSuffix(strings.TrimPrefix(out, "<p>"), "</p>")
	}
	return out
}

// note renders an item note. Returns "" for an empty note.
func (r *itemRenderer) note(src string) string {
	return strings.TrimSpace(r.render(src))
}

func (r *itemRenderer) render(src string) string {
	if strings.TrimSpace(src) == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return r.policy.Sanitize(src)
	}
	return r.policy.Sanitize(buf.String())
}

package cli

import (
	"html"
	"net/url"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// composeItem builds item contents from shared text. A link shared with a
// subject becomes a markdown link titled by the subject; any other text is
// returned as typed.
func composeItem(text, subject string) string {
	link := strings.TrimSpace(text)
	subject = strings.TrimSpace(subject)
	if subject != "" && isNetworkURL(link) {
		return "[" + subject + "](" + link + ")"
	}
	return text
}

// stripHTML drops every tag from s and decodes the entities bluemonday
// escapes, leaving plain text.
func stripHTML(s string) string {
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
}

func isNetworkURL(s string) bool {
	if strings.ContainsAny(s, " \t\n") {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

package application

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ericfisherdev/quickdynalist/internal/domain/model"
)

const (
	// maxUnmarkedBookmarks caps how many large nodes stand in for bookmarks
	// when none are marked explicitly.
	maxUnmarkedBookmarks = 9
	// minUnmarkedChildren is the child count a node must exceed to be
	// picked as an unmarked bookmark.
	minUnmarkedChildren = 10
	// maxDisplayName is the rune length past which names are shortened.
	maxDisplayName = 30
)

var (
	tagMarkers   = []string{"#quickdynalist", "#inbox"}
	emojiMarkers = []string{"📒", "📓", "📔", "📕", "📖", "📗", "📘", "📙"}
)

// documentNodes pairs a document with its nodes for bookmark selection.
type documentNodes struct {
	file  model.File
	nodes []model.Node
}

// bookmark is a location candidate together with its document's title.
type bookmark struct {
	loc   model.Location
	title string
}

// selectBookmarks picks destination nodes across documents. Nodes carrying a
// marker win; without any marked node, the largest non-inbox nodes are used.
// Names in the result are unique, case-insensitively, and never "Inbox".
func selectBookmarks(docs []documentNodes) []model.Location {
	var marked, large []bookmark

	for _, doc := range docs {
		for _, node := range doc.nodes {
			b := bookmark{
				loc: model.Location{
					Name:          StripMarkers(node.Content),
					FileID:        doc.file.ID,
					NodeID:        node.ID,
					ChildrenCount: len(node.Children),
				},
				title: doc.file.Title,
			}
			if b.loc.Name == "" {
				b.loc.Name = doc.file.Title
			}

			if isMarked(node) {
				marked = append(marked, b)
				continue
			}
			if b.loc.ChildrenCount > minUnmarkedChildren && !strings.EqualFold(b.loc.Name, model.InboxLocationName) {
				large = append(large, b)
			}
		}
	}

	if len(marked) > 0 {
		return uniqueNames(marked)
	}

	sort.SliceStable(large, func(i, j int) bool {
		return large[i].loc.ChildrenCount > large[j].loc.ChildrenCount
	})
	if len(large) > maxUnmarkedBookmarks {
		large = large[:maxUnmarkedBookmarks]
	}
	return uniqueNames(large)
}

// uniqueNames resolves name clashes, including with the inbox, by appending
// the document title and then a counter. The first holder of a name keeps it.
func uniqueNames(bookmarks []bookmark) []model.Location {
	taken := map[string]bool{strings.ToLower(model.InboxLocationName): true}
	out := make([]model.Location, 0, len(bookmarks))

	for _, b := range bookmarks {
		name := b.loc.Name
		if taken[strings.ToLower(name)] {
			base := name
			if b.title != "" && !strings.EqualFold(b.title, name) {
				base = fmt.Sprintf("%s (%s)", name, b.title)
			}
			name = base
			for n := 2; taken[strings.ToLower(name)]; n++ {
				name = fmt.Sprintf("%s %d", base, n)
			}
		}
		taken[strings.ToLower(name)] = true

		b.loc.Name = name
		out = append(out, b.loc)
	}
	return out
}

// isMarked reports whether the node's content or note carries a bookmark
// marker. Tags must start the text or follow a space; emoji may appear
// anywhere.
func isMarked(node model.Node) bool {
	for _, text := range []string{node.Content, node.Note} {
		lower := strings.ToLower(text)
		for _, emoji := range emojiMarkers {
			if strings.Contains(text, emoji) {
				return true
			}
		}
		for _, tag := range tagMarkers {
			if strings.HasPrefix(lower, tag) || strings.Contains(lower, " "+tag) {
				return true
			}
		}
	}
	return false
}

// StripMarkers removes bookmark markers and heading hashes from a node's
// content and trims the result.
func StripMarkers(content string) string {
	name := content
	for _, marker := range append(append([]string{}, tagMarkers...), emojiMarkers...) {
		name = replaceFold(name, marker)
	}
	name = strings.ReplaceAll(name, "# ", "")
	return strings.Join(strings.Fields(name), " ")
}

// ShortName shortens a location name for display.
func ShortName(name string) string {
	runes := []rune(name)
	if len(runes) <= maxDisplayName {
		return name
	}
	return string(runes[:maxDisplayName-3]) + "..."
}

// replaceFold removes every case-insensitive occurrence of marker from s.
func replaceFold(s, marker string) string {
	n := len(marker)
	var b strings.Builder
	for i := 0; i < len(s); {
		if i+n <= len(s) && strings.EqualFold(s[i:i+n], marker) {
			i += n
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

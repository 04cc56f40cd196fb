package application

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/quickdynalist/internal/domain/model"
)

func children(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("c%d", i)
	}
	return out
}

func doc(id, title string, nodes ...model.Node) documentNodes {
	return documentNodes{file: model.File{ID: id, Title: title, Type: "document", Permission: 4}, nodes: nodes}
}

func TestSelectBookmarks_MarkedNodesWin(t *testing.T) {
	docs := []documentNodes{
		doc("f1", "Home",
			model.Node{ID: "root", Content: "Home", Children: children(50)},
			model.Node{ID: "n1", Content: "Groceries #quickdynalist"},
			model.Node{ID: "n2", Content: "Reading", Note: "📚 not a marker"},
		),
		doc("f2", "Work",
			model.Node{ID: "n3", Content: "📘 Projects"},
			model.Node{ID: "n4", Content: "Later", Note: "#inbox"},
		),
	}

	got := selectBookmarks(docs)

	require.Len(t, got, 3)
	assert.Equal(t, model.Location{Name: "Groceries", FileID: "f1", NodeID: "n1"}, got[0])
	assert.Equal(t, model.Location{Name: "Projects", FileID: "f2", NodeID: "n3"}, got[1])
	assert.Equal(t, "Later", got[2].Name)
}

func TestSelectBookmarks_MarkerOnlyNodeUsesDocumentTitle(t *testing.T) {
	got := selectBookmarks([]documentNodes{
		doc("f1", "Shopping", model.Node{ID: "n1", Content: "📒"}),
	})

	require.Len(t, got, 1)
	assert.Equal(t, "Shopping", got[0].Name)
}

func TestSelectBookmarks_TagMustStartWord(t *testing.T) {
	got := selectBookmarks([]documentNodes{
		doc("f1", "Notes", model.Node{ID: "n1", Content: "email#inbox"}),
	})

	assert.Empty(t, got)
}

func TestSelectBookmarks_FallsBackToLargestNodes(t *testing.T) {
	var nodes []model.Node
	for i := range 12 {
		nodes = append(nodes, model.Node{
			ID:       fmt.Sprintf("n%d", i),
			Content:  fmt.Sprintf("List %d", i),
			Children: children(11 + i),
		})
	}
	nodes = append(nodes,
		model.Node{ID: "inbox", Content: "Inbox", Children: children(500)},
		model.Node{ID: "small", Content: "Small", Children: children(10)},
	)

	got := selectBookmarks([]documentNodes{doc("f1", "Everything", nodes...)})

	require.Len(t, got, 9)
	assert.Equal(t, "List 11", got[0].Name)
	assert.Equal(t, 22, got[0].ChildrenCount)
	assert.Equal(t, "List 3", got[8].Name)
	for _, loc := range got {
		assert.NotEqual(t, "Inbox", loc.Name)
		assert.NotEqual(t, "Small", loc.Name)
	}
}

func TestSelectBookmarks_NamesAreUnique(t *testing.T) {
	docs := []documentNodes{
		doc("f1", "Home",
			model.Node{ID: "n1", Content: "Inbox #inbox"},
			model.Node{ID: "n2", Content: "Groceries #quickdynalist"},
			model.Node{ID: "n3", Content: "groceries 📒"},
		),
		doc("f2", "Work",
			model.Node{ID: "n4", Content: "Groceries #quickdynalist"},
		),
		doc("f3", "Todo",
			model.Node{ID: "n5", Content: "Todo #quickdynalist"},
			model.Node{ID: "n6", Content: "📘"},
		),
	}

	got := selectBookmarks(docs)

	names := make([]string, 0, len(got))
	for _, loc := range got {
		names = append(names, loc.Name)
	}
	assert.Equal(t, []string{
		"Inbox (Home)",
		"Groceries",
		"groceries (Home)",
		"Groceries (Work)",
		"Todo",
		"Todo 2",
	}, names)
	assert.Equal(t, "n1", got[0].NodeID)
	assert.Equal(t, "f2", got[3].FileID)
}

func TestSelectBookmarks_Empty(t *testing.T) {
	assert.Empty(t, selectBookmarks(nil))
}

func TestStripMarkers(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Groceries #quickdynalist", want: "Groceries"},
		{in: "# Projects #QuickDynalist", want: "Projects"},
		{in: "📕  Reading   list", want: "Reading list"},
		{in: "#INBOX Later", want: "Later"},
		{in: "Plain", want: "Plain"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, StripMarkers(tt.in))
		})
	}
}

func TestShortName(t *testing.T) {
	exact := strings.Repeat("a", 30)
	assert.Equal(t, exact, ShortName(exact))

	long := strings.Repeat("b", 31)
	assert.Equal(t, strings.Repeat("b", 27)+"...", ShortName(long))

	accents := strings.Repeat("é", 40)
	got := ShortName(accents)
	assert.Equal(t, strings.Repeat("é", 27)+"...", got)
	assert.Len(t, []rune(got), 30)
}

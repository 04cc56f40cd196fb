package model

import "time"

// InboxLocationName is the display name of the fixed inbox destination.
const InboxLocationName = "Inbox"

// Location is a destination that can receive new items. The inbox is
// addressed through the inbox endpoint and has no file or node ID; every
// other location is a node inside a document.
type Location struct {
	ID            int64
	Name          string
	FileID        string
	NodeID        string
	IsInbox       bool
	ChildrenCount int
	Position      int
	UpdatedAt     time.Time
}

// InboxLocation returns the fixed inbox destination.
func InboxLocation() Location {
	return Location{Name: InboxLocationName, IsInbox: true}
}

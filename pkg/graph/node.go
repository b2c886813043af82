package graph

import "strings"

// Category is the kind of entity a node stands for. It is part of the node
// identity, so a client and a registrant with the same name stay separate.
type Category string

const (
	CategoryClient     Category = "client"
	CategoryRegistrant Category = "registrant"
	CategoryLobbyist   Category = "lobbyist"
)

// DefaultLabelMax is the label length used when no bound is configured.
const DefaultLabelMax = 28

const (
	idSeparator    = ":"
	ellipsisMarker = "…"
)

// Node is a single entity in the graph.
type Node struct {
	ID    string   `json:"id"`
	Label string   `json:"label"`
	Title string   `json:"title"`
	Group Category `json:"group"`
	Value int      `json:"value"`
}

// NodeID returns the stable identifier for an entity. Category tags never
// contain the separator, so ids cannot collide across categories.
func NodeID(category Category, name string) string {
	return string(category) + idSeparator + strings.TrimSpace(name)
}

// ShortLabel bounds name to limit runes, replacing the tail with an ellipsis.
// A limit of zero or less uses DefaultLabelMax.
func ShortLabel(name string, limit int) string {
	if limit <= 0 {
		limit = DefaultLabelMax
	}

	runes := []rune(name)
	if len(runes) <= limit {
		return name
	}
	if limit == 1 {
		return ellipsisMarker
	}
	return string(runes[:limit-1]) + ellipsisMarker
}

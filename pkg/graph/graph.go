package graph

import (
	"github.com/vigil-mini/backend/pkg/common"
)

// Relation labels used on edges.
const (
	RelationRepresents = "represents"
	RelationEmploys    = "employs"
)

// Graph is the visualization-ready result of aggregating a list of filings.
//
// FilingsMatched is the number of input filings, not the number of nodes or
// edges they produced.
type Graph struct {
	Nodes          []Node `json:"nodes"`
	Edges          []Edge `json:"edges"`
	FilingsMatched int    `json:"filings_matched"`
}

// Options controls how filings are turned into a graph.
//
// IncludeLobbyists adds lobbyist nodes and registrant -> lobbyist "employs"
// edges. TrackAmounts folds reported amounts into edge weights and tooltips.
// LabelMax bounds node labels; zero uses DefaultLabelMax.
type Options struct {
	IncludeLobbyists bool
	TrackAmounts     bool
	LabelMax         int
}

// Build aggregates filings into a graph with amount tracking enabled.
func Build(filings []common.Filing, includeLobbyists bool) Graph {
	return BuildWithOptions(filings, Options{
		IncludeLobbyists: includeLobbyists,
		TrackAmounts:     true,
	})
}

// BuildWithOptions aggregates filings into a deduplicated, weighted graph.
//
// Filings are processed in order in a single pass. Nodes come back in
// first-seen order and edges in first-created order, so the result is fully
// determined by the input. Missing or malformed fields never fail the build;
// they simply contribute nothing.
func BuildWithOptions(filings []common.Filing, opts Options) Graph {
	agg := newAggregation(opts)
	for i := range filings {
		agg.addFiling(&filings[i])
	}
	return agg.result(len(filings))
}

type edgeKey struct {
	from  string
	to    string
	label string
}

type edgeTotals struct {
	key    edgeKey
	count  int
	amount float64
}

// aggregation owns all state of a single build. It is never shared between
// builds.
type aggregation struct {
	opts Options

	nodes     map[string]*Node
	nodeOrder []string

	edges     map[edgeKey]*edgeTotals
	edgeOrder []edgeKey

	degree map[string]int
}

func newAggregation(opts Options) *aggregation {
	return &aggregation{
		opts:   opts,
		nodes:  make(map[string]*Node),
		edges:  make(map[edgeKey]*edgeTotals),
		degree: make(map[string]int),
	}
}

func (a *aggregation) addFiling(f *common.Filing) {
	clientName := f.ClientName()
	registrantName := f.RegistrantName()
	amount := clampAmount(ParseRawAmount(f.RawAmount()))

	var clientID, registrantID string
	if clientName != "" {
		clientID = a.upsertNode(CategoryClient, clientName)
	}
	if registrantName != "" {
		registrantID = a.upsertNode(CategoryRegistrant, registrantName)
	}

	if clientID != "" && registrantID != "" {
		a.addEdge(registrantID, clientID, RelationRepresents, amount)
	}

	if !a.opts.IncludeLobbyists || registrantID == "" {
		return
	}
	for _, entry := range f.Lobbyists {
		name := entry.DisplayName()
		if name == "" {
			continue
		}
		lobbyistID := a.upsertNode(CategoryLobbyist, name)
		a.addEdge(registrantID, lobbyistID, RelationEmploys, amount)
	}
}

func (a *aggregation) upsertNode(category Category, name string) string {
	id := NodeID(category, name)
	if _, ok := a.nodes[id]; ok {
		return id
	}

	a.nodes[id] = &Node{
		ID:    id,
		Label: ShortLabel(name, a.opts.LabelMax),
		Title: name,
		Group: category,
	}
	a.nodeOrder = append(a.nodeOrder, id)
	return id
}

func (a *aggregation) addEdge(from, to, label string, amount float64) {
	key := edgeKey{from: from, to: to, label: label}
	totals, ok := a.edges[key]
	if !ok {
		totals = &edgeTotals{key: key}
		a.edges[key] = totals
		a.edgeOrder = append(a.edgeOrder, key)
	}

	totals.count++
	totals.amount += clampAmount(amount)

	a.degree[from]++
	a.degree[to]++
}

func (a *aggregation) result(filingsMatched int) Graph {
	nodes := make([]Node, 0, len(a.nodeOrder))
	for _, id := range a.nodeOrder {
		n := *a.nodes[id]
		n.Value = max(1, a.degree[id])
		nodes = append(nodes, n)
	}

	edges := make([]Edge, 0, len(a.edgeOrder))
	for _, key := range a.edgeOrder {
		edges = append(edges, newEdge(a.edges[key], a.opts.TrackAmounts))
	}

	return Graph{
		Nodes:          nodes,
		Edges:          edges,
		FilingsMatched: filingsMatched,
	}
}

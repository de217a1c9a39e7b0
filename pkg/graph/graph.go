package graph

import (
	"github.com/mizuiro-games/gamedata/pkg/schema"
)

// Edge types.
const (
	EdgeUnlock       = "unlock"
	EdgePrerequisite = "prerequisite"
	EdgeMaterial     = "material"
	EdgeContains     = "contains"
	EdgeReward       = "reward"
)

// Node types. Only these five collections are graph-visible.
const (
	NodeItem    = "item"
	NodeUpgrade = "upgrade"
	NodeGacha   = "gacha"
	NodeCompany = "company"
	NodeEvent   = "event"
)

// Graph is the serialization format for the dependency graph: the JSON
// shape returned by the API and consumed by authoring frontends.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node is one graph-visible record. ID is "<type>:<rawId>"; Label is the
// record's display name when present, the raw identifier otherwise.
type Node struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Label string `json:"label"`
}

// Edge is a directed cross-reference between two records.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
	Type string `json:"type"`
}

// Source provides the collection contents to build from. *store.Store
// satisfies it.
type Source interface {
	GetAll(kind schema.Kind) ([]schema.Record, error)
}

// Build converts the current cross-references between collections into a
// node/edge graph. It is a pure function of the read collections'
// contents.
//
// Edges are emitted unconditionally whenever the source field is
// present, even when the target record does not exist: a dangling
// reference simply yields an edge pointing at a node id that was never
// emitted. Pair Build with the integrity checker to surface those.
func Build(src Source) (Graph, error) {
	g := Graph{Nodes: []Node{}, Edges: []Edge{}}

	items, err := src.GetAll(schema.KindItems)
	if err != nil {
		return Graph{}, err
	}
	for _, item := range items {
		g.addNode(NodeItem, stringField(item, "id"), stringField(item, "displayName"))
	}

	upgrades, err := src.GetAll(schema.KindUpgrades)
	if err != nil {
		return Graph{}, err
	}
	for _, upgrade := range upgrades {
		g.addNode(NodeUpgrade, stringField(upgrade, "id"), stringField(upgrade, "displayName"))
	}

	banners, err := src.GetAll(schema.KindGachaBanners)
	if err != nil {
		return Graph{}, err
	}
	for _, banner := range banners {
		g.addNode(NodeGacha, stringField(banner, "bannerId"), stringField(banner, "bannerName"))
	}

	companies, err := src.GetAll(schema.KindCompanies)
	if err != nil {
		return Graph{}, err
	}
	for _, company := range companies {
		g.addNode(NodeCompany, stringField(company, "id"), stringField(company, "displayName"))
	}

	events, err := src.GetAll(schema.KindGameEvents)
	if err != nil {
		return Graph{}, err
	}
	for _, event := range events {
		g.addNode(NodeEvent, stringField(event, "eventId"), stringField(event, "eventName"))
	}

	for _, upgrade := range upgrades {
		from := nodeID(NodeUpgrade, stringField(upgrade, "id"))
		if ref := stringField(upgrade, "requiredUnlockItemId"); ref != "" {
			g.addEdge(from, nodeID(NodeItem, ref), EdgeUnlock)
		}
		if ref := stringField(upgrade, "prerequisiteUpgradeId"); ref != "" {
			g.addEdge(from, nodeID(NodeUpgrade, ref), EdgePrerequisite)
		}
		for _, mat := range objectList(upgrade, "requiredMaterials") {
			g.addEdge(from, nodeID(NodeItem, stringField(mat, "itemId")), EdgeMaterial)
		}
	}

	for _, banner := range banners {
		from := nodeID(NodeGacha, stringField(banner, "bannerId"))
		for _, entry := range objectList(banner, "pool") {
			g.addEdge(from, nodeID(NodeItem, stringField(entry, "itemId")), EdgeContains)
		}
	}

	for _, company := range companies {
		if ref := stringField(company, "unlockKeyItemId"); ref != "" {
			g.addEdge(nodeID(NodeCompany, stringField(company, "id")), nodeID(NodeItem, ref), EdgeUnlock)
		}
	}

	for _, event := range events {
		from := nodeID(NodeEvent, stringField(event, "eventId"))
		if ref := stringField(event, "prerequisiteEventId"); ref != "" {
			g.addEdge(from, nodeID(NodeEvent, ref), EdgePrerequisite)
		}
		for _, reward := range objectList(event, "rewardItems") {
			g.addEdge(from, nodeID(NodeItem, stringField(reward, "itemId")), EdgeReward)
		}
	}

	return g, nil
}

func (g *Graph) addNode(nodeType, rawID, label string) {
	if label == "" {
		label = rawID
	}
	g.Nodes = append(g.Nodes, Node{
		ID:    nodeID(nodeType, rawID),
		Type:  nodeType,
		Label: label,
	})
}

func (g *Graph) addEdge(from, to, edgeType string) {
	g.Edges = append(g.Edges, Edge{From: from, To: to, Type: edgeType})
}

func nodeID(nodeType, rawID string) string {
	return nodeType + ":" + rawID
}

func stringField(rec schema.Record, key string) string {
	s, _ := rec[key].(string)
	return s
}

func objectList(rec schema.Record, key string) []schema.Record {
	items, _ := rec[key].([]any)
	out := make([]schema.Record, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

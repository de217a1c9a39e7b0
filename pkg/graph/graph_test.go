package graph

import (
	"strings"
	"testing"

	"github.com/mizuiro-games/gamedata/pkg/schema"
)

type mapSource map[schema.Kind][]schema.Record

func (m mapSource) GetAll(kind schema.Kind) ([]schema.Record, error) {
	return m[kind], nil
}

func (g Graph) hasNode(id string) bool {
	for _, n := range g.Nodes {
		if n.ID == id {
			return true
		}
	}
	return false
}

func (g Graph) findEdge(from, to string) (Edge, bool) {
	for _, e := range g.Edges {
		if e.From == from && e.To == to {
			return e, true
		}
	}
	return Edge{}, false
}

func TestBuildBannerPool(t *testing.T) {
	src := mapSource{
		schema.KindItems: {
			{"id": "i1", "displayName": "Prize"},
		},
		schema.KindGachaBanners: {
			{"bannerId": "b1", "bannerName": "Debut", "pool": []any{map[string]any{"itemId": "i1"}}},
		},
	}

	g, err := Build(src)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	if !g.hasNode("gacha:b1") {
		t.Error("missing node gacha:b1")
	}
	if !g.hasNode("item:i1") {
		t.Error("missing node item:i1")
	}
	e, ok := g.findEdge("gacha:b1", "item:i1")
	if !ok || e.Type != EdgeContains {
		t.Errorf("expected contains edge gacha:b1 -> item:i1, got %+v", g.Edges)
	}
}

func TestBuildEmitsDanglingEdges(t *testing.T) {
	// The pool references an item that does not exist: the edge is still
	// emitted, but no node is.
	src := mapSource{
		schema.KindGachaBanners: {
			{"bannerId": "b1", "bannerName": "Debut", "pool": []any{map[string]any{"itemId": "i1"}}},
		},
	}

	g, err := Build(src)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if g.hasNode("item:i1") {
		t.Error("node emitted for a record that does not exist")
	}
	if _, ok := g.findEdge("gacha:b1", "item:i1"); !ok {
		t.Error("dangling edge must still be emitted")
	}
}

func TestBuildLabels(t *testing.T) {
	src := mapSource{
		schema.KindItems: {
			{"id": "i1", "displayName": "Prize"},
			{"id": "i2"}, // no display name: label falls back to the id
		},
	}

	g, err := Build(src)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	labels := map[string]string{}
	for _, n := range g.Nodes {
		labels[n.ID] = n.Label
	}
	if labels["item:i1"] != "Prize" {
		t.Errorf("label = %q, want Prize", labels["item:i1"])
	}
	if labels["item:i2"] != "i2" {
		t.Errorf("label = %q, want i2", labels["item:i2"])
	}
}

func TestBuildEdgeTypes(t *testing.T) {
	src := mapSource{
		schema.KindItems: {{"id": "i1"}},
		schema.KindUpgrades: {
			{
				"id":                    "u1",
				"requiredUnlockItemId":  "i1",
				"prerequisiteUpgradeId": "u0",
				"requiredMaterials":     []any{map[string]any{"itemId": "i1"}},
			},
		},
		schema.KindCompanies: {
			{"id": "c1", "unlockKeyItemId": "i1"},
		},
		schema.KindGameEvents: {
			{
				"eventId":             "e1",
				"prerequisiteEventId": "e0",
				"rewardItems":         []any{map[string]any{"itemId": "i1"}},
			},
		},
	}

	g, err := Build(src)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	want := []struct {
		from, to, edgeType string
	}{
		{"upgrade:u1", "item:i1", EdgeUnlock},
		{"upgrade:u1", "upgrade:u0", EdgePrerequisite},
		{"upgrade:u1", "item:i1", EdgeMaterial},
		{"company:c1", "item:i1", EdgeUnlock},
		{"event:e1", "event:e0", EdgePrerequisite},
		{"event:e1", "item:i1", EdgeReward},
	}
	for _, w := range want {
		found := false
		for _, e := range g.Edges {
			if e.From == w.from && e.To == w.to && e.Type == w.edgeType {
				found = true
			}
		}
		if !found {
			t.Errorf("missing edge %s -[%s]-> %s", w.from, w.edgeType, w.to)
		}
	}
	if len(g.Edges) != len(want) {
		t.Errorf("edge count = %d, want %d: %+v", len(g.Edges), len(want), g.Edges)
	}
}

func TestToDOT(t *testing.T) {
	g := Graph{
		Nodes: []Node{
			{ID: "item:i1", Type: NodeItem, Label: "Prize"},
			{ID: "gacha:b1", Type: NodeGacha, Label: "Debut"},
		},
		Edges: []Edge{
			{From: "gacha:b1", To: "item:i1", Type: EdgeContains},
		},
	}

	dot := ToDOT(g)
	if !strings.HasPrefix(dot, "digraph dependencies {") {
		t.Errorf("unexpected DOT prefix: %.40q", dot)
	}
	for _, want := range []string{
		`"item:i1" [label="Prize", fillcolor=lightyellow];`,
		`"gacha:b1" -> "item:i1" [label="contains", color=purple];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT output missing %q:\n%s", want, dot)
		}
	}
}

// Package pkg provides the core libraries for the game data editor.
//
// # Overview
//
// The editor manages the game's design data: flat JSON collections of
// items, upgrades, gacha banners, companies, stocks, stock prestiges,
// market events, and game events. The pkg directory is organized around
// the flow of a record through the system:
//
//  1. [schema] - Collection schemas, field specs, and validation
//  2. [store] - File-backed persistence with an in-process cache
//  3. [service] - Schema-validated CRUD, bulk create, export/import
//  4. [integrity] - Referential integrity checks between collections
//  5. [graph] - Dependency graph construction and DOT/SVG rendering
//  6. [errors] - Structured errors with stable machine-readable codes
//
// # Architecture
//
// The typical data flow:
//
//	HTTP request / CLI command
//	         ↓
//	    [service] package (validate against [schema])
//	         ↓
//	    [store] package (serialize to the data directory)
//	         ↓
//	    items.json, upgrades.json, ...
//
// [integrity] and [graph] read the same store and derive cross-reference
// reports and node/edge graphs from the current collection contents.
//
// # Quick Start
//
// Open a data directory and create a record:
//
//	st, _ := store.New("data")
//	svc := service.New(st)
//	item, err := svc.Create("items", map[string]any{
//	    "id":          "item_scope",
//	    "displayName": "望遠レンズ",
//	    "type":        "Material",
//	    "rarity":      "Star3",
//	})
//
// Check referential integrity:
//
//	report, _ := integrity.Check(svc.Store())
//	if report.Total() > 0 {
//	    // dangling references found
//	}
//
// Render the dependency graph:
//
//	g, _ := graph.Build(svc.Store())
//	svg, _ := graph.RenderSVG(ctx, graph.ToDOT(g))
//
// [schema]: https://pkg.go.dev/github.com/mizuiro-games/gamedata/pkg/schema
// [store]: https://pkg.go.dev/github.com/mizuiro-games/gamedata/pkg/store
// [service]: https://pkg.go.dev/github.com/mizuiro-games/gamedata/pkg/service
// [integrity]: https://pkg.go.dev/github.com/mizuiro-games/gamedata/pkg/integrity
// [graph]: https://pkg.go.dev/github.com/mizuiro-games/gamedata/pkg/graph
// [errors]: https://pkg.go.dev/github.com/mizuiro-games/gamedata/pkg/errors
package pkg

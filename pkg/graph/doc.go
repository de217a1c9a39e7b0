// Package graph builds the dependency graph over the game-data
// collections: a node/edge view of every cross-reference between items,
// upgrades, gacha banners, companies, and game events.
//
// The graph is an authoring aid. Nodes carry a display label; edges are
// typed by the relationship they represent (unlock, prerequisite,
// material, contains, reward). Edges are emitted even when their target
// does not exist, so a rendered graph makes dangling references visible
// as arrows into empty space.
//
// [Build] produces the serialization format served by the API; [ToDOT]
// and [RenderSVG] turn it into Graphviz output for the CLI.
package graph

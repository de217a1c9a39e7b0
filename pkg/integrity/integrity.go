// Package integrity cross-scans the game-data collections for dangling
// references: field values naming an identifier that does not exist in
// the referenced collection.
//
// The checker is a pure read-only consumer: it sees whatever the CRUD
// engine's get-all currently returns and never mutates anything.
package integrity

import (
	"github.com/mizuiro-games/gamedata/pkg/schema"
)

// Source provides the collection contents to scan. *store.Store
// satisfies it.
type Source interface {
	GetAll(kind schema.Kind) ([]schema.Record, error)
}

// Violation is one dangling reference: which record, which field, and
// the identifier that could not be resolved.
type Violation struct {
	Source    string `json:"source"` // "<kind>:<id>" of the referencing record
	Field     string `json:"field"`
	MissingID string `json:"missing_id"`
}

// Report maps error categories to their violations. Every category is
// always present, empty when clean. The missing_companies and
// missing_stocks categories are reserved for reference kinds the checker
// does not yet cover; they are part of the result shape but never
// populated today.
type Report map[string][]Violation

// Report categories.
const (
	MissingItems     = "missing_items"
	MissingUpgrades  = "missing_upgrades"
	MissingCompanies = "missing_companies"
	MissingStocks    = "missing_stocks"
	MissingEvents    = "missing_events"
	MissingBanners   = "missing_banners"
)

// Categories lists every report category in a stable order.
var Categories = []string{
	MissingItems,
	MissingUpgrades,
	MissingCompanies,
	MissingStocks,
	MissingEvents,
	MissingBanners,
}

// Total returns the number of violations across all categories.
func (r Report) Total() int {
	n := 0
	for _, violations := range r {
		n += len(violations)
	}
	return n
}

// Check scans every outbound reference field against the identifier set
// of its target collection and files each dangling reference under the
// category naming the missing collection. Absent or empty optional
// reference fields are skipped, not flagged.
func Check(src Source) (Report, error) {
	report := make(Report, len(Categories))
	for _, category := range Categories {
		report[category] = []Violation{}
	}

	itemIDs, err := idSet(src, schema.KindItems, "id")
	if err != nil {
		return nil, err
	}
	upgradeIDs, err := idSet(src, schema.KindUpgrades, "id")
	if err != nil {
		return nil, err
	}
	bannerIDs, err := idSet(src, schema.KindGachaBanners, "bannerId")
	if err != nil {
		return nil, err
	}
	eventIDs, err := idSet(src, schema.KindGameEvents, "eventId")
	if err != nil {
		return nil, err
	}

	upgrades, err := src.GetAll(schema.KindUpgrades)
	if err != nil {
		return nil, err
	}
	for _, upgrade := range upgrades {
		source := "upgrade:" + stringField(upgrade, "id")
		if ref := stringField(upgrade, "requiredUnlockItemId"); ref != "" && !itemIDs[ref] {
			report.add(MissingItems, source, "requiredUnlockItemId", ref)
		}
		if ref := stringField(upgrade, "prerequisiteUpgradeId"); ref != "" && !upgradeIDs[ref] {
			report.add(MissingUpgrades, source, "prerequisiteUpgradeId", ref)
		}
		for _, mat := range objectList(upgrade, "requiredMaterials") {
			if ref := stringField(mat, "itemId"); !itemIDs[ref] {
				report.add(MissingItems, source, "requiredMaterials", ref)
			}
		}
	}

	banners, err := src.GetAll(schema.KindGachaBanners)
	if err != nil {
		return nil, err
	}
	for _, banner := range banners {
		source := "gacha:" + stringField(banner, "bannerId")
		for _, entry := range objectList(banner, "pool") {
			if ref := stringField(entry, "itemId"); !itemIDs[ref] {
				report.add(MissingItems, source, "pool", ref)
			}
		}
		for _, ref := range stringList(banner, "pickupItemIds") {
			if !itemIDs[ref] {
				report.add(MissingItems, source, "pickupItemIds", ref)
			}
		}
		if ref := stringField(banner, "prerequisiteBannerId"); ref != "" && !bannerIDs[ref] {
			report.add(MissingBanners, source, "prerequisiteBannerId", ref)
		}
	}

	companies, err := src.GetAll(schema.KindCompanies)
	if err != nil {
		return nil, err
	}
	for _, company := range companies {
		source := "company:" + stringField(company, "id")
		if ref := stringField(company, "unlockKeyItemId"); ref != "" && !itemIDs[ref] {
			report.add(MissingItems, source, "unlockKeyItemId", ref)
		}
	}

	events, err := src.GetAll(schema.KindGameEvents)
	if err != nil {
		return nil, err
	}
	for _, event := range events {
		source := "event:" + stringField(event, "eventId")
		if ref := stringField(event, "prerequisiteEventId"); ref != "" && !eventIDs[ref] {
			report.add(MissingEvents, source, "prerequisiteEventId", ref)
		}
		for _, reward := range objectList(event, "rewardItems") {
			if ref := stringField(reward, "itemId"); !itemIDs[ref] {
				report.add(MissingItems, source, "rewardItems", ref)
			}
		}
	}

	return report, nil
}

func (r Report) add(category, source, field, missingID string) {
	r[category] = append(r[category], Violation{
		Source:    source,
		Field:     field,
		MissingID: missingID,
	})
}

// idSet collects the identifier values of one collection.
func idSet(src Source, kind schema.Kind, idField string) (map[string]bool, error) {
	records, err := src.GetAll(kind)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]bool, len(records))
	for _, rec := range records {
		if id := stringField(rec, idField); id != "" {
			ids[id] = true
		}
	}
	return ids, nil
}

func stringField(rec schema.Record, key string) string {
	s, _ := rec[key].(string)
	return s
}

func stringList(rec schema.Record, key string) []string {
	items, _ := rec[key].([]any)
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
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

package schema

import (
	"errors"
	"strings"
	"testing"
)

// minimalRecords holds a minimal valid raw record for each collection.
var minimalRecords = map[Kind]Record{
	KindItems: {
		"id":          "itm_film",
		"displayName": "Film Roll",
		"type":        "Material",
		"rarity":      "Star2",
	},
	KindUpgrades: {
		"id":          "upg_click_1",
		"displayName": "Better Clicks",
		"upgradeType": "Click_FlatAdd",
		"category":    "Click",
	},
	KindGachaBanners: {
		"bannerId":   "bn_standard",
		"bannerName": "Standard Banner",
	},
	KindCompanies: {
		"id":          "cmp_rhine",
		"displayName": "Rhine Lab",
	},
	KindStocks: {
		"stockId":   "stk_rhine",
		"companyId": "cmp_rhine",
	},
	KindStockPrestiges: {
		"id":            "psg_rhine",
		"targetStockId": "stk_rhine",
	},
	KindMarketEvents: {
		"eventId":   "mkt_crash",
		"eventName": "Market Crash",
	},
	KindGameEvents: {
		"eventId":   "evt_intro",
		"eventName": "Introduction",
	},
}

func mustSchema(t *testing.T, kind Kind) *Schema {
	t.Helper()
	s, err := SchemaFor(kind)
	if err != nil {
		t.Fatalf("SchemaFor(%s): %v", kind, err)
	}
	return s
}

func TestValidateMinimalRoundTrip(t *testing.T) {
	for kind, raw := range minimalRecords {
		s := mustSchema(t, kind)
		rec, err := Validate(s, raw)
		if err != nil {
			t.Fatalf("%s: Validate error: %v", kind, err)
		}
		if rec[s.IDField] != raw[s.IDField] {
			t.Errorf("%s: identifier changed: got %v, want %v", kind, rec[s.IDField], raw[s.IDField])
		}
	}
}

func TestValidateFillsDefaults(t *testing.T) {
	s := mustSchema(t, KindCompanies)
	rec, err := Validate(s, minimalRecords[KindCompanies])
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}

	if got := rec["volatility"]; got != 0.1 {
		t.Errorf("volatility default = %v, want 0.1", got)
	}
	if got := rec["chartColor"]; got != "#00FF00" {
		t.Errorf("chartColor default = %v, want #00FF00", got)
	}
	if got := rec["sector"]; got != "Tech" {
		t.Errorf("sector default = %v, want Tech", got)
	}
	if got := rec["canSell"]; got != true {
		t.Errorf("canSell default = %v, want true", got)
	}
	if got, ok := rec["holdingBonuses"].([]any); !ok || len(got) != 0 {
		t.Errorf("holdingBonuses default = %v, want empty list", rec["holdingBonuses"])
	}
}

func TestValidateOmitsUnsetOptionalFields(t *testing.T) {
	s := mustSchema(t, KindItems)
	rec, err := Validate(s, minimalRecords[KindItems])
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	for _, field := range []string{"icon", "useSound", "lensSpecs", "convertToItemId"} {
		if _, present := rec[field]; present {
			t.Errorf("unset optional field %s should be omitted, got %v", field, rec[field])
		}
	}
	// Explicit null is treated the same as absent.
	raw := clone(minimalRecords[KindItems])
	raw["icon"] = nil
	rec, err = Validate(s, raw)
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if _, present := rec["icon"]; present {
		t.Error("explicit null should not be persisted")
	}
}

func TestValidateRejectsUnknownFields(t *testing.T) {
	s := mustSchema(t, KindItems)
	raw := clone(minimalRecords[KindItems])
	raw["powerLevel"] = 9001

	_, err := Validate(s, raw)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if len(verr.Violations) != 1 || verr.Violations[0].Field != "powerLevel" {
		t.Errorf("unexpected violations: %+v", verr.Violations)
	}
}

func TestValidateRequiredFields(t *testing.T) {
	s := mustSchema(t, KindItems)
	_, err := Validate(s, Record{"id": "itm_x"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	missing := map[string]bool{}
	for _, v := range verr.Violations {
		missing[v.Field] = true
	}
	for _, field := range []string{"displayName", "type", "rarity"} {
		if !missing[field] {
			t.Errorf("missing required field %s not reported: %+v", field, verr.Violations)
		}
	}
}

func TestValidateNumericBounds(t *testing.T) {
	s := mustSchema(t, KindCompanies)

	tests := []struct {
		field string
		value float64
		ok    bool
	}{
		{"volatility", 0.01, true},  // lower boundary inclusive
		{"volatility", 0.5, true},   // upper boundary inclusive
		{"volatility", 0.51, false}, // above the interval
		{"volatility", 0.005, false},
		{"drift", -0.1, true},
		{"drift", -0.11, false},
		{"jumpIntensity", 0.09, false},
	}

	for _, tc := range tests {
		raw := clone(minimalRecords[KindCompanies])
		raw[tc.field] = tc.value
		_, err := Validate(s, raw)
		if tc.ok && err != nil {
			t.Errorf("%s=%v: unexpected error: %v", tc.field, tc.value, err)
		}
		if !tc.ok && err == nil {
			t.Errorf("%s=%v: expected a bounds violation", tc.field, tc.value)
		}
	}
}

func TestValidateEnumMembership(t *testing.T) {
	s := mustSchema(t, KindItems)
	raw := clone(minimalRecords[KindItems])
	raw["rarity"] = "Star7"

	_, err := Validate(s, raw)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if verr.Violations[0].Field != "rarity" {
		t.Errorf("unexpected violation field: %+v", verr.Violations)
	}
	if !strings.Contains(verr.Violations[0].Reason, "Star7") {
		t.Errorf("reason should name the rejected value: %q", verr.Violations[0].Reason)
	}
}

func TestValidateAcceptsInternalSpelling(t *testing.T) {
	s := mustSchema(t, KindItems)
	raw := Record{
		"id":           "itm_x",
		"display_name": "X",
		"type":         "KeyItem",
		"rarity":       "Star5",
		"sell_price":   50.0,
	}
	rec, err := Validate(s, raw)
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if rec["displayName"] != "X" {
		t.Errorf("internal spelling not normalized to alias: %v", rec)
	}
	if _, present := rec["display_name"]; present {
		t.Error("internal spelling must not appear in normalized record")
	}
	if rec["sellPrice"] != 50 {
		t.Errorf("sellPrice = %v, want 50", rec["sellPrice"])
	}
}

func TestValidateNestedObjects(t *testing.T) {
	s := mustSchema(t, KindItems)
	raw := clone(minimalRecords[KindItems])
	raw["lensSpecs"] = map[string]any{
		"isLens":         true,
		"penetrateLevel": 3.0,
	}

	rec, err := Validate(s, raw)
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	lens, ok := rec["lensSpecs"].(Record)
	if !ok {
		t.Fatalf("lensSpecs not normalized: %T", rec["lensSpecs"])
	}
	if lens["isLens"] != true || lens["penetrateLevel"] != 3 {
		t.Errorf("nested values wrong: %v", lens)
	}
	if lens["filterMode"] != "Normal" {
		t.Errorf("nested default not filled: %v", lens["filterMode"])
	}

	// Nested bounds are enforced.
	raw["lensSpecs"] = map[string]any{"penetrateLevel": 6.0}
	_, err = Validate(s, raw)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if verr.Violations[0].Field != "lensSpecs.penetrateLevel" {
		t.Errorf("nested violation path wrong: %+v", verr.Violations)
	}
}

func TestValidateObjectLists(t *testing.T) {
	s := mustSchema(t, KindGachaBanners)
	raw := clone(minimalRecords[KindGachaBanners])
	raw["pool"] = []any{
		map[string]any{"itemId": "itm_a"},
		map[string]any{"itemId": "itm_b", "weight": 2.5},
	}
	raw["pickupItemIds"] = []any{"itm_b"}

	rec, err := Validate(s, raw)
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	pool, ok := rec["pool"].([]any)
	if !ok || len(pool) != 2 {
		t.Fatalf("pool not normalized: %v", rec["pool"])
	}
	first := pool[0].(Record)
	if first["weight"] != 1.0 {
		t.Errorf("pool entry default weight = %v, want 1.0", first["weight"])
	}

	// Entry-level violations carry an indexed path.
	raw["pool"] = []any{map[string]any{"itemId": "itm_a", "weight": 500.0}}
	_, err = Validate(s, raw)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if verr.Violations[0].Field != "pool[0].weight" {
		t.Errorf("indexed violation path wrong: %+v", verr.Violations)
	}
}

func TestValidateCollectsAllViolations(t *testing.T) {
	s := mustSchema(t, KindCompanies)
	raw := clone(minimalRecords[KindCompanies])
	raw["volatility"] = 0.9
	raw["sector"] = "Agriculture"
	raw["bogus"] = 1

	_, err := Validate(s, raw)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if len(verr.Violations) != 3 {
		t.Errorf("expected 3 violations, got %d: %+v", len(verr.Violations), verr.Violations)
	}
}

func TestValidateTypeMismatches(t *testing.T) {
	s := mustSchema(t, KindItems)

	tests := []struct {
		field string
		value any
	}{
		{"displayName", 12},
		{"sortOrder", "first"},
		{"sortOrder", 1.5}, // non-integral number
		{"isSpecial", "yes"},
		{"lensSpecs", "not an object"},
	}

	for _, tc := range tests {
		raw := clone(minimalRecords[KindItems])
		raw[tc.field] = tc.value
		if _, err := Validate(s, raw); err == nil {
			t.Errorf("%s=%v: expected a type violation", tc.field, tc.value)
		}
	}
}

func clone(r Record) Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Package schema declares the eight game-data collection types, their
// record schemas, and the validator that normalizes raw records against
// them.
//
// # Collections
//
// Each collection is an ordered sequence of records persisted as one JSON
// array file. A collection's schema declares, per field: the value type,
// a default, optional numeric bounds, allowed enum values, required-ness,
// and the external (wire) spelling of the field name. Exactly one field
// per collection is the identifier, unique within the collection.
//
// The set of kinds is closed: items, upgrades, gacha_banners, companies,
// stocks, stock_prestiges, market_events, game_events. The schemas are
// static configuration resolved once at package init; there is no runtime
// schema registration.
//
// # Field aliasing
//
// Fields carry both an internal snake_case name and an external camelCase
// alias. Validation accepts either spelling on input; normalized records
// and persisted files use only the external spelling.
//
// # Validation
//
//	s, _ := schema.SchemaFor(schema.KindCompanies)
//	rec, err := schema.Validate(s, raw)
//	var verr *schema.ValidationError
//	if errors.As(err, &verr) {
//	    for _, v := range verr.Violations {
//	        fmt.Println(v.Field, v.Reason)
//	    }
//	}
//
// Validation rejects unknown fields, fills declared defaults for absent
// optional fields, coerces and verifies value types (recursing into
// nested objects and object lists), and enforces bounds and enum
// membership. All violations are collected in one pass.
package schema

package schema

import (
	"github.com/mizuiro-games/gamedata/pkg/errors"
)

// Kind identifies one of the eight collection types.
type Kind string

// The closed set of collection kinds.
const (
	KindItems          Kind = "items"
	KindUpgrades       Kind = "upgrades"
	KindGachaBanners   Kind = "gacha_banners"
	KindCompanies      Kind = "companies"
	KindStocks         Kind = "stocks"
	KindStockPrestiges Kind = "stock_prestiges"
	KindMarketEvents   Kind = "market_events"
	KindGameEvents     Kind = "game_events"
)

// kinds is the canonical ordering of collection kinds, used for export,
// import, and anywhere a stable iteration order matters.
var kinds = []Kind{
	KindItems,
	KindUpgrades,
	KindGachaBanners,
	KindCompanies,
	KindStocks,
	KindStockPrestiges,
	KindMarketEvents,
	KindGameEvents,
}

// fileNames maps each kind to its backing file name.
var fileNames = map[Kind]string{
	KindItems:          "items.json",
	KindUpgrades:       "upgrades.json",
	KindGachaBanners:   "gacha_banners.json",
	KindCompanies:      "companies.json",
	KindStocks:         "stocks.json",
	KindStockPrestiges: "stock_prestiges.json",
	KindMarketEvents:   "market_events.json",
	KindGameEvents:     "game_events.json",
}

// Record is a single collection entry in its wire form: a mapping from
// alias-spelled field names to JSON-compatible values.
type Record = map[string]any

// FieldType enumerates the value types a field schema can declare.
type FieldType int

// Field value types.
const (
	TypeString FieldType = iota
	TypeInt
	TypeFloat
	TypeBool
	TypeEnum
	TypeStringList
	TypeObject
	TypeObjectList
)

// String returns a human-readable name for the field type, used in
// validation error reasons.
func (t FieldType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInt:
		return "integer"
	case TypeFloat:
		return "number"
	case TypeBool:
		return "boolean"
	case TypeEnum:
		return "enum"
	case TypeStringList:
		return "string list"
	case TypeObject:
		return "object"
	case TypeObjectList:
		return "object list"
	default:
		return "unknown"
	}
}

// FieldSpec declares a single field of a record schema.
//
// Name is the internal spelling; Alias, when non-empty, is the external
// wire spelling. Only the external spelling is persisted and exchanged;
// validation accepts either spelling on input.
type FieldSpec struct {
	Name     string
	Alias    string
	Type     FieldType
	Required bool
	Default  any         // filled when the field is absent; nil means omit
	Enum     []string    // allowed values for TypeEnum
	Min, Max *float64    // inclusive numeric bounds
	Elem     []FieldSpec // sub-schema for TypeObject and TypeObjectList
}

// Key returns the external spelling of the field: the alias if declared,
// the internal name otherwise. This is the only spelling that appears in
// normalized records and persisted files.
func (f FieldSpec) Key() string {
	if f.Alias != "" {
		return f.Alias
	}
	return f.Name
}

// Schema describes one collection type: its field set and the field whose
// value uniquely identifies a record within the collection.
type Schema struct {
	Kind    Kind
	IDField string // external spelling of the identifier field
	Fields  []FieldSpec
}

// ParseKind converts an external type name to a Kind.
// Unrecognized names fail with an INVALID_COLLECTION error.
func ParseKind(name string) (Kind, error) {
	k := Kind(name)
	if _, ok := registry[k]; !ok {
		return "", errors.New(errors.ErrCodeInvalidCollection, "unknown collection type: %s", name)
	}
	return k, nil
}

// Kinds returns all collection kinds in canonical order.
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds)
	return out
}

// SchemaFor returns the schema for the given kind.
// Unrecognized kinds fail with an INVALID_COLLECTION error.
func SchemaFor(kind Kind) (*Schema, error) {
	s, ok := registry[kind]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidCollection, "unknown collection type: %s", kind)
	}
	return s, nil
}

// IDFieldFor returns the identifier field name (external spelling) for the
// given kind. Unrecognized kinds fail with an INVALID_COLLECTION error.
func IDFieldFor(kind Kind) (string, error) {
	s, err := SchemaFor(kind)
	if err != nil {
		return "", err
	}
	return s.IDField, nil
}

// FileName returns the backing file name for the given kind.
// Unrecognized kinds fail with an INVALID_COLLECTION error.
func FileName(kind Kind) (string, error) {
	name, ok := fileNames[kind]
	if !ok {
		return "", errors.New(errors.ErrCodeInvalidCollection, "unknown collection type: %s", kind)
	}
	return name, nil
}

// fp returns a pointer to v, for declaring inclusive bounds in field specs.
func fp(v float64) *float64 { return &v }

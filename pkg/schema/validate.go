package schema

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// FieldViolation describes a single schema violation found during
// validation: which field and why.
type FieldViolation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError reports every violation found while validating one raw
// record. Validation does not short-circuit: all invalid fields are
// reported in a single pass.
type ValidationError struct {
	Kind       Kind
	Violations []FieldViolation
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = fmt.Sprintf("%s: %s", v.Field, v.Reason)
	}
	return fmt.Sprintf("invalid %s record: %s", e.Kind, strings.Join(parts, "; "))
}

// Validate checks a raw record against the schema and returns its
// normalized form: defaults filled, values coerced, keys in their
// external alias spelling. Optional fields left unset are omitted from
// the output rather than stored as explicit nulls.
//
// Input fields are accepted under either their internal or alias
// spelling. Unknown fields are rejected.
func Validate(s *Schema, raw Record) (Record, error) {
	verr := &ValidationError{Kind: s.Kind}
	out := validateFields(s.Fields, raw, "", verr)
	if len(verr.Violations) > 0 {
		return nil, verr
	}
	return out, nil
}

// validateFields normalizes raw against specs, appending violations to
// verr. path is the prefix for nested field names in violation reports.
func validateFields(specs []FieldSpec, raw map[string]any, path string, verr *ValidationError) Record {
	out := make(Record, len(specs))

	known := make(map[string]bool, 2*len(specs))
	for _, f := range specs {
		known[f.Name] = true
		known[f.Key()] = true
	}

	// Unknown fields are reported in a stable order.
	var unknown []string
	for k := range raw {
		if !known[k] {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	for _, k := range unknown {
		verr.add(joinPath(path, k), "unknown field")
	}

	for _, f := range specs {
		v, ok := raw[f.Key()]
		if !ok || v == nil {
			// Fall back to the internal spelling.
			if v2, ok2 := raw[f.Name]; ok2 && v2 != nil {
				v, ok = v2, true
			} else {
				ok = false
			}
		}

		name := joinPath(path, f.Key())

		if !ok {
			if f.Required {
				verr.add(name, "required field is missing")
				continue
			}
			if f.Default != nil {
				out[f.Key()] = cloneValue(f.Default)
			}
			// No default: nullable field left unset, omitted.
			continue
		}

		if nv, ok := coerceValue(f, v, name, verr); ok {
			out[f.Key()] = nv
		}
	}

	return out
}

// coerceValue verifies and normalizes a single present value against its
// spec. The bool result is false when a violation was recorded.
func coerceValue(f FieldSpec, v any, name string, verr *ValidationError) (any, bool) {
	switch f.Type {
	case TypeString:
		s, ok := v.(string)
		if !ok {
			verr.add(name, fmt.Sprintf("expected string, got %T", v))
			return nil, false
		}
		return s, true

	case TypeInt:
		n, ok := asInt(v)
		if !ok {
			verr.add(name, fmt.Sprintf("expected integer, got %v", v))
			return nil, false
		}
		if !checkBounds(f, float64(n), name, verr) {
			return nil, false
		}
		return n, true

	case TypeFloat:
		n, ok := asFloat(v)
		if !ok {
			verr.add(name, fmt.Sprintf("expected number, got %T", v))
			return nil, false
		}
		if !checkBounds(f, n, name, verr) {
			return nil, false
		}
		return n, true

	case TypeBool:
		b, ok := v.(bool)
		if !ok {
			verr.add(name, fmt.Sprintf("expected boolean, got %T", v))
			return nil, false
		}
		return b, true

	case TypeEnum:
		s, ok := v.(string)
		if !ok {
			verr.add(name, fmt.Sprintf("expected string, got %T", v))
			return nil, false
		}
		for _, allowed := range f.Enum {
			if s == allowed {
				return s, true
			}
		}
		verr.add(name, fmt.Sprintf("%q is not one of [%s]", s, strings.Join(f.Enum, ", ")))
		return nil, false

	case TypeStringList:
		items, ok := asSlice(v)
		if !ok {
			verr.add(name, fmt.Sprintf("expected list of strings, got %T", v))
			return nil, false
		}
		out := make([]any, 0, len(items))
		valid := true
		for i, item := range items {
			s, ok := item.(string)
			if !ok {
				verr.add(fmt.Sprintf("%s[%d]", name, i), fmt.Sprintf("expected string, got %T", item))
				valid = false
				continue
			}
			out = append(out, s)
		}
		return out, valid

	case TypeObject:
		m, ok := v.(map[string]any)
		if !ok {
			verr.add(name, fmt.Sprintf("expected object, got %T", v))
			return nil, false
		}
		before := len(verr.Violations)
		nested := validateFields(f.Elem, m, name, verr)
		return nested, len(verr.Violations) == before

	case TypeObjectList:
		items, ok := asSlice(v)
		if !ok {
			verr.add(name, fmt.Sprintf("expected list of objects, got %T", v))
			return nil, false
		}
		out := make([]any, 0, len(items))
		valid := true
		for i, item := range items {
			m, ok := item.(map[string]any)
			if !ok {
				verr.add(fmt.Sprintf("%s[%d]", name, i), fmt.Sprintf("expected object, got %T", item))
				valid = false
				continue
			}
			before := len(verr.Violations)
			nested := validateFields(f.Elem, m, fmt.Sprintf("%s[%d]", name, i), verr)
			if len(verr.Violations) != before {
				valid = false
				continue
			}
			out = append(out, nested)
		}
		return out, valid

	default:
		verr.add(name, "unsupported field type")
		return nil, false
	}
}

// checkBounds enforces inclusive numeric bounds. Out-of-range values are
// rejected, never clamped.
func checkBounds(f FieldSpec, v float64, name string, verr *ValidationError) bool {
	if f.Min != nil && v < *f.Min {
		verr.add(name, fmt.Sprintf("%v is below the minimum %v", v, *f.Min))
		return false
	}
	if f.Max != nil && v > *f.Max {
		verr.add(name, fmt.Sprintf("%v is above the maximum %v", v, *f.Max))
		return false
	}
	return true
}

func (e *ValidationError) add(field, reason string) {
	e.Violations = append(e.Violations, FieldViolation{Field: field, Reason: reason})
}

func joinPath(prefix, field string) string {
	if prefix == "" {
		return field
	}
	return prefix + "." + field
}

// asInt accepts the numeric representations a decoded JSON document or Go
// caller may supply. JSON numbers arrive as float64; only integral values
// are accepted for integer fields.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func asSlice(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []string:
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out, true
	default:
		return nil, false
	}
}

// cloneValue deep-copies a default value so records never share mutable
// state with the schema tables.
func cloneValue(v any) any {
	switch t := v.(type) {
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

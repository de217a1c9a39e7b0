// Package service implements the schema-validated CRUD engine over the
// game-data collections, plus whole-dataset export and import.
//
// Every mutation validates the full incoming record against its
// collection schema, enforces identifier uniqueness, and persists the
// whole collection through the store's per-kind critical section. There
// is no partial patch: update replaces the entire record, re-validated.
package service

import (
	stderrors "errors"

	"github.com/google/uuid"

	"github.com/mizuiro-games/gamedata/pkg/errors"
	"github.com/mizuiro-games/gamedata/pkg/schema"
	"github.com/mizuiro-games/gamedata/pkg/store"
)

// Service is the CRUD engine. Construct one per process with New and
// share it between the HTTP API and CLI commands; tests construct fresh
// instances pointed at temporary directories.
type Service struct {
	store *store.Store
}

// New creates a service backed by the given store.
func New(st *store.Store) *Service {
	return &Service{store: st}
}

// Store exposes the underlying store for read-only consumers (the
// integrity checker and the dependency graph builder).
func (s *Service) Store() *store.Store { return s.store }

// errUnchanged aborts a store mutation without persisting. Used by
// Delete so a miss does not rewrite the collection file.
var errUnchanged = stderrors.New("collection unchanged")

// GetAll returns every record of the named collection in stored order.
func (s *Service) GetAll(typeName string) ([]schema.Record, error) {
	kind, err := schema.ParseKind(typeName)
	if err != nil {
		return nil, err
	}
	return s.store.GetAll(kind)
}

// GetByID returns the record whose identifier equals id, with found
// reporting whether it exists. Absence is not an error; HTTP callers map
// it to a 404.
func (s *Service) GetByID(typeName, id string) (schema.Record, bool, error) {
	kind, err := schema.ParseKind(typeName)
	if err != nil {
		return nil, false, err
	}
	idField, err := schema.IDFieldFor(kind)
	if err != nil {
		return nil, false, err
	}

	records, err := s.store.GetAll(kind)
	if err != nil {
		return nil, false, err
	}
	for _, rec := range records {
		if rec[idField] == id {
			return rec, true, nil
		}
	}
	return nil, false, nil
}

// Create validates raw, rejects identifier collisions, appends the
// normalized record, and persists the collection. When raw omits the
// identifier field a fresh uuid is generated for it.
func (s *Service) Create(typeName string, raw schema.Record) (schema.Record, error) {
	kind, err := schema.ParseKind(typeName)
	if err != nil {
		return nil, err
	}
	sch, err := schema.SchemaFor(kind)
	if err != nil {
		return nil, err
	}

	rec, err := normalize(sch, raw, "")
	if err != nil {
		return nil, err
	}
	id := rec[sch.IDField].(string)

	result, err := s.store.Mutate(kind, func(records []schema.Record) ([]schema.Record, error) {
		for _, existing := range records {
			if existing[sch.IDField] == id {
				return nil, errors.New(errors.ErrCodeDuplicateID, "duplicate %s identifier: %s", kind, id)
			}
		}
		return append(records, rec), nil
	})
	if err != nil {
		return nil, err
	}
	return result[len(result)-1], nil
}

// Update validates raw and replaces the record whose identifier equals
// id, keeping its position in the collection. The incoming record may
// omit its identifier field, in which case the path identifier is
// assumed; a record body carrying a different identifier is rejected, so
// an update can never rename a record out from under its references.
func (s *Service) Update(typeName, id string, raw schema.Record) (schema.Record, error) {
	kind, err := schema.ParseKind(typeName)
	if err != nil {
		return nil, err
	}
	sch, err := schema.SchemaFor(kind)
	if err != nil {
		return nil, err
	}

	rec, err := normalize(sch, raw, id)
	if err != nil {
		return nil, err
	}
	if rec[sch.IDField] != id {
		return nil, errors.New(errors.ErrCodeValidation,
			"record identifier %v does not match %s; identifier renames are not allowed on update",
			rec[sch.IDField], id)
	}

	_, err = s.store.Mutate(kind, func(records []schema.Record) ([]schema.Record, error) {
		for i, existing := range records {
			if existing[sch.IDField] == id {
				records[i] = rec
				return records, nil
			}
		}
		return nil, errors.New(errors.ErrCodeNotFound, "no %s record with identifier %s", kind, id)
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Delete removes the record whose identifier equals id and persists the
// collection. It reports whether a record was removed; a miss leaves the
// backing file untouched.
func (s *Service) Delete(typeName, id string) (bool, error) {
	kind, err := schema.ParseKind(typeName)
	if err != nil {
		return false, err
	}
	idField, err := schema.IDFieldFor(kind)
	if err != nil {
		return false, err
	}

	_, err = s.store.Mutate(kind, func(records []schema.Record) ([]schema.Record, error) {
		for i, existing := range records {
			if existing[idField] == id {
				return append(records[:i], records[i+1:]...), nil
			}
		}
		return nil, errUnchanged
	})
	if stderrors.Is(err, errUnchanged) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// BulkCreate validates and appends a batch of raw records in order. The
// batch is atomic: if any element fails validation or collides with an
// existing or in-batch identifier, nothing is persisted.
func (s *Service) BulkCreate(typeName string, raws []schema.Record) ([]schema.Record, error) {
	kind, err := schema.ParseKind(typeName)
	if err != nil {
		return nil, err
	}
	sch, err := schema.SchemaFor(kind)
	if err != nil {
		return nil, err
	}

	var created []schema.Record
	_, err = s.store.Mutate(kind, func(records []schema.Record) ([]schema.Record, error) {
		seen := make(map[any]bool, len(records)+len(raws))
		for _, existing := range records {
			seen[existing[sch.IDField]] = true
		}

		created = make([]schema.Record, 0, len(raws))
		for i, raw := range raws {
			rec, err := normalize(sch, raw, "")
			if err != nil {
				return nil, errors.Wrap(errors.GetCode(err), err, "record %d", i)
			}
			id := rec[sch.IDField]
			if seen[id] {
				return nil, errors.New(errors.ErrCodeDuplicateID, "record %d: duplicate %s identifier: %v", i, kind, id)
			}
			seen[id] = true
			records = append(records, rec)
			created = append(created, rec)
		}
		return records, nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ExportAll returns the full contents of every collection, keyed by
// collection type name.
func (s *Service) ExportAll() (map[string][]schema.Record, error) {
	out := make(map[string][]schema.Record, len(schema.Kinds()))
	for _, kind := range schema.Kinds() {
		records, err := s.store.GetAll(kind)
		if err != nil {
			return nil, err
		}
		out[string(kind)] = records
	}
	return out, nil
}

// ImportAll replaces the contents of every known collection named in the
// payload with its supplied records, validated in order, and returns the
// record count per replaced type. Unknown type names are skipped.
//
// Each collection is rebuilt under its own critical section and written
// once, so a single kind is never left half-replaced; there is no
// atomicity across kinds, and a failure partway through leaves earlier
// kinds replaced and later ones untouched.
func (s *Service) ImportAll(payload map[string][]schema.Record) (map[string]int, error) {
	counts := make(map[string]int)

	for _, kind := range schema.Kinds() {
		raws, ok := payload[string(kind)]
		if !ok {
			continue
		}
		sch, err := schema.SchemaFor(kind)
		if err != nil {
			return counts, err
		}

		_, err = s.store.Mutate(kind, func([]schema.Record) ([]schema.Record, error) {
			next := make([]schema.Record, 0, len(raws))
			seen := make(map[any]bool, len(raws))
			for i, raw := range raws {
				rec, err := normalize(sch, raw, "")
				if err != nil {
					return nil, errors.Wrap(errors.GetCode(err), err, "%s record %d", kind, i)
				}
				id := rec[sch.IDField]
				if seen[id] {
					return nil, errors.New(errors.ErrCodeDuplicateID, "%s record %d: duplicate identifier: %v", kind, i, id)
				}
				seen[id] = true
				next = append(next, rec)
			}
			return next, nil
		})
		if err != nil {
			return counts, err
		}
		counts[string(kind)] = len(raws)
	}

	return counts, nil
}

// normalize validates raw against the schema and checks its identifier.
// When the raw record omits the identifier field, fallbackID is used if
// non-empty, else a fresh uuid is generated.
func normalize(sch *schema.Schema, raw schema.Record, fallbackID string) (schema.Record, error) {
	raw = withIdentifier(sch, raw, fallbackID)

	rec, err := schema.Validate(sch, raw)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeValidation, err, "validate %s record", sch.Kind)
	}

	id, _ := rec[sch.IDField].(string)
	if err := errors.ValidateIdentifier(id); err != nil {
		return nil, err
	}
	return rec, nil
}

// withIdentifier fills in the identifier field when the raw record
// carries it under neither spelling.
func withIdentifier(sch *schema.Schema, raw schema.Record, fallbackID string) schema.Record {
	var internal string
	for _, f := range sch.Fields {
		if f.Key() == sch.IDField {
			internal = f.Name
		}
	}
	if v, ok := raw[sch.IDField]; ok && v != nil {
		return raw
	}
	if internal != "" {
		if v, ok := raw[internal]; ok && v != nil {
			return raw
		}
	}

	id := fallbackID
	if id == "" {
		id = uuid.NewString()
	}
	out := make(schema.Record, len(raw)+1)
	for k, v := range raw {
		out[k] = v
	}
	out[sch.IDField] = id
	return out
}

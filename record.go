package tabq

import (
	"errors"
	"fmt"
	"strconv"
)

// Record is one normalized data row: an ordered mapping from key to field
// value. When a header frames the record, keys are the header names in
// header order; otherwise the record is positional and addressed by
// ascending integer index.
type Record struct {
	// keys holds the header names framing the values, or nil for a
	// positional record.
	keys []string
	// values holds the field values in key order.
	values []string
}

// newRecord creates a record keyed by the given header. The header slice is
// shared between records and must not be mutated. A nil header produces a
// positional record.
func newRecord(keys, values []string) Record {
	return Record{keys: keys, values: values}
}

// Len returns the number of fields in the record.
func (r Record) Len() int {
	return len(r.values)
}

// IsZero reports whether the record holds no fields at all, which is what
// a fetch past the end of a result sequence returns.
func (r Record) IsZero() bool {
	return len(r.keys) == 0 && len(r.values) == 0
}

// Keys returns the keys framing the record: the header names, or the
// string form of each position for a positional record.
func (r Record) Keys() []string {
	if r.keys != nil {
		return r.keys
	}
	keys := make([]string, len(r.values))
	for i := range r.values {
		keys[i] = strconv.Itoa(i)
	}
	return keys
}

// Values returns the field values in key order.
func (r Record) Values() []string {
	return r.values
}

// Get returns the field value for the given header name. It reports false
// for unknown names and for positional records, which have no names.
func (r Record) Get(name string) (string, bool) {
	for i, key := range r.keys {
		if key == name {
			return r.values[i], true
		}
	}
	return "", false
}

// At returns the field value at position i, reporting false when i is out
// of range.
func (r Record) At(i int) (string, bool) {
	if i < 0 || i >= len(r.values) {
		return "", false
	}
	return r.values[i], true
}

// Equal compares two records by keys and values.
func (r Record) Equal(r2 Record) bool {
	if len(r.values) != len(r2.values) || len(r.keys) != len(r2.keys) {
		return false
	}
	for i, v := range r.values {
		if v != r2.values[i] {
			return false
		}
	}
	for i, k := range r.keys {
		if k != r2.keys[i] {
			return false
		}
	}
	return true
}

// field resolves a previously built fieldKey against the record.
func (r Record) field(k fieldKey) (string, bool) {
	if k.byName {
		return r.Get(k.name)
	}
	return r.At(k.pos)
}

// fieldKey addresses one column either by header name or by position. The
// choice is made once, when the key is resolved against the effective
// header, rather than re-derived on every record access.
type fieldKey struct {
	name   string
	pos    int
	byName bool
}

// resolveFieldKey interprets a caller-supplied column key against the
// effective header. A key found literally among the header names, or any
// non-numeric string, addresses the column by name. A numeric key must be a
// non-negative ordinal; with an active header it is translated through the
// name at that position, otherwise it addresses the column positionally.
func resolveFieldKey(key string, header []string) (fieldKey, error) {
	for _, name := range header {
		if name == key {
			return fieldKey{name: key, byName: true}, nil
		}
	}
	pos, err := strconv.Atoi(key)
	if err != nil {
		// Non-numeric names are accepted as-is; records simply lack them.
		return fieldKey{name: key, byName: true}, nil
	}
	if pos < 0 {
		return fieldKey{}, validationErrorf("column key must be a field name or a non-negative ordinal, got %q", key)
	}
	if len(header) > 0 {
		if pos >= len(header) {
			return fieldKey{}, validationErrorf("column ordinal %d is out of range for a %d-field header", pos, len(header))
		}
		return fieldKey{name: header[pos], byName: true}, nil
	}
	return fieldKey{pos: pos}, nil
}

// validateHeaderNames checks the header-shape invariant: a header is either
// empty, or every name is a non-empty string and all names are pairwise
// distinct. The returned error carries no category; callers wrap it as a
// validation failure (caller-supplied override) or a structural one
// (resolved source header).
func validateHeaderNames(names []string) error {
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if name == "" {
			return errors.New("header contains an empty name")
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("header contains duplicate name %q", name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

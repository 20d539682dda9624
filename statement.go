package tabq

import "fmt"

// Predicate decides whether a record survives filtering. Returning an
// error aborts the whole consuming operation with ErrCallback; there is no
// per-record skip on failure.
type Predicate func(record Record) (bool, error)

// Comparator orders two records, returning a negative value when a sorts
// before b, zero when the two are tied, and a positive value otherwise.
type Comparator func(a, b Record) (int, error)

// Statement is an immutable query configuration: filter predicates,
// ordering comparators, a pagination window, and an optional header
// override. Every setter returns a new Statement and leaves the receiver
// observably unchanged, so statements can be shared and extended freely.
//
// Use NewStatement rather than the zero value; the zero value has a limit
// of zero records.
type Statement struct {
	filters []Predicate
	orders  []Comparator
	offset  int
	limit   int
	header  []string
}

// NewStatement creates a Statement matching every record: no filters, no
// ordering, offset 0 and an unbounded limit.
func NewStatement() Statement {
	return Statement{limit: -1}
}

// Where appends a filter predicate. All registered predicates must hold
// for a record to survive; they are applied in registration order with
// short-circuit evaluation.
func (s Statement) Where(p Predicate) Statement {
	s.filters = appendCloned(s.filters, p)
	return s
}

// OrderBy appends an ordering comparator. Comparators are tried in
// registration order as tie-breaks until one returns non-zero. Records
// tied on the whole chain keep no guaranteed relative order.
func (s Statement) OrderBy(c Comparator) Statement {
	s.orders = appendCloned(s.orders, c)
	return s
}

// Offset returns a Statement skipping the first n surviving records. A
// negative n fails with ErrValidation.
func (s Statement) Offset(n int) (Statement, error) {
	if n < 0 {
		return Statement{}, validationErrorf("offset must be >= 0, got %d", n)
	}
	s.offset = n
	return s, nil
}

// Limit returns a Statement yielding at most n records, or every record
// when n is -1. Any other negative n fails with ErrValidation.
func (s Statement) Limit(n int) (Statement, error) {
	if n < -1 {
		return Statement{}, validationErrorf("limit must be >= -1, got %d", n)
	}
	s.limit = n
	return s, nil
}

// WithHeader returns a Statement that re-keys every record against the
// given names instead of the source's own header, for this query only.
// The names must be unique and non-empty; violations fail immediately
// with ErrValidation, before any record is touched. Calling WithHeader
// with no names re-keys records positionally.
func (s Statement) WithHeader(names ...string) (Statement, error) {
	if err := validateHeaderNames(names); err != nil {
		return Statement{}, fmt.Errorf("%w: %s", ErrValidation, err)
	}
	s.header = append([]string{}, names...)
	return s, nil
}

// Process compiles the statement against the reader's record sequence and
// returns the single-use result. The pipeline stages run in a fixed
// order: header override, filters, ordering, then the offset/limit
// window. Everything stays lazy except ordering, which materializes the
// surviving records because tie-break comparison needs all candidates at
// once.
func (s Statement) Process(r *Reader) (*RecordSet, error) {
	var effective []string
	var it RecordIterator
	if s.header != nil {
		effective = s.header
		it = r.records(s.header)
	} else {
		header, err := r.Header()
		if err != nil {
			return nil, err
		}
		effective = header
		it = r.Records()
	}
	if len(s.filters) > 0 {
		it = newFilterIterator(it, s.filters)
	}
	if len(s.orders) > 0 {
		it = newSortIterator(it, s.orders)
	}
	if s.offset > 0 || s.limit >= 0 {
		it = newWindowIterator(it, s.offset, s.limit)
	}
	return newRecordSet(effective, it, r.charset, r.padding), nil
}

// appendCloned appends v to a fresh copy of list so the original backing
// array is never shared with a derived statement.
func appendCloned[T any](list []T, v T) []T {
	out := make([]T, len(list)+1)
	copy(out, list)
	out[len(list)] = v
	return out
}

package tabq

// RecordIterator is a forward-only iterator over normalized records. The
// sequence is finite and not restartable: once Next has returned false the
// iterator stays exhausted.
//
// The usage pattern is:
//
//	it := reader.Records()
//	for it.Next() {
//	    rec := it.Record()
//	    // use rec.Get / rec.At ...
//	}
//	if err := it.Err(); err != nil {
//	    // handle failure
//	}
type RecordIterator interface {
	// Next advances to the next record and reports whether one is
	// available. It returns false on end of input or on a terminal error.
	// When Next returns false, Err must be checked to distinguish clean
	// exhaustion from failure.
	Next() bool

	// Record returns the current record. It is only valid to call Record
	// after Next has returned true.
	Record() Record

	// Err returns the first error encountered while iterating, or nil if
	// the iterator completed successfully.
	Err() error
}

// sliceIterator yields records from an already materialized slice.
type sliceIterator struct {
	records []Record
	idx     int
	cur     Record
}

func newSliceIterator(records []Record) *sliceIterator {
	return &sliceIterator{records: records}
}

func (s *sliceIterator) Next() bool {
	if s.idx >= len(s.records) {
		return false
	}
	s.cur = s.records[s.idx]
	s.idx++
	return true
}

func (s *sliceIterator) Record() Record { return s.cur }

func (s *sliceIterator) Err() error { return nil }

// drain pulls every remaining record from it into a slice, returning the
// iterator's terminal error if one occurred.
func drain(it RecordIterator) ([]Record, error) {
	var records []Record
	for it.Next() {
		records = append(records, it.Record())
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

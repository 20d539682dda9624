package tabq

import "sort"

// filterIterator applies a predicate chain lazily: each record is tested
// independently, without buffering the others.
type filterIterator struct {
	in         RecordIterator
	predicates []Predicate
	cur        Record
	err        error
	done       bool
}

func newFilterIterator(in RecordIterator, predicates []Predicate) *filterIterator {
	return &filterIterator{in: in, predicates: predicates}
}

func (f *filterIterator) Next() bool {
	if f.done {
		return false
	}
next:
	for f.in.Next() {
		rec := f.in.Record()
		for _, p := range f.predicates {
			ok, err := p(rec)
			if err != nil {
				f.err = callbackError("where predicate", err)
				f.done = true
				return false
			}
			if !ok {
				continue next
			}
		}
		f.cur = rec
		return true
	}
	f.done = true
	return false
}

func (f *filterIterator) Record() Record { return f.cur }

func (f *filterIterator) Err() error {
	if f.err != nil {
		return f.err
	}
	return f.in.Err()
}

// sortIterator applies the comparator chain. Multi-key tie-break
// comparison needs every candidate at once, so the first pull drains the
// whole upstream sequence before the first sorted record comes out. This
// is the one stage that gives up streaming.
type sortIterator struct {
	in          RecordIterator
	comparators []Comparator
	sorted      *sliceIterator
	cur         Record
	err         error
	started     bool
}

func newSortIterator(in RecordIterator, comparators []Comparator) *sortIterator {
	return &sortIterator{in: in, comparators: comparators}
}

func (s *sortIterator) Next() bool {
	if s.err != nil {
		return false
	}
	if !s.started {
		s.started = true
		records, err := drain(s.in)
		if err != nil {
			s.err = err
			return false
		}
		var cmpErr error
		sort.SliceStable(records, func(i, j int) bool {
			if cmpErr != nil {
				return false
			}
			for _, cmp := range s.comparators {
				c, err := cmp(records[i], records[j])
				if err != nil {
					cmpErr = callbackError("order comparator", err)
					return false
				}
				if c != 0 {
					return c < 0
				}
			}
			return false
		})
		if cmpErr != nil {
			s.err = cmpErr
			return false
		}
		s.sorted = newSliceIterator(records)
	}
	if !s.sorted.Next() {
		return false
	}
	s.cur = s.sorted.Record()
	return true
}

func (s *sortIterator) Record() Record { return s.cur }

func (s *sortIterator) Err() error { return s.err }

// windowIterator skips the first offset surviving records and then yields
// at most limit records (-1 means unbounded). Once the limit is reached it
// stops pulling upstream, so a lazy pipeline terminates early for free.
type windowIterator struct {
	in      RecordIterator
	offset  int
	limit   int
	cur     Record
	skipped bool
	yielded int
	done    bool
}

func newWindowIterator(in RecordIterator, offset, limit int) *windowIterator {
	return &windowIterator{in: in, offset: offset, limit: limit}
}

func (w *windowIterator) Next() bool {
	if w.done {
		return false
	}
	if w.limit >= 0 && w.yielded >= w.limit {
		w.done = true
		return false
	}
	if !w.skipped {
		for i := 0; i < w.offset; i++ {
			if !w.in.Next() {
				w.done = true
				return false
			}
		}
		w.skipped = true
	}
	if !w.in.Next() {
		w.done = true
		return false
	}
	w.cur = w.in.Record()
	w.yielded++
	return true
}

func (w *windowIterator) Record() Record { return w.cur }

func (w *windowIterator) Err() error { return w.in.Err() }

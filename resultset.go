package tabq

// cursorState tracks the single forward cursor of a RecordSet so repeated
// consumption behaves predictably instead of depending on incidental
// source exhaustion.
type cursorState int

const (
	cursorFresh cursorState = iota
	cursorDraining
	cursorExhausted
)

// RecordSet binds one compiled record sequence to its effective header. It
// owns the sequence exclusively and supports exactly one logical
// traversal: once drained, by any consumption method, every later access
// yields nothing further. A fresh traversal requires processing the
// Statement again.
type RecordSet struct {
	header  []string
	it      RecordIterator
	state   cursorState
	charset string
	padding string
	conv    *charsetConverter
}

func newRecordSet(header []string, it RecordIterator, charset, padding string) *RecordSet {
	return &RecordSet{header: header, it: it, charset: charset, padding: padding}
}

// Header returns the effective header framing the records, or nil when the
// records are positional.
func (rs *RecordSet) Header() []string {
	return rs.header
}

// next advances the cursor by one record, moving through the
// fresh/draining/exhausted states.
func (rs *RecordSet) next() (Record, bool) {
	if rs.state == cursorExhausted {
		return Record{}, false
	}
	rs.state = cursorDraining
	if rs.it.Next() {
		return rs.it.Record(), true
	}
	rs.state = cursorExhausted
	return Record{}, false
}

// Err returns the first error encountered while consuming the sequence.
func (rs *RecordSet) Err() error {
	return rs.it.Err()
}

// All drains the entire remaining sequence into an ordered slice,
// consuming the cursor.
func (rs *RecordSet) All() ([]Record, error) {
	var records []Record
	for {
		rec, ok := rs.next()
		if !ok {
			break
		}
		records = append(records, rec)
	}
	if err := rs.it.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// One advances to the record at the given position within the remaining
// sequence and returns it, consuming the cursor up through that position.
// It returns a zero Record when the sequence ends first.
func (rs *RecordSet) One(offset int) (Record, error) {
	if offset < 0 {
		return Record{}, validationErrorf("record offset must be >= 0, got %d", offset)
	}
	var rec Record
	for i := 0; i <= offset; i++ {
		r, ok := rs.next()
		if !ok {
			if err := rs.it.Err(); err != nil {
				return Record{}, err
			}
			return Record{}, nil
		}
		rec = r
	}
	return rec, nil
}

// Column returns a lazy iterator over the values of one column, addressed
// by header name or by ordinal. Records lacking the column are skipped.
// The iterator shares the set's single cursor.
func (rs *RecordSet) Column(key string) (*ColumnIterator, error) {
	fk, err := resolveFieldKey(key, rs.header)
	if err != nil {
		return nil, err
	}
	return &ColumnIterator{rs: rs, key: fk}, nil
}

// ColumnIterator streams the values of a single column.
type ColumnIterator struct {
	rs   *RecordSet
	key  fieldKey
	cur  string
	done bool
}

// Next advances to the next record carrying the column and reports whether
// a value is available.
func (c *ColumnIterator) Next() bool {
	if c.done {
		return false
	}
	for {
		rec, ok := c.rs.next()
		if !ok {
			c.done = true
			return false
		}
		if v, ok := rec.field(c.key); ok {
			c.cur = v
			return true
		}
	}
}

// Value returns the current column value. Only valid after Next returned
// true.
func (c *ColumnIterator) Value() string { return c.cur }

// Err returns the first error encountered while iterating.
func (c *ColumnIterator) Err() error { return c.rs.it.Err() }

// Pair is one key/value couple produced by Pairs.
type Pair struct {
	Key   string
	Value string
}

// Pairs returns a lazy iterator of (key, value) couples taken from two
// columns of each record. Records lacking the key column are skipped; a
// missing value column falls back to the configured padding value.
func (rs *RecordSet) Pairs(keyColumn, valueColumn string) (*PairIterator, error) {
	keyField, err := resolveFieldKey(keyColumn, rs.header)
	if err != nil {
		return nil, err
	}
	valueField, err := resolveFieldKey(valueColumn, rs.header)
	if err != nil {
		return nil, err
	}
	return &PairIterator{rs: rs, keyField: keyField, valueField: valueField}, nil
}

// PairIterator streams key/value couples from two columns.
type PairIterator struct {
	rs         *RecordSet
	keyField   fieldKey
	valueField fieldKey
	cur        Pair
	done       bool
}

// Next advances to the next record carrying the key column and reports
// whether a pair is available.
func (p *PairIterator) Next() bool {
	if p.done {
		return false
	}
	for {
		rec, ok := p.rs.next()
		if !ok {
			p.done = true
			return false
		}
		k, ok := rec.field(p.keyField)
		if !ok {
			continue
		}
		v, ok := rec.field(p.valueField)
		if !ok {
			v = p.rs.padding
		}
		p.cur = Pair{Key: k, Value: v}
		return true
	}
}

// Pair returns the current couple. Only valid after Next returned true.
func (p *PairIterator) Pair() Pair { return p.cur }

// Err returns the first error encountered while iterating.
func (p *PairIterator) Err() error { return p.rs.it.Err() }

// converter resolves and caches the charset converter for export methods.
func (rs *RecordSet) converter() (*charsetConverter, error) {
	if rs.conv != nil {
		return rs.conv, nil
	}
	conv, err := newCharsetConverter(rs.charset)
	if err != nil {
		return nil, err
	}
	rs.conv = conv
	return conv, nil
}

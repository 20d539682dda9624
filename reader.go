package tabq

import (
	"fmt"
	"io"
)

// NoHeader configures a Reader without a header row: every row is data and
// records are addressed positionally.
const NoHeader = -1

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithPadding sets the value used to right-pad rows shorter than the
// header. The default is the empty string.
func WithPadding(value string) ReaderOption {
	return func(r *Reader) {
		r.padding = value
	}
}

// WithSourceCharset declares the character set of the source data, as an
// IANA label such as "windows-1252". Export methods transcode every field
// from this charset to UTF-8. An empty label, the default, means the data
// is already UTF-8 and transcoding is skipped.
func WithSourceCharset(label string) ReaderOption {
	return func(r *Reader) {
		r.charset = label
	}
}

// Reader turns a RowSource into a lazy sequence of normalized records. It
// resolves and caches the header row, strips a byte-order mark from the
// very first field, skips empty rows, and reshapes each row to the header
// width.
//
// A Reader is not safe for concurrent use: it owns its RowSource
// exclusively and drives a single forward cursor over it.
type Reader struct {
	src          RowSource
	headerOffset int
	padding      string
	charset      string

	header         []string
	headerResolved bool
	count          int
	countValid     bool
}

// NewReader creates a Reader over src. The Reader starts without a header
// row; use SetHeaderOffset to designate one.
func NewReader(src RowSource, opts ...ReaderOption) *Reader {
	r := &Reader{src: src, headerOffset: NoHeader}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// HeaderOffset returns the configured header row position, or NoHeader.
func (r *Reader) HeaderOffset() int {
	return r.headerOffset
}

// SetHeaderOffset designates the raw row at position n as the header row,
// or disables header handling with NoHeader. Changing the position clears
// the cached header and record count, since both derive from it.
func (r *Reader) SetHeaderOffset(n int) error {
	if n < NoHeader {
		return validationErrorf("header offset must be NoHeader or a non-negative row position, got %d", n)
	}
	if n == r.headerOffset {
		return nil
	}
	r.headerOffset = n
	r.header = nil
	r.headerResolved = false
	r.countValid = false
	return nil
}

// Header resolves the header row once and caches it. With NoHeader
// configured it returns nil. The resolved names are not checked for
// uniqueness here; that invariant is enforced when records are iterated,
// so that header access stays side-effect free.
func (r *Reader) Header() ([]string, error) {
	if r.headerResolved {
		return r.header, nil
	}
	if r.headerOffset == NoHeader {
		r.headerResolved = true
		return nil, nil
	}
	if err := r.src.Rewind(); err != nil {
		return nil, err
	}
	var row []string
	for i := 0; i <= r.headerOffset; i++ {
		var err error
		row, err = r.src.Read()
		if err == io.EOF {
			return nil, structureErrorf("header row absent or empty at position %d", r.headerOffset)
		}
		if err != nil {
			return nil, err
		}
	}
	if r.headerOffset == 0 && len(row) > 0 {
		row[0] = trimBOM(row[0], r.src.BOM(), fieldEnclosure)
	}
	if isEmptyRow(row) {
		return nil, structureErrorf("header row absent or empty at position %d", r.headerOffset)
	}
	r.header = row
	r.headerResolved = true
	return row, nil
}

// Records returns a lazy iterator over the normalized records. The header
// row is excluded, empty rows are skipped, and every record is reshaped to
// the header width. The header-shape invariant is checked on the first
// call to Next and surfaces through Err.
func (r *Reader) Records() RecordIterator {
	return r.records(nil)
}

// records builds the normalizer iterator. A non-nil override replaces the
// source's own header for keying; override shape is the caller's
// responsibility (Statement.WithHeader validates it fail-fast).
func (r *Reader) records(override []string) RecordIterator {
	return &recordIterator{reader: r, override: override}
}

// Count returns the number of normalized records, cached until the header
// offset changes.
func (r *Reader) Count() (int, error) {
	if r.countValid {
		return r.count, nil
	}
	it := r.Records()
	n := 0
	for it.Next() {
		n++
	}
	if err := it.Err(); err != nil {
		return 0, err
	}
	r.count = n
	r.countValid = true
	return n, nil
}

// Close closes the underlying RowSource.
func (r *Reader) Close() error {
	return r.src.Close()
}

// isEmptyRow reports whether a raw row carries no data at all: no fields,
// or a single empty field standing in for a blank physical line.
func isEmptyRow(row []string) bool {
	if len(row) == 0 {
		return true
	}
	if len(row) == 1 && row[0] == "" {
		return true
	}
	return false
}

// recordIterator is the record normalizer: it pulls raw rows one at a time
// and yields normalized records, holding no more than one row in memory.
type recordIterator struct {
	reader   *Reader
	override []string
	header   []string
	started  bool
	rowIdx   int
	cur      Record
	err      error
	done     bool
}

func (it *recordIterator) Next() bool {
	if it.done {
		return false
	}
	if !it.started && !it.start() {
		return false
	}
	for {
		row, err := it.reader.src.Read()
		if err == io.EOF {
			it.done = true
			return false
		}
		if err != nil {
			it.err = err
			it.done = true
			return false
		}
		idx := it.rowIdx
		it.rowIdx++
		if idx == 0 && len(row) > 0 {
			row[0] = trimBOM(row[0], it.reader.src.BOM(), fieldEnclosure)
		}
		if it.reader.headerOffset != NoHeader && idx == it.reader.headerOffset {
			// Already consumed as the header, not a data record.
			continue
		}
		if isEmptyRow(row) {
			continue
		}
		it.cur = it.makeRecord(row)
		return true
	}
}

// start resolves the effective header, enforces the header-shape
// invariant, and rewinds the source. Run once before the first record.
func (it *recordIterator) start() bool {
	header := it.override
	if header == nil {
		resolved, err := it.reader.Header()
		if err != nil {
			it.err = err
			it.done = true
			return false
		}
		header = resolved
	}
	if err := validateHeaderNames(header); err != nil {
		it.err = fmt.Errorf("%w: header is not a flat list of unique non-empty names: %s", ErrStructure, err)
		it.done = true
		return false
	}
	if err := it.reader.src.Rewind(); err != nil {
		it.err = err
		it.done = true
		return false
	}
	it.header = header
	it.started = true
	it.rowIdx = 0
	return true
}

// makeRecord reshapes a raw row to the header width and keys it. Short
// rows are right-padded with the configured padding value, long rows are
// right-truncated. Without a header the record stays positional.
func (it *recordIterator) makeRecord(row []string) Record {
	header := it.header
	if len(header) == 0 {
		return newRecord(nil, row)
	}
	if len(row) != len(header) {
		reshaped := make([]string, len(header))
		n := copy(reshaped, row)
		for i := n; i < len(header); i++ {
			reshaped[i] = it.reader.padding
		}
		row = reshaped
	}
	return newRecord(header, row)
}

func (it *recordIterator) Record() Record {
	return it.cur
}

func (it *recordIterator) Err() error {
	return it.err
}

package tabq

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// fieldEnclosure is the quoting character of the delimited text format.
// encoding/csv hard-codes the double quote, so it is fixed here too.
const fieldEnclosure = '"'

// RowSource supplies raw delimited rows to a Reader. A source is
// forward-only but re-seekable: Rewind repositions it at row zero so the
// same data can be traversed again by a fresh iteration.
//
// A source is exclusively owned by one Reader for the duration of a
// pipeline's lifetime; concurrent readers of one source are unsupported.
type RowSource interface {
	// Read returns the next raw row, or io.EOF when the source is
	// exhausted.
	Read() ([]string, error)

	// Rewind repositions the source at row zero.
	Rewind() error

	// BOM reports the byte-order mark detected at the very start of the
	// source, or BOMNone.
	BOM() ByteOrderMark

	// Close releases the underlying resource. It is safe to call Close
	// more than once.
	Close() error
}

// SourceOption configures a Source.
type SourceOption func(*sourceConfig)

type sourceConfig struct {
	delimiter   rune
	compression CompressionType
}

// WithDelimiter sets the field delimiter. The default is a comma.
func WithDelimiter(delimiter rune) SourceOption {
	return func(cfg *sourceConfig) {
		cfg.delimiter = delimiter
	}
}

// WithCompression forces a compression type instead of relying on file
// extension detection.
func WithCompression(compression CompressionType) SourceOption {
	return func(cfg *sourceConfig) {
		cfg.compression = compression
	}
}

// Source is a RowSource over delimited text. It decodes rows with
// encoding/csv and rewinds by reopening its underlying stream, re-wrapping
// decompression and re-sniffing the byte-order mark each time.
type Source struct {
	open        func() (io.ReadCloser, error)
	cfg         sourceConfig
	rc          io.ReadCloser
	closeDecomp func() error
	records     *csv.Reader
	bom         ByteOrderMark
}

// NewSource creates a Source over the stream produced by open. The open
// function is invoked once immediately and again on every Rewind, so it
// must produce a fresh stream positioned at the start each time.
func NewSource(open func() (io.ReadCloser, error), opts ...SourceOption) (*Source, error) {
	cfg := sourceConfig{delimiter: ','}
	for _, opt := range opts {
		opt(&cfg)
	}
	s := &Source{open: open, cfg: cfg}
	if err := s.Rewind(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewStringSource creates a Source over in-memory delimited text.
func NewStringSource(data string, opts ...SourceOption) (*Source, error) {
	return NewSource(func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(data)), nil
	}, opts...)
}

// NewReaderSource buffers r fully so the source can rewind, then behaves
// like NewStringSource. Use OpenFile for large on-disk data instead.
func NewReaderSource(r io.Reader, opts ...SourceOption) (*Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to buffer source data: %w", err)
	}
	return NewStringSource(string(data), opts...)
}

// OpenFile creates a Source over a delimited text file. Compression is
// inferred from the file extension (.gz, .bz2, .xz, .zst) and can be
// overridden with WithCompression.
func OpenFile(path string, opts ...SourceOption) (*Source, error) {
	detected := []SourceOption{WithCompression(compressionFromPath(path))}
	return NewSource(func() (io.ReadCloser, error) {
		return os.Open(path)
	}, append(detected, opts...)...)
}

// Rewind reopens the underlying stream and repositions the source at row
// zero.
func (s *Source) Rewind() error {
	if err := s.closeCurrent(); err != nil {
		return err
	}
	rc, err := s.open()
	if err != nil {
		return fmt.Errorf("failed to open source: %w", err)
	}
	decompressed, closeDecomp, err := newDecompressor(rc, s.cfg.compression)
	if err != nil {
		_ = rc.Close()
		return err
	}
	buffered := bufio.NewReader(decompressed)
	prefix, err := buffered.Peek(4)
	if err != nil && err != io.EOF {
		_ = closeDecomp()
		_ = rc.Close()
		return fmt.Errorf("failed to sniff byte-order mark: %w", err)
	}
	s.bom = detectBOM(prefix)

	records := csv.NewReader(buffered)
	records.Comma = s.cfg.delimiter
	// Ragged rows are reshaped downstream, and a byte-order mark fused to
	// a quoted first field must reach the normalizer intact.
	records.FieldsPerRecord = -1
	records.LazyQuotes = true

	s.rc = rc
	s.closeDecomp = closeDecomp
	s.records = records
	return nil
}

// Read returns the next raw row, or io.EOF when the source is exhausted.
func (s *Source) Read() ([]string, error) {
	if s.records == nil {
		return nil, io.EOF
	}
	return s.records.Read()
}

// BOM reports the byte-order mark detected at the start of the stream.
func (s *Source) BOM() ByteOrderMark {
	return s.bom
}

// Close releases the underlying stream.
func (s *Source) Close() error {
	return s.closeCurrent()
}

func (s *Source) closeCurrent() error {
	if s.rc == nil {
		return nil
	}
	decompErr := s.closeDecomp()
	closeErr := s.rc.Close()
	s.rc = nil
	s.closeDecomp = nil
	s.records = nil
	if decompErr != nil {
		return decompErr
	}
	return closeErr
}

// sliceSource is a RowSource over rows that are already tokenized, such as
// spreadsheet or parquet content converted to text.
type sliceSource struct {
	rows [][]string
	idx  int
}

// NewSliceSource wraps already tokenized rows as a RowSource. The rows
// slice is retained, not copied.
func NewSliceSource(rows [][]string) RowSource {
	return &sliceSource{rows: rows}
}

func (s *sliceSource) Read() ([]string, error) {
	if s.idx >= len(s.rows) {
		return nil, io.EOF
	}
	row := s.rows[s.idx]
	s.idx++
	return row, nil
}

func (s *sliceSource) Rewind() error {
	s.idx = 0
	return nil
}

func (s *sliceSource) BOM() ByteOrderMark {
	return BOMNone
}

func (s *sliceSource) Close() error {
	return nil
}

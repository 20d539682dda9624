package tabq

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// OutputFormat represents the delimited output format of a dump.
type OutputFormat int

const (
	// OutputFormatCSV represents CSV output format
	OutputFormatCSV OutputFormat = iota
	// OutputFormatTSV represents TSV output format
	OutputFormatTSV
	// OutputFormatLTSV represents LTSV output format
	OutputFormatLTSV
)

// String returns the string representation of OutputFormat.
func (f OutputFormat) String() string {
	switch f {
	case OutputFormatTSV:
		return "tsv"
	case OutputFormatLTSV:
		return "ltsv"
	default:
		return "csv"
	}
}

// Extension returns the file extension for the format.
func (f OutputFormat) Extension() string {
	switch f {
	case OutputFormatTSV:
		return ".tsv"
	case OutputFormatLTSV:
		return ".ltsv"
	default:
		return ".csv"
	}
}

// DumpOptions configures how a RecordSet is dumped back to delimited text.
//
// Example:
//
//	options := NewDumpOptions().
//		WithFormat(OutputFormatTSV).
//		WithCompression(CompressionGZ)
//
//	err := result.Dump(w, options)
type DumpOptions struct {
	// Format specifies the output file format
	Format OutputFormat
	// Compression specifies the compression type
	Compression CompressionType
}

// NewDumpOptions creates default dump options (CSV, no compression).
func NewDumpOptions() DumpOptions {
	return DumpOptions{
		Format:      OutputFormatCSV,
		Compression: CompressionNone,
	}
}

// WithFormat sets the output file format.
func (o DumpOptions) WithFormat(format OutputFormat) DumpOptions {
	o.Format = format
	return o
}

// WithCompression adds compression to the output.
func (o DumpOptions) WithCompression(compression CompressionType) DumpOptions {
	o.Compression = compression
	return o
}

// FileExtension returns the complete file extension including compression.
func (o DumpOptions) FileExtension() string {
	return o.Format.Extension() + o.Compression.Extension()
}

// Dump writes the remaining records back out as delimited text in one
// pass, header first when one is active. Values are written as-is, without
// charset conversion: the dump keeps the source's own text contract. The
// cursor is consumed.
func (rs *RecordSet) Dump(w io.Writer, opts DumpOptions) error {
	compressed, closeCompressor, err := newCompressor(w, opts.Compression)
	if err != nil {
		return err
	}
	switch opts.Format {
	case OutputFormatCSV, OutputFormatTSV:
		err = rs.dumpDelimited(compressed, opts.Format)
	case OutputFormatLTSV:
		err = rs.dumpLTSV(compressed)
	default:
		err = validationErrorf("unsupported dump format: %v", opts.Format)
	}
	if closeErr := closeCompressor(); err == nil && closeErr != nil {
		err = fmt.Errorf("failed to finalize compressed dump: %w", closeErr)
	}
	return err
}

func (rs *RecordSet) dumpDelimited(w io.Writer, format OutputFormat) error {
	writer := csv.NewWriter(w)
	if format == OutputFormatTSV {
		writer.Comma = '\t'
	}
	if len(rs.header) > 0 {
		if err := writer.Write(rs.header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}
	for {
		rec, ok := rs.next()
		if !ok {
			break
		}
		if err := writer.Write(rec.Values()); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}
	if err := rs.it.Err(); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}

func (rs *RecordSet) dumpLTSV(w io.Writer) error {
	for {
		rec, ok := rs.next()
		if !ok {
			break
		}
		keys := rec.Keys()
		pairs := make([]string, len(keys))
		for i, value := range rec.Values() {
			pairs[i] = keys[i] + ":" + value
		}
		if _, err := io.WriteString(w, strings.Join(pairs, "\t")+"\n"); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}
	return rs.it.Err()
}

// Package tabq reads delimited tabular text and exposes it as a sequence
// of structured records, with declarative filtering, multi-key sorting,
// pagination, and export to alternate structured forms, all without
// loading the whole file into memory up front.
//
// # Features
//
//   - Streaming record pipeline: rows are normalized one at a time
//     (byte-order-mark stripping, empty-row skipping, width reshaping,
//     header keying)
//   - Immutable query statements composing filters, comparator chains,
//     offset/limit windows, and header overrides
//   - Lazy evaluation end to end; only the sorting stage materializes
//   - Sources over files, strings, readers, XLSX sheets, and Parquet
//     files, with transparent gzip/bzip2/xz/zstd decompression
//   - Exports to XML trees, HTML tables, JSON, ordered maps, delimited
//     dumps, and ASCII tables
//   - Optional charset transcoding of exported values
//
// # Basic Usage
//
// Open a source, designate the header row, and process a statement:
//
//	src, err := tabq.OpenFile("users.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer src.Close()
//
//	reader := tabq.NewReader(src)
//	if err := reader.SetHeaderOffset(0); err != nil {
//	    log.Fatal(err)
//	}
//
//	stmt := tabq.NewStatement().Where(func(rec tabq.Record) (bool, error) {
//	    age, _ := rec.Get("age")
//	    return age >= "30", nil
//	})
//	result, err := stmt.Process(reader)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	records, err := result.All()
//
// # Single-Pass Results
//
// A RecordSet owns one forward cursor. Every consumption method (All, One,
// Column, Pairs, the exports) drains from that same cursor, and a drained
// set yields nothing further. Process the statement again for a fresh
// traversal.
//
// # Error Classification
//
// Every error wraps one of three category sentinels: ErrValidation for bad
// caller arguments, ErrStructure for header-shape and header-position
// violations, and ErrCallback for failures raised by caller-supplied
// predicates or comparators.
package tabq

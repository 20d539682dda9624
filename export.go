package tabq

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"io"
)

// XMLOptions configures the hierarchical export of a RecordSet.
//
// Example:
//
//	options := NewXMLOptions().
//		WithRootName("export").
//		WithRowName("record").
//		WithIndent("  ")
//
//	err := result.ToXML(w, options)
type XMLOptions struct {
	// RootName is the element name of the single root node
	RootName string
	// RowName is the element name of each row node
	RowName string
	// CellName is the element name of each cell node
	CellName string
	// SkipHeader drops the leading header row node
	SkipHeader bool
	// Indent pretty-prints the document with the given indent string
	Indent string
}

// NewXMLOptions creates default XML export options: a "csv" root with
// "row" and "cell" children, header row included, no indentation.
func NewXMLOptions() XMLOptions {
	return XMLOptions{
		RootName: "csv",
		RowName:  "row",
		CellName: "cell",
	}
}

// WithRootName sets the root element name.
func (o XMLOptions) WithRootName(name string) XMLOptions {
	o.RootName = name
	return o
}

// WithRowName sets the row element name.
func (o XMLOptions) WithRowName(name string) XMLOptions {
	o.RowName = name
	return o
}

// WithCellName sets the cell element name.
func (o XMLOptions) WithCellName(name string) XMLOptions {
	o.CellName = name
	return o
}

// WithoutHeader drops the leading header row node from the document.
func (o XMLOptions) WithoutHeader() XMLOptions {
	o.SkipHeader = true
	return o
}

// WithIndent pretty-prints the document with the given indent string.
func (o XMLOptions) WithIndent(indent string) XMLOptions {
	o.Indent = indent
	return o
}

// ToXML writes the remaining records as a hierarchical document: one root
// node, an optional header row node, then one row node per record with one
// cell node per field. Every text value passes through the configured
// charset conversion. The cursor is consumed.
func (rs *RecordSet) ToXML(w io.Writer, opts XMLOptions) error {
	enc := xml.NewEncoder(w)
	if opts.Indent != "" {
		enc.Indent("", opts.Indent)
	}
	root := xml.StartElement{Name: xml.Name{Local: opts.RootName}}
	return rs.encodeTree(enc, root, opts.RowName, opts.CellName, !opts.SkipHeader)
}

// WriteHTMLTable writes the remaining records as a flat table markup
// fragment (table/tr/td), a presentation transform over the same tree walk
// as ToXML. An empty class omits the class attribute.
func (rs *RecordSet) WriteHTMLTable(w io.Writer, class string) error {
	root := xml.StartElement{Name: xml.Name{Local: "table"}}
	if class != "" {
		root.Attr = []xml.Attr{{Name: xml.Name{Local: "class"}, Value: class}}
	}
	return rs.encodeTree(xml.NewEncoder(w), root, "tr", "td", true)
}

// encodeTree is the shared tree walk behind ToXML and WriteHTMLTable.
func (rs *RecordSet) encodeTree(enc *xml.Encoder, root xml.StartElement, rowName, cellName string, includeHeader bool) error {
	conv, err := rs.converter()
	if err != nil {
		return err
	}
	if err := enc.EncodeToken(root); err != nil {
		return err
	}
	if includeHeader && len(rs.header) > 0 {
		if err := encodeRow(enc, rowName, cellName, rs.header, conv); err != nil {
			return err
		}
	}
	for {
		rec, ok := rs.next()
		if !ok {
			break
		}
		if err := encodeRow(enc, rowName, cellName, rec.Values(), conv); err != nil {
			return err
		}
	}
	if err := rs.it.Err(); err != nil {
		return err
	}
	if err := enc.EncodeToken(root.End()); err != nil {
		return err
	}
	return enc.Flush()
}

func encodeRow(enc *xml.Encoder, rowName, cellName string, values []string, conv *charsetConverter) error {
	row := xml.StartElement{Name: xml.Name{Local: rowName}}
	if err := enc.EncodeToken(row); err != nil {
		return err
	}
	cell := xml.StartElement{Name: xml.Name{Local: cellName}}
	for _, value := range values {
		if err := enc.EncodeToken(cell); err != nil {
			return err
		}
		if err := enc.EncodeToken(xml.CharData(conv.convert(value))); err != nil {
			return err
		}
		if err := enc.EncodeToken(cell.End()); err != nil {
			return err
		}
	}
	return enc.EncodeToken(row.End())
}

// ToMaps drains the remaining records into plain ordered maps, keys and
// values run through the configured charset conversion. Positional records
// use their position rendered as a string for keys.
func (rs *RecordSet) ToMaps() ([]map[string]string, error) {
	conv, err := rs.converter()
	if err != nil {
		return nil, err
	}
	var out []map[string]string
	for {
		rec, ok := rs.next()
		if !ok {
			break
		}
		m := make(map[string]string, rec.Len())
		keys := rec.Keys()
		for i, value := range rec.Values() {
			m[conv.convert(keys[i])] = conv.convert(value)
		}
		out = append(out, m)
	}
	if err := rs.it.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// MarshalJSON drains the remaining records into a JSON array: one object
// per record with fields in header order, or one array per record when the
// records are positional. The cursor is consumed.
func (rs *RecordSet) MarshalJSON() ([]byte, error) {
	conv, err := rs.converter()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteByte('[')
	first := true
	for {
		rec, ok := rs.next()
		if !ok {
			break
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		if err := encodeRecordJSON(&buf, rec, conv); err != nil {
			return nil, err
		}
	}
	if err := rs.it.Err(); err != nil {
		return nil, err
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// encodeRecordJSON writes one record, preserving key order, which
// json.Marshal over a map would not.
func encodeRecordJSON(buf *bytes.Buffer, rec Record, conv *charsetConverter) error {
	positional := rec.keys == nil
	openByte, closeByte := byte('{'), byte('}')
	if positional {
		openByte, closeByte = '[', ']'
	}
	buf.WriteByte(openByte)
	for i, value := range rec.Values() {
		if i > 0 {
			buf.WriteByte(',')
		}
		if !positional {
			key, err := json.Marshal(conv.convert(rec.keys[i]))
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
		}
		encoded, err := json.Marshal(conv.convert(value))
		if err != nil {
			return err
		}
		buf.Write(encoded)
	}
	buf.WriteByte(closeByte)
	return nil
}

package tabq

import (
	"io"

	"github.com/olekukonko/tablewriter"
)

// RenderASCII draws the remaining records as an ASCII table, header row on
// top when one is active. The cursor is consumed.
func (rs *RecordSet) RenderASCII(w io.Writer) error {
	conv, err := rs.converter()
	if err != nil {
		return err
	}
	table := tablewriter.NewWriter(w)
	if len(rs.header) > 0 {
		table.SetHeader(rs.header)
	}
	for {
		rec, ok := rs.next()
		if !ok {
			break
		}
		values := rec.Values()
		row := make([]string, len(values))
		for i, value := range values {
			row[i] = conv.convert(value)
		}
		table.Append(row)
	}
	if err := rs.it.Err(); err != nil {
		return err
	}
	table.Render()
	return nil
}

package extract

import "golang.org/x/net/html"

// Row is one extracted record: field name to its (possibly absent)
// value.
type Row map[string]string

// DatasetExtractor runs a row selector, then evaluates a FieldExtractor
// per named field relative to each row (spec §4.2).
type DatasetExtractor struct {
	rows   *RowExtractor
	fields map[string]*FieldExtractor
}

// NewDatasetExtractor builds a DatasetExtractor. fields maps output key
// to its XPath selector, evaluated relative to each matched row.
func NewDatasetExtractor(rowSelector string, fields map[string]string) *DatasetExtractor {
	fe := make(map[string]*FieldExtractor, len(fields))
	for name, sel := range fields {
		fe[name] = NewFieldExtractor(sel)
	}
	return &DatasetExtractor{rows: NewRowExtractor(rowSelector), fields: fe}
}

// Extract returns one Row per matched row node. A field with no match in
// a given row is simply absent from that Row (the "null" case in spec
// terms) rather than present with an empty string, so callers can tell
// "missing" from "empty".
func (d *DatasetExtractor) Extract(node *html.Node) ([]Row, error) {
	rowNodes, err := d.rows.Extract(node)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(rowNodes))
	for _, rn := range rowNodes {
		row := make(Row, len(d.fields))
		for name, fe := range d.fields {
			value, ok, err := fe.Extract(rn)
			if err != nil {
				return nil, err
			}
			if ok {
				row[name] = value
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

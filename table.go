package colexpr

import "fmt"

// Table pairs a Schema with one ChunkedArray per field. All columns have
// the same total length (the row count); individual columns' chunk
// boundaries are independent of one another.
type Table struct {
	schema  Schema
	columns []*ChunkedArray
}

// NewTable validates and constructs a Table. Every column must match its
// field's declared type and all columns must share the same row count.
func NewTable(schema Schema, columns []*ChunkedArray) (*Table, error) {
	if len(schema.Fields) != len(columns) {
		return nil, fmt.Errorf("colexpr: schema has %d fields but %d columns were given", len(schema.Fields), len(columns))
	}
	rows := -1
	for i, col := range columns {
		if col.Type() != schema.Fields[i].Type {
			return nil, fmt.Errorf("colexpr: column %d (%s) has type %s, field declares %s", i, schema.Fields[i].Name, col.Type(), schema.Fields[i].Type)
		}
		if rows == -1 {
			rows = col.Len()
			continue
		}
		if col.Len() != rows {
			return nil, fmt.Errorf("colexpr: column %d (%s) has %d rows, expected %d", i, schema.Fields[i].Name, col.Len(), rows)
		}
	}
	return &Table{schema: schema, columns: columns}, nil
}

// Schema returns the table's schema.
func (t *Table) Schema() Schema { return t.schema }

// NumCols returns the number of columns.
func (t *Table) NumCols() int { return len(t.columns) }

// NumRows returns the number of rows, or 0 for a table with no columns.
func (t *Table) NumRows() int {
	if len(t.columns) == 0 {
		return 0
	}
	return t.columns[0].Len()
}

// Column returns the i-th column.
func (t *Table) Column(i int) *ChunkedArray { return t.columns[i] }

// ColumnByName resolves name against the schema (first match wins) and
// returns its column and index.
func (t *Table) ColumnByName(name string) (*ChunkedArray, int, bool) {
	idx := t.schema.IndexOf(name)
	if idx < 0 {
		return nil, -1, false
	}
	return t.columns[idx], idx, true
}

// nullSentinel is the string RowAt substitutes for a null cell.
const nullSentinel = "<NA>"

// RowAt returns one string per column for the row at index, substituting
// nullSentinel for null cells.
func RowAt(t *Table, index int) ([]string, error) {
	if index < 0 || index >= t.NumRows() {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrRowIndexOutOfRange, index, t.NumRows())
	}
	out := make([]string, t.NumCols())
	for i, col := range t.columns {
		chunk, offset := col.locate(index)
		if chunk.IsNull(offset) {
			out[i] = nullSentinel
			continue
		}
		out[i] = formatArrayValue(chunk, offset)
	}
	return out, nil
}

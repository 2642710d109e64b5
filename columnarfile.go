package colexpr

import (
	"encoding/json"
	"fmt"

	"github.com/parquet-go/parquet-go"
)

// snapshot is the on-disk row shape written by Save and read back by
// Load. The columnar-binary format is treated as opaque here: the whole
// Table is JSON-encoded into a single payload column, which keeps the
// parquet file schema fixed regardless of what the Table's own schema
// looks like.
type snapshot struct {
	Payload string `parquet:"payload"`
}

type tableWireFormat struct {
	Fields  []Field        `json:"fields"`
	Columns []columnRecord `json:"columns"`
}

type columnRecord struct {
	Type   LogicalType `json:"type"`
	Ints   []int64     `json:"ints,omitempty"`
	Floats []float64   `json:"floats,omitempty"`
	Strs   []string    `json:"strs,omitempty"`
	Bools  []bool      `json:"bools,omitempty"`
	Valid  []bool      `json:"valid"`
}

// Save writes t to path as a single-row parquet file whose payload column
// holds a JSON-encoded snapshot of the table's schema and column data.
func Save(path string, t *Table) error {
	wire, err := encodeTable(t)
	if err != nil {
		return &IOError{Path: path, Cause: err}
	}
	payload, err := json.Marshal(wire)
	if err != nil {
		return &IOError{Path: path, Cause: err}
	}
	rows := []snapshot{{Payload: string(payload)}}
	if err := parquet.WriteFile(path, rows); err != nil {
		return &IOError{Path: path, Cause: err}
	}
	return nil
}

// Load reads a parquet file written by Save and reconstructs the Table.
func Load(path string) (*Table, error) {
	rows, err := parquet.ReadFile[snapshot](path)
	if err != nil {
		return nil, &IOError{Path: path, Cause: err}
	}
	if len(rows) != 1 {
		return nil, &IOError{Path: path, Cause: fmt.Errorf("expected exactly one snapshot row, got %d", len(rows))}
	}
	var wire tableWireFormat
	if err := json.Unmarshal([]byte(rows[0].Payload), &wire); err != nil {
		return nil, &IOError{Path: path, Cause: err}
	}
	return decodeTable(wire)
}

func encodeTable(t *Table) (tableWireFormat, error) {
	wire := tableWireFormat{
		Fields:  t.Schema().Fields,
		Columns: make([]columnRecord, t.NumCols()),
	}
	for i := 0; i < t.NumCols(); i++ {
		arr := flatten(t.Column(i))
		rec := columnRecord{Type: arr.Type(), Valid: make([]bool, arr.Len())}
		for r := 0; r < arr.Len(); r++ {
			rec.Valid[r] = arr.IsValid(r)
		}
		switch a := arr.(type) {
		case *Int64Array:
			rec.Ints = a.Values
		case *Float64Array:
			rec.Floats = a.Values
		case *StringArray:
			rec.Strs = a.Values
		case *BoolArray:
			rec.Bools = a.Values
		}
		wire.Columns[i] = rec
	}
	return wire, nil
}

func decodeTable(wire tableWireFormat) (*Table, error) {
	columns := make([]*ChunkedArray, len(wire.Columns))
	for i, rec := range wire.Columns {
		valid := validityFromBools(rec.Valid)
		var arr Array
		switch rec.Type {
		case TypeInt64:
			arr = &Int64Array{Values: rec.Ints, Valid: valid}
		case TypeDouble:
			arr = &Float64Array{Values: rec.Floats, Valid: valid}
		case TypeString:
			arr = &StringArray{Values: rec.Strs, Valid: valid}
		case TypeBool:
			arr = &BoolArray{Values: rec.Bools, Valid: valid}
		default:
			return nil, fmt.Errorf("colexpr: unsupported column type %s in snapshot", rec.Type)
		}
		columns[i] = NewChunkedArray(rec.Type, arr)
	}
	return NewTable(Schema{Fields: wire.Fields}, columns)
}

func validityFromBools(bits []bool) *Bitmap {
	allValid := true
	for _, b := range bits {
		if !b {
			allValid = false
			break
		}
	}
	if allValid {
		return nil
	}
	bm := NewBitmap(len(bits), true)
	for i, b := range bits {
		bm.Set(i, b)
	}
	return bm
}

package colexpr

import (
	"fmt"
	"strconv"

	"golang.org/x/text/unicode/norm"
)

// HeaderPolicy controls how CSVToTable derives field names from a RawCSV.
type HeaderPolicy int

const (
	// TakeFirstRowAsHeaders uses row 0's cells as field names; type
	// deduction runs over rows 1..N.
	TakeFirstRowAsHeaders HeaderPolicy = iota
	// GenerateColumnNames fabricates "0", "1", ... as field names; type
	// deduction runs over every row.
	GenerateColumnNames
)

// TypeOverride forces the builder to use Type instead of running type
// deduction for the column at ColumnIndex.
type TypeOverride struct {
	ColumnIndex int
	Type        ColumnType
}

// CSVToTable materializes a RawCSV into a Table, guided by policy and any
// per-column type overrides. Short rows are padded with empty cells so
// every column receives exactly one cell per data row.
func CSVToTable(raw *RawCSV, policy HeaderPolicy, overrides []TypeOverride) (*Table, error) {
	if raw == nil || len(raw.Rows) == 0 {
		return &Table{}, nil
	}

	var headers []string
	var dataRows [][]Cell
	switch policy {
	case TakeFirstRowAsHeaders:
		headers = cellsToStrings(raw.Rows[0])
		dataRows = raw.Rows[1:]
	case GenerateColumnNames:
		headers = generateColumnNames(len(raw.Rows[0]))
		dataRows = raw.Rows
	default:
		return nil, fmt.Errorf("colexpr: unknown header policy %v", policy)
	}

	numCols := len(headers)
	normalized := normalizeRows(dataRows, numCols)

	overrideByIndex := make(map[int]ColumnType, len(overrides))
	for _, o := range overrides {
		overrideByIndex[o.ColumnIndex] = o.Type
	}

	fields := make([]Field, numCols)
	columns := make([]*ChunkedArray, numCols)
	for col := 0; col < numCols; col++ {
		ct, ok := overrideByIndex[col]
		if !ok {
			cells := columnCells(normalized, col)
			ct = deduceColumnType(cells)
		}
		if ct.Type == TypeNA {
			// An NA override materializes as a nullable STRING column, the
			// same way an all-empty deduced column does.
			ct.Type = TypeString
			ct.Nullable = true
		}
		fields[col] = Field{Name: headers[col], Type: ct.Type, Nullable: ct.Nullable}
		arr, err := materializeColumn(normalized, col, ct)
		if err != nil {
			return nil, fmt.Errorf("column %d (%s): %w", col, headers[col], err)
		}
		columns[col] = NewChunkedArray(ct.Type, arr)
	}

	return NewTable(Schema{Fields: fields}, columns)
}

func cellsToStrings(row []Cell) []string {
	out := make([]string, len(row))
	for i, c := range row {
		out[i] = string(c)
	}
	return out
}

func generateColumnNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = strconv.Itoa(i)
	}
	return names
}

// normalizeRows pads every row out to numCols with empty cells, so the
// table builder sees exactly one string per column per data row
// regardless of ragged input.
func normalizeRows(rows [][]Cell, numCols int) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		strs := make([]string, numCols)
		for j := 0; j < numCols && j < len(row); j++ {
			strs[j] = string(row[j])
		}
		out[i] = strs
	}
	return out
}

func columnCells(rows [][]string, col int) []string {
	cells := make([]string, len(rows))
	for i, row := range rows {
		cells[i] = row[col]
	}
	return cells
}

// materializeColumn builds a single Array for column col of the given
// deduced (or overridden) type.
func materializeColumn(rows [][]string, col int, ct ColumnType) (Array, error) {
	n := len(rows)
	switch ct.Type {
	case TypeInt64, TypeNA:
		values := make([]int64, n)
		var valid *Bitmap
		if ct.Nullable {
			valid = NewBitmap(n, true)
		}
		for i, row := range rows {
			cell := row[col]
			if cell == "" {
				if valid != nil {
					valid.Set(i, false)
					continue
				}
				return nil, fmt.Errorf("row %d: empty cell in non-nullable INT64 column", i)
			}
			v, ok := ParseInt64(cell)
			if !ok {
				if valid != nil {
					valid.Set(i, false)
					continue
				}
				return nil, fmt.Errorf("row %d: %q is not a valid int64", i, cell)
			}
			values[i] = v
		}
		return &Int64Array{Values: values, Valid: valid}, nil

	case TypeDouble:
		values := make([]float64, n)
		var valid *Bitmap
		if ct.Nullable {
			valid = NewBitmap(n, true)
		}
		for i, row := range rows {
			cell := row[col]
			if cell == "" {
				if valid != nil {
					valid.Set(i, false)
					continue
				}
				return nil, fmt.Errorf("row %d: empty cell in non-nullable DOUBLE column", i)
			}
			v, ok := ParseFloat64(cell)
			if !ok {
				if valid != nil {
					valid.Set(i, false)
					continue
				}
				return nil, fmt.Errorf("row %d: %q is not a valid double", i, cell)
			}
			values[i] = v
		}
		return &Float64Array{Values: values, Valid: valid}, nil

	case TypeString:
		values := make([]string, n)
		var valid *Bitmap
		if ct.Nullable {
			valid = NewBitmap(n, true)
		}
		for i, row := range rows {
			cell := row[col]
			if cell == "" && valid != nil {
				valid.Set(i, false)
				continue
			}
			values[i] = norm.NFC.String(cell)
		}
		return &StringArray{Values: values, Valid: valid}, nil

	default:
		return nil, fmt.Errorf("unsupported column type %s", ct.Type)
	}
}

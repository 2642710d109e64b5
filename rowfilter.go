package colexpr

// ApplyMask returns a new Table containing exactly the rows where mask is
// valid-and-true, preserving column order, names, and the relative order
// of surviving rows.
func ApplyMask(t *Table, mask *BoolArray) (*Table, error) {
	if mask.Len() != t.NumRows() {
		return nil, &TypeError{Reason: "mask length does not match table row count"}
	}
	keep := make([]int, 0, t.NumRows())
	for i := 0; i < mask.Len(); i++ {
		if mask.IsValid(i) && mask.Value(i) {
			keep = append(keep, i)
		}
	}
	return selectRows(t, keep)
}

// DropNA returns a new Table keeping only rows where every column is
// non-null.
func DropNA(t *Table) (*Table, error) {
	n := t.NumRows()
	keep := make([]int, 0, n)
	for i := 0; i < n; i++ {
		allValid := true
		for c := 0; c < t.NumCols(); c++ {
			if t.Column(c).IsNull(i) {
				allValid = false
				break
			}
		}
		if allValid {
			keep = append(keep, i)
		}
	}
	return selectRows(t, keep)
}

// selectRows builds a new single-chunk Table holding exactly the rows at
// the given indices, in order, for every column.
func selectRows(t *Table, rows []int) (*Table, error) {
	columns := make([]*ChunkedArray, t.NumCols())
	for c := 0; c < t.NumCols(); c++ {
		col := t.Column(c)
		arr, err := gatherRows(col, rows)
		if err != nil {
			return nil, err
		}
		columns[c] = NewChunkedArray(col.Type(), arr)
	}
	return NewTable(t.Schema(), columns)
}

func gatherRows(ca *ChunkedArray, rows []int) (Array, error) {
	n := len(rows)
	switch ca.Type() {
	case TypeInt64:
		values := make([]int64, n)
		valid := NewBitmap(n, true)
		for i, row := range rows {
			chunk, off := ca.locate(row)
			a := chunk.(*Int64Array)
			if a.IsNull(off) {
				valid.Set(i, false)
			} else {
				values[i] = a.Value(off)
			}
		}
		return &Int64Array{Values: values, Valid: valid}, nil
	case TypeDouble:
		values := make([]float64, n)
		valid := NewBitmap(n, true)
		for i, row := range rows {
			chunk, off := ca.locate(row)
			a := chunk.(*Float64Array)
			if a.IsNull(off) {
				valid.Set(i, false)
			} else {
				values[i] = a.Value(off)
			}
		}
		return &Float64Array{Values: values, Valid: valid}, nil
	case TypeString:
		values := make([]string, n)
		valid := NewBitmap(n, true)
		for i, row := range rows {
			chunk, off := ca.locate(row)
			a := chunk.(*StringArray)
			if a.IsNull(off) {
				valid.Set(i, false)
			} else {
				values[i] = a.Value(off)
			}
		}
		return &StringArray{Values: values, Valid: valid}, nil
	case TypeBool:
		values := make([]bool, n)
		valid := NewBitmap(n, true)
		for i, row := range rows {
			chunk, off := ca.locate(row)
			a := chunk.(*BoolArray)
			if a.IsNull(off) {
				valid.Set(i, false)
			} else {
				values[i] = a.Value(off)
			}
		}
		return &BoolArray{Values: values, Valid: valid}, nil
	default:
		return nil, &TypeError{Reason: "cannot gather rows of unknown column type"}
	}
}

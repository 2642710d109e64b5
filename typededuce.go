package colexpr

// DeduceType classifies a single cell: empty is NA, a value that parses
// fully as an int64 is INT64, one that parses fully as a float64 (but not
// as an int64) is DOUBLE, anything else is STRING.
func DeduceType(cell string) LogicalType {
	if cell == "" {
		return TypeNA
	}
	if _, ok := ParseInt64(cell); ok {
		return TypeInt64
	}
	if _, ok := ParseFloat64(cell); ok {
		return TypeDouble
	}
	return TypeString
}

// foldType combines two cell classifications into the running column
// classification: NA is the identity element, STRING absorbs everything,
// and INT64 combined with DOUBLE promotes to DOUBLE.
func foldType(acc, next LogicalType) LogicalType {
	switch {
	case acc == TypeNA:
		return next
	case next == TypeNA:
		return acc
	case acc == TypeString || next == TypeString:
		return TypeString
	case acc == TypeDouble || next == TypeDouble:
		return TypeDouble
	default:
		return TypeInt64
	}
}

// ColumnType is the per-column result of folding DeduceType over every
// cell in a column.
type ColumnType struct {
	Type     LogicalType
	Nullable bool
	Deduced  bool
	AllNA    bool
}

// deduceColumnType folds DeduceType over every cell of a column. A column
// whose cells are all empty is classified AllNA and materializes as a
// nullable STRING column unless the caller supplies an override.
func deduceColumnType(cells []string) ColumnType {
	acc := TypeNA
	sawNA := false
	for _, cell := range cells {
		t := DeduceType(cell)
		if t == TypeNA {
			sawNA = true
		}
		acc = foldType(acc, t)
	}
	if acc == TypeNA {
		return ColumnType{Type: TypeString, Nullable: true, Deduced: true, AllNA: true}
	}
	return ColumnType{Type: acc, Nullable: sawNA, Deduced: true}
}

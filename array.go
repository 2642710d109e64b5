package colexpr

import "strconv"

// LogicalType is the set of column/value types this engine understands.
// TypeNA is only ever a transient classification produced by the type
// deducer (C3); a materialized column is always one of the other types.
// TypeBool is produced by the expression evaluator (C7); the CSV table
// builder never materializes it, though NewTable accepts a TypeBool column
// built directly from BoolArray chunks.
type LogicalType uint8

const (
	TypeNA LogicalType = iota
	TypeInt64
	TypeDouble
	TypeString
	TypeBool
)

func (t LogicalType) String() string {
	switch t {
	case TypeNA:
		return "NA"
	case TypeInt64:
		return "INT64"
	case TypeDouble:
		return "DOUBLE"
	case TypeString:
		return "STRING"
	case TypeBool:
		return "BOOL"
	default:
		return "UNKNOWN"
	}
}

// Array is a contiguous, typed, length-N sequence with a validity bitmap
// of the same length. It is the degenerate, single-chunk case of a
// ChunkedArray.
type Array interface {
	Type() LogicalType
	Len() int
	IsValid(i int) bool
	IsNull(i int) bool
}

// Int64Array holds a contiguous run of nullable int64 values.
type Int64Array struct {
	Values []int64
	Valid  *Bitmap // nil means no nulls are possible
}

func (a *Int64Array) Type() LogicalType   { return TypeInt64 }
func (a *Int64Array) Len() int            { return len(a.Values) }
func (a *Int64Array) IsValid(i int) bool  { return a.Valid.Get(i) }
func (a *Int64Array) IsNull(i int) bool   { return !a.IsValid(i) }
func (a *Int64Array) Value(i int) int64   { return a.Values[i] }

// Float64Array holds a contiguous run of nullable float64 values.
type Float64Array struct {
	Values []float64
	Valid  *Bitmap
}

func (a *Float64Array) Type() LogicalType  { return TypeDouble }
func (a *Float64Array) Len() int           { return len(a.Values) }
func (a *Float64Array) IsValid(i int) bool { return a.Valid.Get(i) }
func (a *Float64Array) IsNull(i int) bool  { return !a.IsValid(i) }
func (a *Float64Array) Value(i int) float64 { return a.Values[i] }

// StringArray holds a contiguous run of nullable string values.
type StringArray struct {
	Values []string
	Valid  *Bitmap
}

func (a *StringArray) Type() LogicalType  { return TypeString }
func (a *StringArray) Len() int           { return len(a.Values) }
func (a *StringArray) IsValid(i int) bool { return a.Valid.Get(i) }
func (a *StringArray) IsNull(i int) bool  { return !a.IsValid(i) }
func (a *StringArray) Value(i int) string { return a.Values[i] }

// BoolArray holds a contiguous run of nullable booleans. The expression
// evaluator produces it (masks, boolean subexpressions); the CSV table
// builder never does, but a Table built directly with NewTable may hold
// BoolArray chunks.
type BoolArray struct {
	Values []bool
	Valid  *Bitmap
}

func (a *BoolArray) Type() LogicalType  { return TypeBool }
func (a *BoolArray) Len() int           { return len(a.Values) }
func (a *BoolArray) IsValid(i int) bool { return a.Valid.Get(i) }
func (a *BoolArray) IsNull(i int) bool  { return !a.IsValid(i) }
func (a *BoolArray) Value(i int) bool   { return a.Values[i] }

// formatArrayValue renders the value at offset i of arr as a string,
// assuming IsValid(i) has already been checked by the caller.
func formatArrayValue(arr Array, i int) string {
	switch a := arr.(type) {
	case *Int64Array:
		return strconv.FormatInt(a.Value(i), 10)
	case *Float64Array:
		return strconv.FormatFloat(a.Value(i), 'g', -1, 64)
	case *StringArray:
		return a.Value(i)
	case *BoolArray:
		return strconv.FormatBool(a.Value(i))
	default:
		return ""
	}
}

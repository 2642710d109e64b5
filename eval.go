package colexpr

import (
	"fmt"
	"regexp"
	"strings"
)

// Each evaluates a value expression against t, row by row, producing a
// new column of the result type.
func Each(t *Table, expr *Expression) (Array, error) {
	return evalNode(t, expr)
}

// Mask evaluates a predicate or boolean expression against t, producing a
// BoolArray usable with ApplyMask.
func Mask(t *Table, expr *Expression) (*BoolArray, error) {
	arr, err := evalNode(t, expr)
	if err != nil {
		return nil, err
	}
	mask, ok := arr.(*BoolArray)
	if !ok {
		return nil, &TypeError{Reason: "mask expression did not produce a boolean column"}
	}
	return mask, nil
}

// Filter evaluates expr as a mask over t and returns the rows where it is
// valid-and-true.
func Filter(t *Table, expr *Expression) (*Table, error) {
	mask, err := Mask(t, expr)
	if err != nil {
		return nil, err
	}
	return ApplyMask(t, mask)
}

func evalNode(t *Table, e *Expression) (Array, error) {
	switch e.kind {
	case exprLiteral:
		return evalLiteral(t.NumRows(), e), nil
	case exprColumnRef:
		return evalColumnRef(t, e)
	case exprOperation:
		return evalOperation(t, e)
	case exprPredicate:
		return evalPredicate(t, e)
	case exprBoolean:
		return evalBoolean(t, e)
	default:
		return nil, fmt.Errorf("colexpr: unknown expression kind %d", e.kind)
	}
}

// evalLiteral materializes a constant expression as a length-n column.
// Literals never produce nulls except LiteralNA, which is all-null.
func evalLiteral(n int, e *Expression) Array {
	switch e.litType {
	case TypeInt64:
		values := make([]int64, n)
		var valid *Bitmap
		if e.litNull {
			valid = NewBitmap(n, false)
		} else {
			for i := range values {
				values[i] = e.litInt
			}
		}
		return &Int64Array{Values: values, Valid: valid}
	case TypeDouble:
		values := make([]float64, n)
		var valid *Bitmap
		if e.litNull {
			valid = NewBitmap(n, false)
		} else {
			for i := range values {
				values[i] = e.litFlt
			}
		}
		return &Float64Array{Values: values, Valid: valid}
	case TypeString:
		values := make([]string, n)
		var valid *Bitmap
		if e.litNull {
			valid = NewBitmap(n, false)
		} else {
			for i := range values {
				values[i] = e.litStr
			}
		}
		return &StringArray{Values: values, Valid: valid}
	case TypeBool:
		values := make([]bool, n)
		var valid *Bitmap
		if e.litNull {
			valid = NewBitmap(n, false)
		} else {
			for i := range values {
				values[i] = e.litBool
			}
		}
		return &BoolArray{Values: values, Valid: valid}
	default:
		return &StringArray{Values: make([]string, n), Valid: NewBitmap(n, false)}
	}
}

func evalColumnRef(t *Table, e *Expression) (Array, error) {
	col, _, ok := t.ColumnByName(e.colName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, e.colName)
	}
	return flatten(col), nil
}

// flatten materializes a ChunkedArray's logical rows into a single Array,
// so the rest of the evaluator can work against a uniform representation
// regardless of how the source Table chunked this column.
func flatten(ca *ChunkedArray) Array {
	n := ca.Len()
	switch ca.Type() {
	case TypeInt64:
		values := make([]int64, n)
		valid := NewBitmap(n, true)
		cur := newChunkCursor(ca)
		for i := 0; i < n; i++ {
			chunk, off := cur.current()
			a := chunk.(*Int64Array)
			if a.IsNull(off) {
				valid.Set(i, false)
			} else {
				values[i] = a.Value(off)
			}
			cur.advance()
		}
		return &Int64Array{Values: values, Valid: valid}
	case TypeDouble:
		values := make([]float64, n)
		valid := NewBitmap(n, true)
		cur := newChunkCursor(ca)
		for i := 0; i < n; i++ {
			chunk, off := cur.current()
			a := chunk.(*Float64Array)
			if a.IsNull(off) {
				valid.Set(i, false)
			} else {
				values[i] = a.Value(off)
			}
			cur.advance()
		}
		return &Float64Array{Values: values, Valid: valid}
	case TypeString:
		values := make([]string, n)
		valid := NewBitmap(n, true)
		cur := newChunkCursor(ca)
		for i := 0; i < n; i++ {
			chunk, off := cur.current()
			a := chunk.(*StringArray)
			if a.IsNull(off) {
				valid.Set(i, false)
			} else {
				values[i] = a.Value(off)
			}
			cur.advance()
		}
		return &StringArray{Values: values, Valid: valid}
	case TypeBool:
		values := make([]bool, n)
		valid := NewBitmap(n, true)
		cur := newChunkCursor(ca)
		for i := 0; i < n; i++ {
			chunk, off := cur.current()
			a := chunk.(*BoolArray)
			if a.IsNull(off) {
				valid.Set(i, false)
			} else {
				values[i] = a.Value(off)
			}
			cur.advance()
		}
		return &BoolArray{Values: values, Valid: valid}
	default:
		return &StringArray{Values: make([]string, n), Valid: NewBitmap(n, false)}
	}
}

// numericAt returns the row value of a numeric Array widened to float64,
// along with whether it is an integer-typed array and whether the row is
// valid.
func numericAt(arr Array, i int) (value float64, isInt bool, valid bool) {
	switch a := arr.(type) {
	case *Int64Array:
		return float64(a.Value(i)), true, a.IsValid(i)
	case *Float64Array:
		return a.Value(i), false, a.IsValid(i)
	default:
		return 0, false, false
	}
}

func evalOperation(t *Table, e *Expression) (Array, error) {
	if e.op == OpNegate {
		child, err := evalNode(t, e.children[0])
		if err != nil {
			return nil, err
		}
		return mapNegate(child)
	}
	left, err := evalNode(t, e.children[0])
	if err != nil {
		return nil, err
	}
	right, err := evalNode(t, e.children[1])
	if err != nil {
		return nil, err
	}
	return mapArith(e.op, left, right)
}

// mapNegate negates a numeric column, always producing DOUBLE regardless
// of whether the operand is INT64 or DOUBLE, matching mapArith's promotion.
func mapNegate(arr Array) (Array, error) {
	if !isNumericArray(arr) {
		return nil, &TypeError{Reason: "negate requires a numeric operand"}
	}
	n := arr.Len()
	values := make([]float64, n)
	valid := NewBitmap(n, true)
	for i := 0; i < n; i++ {
		x, _, xv := numericAt(arr, i)
		if !xv {
			valid.Set(i, false)
			continue
		}
		values[i] = -x
	}
	return &Float64Array{Values: values, Valid: valid}, nil
}

// mapArith dispatches plus/minus/times/divide/mod over two numeric
// columns. The result is always DOUBLE regardless of operand types, with
// row-wise null propagation and floating-point mod matching the sign of
// the dividend.
func mapArith(op string, left, right Array) (Array, error) {
	n := left.Len()
	leftIsNumeric := isNumericArray(left)
	rightIsNumeric := isNumericArray(right)
	if !leftIsNumeric || !rightIsNumeric {
		return nil, &TypeError{Reason: fmt.Sprintf("%q requires numeric operands", op)}
	}

	values := make([]float64, n)
	valid := NewBitmap(n, true)
	for i := 0; i < n; i++ {
		x, _, xv := numericAt(left, i)
		y, _, yv := numericAt(right, i)
		if !xv || !yv {
			valid.Set(i, false)
			continue
		}
		switch op {
		case OpPlus:
			values[i] = x + y
		case OpMinus:
			values[i] = x - y
		case OpTimes:
			values[i] = x * y
		case OpDivide:
			if y == 0 {
				return nil, &DivisionByZeroError{Op: op}
			}
			values[i] = x / y
		case OpMod:
			if y == 0 {
				return nil, &DivisionByZeroError{Op: op}
			}
			values[i] = goMod(x, y)
		default:
			return nil, fmt.Errorf("colexpr: unknown arithmetic operator %q", op)
		}
	}
	return &Float64Array{Values: values, Valid: valid}, nil
}

// goMod implements floating-point mod matching the sign of the dividend,
// the same convention Go's integer % already follows.
func goMod(x, y float64) float64 {
	r := x - y*float64(int64(x/y))
	return r
}

func isNumericArray(arr Array) bool {
	switch arr.(type) {
	case *Int64Array, *Float64Array:
		return true
	default:
		return false
	}
}

func evalPredicate(t *Table, e *Expression) (Array, error) {
	switch e.op {
	case OpStartsWith, OpEndsWith, OpMatches:
		return evalStringPredicate(t, e)
	default:
		return evalComparison(t, e)
	}
}

func evalComparison(t *Table, e *Expression) (Array, error) {
	left, err := evalNode(t, e.children[0])
	if err != nil {
		return nil, err
	}
	right, err := evalNode(t, e.children[1])
	if err != nil {
		return nil, err
	}
	n := left.Len()

	if isNumericArray(left) && isNumericArray(right) {
		values := make([]bool, n)
		valid := NewBitmap(n, true)
		for i := 0; i < n; i++ {
			x, _, xv := numericAt(left, i)
			y, _, yv := numericAt(right, i)
			if !xv || !yv {
				valid.Set(i, false)
				continue
			}
			values[i] = compareNumeric(e.op, x, y)
		}
		return &BoolArray{Values: values, Valid: valid}, nil
	}

	ls, lok := left.(*StringArray)
	rs, rok := right.(*StringArray)
	if lok && rok {
		values := make([]bool, n)
		valid := NewBitmap(n, true)
		for i := 0; i < n; i++ {
			if !ls.IsValid(i) || !rs.IsValid(i) {
				valid.Set(i, false)
				continue
			}
			values[i] = compareStrings(e.op, ls.Value(i), rs.Value(i))
		}
		return &BoolArray{Values: values, Valid: valid}, nil
	}

	return nil, &TypeError{Reason: fmt.Sprintf("%q requires both operands to be the same category", e.op)}
}

func compareNumeric(op string, x, y float64) bool {
	switch op {
	case OpEq:
		return x == y
	case OpNe:
		return x != y
	case OpLt:
		return x < y
	case OpLe:
		return x <= y
	case OpGt:
		return x > y
	case OpGe:
		return x >= y
	default:
		return false
	}
}

func compareStrings(op string, x, y string) bool {
	switch op {
	case OpEq:
		return x == y
	case OpNe:
		return x != y
	case OpLt:
		return x < y
	case OpLe:
		return x <= y
	case OpGt:
		return x > y
	case OpGe:
		return x >= y
	default:
		return false
	}
}

func evalStringPredicate(t *Table, e *Expression) (Array, error) {
	subject, err := evalNode(t, e.children[0])
	if err != nil {
		return nil, err
	}
	subjectStr, ok := subject.(*StringArray)
	if !ok {
		return nil, &TypeError{Reason: fmt.Sprintf("%q requires a string operand", e.op)}
	}
	pattern := e.children[1]
	if !isStringLiteral(pattern) {
		return nil, &TypeError{Reason: fmt.Sprintf("%q requires a string literal pattern", e.op)}
	}
	patternStr := pattern.litStr

	var rx *regexp.Regexp
	if e.op == OpMatches {
		rx, err = regexp.Compile("^(?:" + patternStr + ")$")
		if err != nil {
			return nil, &TypeError{Reason: fmt.Sprintf("invalid regular expression %q: %v", patternStr, err)}
		}
	}

	n := subjectStr.Len()
	values := make([]bool, n)
	valid := NewBitmap(n, true)
	for i := 0; i < n; i++ {
		if !subjectStr.IsValid(i) {
			valid.Set(i, false)
			continue
		}
		s := subjectStr.Value(i)
		switch e.op {
		case OpStartsWith:
			values[i] = strings.HasPrefix(s, patternStr)
		case OpEndsWith:
			values[i] = strings.HasSuffix(s, patternStr)
		case OpMatches:
			values[i] = rx.MatchString(s)
		}
	}
	return &BoolArray{Values: values, Valid: valid}, nil
}

func evalBoolean(t *Table, e *Expression) (Array, error) {
	children := make([]*BoolArray, len(e.children))
	for i, c := range e.children {
		arr, err := evalNode(t, c)
		if err != nil {
			return nil, err
		}
		b, ok := arr.(*BoolArray)
		if !ok {
			return nil, &TypeError{Reason: "boolean operator applied to a non-boolean subexpression"}
		}
		children[i] = b
	}

	n := t.NumRows()
	values := make([]bool, n)
	valid := NewBitmap(n, true)

	switch e.op {
	case OpNot:
		c := children[0]
		for i := 0; i < n; i++ {
			if !c.IsValid(i) {
				valid.Set(i, false)
				continue
			}
			values[i] = !c.Value(i)
		}
	case OpAnd:
		for i := 0; i < n; i++ {
			v, ok := foldAnd(children, i)
			valid.Set(i, ok)
			values[i] = v
		}
	case OpOr:
		for i := 0; i < n; i++ {
			v, ok := foldOr(children, i)
			valid.Set(i, ok)
			values[i] = v
		}
	default:
		return nil, fmt.Errorf("colexpr: unknown boolean operator %q", e.op)
	}
	return &BoolArray{Values: values, Valid: valid}, nil
}

// threeValued is tri-state logic value: {true, false, null}. ok reports
// whether the operand is non-null; val is meaningless when ok is false.
func threeValued(c *BoolArray, i int) (val bool, ok bool) {
	if !c.IsValid(i) {
		return false, false
	}
	return c.Value(i), true
}

// foldAnd combines row i across every child with three-valued AND: a
// single false operand forces the result false even if another operand
// is null; otherwise any null operand makes the result null.
func foldAnd(children []*BoolArray, i int) (result bool, valid bool) {
	sawNull := false
	for _, c := range children {
		v, ok := threeValued(c, i)
		if !ok {
			sawNull = true
			continue
		}
		if !v {
			return false, true
		}
	}
	if sawNull {
		return false, false
	}
	return true, true
}

// foldOr combines row i across every child with three-valued OR: a single
// true operand forces the result true; otherwise any null operand makes
// the result null.
func foldOr(children []*BoolArray, i int) (result bool, valid bool) {
	sawNull := false
	for _, c := range children {
		v, ok := threeValued(c, i)
		if !ok {
			sawNull = true
			continue
		}
		if v {
			return true, true
		}
	}
	if sawNull {
		return false, false
	}
	return false, true
}

package colexpr

import "testing"

func TestApplyMask(t *testing.T) {
	t.Parallel()
	table := intTable(t, "a", []int64{1, 2, 3, 4, 5})
	mask := &BoolArray{Values: []bool{true, false, true, false, true}}
	out, err := ApplyMask(table, mask)
	if err != nil {
		t.Fatalf("ApplyMask() error = %v", err)
	}
	want := []int64{1, 3, 5}
	got := flatten(out.Column(0)).(*Int64Array)
	if got.Len() != len(want) {
		t.Fatalf("NumRows() = %d, want %d", got.Len(), len(want))
	}
	for i, w := range want {
		if got.Value(i) != w {
			t.Errorf("row %d = %d, want %d", i, got.Value(i), w)
		}
	}
}

func TestApplyMaskTreatsNullAsFalse(t *testing.T) {
	t.Parallel()
	table := intTable(t, "a", []int64{1, 2, 3})
	valid := NewBitmap(3, true)
	valid.Set(1, false) // row 1's mask value is null
	mask := &BoolArray{Values: []bool{true, true, false}, Valid: valid}
	out, err := ApplyMask(table, mask)
	if err != nil {
		t.Fatalf("ApplyMask() error = %v", err)
	}
	if out.NumRows() != 1 {
		t.Fatalf("NumRows() = %d, want 1 (null mask rows must be dropped)", out.NumRows())
	}
}

func TestDropNA(t *testing.T) {
	t.Parallel()
	valid := NewBitmap(4, true)
	valid.Set(1, false)
	valid.Set(3, false)
	col := NewChunkedArray(TypeInt64, &Int64Array{Values: []int64{1, 2, 3, 4}, Valid: valid})
	table, err := NewTable(Schema{Fields: []Field{{Name: "a", Type: TypeInt64, Nullable: true}}}, []*ChunkedArray{col})
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}
	out, err := DropNA(table)
	if err != nil {
		t.Fatalf("DropNA() error = %v", err)
	}
	if out.NumRows() != 2 {
		t.Fatalf("NumRows() = %d, want 2", out.NumRows())
	}
	for i := 0; i < out.NumRows(); i++ {
		if out.Column(0).IsNull(i) {
			t.Errorf("row %d should not be null after DropNA", i)
		}
	}
}

func TestDropNAIdempotent(t *testing.T) {
	t.Parallel()
	valid := NewBitmap(3, true)
	valid.Set(1, false)
	col := NewChunkedArray(TypeInt64, &Int64Array{Values: []int64{1, 2, 3}, Valid: valid})
	table, err := NewTable(Schema{Fields: []Field{{Name: "a", Type: TypeInt64, Nullable: true}}}, []*ChunkedArray{col})
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}
	once, err := DropNA(table)
	if err != nil {
		t.Fatalf("DropNA() error = %v", err)
	}
	twice, err := DropNA(once)
	if err != nil {
		t.Fatalf("DropNA(DropNA()) error = %v", err)
	}
	if once.NumRows() != twice.NumRows() {
		t.Errorf("DropNA is not idempotent: %d vs %d rows", once.NumRows(), twice.NumRows())
	}
}

func TestRowAt(t *testing.T) {
	t.Parallel()
	valid := NewBitmap(2, true)
	valid.Set(1, false)
	col := NewChunkedArray(TypeInt64, &Int64Array{Values: []int64{7, 0}, Valid: valid})
	table, err := NewTable(Schema{Fields: []Field{{Name: "a", Type: TypeInt64, Nullable: true}}}, []*ChunkedArray{col})
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}
	row0, err := RowAt(table, 0)
	if err != nil {
		t.Fatalf("RowAt(0) error = %v", err)
	}
	if row0[0] != "7" {
		t.Errorf("RowAt(0) = %v, want [7]", row0)
	}
	row1, err := RowAt(table, 1)
	if err != nil {
		t.Fatalf("RowAt(1) error = %v", err)
	}
	if row1[0] != nullSentinel {
		t.Errorf("RowAt(1) = %v, want null sentinel", row1)
	}
	if _, err := RowAt(table, 2); err == nil {
		t.Fatal("expected ErrRowIndexOutOfRange for out-of-range index")
	}
}

package colexpr

import "testing"

func TestParseExpressionLiterals(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		doc      string
		wantKind exprKind
		wantType LogicalType
	}{
		{"integer literal", `5`, exprLiteral, TypeInt64},
		{"double literal", `5.5`, exprLiteral, TypeDouble},
		{"string literal", `"hello"`, exprLiteral, TypeString},
		{"negative integer", `-3`, exprLiteral, TypeInt64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e, err := ParseExpression([]byte(tt.doc))
			if err != nil {
				t.Fatalf("ParseExpression(%s) error = %v", tt.doc, err)
			}
			if e.kind != tt.wantKind || e.litType != tt.wantType {
				t.Errorf("ParseExpression(%s) = kind %d type %s, want kind %d type %s", tt.doc, e.kind, e.litType, tt.wantKind, tt.wantType)
			}
		})
	}
}

func TestParseExpressionColumnRef(t *testing.T) {
	t.Parallel()
	e, err := ParseExpression([]byte(`{"column":"a"}`))
	if err != nil {
		t.Fatalf("ParseExpression() error = %v", err)
	}
	if e.kind != exprColumnRef || e.colName != "a" {
		t.Errorf("got kind=%d colName=%q, want columnRef a", e.kind, e.colName)
	}
}

func TestParseExpressionOperation(t *testing.T) {
	t.Parallel()
	e, err := ParseExpression([]byte(`{"operation":"plus","arguments":[{"operation":"times","arguments":[{"column":"a"},2]},4]}`))
	if err != nil {
		t.Fatalf("ParseExpression() error = %v", err)
	}
	if e.kind != exprOperation || e.op != OpPlus {
		t.Errorf("outer node = kind %d op %q, want operation plus", e.kind, e.op)
	}
	if len(e.children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(e.children))
	}
	inner := e.children[0]
	if inner.kind != exprOperation || inner.op != OpTimes {
		t.Errorf("inner node = kind %d op %q, want operation times", inner.kind, inner.op)
	}
}

func TestParseExpressionShapeErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
	}{
		{"or with one argument", `{"boolean":"or","arguments":[true]}`},
		{"not with two arguments", `{"boolean":"not","arguments":[true,false]}`},
		{"unknown operation", `{"operation":"frobnicate","arguments":[1,2]}`},
		{"missing arguments key", `{"operation":"plus"}`},
		{"wrong arity for plus", `{"operation":"plus","arguments":[1,2,3]}`},
		{"object with no recognized key", `{"foo":"bar"}`},
		{"malformed json", `{"operation":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseExpression([]byte(tt.doc))
			if err == nil {
				t.Fatalf("ParseExpression(%s) expected an error, got none", tt.doc)
			}
		})
	}
}

func TestParseExpressionTypeErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
	}{
		{"compare string literal to numeric literal", `{"predicate":"eq","arguments":["baz",8]}`},
		{"matches with non-literal pattern", `{"predicate":"matches","arguments":[{"column":"c"},{"column":"p"}]}`},
		{"and over non-boolean operand", `{"boolean":"and","arguments":[{"column":"a"},true]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseExpression([]byte(tt.doc))
			if err == nil {
				t.Fatalf("ParseExpression(%s) expected a TypeError, got none", tt.doc)
			}
			if _, ok := err.(*TypeError); !ok {
				t.Fatalf("ParseExpression(%s) error type = %T, want *TypeError", tt.doc, err)
			}
		})
	}
}

func TestParseExpressionAcceptsUnresolvedColumnRefInComparison(t *testing.T) {
	t.Parallel()
	// Column categories aren't known until evaluation time, so a
	// column-to-column comparison must parse even though both sides
	// could turn out to be incompatible.
	_, err := ParseExpression([]byte(`{"predicate":"eq","arguments":[{"column":"a"},{"column":"b"}]}`))
	if err != nil {
		t.Fatalf("ParseExpression() error = %v", err)
	}
}

// Package colexpr is an in-memory columnar dataframe engine.
//
// Tabular data loaded from CSV (or, opaquely, from the columnar-binary
// format handled by Load/Save) is materialized into a Table: an ordered
// Schema of Fields paired with one ChunkedArray per field. A small JSON
// expression DSL is parsed into an Expression tree and evaluated over a
// Table to either produce a new column (Each) or select a subset of rows
// (Filter).
//
// # Basic usage
//
//	raw, err := colexpr.ParseCSVBuffer([]byte("a,b\n1,2.5\n3,\n"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	table, err := colexpr.CSVToTable(raw, colexpr.TakeFirstRowAsHeaders, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	expr, err := colexpr.ParseExpression([]byte(`{"predicate":"gt","arguments":[{"column":"a"},0]}`))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	filtered, err := colexpr.Filter(table, expr)
//
// # Pipeline
//
// bytes -> ParseCSVBuffer/ParseCSVFile -> RawCSV -> CSVToTable -> Table ->
// (ParseExpression of a JSON document) -> Expression -> Each/Mask/Filter ->
// Column or Table -> ApplyMask/DropNA.
//
// # Out of scope
//
// The columnar-binary file format handled by Load and Save is treated as
// opaque: nothing outside those two functions depends on its on-disk
// layout. Query optimization, multi-table joins, SQL, streaming evaluation
// over disk-resident data, distributed execution, and user-defined
// functions beyond the built-in operator set are not implemented.
package colexpr

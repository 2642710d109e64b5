package colexpr

import (
	"io"
	"strings"
)

// WriteHeaderPolicy controls whether WriteCSV emits a header line before
// the data rows.
type WriteHeaderPolicy int

const (
	HeaderLineGenerate WriteHeaderPolicy = iota
	HeaderLineSkip
)

// QuotePolicy controls when WriteCSV wraps a field in double quotes.
type QuotePolicy int

const (
	// QuoteWhenNeeded quotes a field only if it contains ',', '"', '\r',
	// or '\n'.
	QuoteWhenNeeded QuotePolicy = iota
	// QuoteAllFields quotes every field unconditionally.
	QuoteAllFields
)

// WriteOptions configures WriteCSV.
type WriteOptions struct {
	Header WriteHeaderPolicy
	Quote  QuotePolicy
}

// WriteCSV renders t back to CSV text, using nullSentinel for null cells.
func WriteCSV(w io.Writer, t *Table, opts WriteOptions) error {
	bw := &bufWriter{w: w}
	if opts.Header == HeaderLineGenerate {
		names := make([]string, t.NumCols())
		for i, f := range t.Schema().Fields {
			names[i] = f.Name
		}
		writeRecord(bw, names, opts.Quote)
	}
	for row := 0; row < t.NumRows(); row++ {
		fields, err := RowAt(t, row)
		if err != nil {
			return err
		}
		writeRecord(bw, fields, opts.Quote)
	}
	return bw.err
}

type bufWriter struct {
	w   io.Writer
	err error
}

func (b *bufWriter) writeString(s string) {
	if b.err != nil {
		return
	}
	_, b.err = io.WriteString(b.w, s)
}

func writeRecord(bw *bufWriter, fields []string, quote QuotePolicy) {
	for i, f := range fields {
		if i > 0 {
			bw.writeString(",")
		}
		bw.writeString(quoteField(f, quote))
	}
	bw.writeString("\n")
}

func quoteField(field string, quote QuotePolicy) string {
	if quote == QuoteAllFields || needsQuoting(field) {
		return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
	}
	return field
}

func needsQuoting(field string) bool {
	return strings.ContainsAny(field, ",\"\r\n")
}

package colexpr

import (
	"fmt"
	"io"
	"os"
)

// ParseCSVFile reads path, transparently decompressing it if its extension
// marks it as gzip/bzip2/xz/zstd-compressed CSV, and scans the resulting
// bytes exactly as ParseCSVBuffer would. Open and read failures surface as
// IOError. opts are forwarded to ParseCSVBuffer unchanged.
func ParseCSVFile(path string, opts ...Option) (*RawCSV, error) {
	f, err := os.Open(path) //nolint:gosec // path is caller-supplied by design
	if err != nil {
		return nil, &IOError{Path: path, Cause: err}
	}
	defer f.Close()

	handler := handlerForPath(path)
	reader, cleanup, err := handler.CreateReader(f)
	if err != nil {
		return nil, &IOError{Path: path, Cause: err}
	}
	defer cleanup()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, &IOError{Path: path, Cause: fmt.Errorf("failed to read %s: %w", path, err)}
	}
	return ParseCSVBuffer(data, opts...)
}

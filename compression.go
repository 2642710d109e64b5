package colexpr

import (
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/nao1215/fileparser"
	"github.com/ulikunitz/xz"
)

// compressionHandler wraps a reader with the decompression filter needed
// to recover the underlying CSV bytes.
type compressionHandler interface {
	CreateReader(r io.Reader) (io.Reader, func() error, error)
}

type gzipHandler struct{}

func (gzipHandler) CreateReader(r io.Reader) (io.Reader, func() error, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	return gz, gz.Close, nil
}

type bzip2Handler struct{}

func (bzip2Handler) CreateReader(r io.Reader) (io.Reader, func() error, error) {
	return bzip2.NewReader(r), func() error { return nil }, nil
}

type xzHandler struct{}

func (xzHandler) CreateReader(r io.Reader) (io.Reader, func() error, error) {
	xr, err := xz.NewReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create xz reader: %w", err)
	}
	return xr, func() error { return nil }, nil
}

type zstdHandler struct{}

func (zstdHandler) CreateReader(r io.Reader) (io.Reader, func() error, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create zstd reader: %w", err)
	}
	return dec, func() error { dec.Close(); return nil }, nil
}

type passthroughHandler struct{}

func (passthroughHandler) CreateReader(r io.Reader) (io.Reader, func() error, error) {
	return r, func() error { return nil }, nil
}

// handlerForPath picks a compressionHandler from the path's extension,
// using fileparser's own sniffing so this module recognizes exactly the
// same compressed-CSV variants fileparser does.
func handlerForPath(path string) compressionHandler {
	ft := fileparser.DetectFileType(path)
	if !fileparser.IsCompressed(ft) {
		return passthroughHandler{}
	}
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".gz"):
		return gzipHandler{}
	case strings.HasSuffix(lower, ".bz2"):
		return bzip2Handler{}
	case strings.HasSuffix(lower, ".xz"):
		return xzHandler{}
	case strings.HasSuffix(lower, ".zst"):
		return zstdHandler{}
	default:
		return passthroughHandler{}
	}
}

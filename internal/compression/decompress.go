package compression

import (
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"os"

	"github.com/ulikunitz/xz"

	"github.com/galister/freedesktop/internal/security"
)

// unpack extracts every archive entry into root and returns the number
// of regular files written.
func unpack(format Format, data []byte, root *os.Root, budget *security.LimitedReader) (int, error) {
	if format == FormatZip {
		return extractZip(data, root, budget)
	}

	r, err := decompressor(format, data)
	if err != nil {
		return 0, err
	}
	defer r.Close()

	return extractTar(r, root, budget)
}

// decompressor returns a reader over the uncompressed tar stream.
func decompressor(format Format, data []byte) (io.ReadCloser, error) {
	src := bytes.NewReader(data)

	switch format {
	case FormatTarGz:
		gzr, err := gzip.NewReader(src)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		return gzr, nil
	case FormatTarXz:
		xzr, err := xz.NewReader(src)
		if err != nil {
			return nil, fmt.Errorf("failed to create xz reader: %w", err)
		}
		return io.NopCloser(xzr), nil
	case FormatTarBz2:
		return io.NopCloser(bzip2.NewReader(src)), nil
	case FormatTar:
		return io.NopCloser(src), nil
	default:
		return nil, fmt.Errorf("unsupported archive format: %s", format)
	}
}

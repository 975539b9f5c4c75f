// Package compression detects and decompresses gzip, bzip2 and xz streams.
package compression

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/marianadeem755/VisionChroma-pro/internal/security"
)

// Format is a compression format.
type Format string

// Supported formats.
const (
	FormatNone  Format = "none"
	FormatGzip  Format = "gzip"
	FormatBzip2 Format = "bzip2"
	FormatXz    Format = "xz"
)

var magic = []struct {
	format Format
	prefix []byte
}{
	{FormatGzip, []byte{0x1f, 0x8b}},
	{FormatBzip2, []byte("BZh")},
	{FormatXz, []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}},
}

// FormatFromName detects the format from a file extension.
func FormatFromName(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz", ".gzip":
		return FormatGzip
	case ".bz2":
		return FormatBzip2
	case ".xz":
		return FormatXz
	}
	return FormatNone
}

// TrimExt removes a compression extension, so "page.json.gz" becomes
// "page.json".
func TrimExt(name string) string {
	if FormatFromName(name) == FormatNone {
		return name
	}
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// FormatFromHeader detects the format from the leading bytes of a stream.
func FormatFromHeader(header []byte) Format {
	for _, m := range magic {
		if bytes.HasPrefix(header, m.prefix) {
			return m.format
		}
	}
	return FormatNone
}

// NewReader returns a reader that decompresses r. Magic bytes take
// precedence over the name's extension, so a misnamed file still reads.
func NewReader(r io.Reader, name string) (io.ReadCloser, Format, error) {
	br := bufio.NewReader(r)
	header, _ := br.Peek(6)

	format := FormatFromHeader(header)
	if format == FormatNone {
		if ext := FormatFromName(name); ext != FormatNone {
			return nil, ext, fmt.Errorf("%s has a %s extension but is not %s data", name, ext, ext)
		}
	}

	switch format {
	case FormatGzip:
		gzr, err := gzip.NewReader(br)
		if err != nil {
			return nil, format, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		return gzr, format, nil
	case FormatBzip2:
		return io.NopCloser(bzip2.NewReader(br)), format, nil
	case FormatXz:
		xzr, err := xz.NewReader(br)
		if err != nil {
			return nil, format, fmt.Errorf("failed to create xz reader: %w", err)
		}
		return io.NopCloser(xzr), format, nil
	}
	return io.NopCloser(br), FormatNone, nil
}

// ReadAll decompresses r completely. maxBytes bounds the decompressed size
// to guard against decompression bombs.
func ReadAll(r io.Reader, name string, maxBytes int64) ([]byte, Format, error) {
	rc, format, err := NewReader(r, name)
	if err != nil {
		return nil, format, err
	}
	defer rc.Close()

	data, err := security.ReadAll(rc, maxBytes)
	if err != nil {
		return nil, format, fmt.Errorf("failed to decompress %s: %w", name, err)
	}
	return data, format, nil
}

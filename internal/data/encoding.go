package data

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var ErrUnsupportedEncoding = errors.New("unsupported text encoding")

// DefaultEncoding maps every byte to a code point, so accented product
// descriptions never fail to decode.
const DefaultEncoding = "iso-8859-1"

func lookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "iso-8859-1", "iso8859-1", "latin1", "latin-1":
		return charmap.ISO8859_1, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	case "utf-8", "utf8":
		// Strips a leading BOM if present.
		return unicode.UTF8BOM, nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedEncoding, "%q", name)
	}
}

// decodingReader wraps r so it yields UTF-8.
func decodingReader(r io.Reader, name string) (io.Reader, error) {
	enc, err := lookupEncoding(name)
	if err != nil {
		return nil, err
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}

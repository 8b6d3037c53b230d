package digest

import (
	"fmt"
	"strings"

	"github.com/qdm12/vtoctl/internal/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

const (
	Latin1 = "latin-1"
	UTF8   = "utf-8"
)

// Encoding returns the byte encoding for the given name. Latin-1 matches
// how the device firmware hashes extended characters. Names are matched
// case insensitively.
func Encoding(name string) (enc encoding.Encoding, err error) {
	switch strings.ToLower(name) {
	case Latin1, "latin1", "iso-8859-1":
		return charmap.ISO8859_1, nil
	case UTF8, "utf8":
		return unicode.UTF8, nil
	default:
		return nil, fmt.Errorf("%w: %q must be one of %s or %s",
			errors.ErrEncodingUnknown, name, Latin1, UTF8)
	}
}

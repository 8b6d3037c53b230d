// Package digest computes the double MD5 digest sent by the device
// login in place of the plaintext password.
package digest

import (
	"crypto/md5" //nolint:gosec
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/qdm12/vtoctl/internal/errors"
	"golang.org/x/text/encoding"
)

// Derive returns the uppercase hexadecimal digest:
// MD5(username:random:MD5(username:realm:password)), where both MD5
// hashes are uppercased and every string is encoded with enc before
// hashing.
func Derive(username, password, realm, random string,
	enc encoding.Encoding) (digest string, err error) {
	first, err := hashUpper(username+":"+realm+":"+password, enc)
	if err != nil {
		return "", err
	}
	return hashUpper(username+":"+random+":"+first, enc)
}

func hashUpper(s string, enc encoding.Encoding) (hash string, err error) {
	encoded, err := enc.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return "", fmt.Errorf("%w: %w", errors.ErrEncodeCredentials, err)
	}
	sum := md5.Sum(encoded) //nolint:gosec
	return strings.ToUpper(hex.EncodeToString(sum[:])), nil
}

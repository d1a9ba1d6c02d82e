package attendance

import (
	"crypto/rand"
	"encoding/base32"
	"strings"

	"github.com/pkg/errors"
)

var readRandFunc = rand.Read // mockable

var b32 = base32.StdEncoding.WithPadding(base32.NoPadding)

// MakeToken returns an opaque 26-character token. Randomness comes from
// crypto/rand so tokens are not guessable from prior ones, and the lowercase
// base32 alphabet keeps the value URL-safe without further encoding.
func MakeToken() (string, error) {
	var buf [16]byte
	if _, err := readRandFunc(buf[:]); err != nil {
		return "", errors.Wrap(err, "reading randomness")
	}
	return strings.ToLower(b32.EncodeToString(buf[:])), nil
}

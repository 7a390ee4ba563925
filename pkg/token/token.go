// Package token issues the single-use identifiers embedded in form links.
package token

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
)

// DefaultBytes is the amount of random source material per token (256 bits).
const DefaultBytes = 32

// Issuer generates URL-safe random tokens.
type Issuer struct {
	reader io.Reader
	size   int
}

// NewIssuer returns an issuer reading from crypto/rand.
func NewIssuer() *Issuer {
	return &Issuer{reader: rand.Reader, size: DefaultBytes}
}

// NewIssuerFromReader is used by tests to control the random source.
func NewIssuerFromReader(r io.Reader, size int) *Issuer {
	if size < DefaultBytes {
		size = DefaultBytes
	}
	return &Issuer{reader: r, size: size}
}

// Issue returns a new unpadded base64url token.
func (i *Issuer) Issue() (string, error) {
	buf := make([]byte, i.size)
	if _, err := io.ReadFull(i.reader, buf); err != nil {
		return "", fmt.Errorf("read random token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

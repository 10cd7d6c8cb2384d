// Package sharetoken mints opaque share-link tokens.
package sharetoken

import (
	"crypto/rand"
	"encoding/base64"
)

// TokenBytes is the entropy per token. 18 bytes encodes to 24 URL-safe
// characters, well past the 10-character floor for guessing resistance.
const TokenBytes = 18

// New returns a fresh high-entropy URL-safe token. Tokens are never
// reused: disable-then-enable always mints a new one.
func New() string {
	b := make([]byte, TokenBytes)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand never fails on supported platforms
		panic("sharetoken: " + err.Error())
	}
	return base64.RawURLEncoding.EncodeToString(b)
}

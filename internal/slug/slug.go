// Package slug generates the short, unguessable public identifiers under
// which gift pages are shared. Slugs are drawn from a space large enough
// that collisions are negligible for any realistic record count; the store's
// unique index remains the authority, and callers retry allocation when an
// insert reports a conflict.
package slug

import (
	"crypto/rand"
	"fmt"
)

// alphabet is the URL-safe charset used for slugs. Lowercase letters and
// digits keep links copy-paste friendly and case-insensitive-filesystem safe.
const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// DefaultLength yields ~108 bits of entropy (36^21), comfortably above the
// threshold where birthday collisions matter.
const DefaultLength = 21

// Generator produces random slugs of a fixed length.
// The zero value is not usable; construct with New.
type Generator struct {
	length int
}

// New returns a Generator producing slugs of the given length.
// Lengths below 8 are coerced to DefaultLength: anything shorter would
// undermine the unguessability the slug exists to provide.
func New(length int) *Generator {
	if length < 8 {
		length = DefaultLength
	}
	return &Generator{length: length}
}

// Length reports the configured slug length.
func (g *Generator) Length() int { return g.length }

// Allocate returns a fresh random slug. It is safe for concurrent use and
// may be called repeatedly; every call draws independent randomness, so a
// caller that hits a uniqueness conflict simply allocates again.
func (g *Generator) Allocate() (string, error) {
	buf := make([]byte, g.length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("slug: read random bytes: %w", err)
	}
	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}
	return string(buf), nil
}

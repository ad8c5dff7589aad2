package auth

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/shiftwise/Shiftwise_Backend/internal/constants"
)

// CredentialGenerator produces the short-lived temporary passwords handed to
// admins on reset approval. The randomness source is injected so tests can
// supply a deterministic reader; production code uses crypto/rand.
type CredentialGenerator struct {
	source io.Reader
	length int
}

// NewCredentialGenerator creates a generator drawing from the given source.
// A nil source falls back to crypto/rand, and a non-positive length falls
// back to the default credential length.
func NewCredentialGenerator(source io.Reader, length int) *CredentialGenerator {
	if source == nil {
		source = rand.Reader
	}
	if length <= 0 {
		length = constants.TempCredentialLength
	}
	return &CredentialGenerator{
		source: source,
		length: length,
	}
}

// DefaultCredentialGenerator returns a generator backed by crypto/rand with
// the default length.
func DefaultCredentialGenerator() *CredentialGenerator {
	return NewCredentialGenerator(rand.Reader, constants.TempCredentialLength)
}

// Generate produces a credential of the configured length over the uppercase
// alphanumeric alphabet. Bytes outside the unbiased range are discarded so
// every character is equally likely.
func (g *CredentialGenerator) Generate() (string, error) {
	alphabet := constants.TempCredentialAlphabet
	// Largest multiple of len(alphabet) that fits in a byte; values at or
	// above it would skew the distribution if taken modulo the alphabet.
	limit := byte(256 - 256%len(alphabet))

	out := make([]byte, 0, g.length)
	buf := make([]byte, 1)
	for len(out) < g.length {
		if _, err := io.ReadFull(g.source, buf); err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}
		if buf[0] >= limit {
			continue
		}
		out = append(out, alphabet[int(buf[0])%len(alphabet)])
	}

	return string(out), nil
}

// Package codes generates the verification codes recipients present at
// pickup. Codes come from crypto/rand so they cannot be guessed from
// delivery ids or timing.
package codes

import (
	"crypto/rand"
)

// codeAlphabet omits easily confused characters (0/O, 1/I/L).
const codeAlphabet = "23456789ABCDEFGHJKMNPQRSTUVWXYZ"

// DefaultCodeLength balances guessing resistance against being read out
// over the phone.
const DefaultCodeLength = 8

// Generator produces random verification codes.
type Generator struct {
	length int
}

// NewGenerator creates a generator producing codes of the given length.
// Non-positive lengths fall back to DefaultCodeLength.
func NewGenerator(length int) *Generator {
	if length <= 0 {
		length = DefaultCodeLength
	}
	return &Generator{length: length}
}

// Generate returns a new random verification code.
func (g *Generator) Generate() (string, error) {
	buf := make([]byte, g.length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	code := make([]byte, g.length)
	for i, b := range buf {
		code[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}

	return string(code), nil
}

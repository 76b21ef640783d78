package shortener

import (
	"github.com/jaevor/go-nanoid"
)

// Alphabet is the 58-symbol code alphabet: mixed-case letters and digits
// minus the visually ambiguous 0/O and 1/l/I.
const Alphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// DefaultCodeLength is the generated code length when none is configured.
const DefaultCodeLength = 7

// Generator produces candidate codes from Alphabet.
type Generator func() Code

// NewGenerator creates a crypto/rand-backed code generator producing codes
// of the given length. Length must be between 2 and 255.
func NewGenerator(length int) (Generator, error) {
	gen, err := nanoid.CustomASCII(Alphabet, length)
	if err != nil {
		return nil, err
	}

	return func() Code { return Code(gen()) }, nil
}

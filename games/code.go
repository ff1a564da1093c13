package games

import (
	"crypto/rand"
	"strings"
)

const (
	codeLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// CodeLength is the number of characters in a room code.
	CodeLength = 4
)

// NewCode returns a random room code drawn from [A-Z0-9]. Uniqueness is
// up to the caller; the store rejects duplicates.
func NewCode() string {
	const max = byte(255 - (256 % len(codeLetters)))

	out := make([]byte, 0, CodeLength)
	buf := make([]byte, CodeLength*2)

	for len(out) < CodeLength {
		if _, err := rand.Read(buf); err != nil {
			panic("crypto/rand failure: " + err.Error())
		}

		for _, b := range buf {
			if b > max {
				continue
			}
			out = append(out, codeLetters[int(b)%len(codeLetters)])
			if len(out) == CodeLength {
				break
			}
		}
	}

	return string(out)
}

// NormalizeCode upper-cases and trims a user-supplied room code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidCode reports whether code is CodeLength characters from [A-Z0-9]
// once normalized.
func ValidCode(code string) bool {
	code = NormalizeCode(code)
	if len(code) != CodeLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		if strings.IndexByte(codeLetters, code[i]) < 0 {
			return false
		}
	}
	return true
}

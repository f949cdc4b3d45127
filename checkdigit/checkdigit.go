// Package checkdigit generates and validates check digits for
// base64url-encoded identifiers.
//
// The algorithm is a weighted modulus-64 checksum over the base64url
// alphabet (RFC 4648, Table 2, without padding), in the style of
// org.apache.commons.validator.routines.checkdigit.ModulusCheckDigit.
// A single check digit appended to a code detects single-character
// transcription errors and most transpositions.
package checkdigit

import (
	"errors"
	"fmt"
	"strings"
)

// Alphabet is the base64url alphabet (without padding) from RFC 4648,
// Table 2. A character's value is its zero-based index in this string.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

const alphabetLength = len(Alphabet)

// Sentinel errors returned by the checkdigit functions. Use errors.Is
// to test for them; wrapped messages carry the offending input.
var (
	// ErrEmptyCode indicates that no code was provided.
	ErrEmptyCode = errors.New("no code provided")

	// ErrInvalidCharacter indicates a character outside the base64url alphabet.
	ErrInvalidCharacter = errors.New("invalid base64url character")

	// ErrInvalidCode indicates a degenerate code whose weighted sum is zero.
	ErrInvalidCode = errors.New("invalid code")
)

// IsValid reports whether a code that includes its check digit is valid.
// It never returns an error: empty input, characters outside the alphabet,
// and degenerate codes all report false.
func IsValid(code string) bool {
	if len(code) == 0 {
		return false
	}

	modulus, err := CalculateModulus(code, true)
	if err != nil {
		return false
	}

	return modulus == 0
}

// CalculateCheckDigit computes the check digit for a code that does not
// yet include one.
func CalculateCheckDigit(code string) (byte, error) {
	if len(code) == 0 {
		return 0, ErrEmptyCode
	}

	modulus, err := CalculateModulus(code, false)
	if err != nil {
		return 0, err
	}

	charValue := (alphabetLength - modulus) % alphabetLength
	return Alphabet[charValue], nil
}

// CalculateModulus computes the weighted modulus of a code. Each character
// is weighted by its right-to-left position, counted from 1 at the
// rightmost character of the code including its check digit; when
// includesCheckDigit is false the positions are shifted by one to leave
// room for it.
//
// A weighted sum of exactly zero only occurs for an all-'A' code and is
// rejected with ErrInvalidCode: such a code would validate against any
// check digit position, so it cannot be protected by this scheme.
func CalculateModulus(code string, includesCheckDigit bool) (int, error) {
	length := len(code)
	if !includesCheckDigit {
		length++
	}

	total := 0
	for i := 0; i < len(code); i++ {
		rightPos := length - i
		charValue, err := toValue(code[i])
		if err != nil {
			return 0, err
		}
		total += weightedValue(charValue, rightPos)
	}

	if total == 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCode, code)
	}

	return total % alphabetLength, nil
}

// weightedValue weights a character value by its right-to-left position.
func weightedValue(charValue, rightPos int) int {
	return charValue * rightPos
}

// toValue converts an alphabet character to its integer value.
func toValue(char byte) (int, error) {
	value := strings.IndexByte(Alphabet, char)
	if value == -1 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCharacter, string(char))
	}
	return value, nil
}

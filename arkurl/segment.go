package arkurl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dasch-swiss/ark-resolver/checkdigit"
)

// Errors returned by the segment escaper and the parser.
var (
	// ErrEmptySegment indicates an empty resource or value segment.
	ErrEmptySegment = errors.New("empty identifier segment")

	// ErrInvalidSegment indicates a segment that failed check digit
	// validation after unescaping.
	ErrInvalidSegment = errors.New("invalid identifier segment")

	// ErrInvalidARKID indicates a string that matches neither the
	// version 1 nor the version 0 grammar.
	ErrInvalidARKID = errors.New("invalid ARK ID")
)

// AddCheckDigitAndEscape appends a check digit to a base64url segment and
// escapes it for embedding in an ARK identifier path. Hyphens are escaped
// as '=' because '-' can be inserted or dropped in ARK URLs and is
// already meaningful in the legacy grammar.
func AddCheckDigitAndEscape(segment string) (string, error) {
	checkDigit, err := checkdigit.CalculateCheckDigit(segment)
	if err != nil {
		return "", err
	}

	return strings.ReplaceAll(segment+string(checkDigit), "-", "="), nil
}

// UnescapeAndValidate reverses AddCheckDigitAndEscape: it unescapes '='
// back to '-', validates the check digit, and returns the segment without
// it. The arkID parameter is only used for error context.
func UnescapeAndValidate(arkID, escaped string) (string, error) {
	if escaped == "" {
		return "", fmt.Errorf("%w: %s", ErrEmptySegment, arkID)
	}

	unescaped := strings.ReplaceAll(escaped, "=", "-")
	if unescaped == "" {
		return "", fmt.Errorf("%w: %s", ErrEmptySegment, arkID)
	}

	if !checkdigit.IsValid(unescaped) {
		return "", fmt.Errorf("%w: %s", ErrInvalidSegment, arkID)
	}

	return unescaped[:len(unescaped)-1], nil
}

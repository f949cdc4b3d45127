package arkurl

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCheckDigitAndEscape(t *testing.T) {
	escaped, err := AddCheckDigitAndEscape("cmfk1DMHRBiR4-_6HXpEFA")
	require.NoError(t, err)
	assert.Equal(t, "cmfk1DMHRBiR4=_6HXpEFAn", escaped)

	escaped, err = AddCheckDigitAndEscape("pLlW4ODASumZfZFbJdpw1g")
	require.NoError(t, err)
	assert.Equal(t, "pLlW4ODASumZfZFbJdpw1gu", escaped)

	_, err = AddCheckDigitAndEscape("")
	assert.Error(t, err)
}

func TestUnescapeAndValidate(t *testing.T) {
	segment, err := UnescapeAndValidate("ark:/test", "cmfk1DMHRBiR4=_6HXpEFAn")
	require.NoError(t, err)
	assert.Equal(t, "cmfk1DMHRBiR4-_6HXpEFA", segment)

	t.Run("empty segment", func(t *testing.T) {
		_, err := UnescapeAndValidate("ark:/test", "")
		assert.ErrorIs(t, err, ErrEmptySegment)
	})

	t.Run("bad check digit", func(t *testing.T) {
		_, err := UnescapeAndValidate("ark:/test", "cmfk1DMHRBiR4=_6HXpEFAm")
		assert.ErrorIs(t, err, ErrInvalidSegment)
	})

	t.Run("corrupted segment", func(t *testing.T) {
		_, err := UnescapeAndValidate("ark:/test", "cmfk1DMHRBir4=_6HXpEFAn")
		assert.ErrorIs(t, err, ErrInvalidSegment)
	})
}

// TestSegmentRoundTrip checks the escaper law: unescaping an escaped
// segment recovers the original for any non-empty alphabet string.
func TestSegmentRoundTrip(t *testing.T) {
	segments := []string{
		"cmfk1DMHRBiR4-_6HXpEFA",
		"pLlW4ODASumZfZFbJdpw1g",
		"SQkTPdHdTzq_gqbwj6QR-A",
		"-SSbnPK3Q7WWxzBT1UPpRg",
		"0_sWRg5jT3S0PLxakX9ffg",
		"751e0b8a",
		"B",
		"----",
		"_-_-",
	}

	for _, segment := range segments {
		escaped, err := AddCheckDigitAndEscape(segment)
		require.NoError(t, err, segment)
		assert.NotContains(t, escaped, "-", "escaping must remove all hyphens")

		unescaped, err := UnescapeAndValidate("ark:/test", escaped)
		require.NoError(t, err, segment)
		assert.Equal(t, segment, unescaped)
	}
}

func TestSegmentErrorsAreTyped(t *testing.T) {
	_, err := UnescapeAndValidate("ark:/00000/1/0001/x", "")
	var target error = ErrEmptySegment
	assert.True(t, errors.Is(err, target))
	assert.Contains(t, err.Error(), "ark:/00000/1/0001/x")
}

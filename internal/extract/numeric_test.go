package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchIDNumber(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"spaced groups", "Your Aadhaar No.\n2345 6789 0123", "234567890123"},
		{"contiguous digits", "id 234567890123 end", "234567890123"},
		{"first match wins", "1111 2222 3333\n4444 5555 6666", "111122223333"},
		{"embedded in longer run", "12345678901234567890", ""},
		{"too short", "1234 5678", ""},
		{"absent", "no digits here", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchIDNumber(tt.text))
		})
	}
}

func TestMatchVIDNumber(t *testing.T) {
	t.Run("labeled group preferred", func(t *testing.T) {
		text := "1111 2222 3333 4444\nVID : 9876 5432 1098 7654"
		assert.Equal(t, "9876543210987654", MatchVIDNumber(text, ""))
	})

	t.Run("fallback standalone group", func(t *testing.T) {
		text := "9876 5432 1098 7654"
		assert.Equal(t, "9876543210987654", MatchVIDNumber(text, ""))
	})

	t.Run("rejects shared run with id number", func(t *testing.T) {
		// The id matcher already consumed the leading 12 digits of this
		// spaced run; counting the same digits again would be wrong.
		text := "1111 2222 3333 4444"
		assert.Equal(t, "", MatchVIDNumber(text, "111122223333"))
	})

	t.Run("twenty digit run never accepted", func(t *testing.T) {
		assert.Equal(t, "", MatchVIDNumber("12345678901234567890", ""))
	})

	t.Run("absent", func(t *testing.T) {
		assert.Equal(t, "", MatchVIDNumber("2345 6789 0123", ""))
	})
}

func TestMatchPostalCode(t *testing.T) {
	t.Run("prefers locality anchored line", func(t *testing.T) {
		text := "ref 999999\nDistrict Bangalore 560001"
		assert.Equal(t, "560001", MatchPostalCode(text))
	})

	t.Run("bare first standalone group", func(t *testing.T) {
		assert.Equal(t, "560001", MatchPostalCode("something 560001 other"))
	})

	t.Run("rejects longer runs", func(t *testing.T) {
		assert.Equal(t, "", MatchPostalCode("2345678"))
	})
}

func TestMatchDate(t *testing.T) {
	t.Run("prefers dob labeled line", func(t *testing.T) {
		text := "Issue Date: 01/01/2020\nDOB: 23/09/1994"
		assert.Equal(t, "23/09/1994", MatchDate(text))
	})

	t.Run("devanagari label", func(t *testing.T) {
		text := "01/01/2020\nजन्म तिथि: 23-09-1994"
		assert.Equal(t, "23-09-1994", MatchDate(text))
	})

	t.Run("first date fallback", func(t *testing.T) {
		assert.Equal(t, "12/11/1987", MatchDate("x 12/11/1987 y 01/01/2000"))
	})

	t.Run("absent", func(t *testing.T) {
		assert.Equal(t, "", MatchDate("no date"))
	})
}

func TestNumericMatchersInvariants(t *testing.T) {
	// Whatever a matcher returns, non-empty output always satisfies the
	// exact digit-length invariant.
	inputs := []string{
		"1234 5678 9012",
		"12345678901234567890",
		"VID 1234123412341234",
		"999999 123456789012 12/12/2012",
		"1234 5678 9012 3456 7890",
		"",
	}
	for _, in := range inputs {
		if id := MatchIDNumber(in); id != "" {
			require.True(t, ValidIDNumber(id), "input %q gave id %q", in, id)
		}
		if vid := MatchVIDNumber(in, ""); vid != "" {
			require.True(t, ValidVIDNumber(vid), "input %q gave vid %q", in, vid)
		}
		if pc := MatchPostalCode(in); pc != "" {
			require.True(t, ValidPostalCode(pc), "input %q gave postal %q", in, pc)
		}
	}
}

func TestNumericMatchersIdempotent(t *testing.T) {
	text := "DOB: 23/09/1994\n2345 6789 0123\nVID: 9876 5432 1098 7654\nPIN Code 560001"
	assert.Equal(t, MatchIDNumber(text), MatchIDNumber(text))
	id := MatchIDNumber(text)
	assert.Equal(t, MatchVIDNumber(text, id), MatchVIDNumber(text, id))
	assert.Equal(t, MatchPostalCode(text), MatchPostalCode(text))
	assert.Equal(t, MatchDate(text), MatchDate(text))
}

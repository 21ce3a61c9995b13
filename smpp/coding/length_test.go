package coding

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zultys-gsm7/gsm7"
)

func TestSizerLen(t *testing.T) {
	cases := []struct {
		desc  string
		sizer Sizer
		input string
		want  int
	}{
		{desc: "gsm7 empty", sizer: GSM7Sizer, input: "", want: 0},
		{desc: "gsm7 one septet", sizer: GSM7Sizer, input: "a", want: 1},
		{desc: "gsm7 eight septets fit seven octets", sizer: GSM7Sizer, input: "abcdefgh", want: 7},
		{desc: "gsm7 extension counts twice", sizer: GSM7Sizer, input: "€€€€", want: 7},
		{desc: "gsm7 unmapped counts once", sizer: GSM7Sizer, input: "🦀", want: 1},
		{desc: "ucs2 bmp", sizer: UCS2Sizer, input: "héllo", want: 10},
		{desc: "ucs2 surrogate pair", sizer: UCS2Sizer, input: "🦀", want: 4},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.sizer.Len(tc.input))
		})
	}
}

func TestPackedLen(t *testing.T) {
	assert.Equal(t, 0, PackedLen(0))
	assert.Equal(t, 1, PackedLen(1))
	assert.Equal(t, 7, PackedLen(8))
	assert.Equal(t, 140, PackedLen(160))
}

func TestMeasure(t *testing.T) {
	size, err := Measure("Hello {world}")
	require.NoError(t, err)
	assert.Equal(t, Size{Septets: 15, PackedOctets: 14, UCS2Octets: 26, Compatible: true}, size)

	size, err = Measure("Hi 🦀")
	assert.True(t, errors.Is(err, gsm7.ErrUnsupportedCharacter))
	assert.Equal(t, Size{UCS2Octets: 10}, size)
}

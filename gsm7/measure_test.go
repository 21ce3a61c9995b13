package gsm7

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodedLen(t *testing.T) {
	cases := []struct {
		desc string
		text string
		want int
	}{
		{desc: "empty", text: "", want: 0},
		{desc: "ascii", text: "Hello", want: 5},
		{desc: "euro takes two bytes", text: "Hello €", want: 7},
		{desc: "extension only", text: "{[]}", want: 8},
		{desc: "greek", text: "ΔΦΓ", want: 3},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			n, err := EncodedLen(tc.text)
			require.NoError(t, err)
			assert.Equal(t, tc.want, n)

			encoded, err := Encode(tc.text)
			require.NoError(t, err)
			assert.Len(t, encoded, n)
		})
	}
}

func TestEncodedLenUnsupported(t *testing.T) {
	n, err := EncodedLen("ok 🦀")
	assert.Zero(t, n)
	var uerr *UnsupportedCharacterError
	require.True(t, errors.As(err, &uerr))
	assert.Equal(t, '🦀', uerr.Char)
	assert.Equal(t, 3, uerr.Offset)
}

func TestIsGSM7Compatible(t *testing.T) {
	assert.True(t, IsGSM7Compatible(""))
	assert.True(t, IsGSM7Compatible("Hello World!"))
	assert.True(t, IsGSM7Compatible("Hello {world} €!"))
	assert.False(t, IsGSM7Compatible("Hello 🦀 World"))
	assert.False(t, IsGSM7Compatible("tab\there"))
}

func TestSanitize(t *testing.T) {
	cases := []struct {
		desc        string
		text        string
		replacement rune
		want        string
	}{
		{desc: "compatible text unchanged", text: "Price: 5€ {ok}", replacement: '?', want: "Price: 5€ {ok}"},
		{desc: "emoji replaced", text: "Hi 🦀!", replacement: '?', want: "Hi ?!"},
		{desc: "unmapped replacement falls back to space", text: "a✓b", replacement: '✓', want: "a b"},
		{desc: "zero replacement", text: "a✓b", replacement: 0, want: "a b"},
		{desc: "invalid replacement", text: "a✓b", replacement: 0xD800, want: "a b"},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			got := Sanitize(tc.text, tc.replacement)
			assert.Equal(t, tc.want, got)
			assert.True(t, IsGSM7Compatible(got))
		})
	}
}

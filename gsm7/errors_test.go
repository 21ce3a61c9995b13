package gsm7

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	cases := []struct {
		desc string
		err  error
		is   error
		kind Kind
		msg  string
	}{
		{
			desc: "unsupported character",
			err:  unsupported('✓', 2),
			is:   ErrUnsupportedCharacter,
			kind: KindUnsupportedCharacter,
			msg:  "gsm7: character not supported in GSM 7-bit: '✓' (U+2713)",
		},
		{
			desc: "invalid escape sequence",
			err:  &InvalidEscapeSequenceError{Suffix: 0x0B},
			is:   ErrInvalidEscapeSequence,
			kind: KindInvalidEscapeSequence,
			msg:  "gsm7: invalid escape sequence: 0x1B followed by 0x0B",
		},
		{
			desc: "invalid byte",
			err:  &InvalidByteError{Byte: 0x7A},
			is:   ErrInvalidByte,
			kind: KindInvalidByte,
			msg:  "gsm7: invalid GSM 7-bit byte: 0x7A",
		},
		{
			desc: "malformed data",
			err:  escapeAtEnd(),
			is:   ErrMalformedData,
			kind: KindMalformedData,
			msg:  "gsm7: malformed GSM 7-bit data: escape byte at end of input",
		},
		{
			desc: "wrapped error",
			err:  fmt.Errorf("decode body: %w", lengthExceeded(9, 3)),
			is:   ErrMalformedData,
			kind: KindMalformedData,
			msg:  "decode body: gsm7: malformed GSM 7-bit data: input length 9 exceeds limit 3",
		},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			assert.True(t, errors.Is(tc.err, tc.is))
			assert.Equal(t, tc.kind, KindOf(tc.err))
			assert.Equal(t, tc.msg, tc.err.Error())
		})
	}

	assert.Equal(t, Kind(""), KindOf(errors.New("other")))
	assert.Equal(t, Kind(""), KindOf(nil))
}

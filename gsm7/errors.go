package gsm7

import (
	"errors"
	"fmt"
)

//goland:noinspection ALL
var (
	ErrUnsupportedCharacter  = errors.New("gsm7: unsupported character")
	ErrInvalidEscapeSequence = errors.New("gsm7: invalid escape sequence")
	ErrInvalidByte           = errors.New("gsm7: invalid byte")
	ErrMalformedData         = errors.New("gsm7: malformed data")
)

// Reasons carried by MalformedDataError.
const (
	ReasonEscapeAtEnd = "escape byte at end of input"
)

// Kind names the category of a codec error.
type Kind string

const (
	KindUnsupportedCharacter  Kind = "unsupported_character"
	KindInvalidEscapeSequence Kind = "invalid_escape_sequence"
	KindInvalidByte           Kind = "invalid_byte"
	KindMalformedData         Kind = "malformed_data"
)

// UnsupportedCharacterError is returned in strict mode when a character has
// no code. Offset is the index of the character counted in runes.
type UnsupportedCharacterError struct {
	Char      rune
	CodePoint uint32
	Offset    int
}

func (e *UnsupportedCharacterError) Error() string {
	return fmt.Sprintf("gsm7: character not supported in GSM 7-bit: '%c' (U+%04X)", e.Char, e.CodePoint)
}

func (e *UnsupportedCharacterError) Unwrap() error { return ErrUnsupportedCharacter }

// InvalidEscapeSequenceError is returned in strict mode when the escape prefix
// is followed by a byte that is not in the extension table. Offset is the
// index of the escape prefix.
type InvalidEscapeSequenceError struct {
	Suffix byte
	Offset int
}

func (e *InvalidEscapeSequenceError) Error() string {
	return fmt.Sprintf("gsm7: invalid escape sequence: 0x1B followed by 0x%02X", e.Suffix)
}

func (e *InvalidEscapeSequenceError) Unwrap() error { return ErrInvalidEscapeSequence }

// InvalidByteError is returned in strict mode for a byte in 0x00–0x7F that has
// no default alphabet character.
type InvalidByteError struct {
	Byte   byte
	Offset int
}

func (e *InvalidByteError) Error() string {
	return fmt.Sprintf("gsm7: invalid GSM 7-bit byte: 0x%02X", e.Byte)
}

func (e *InvalidByteError) Unwrap() error { return ErrInvalidByte }

// MalformedDataError reports a structural problem with the input.
type MalformedDataError struct {
	Reason string
}

func (e *MalformedDataError) Error() string {
	return "gsm7: malformed GSM 7-bit data: " + e.Reason
}

func (e *MalformedDataError) Unwrap() error { return ErrMalformedData }

// KindOf returns the kind of a codec error, or "" if err did not come from
// this package.
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrUnsupportedCharacter):
		return KindUnsupportedCharacter
	case errors.Is(err, ErrInvalidEscapeSequence):
		return KindInvalidEscapeSequence
	case errors.Is(err, ErrInvalidByte):
		return KindInvalidByte
	case errors.Is(err, ErrMalformedData):
		return KindMalformedData
	}
	return ""
}

func unsupported(r rune, offset int) error {
	return &UnsupportedCharacterError{Char: r, CodePoint: uint32(r), Offset: offset}
}

func malformed(format string, args ...any) error {
	return &MalformedDataError{Reason: fmt.Sprintf(format, args...)}
}

func lengthExceeded(n, limit int) error {
	return malformed("input length %d exceeds limit %d", n, limit)
}

func escapeAtEnd() error {
	return &MalformedDataError{Reason: ReasonEscapeAtEnd}
}

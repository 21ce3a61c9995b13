package gsm7

import "strings"

// decodeState is the state of the decoder between two input bytes.
type decodeState uint8

const (
	statePlain decodeState = iota
	stateEscapePending
)

// Pseudo runes produced by step.
const (
	noRune     rune = -1 // nothing is emitted for this byte
	substitute rune = -2 // the configured replacement is emitted
)

// step advances the decoder by one byte at offset. fault is the error strict
// classification raises for this byte; when it is set r is substitute.
// Bytes >= 0x80 in the plain state always produce substitute without a fault.
func (t *tables) step(state decodeState, b byte, offset int) (next decodeState, r rune, fault error) {
	switch state {
	case stateEscapePending:
		if r, ok := t.ext[b]; ok {
			return statePlain, r, nil
		}
		return statePlain, substitute, &InvalidEscapeSequenceError{Suffix: b, Offset: offset - 1}
	default:
		if b == EscapeByte {
			return stateEscapePending, noRune, nil
		}
		if b >= 0x80 {
			return statePlain, substitute, nil
		}
		if r, ok := t.baseRune(b); ok {
			return statePlain, r, nil
		}
		return statePlain, substitute, &InvalidByteError{Byte: b, Offset: offset}
	}
}

// scan runs the state machine over data, passing every produced rune
// (possibly substitute) to emit. In strict mode the first fault stops the scan.
func (t *tables) scan(data []byte, strict bool, emit func(rune)) error {
	state := statePlain
	for i, b := range data {
		var (
			r     rune
			fault error
		)
		state, r, fault = t.step(state, b, i)
		if fault != nil && strict {
			return fault
		}
		if r != noRune {
			emit(r)
		}
	}
	if state == stateEscapePending {
		if strict {
			return escapeAtEnd()
		}
		emit(substitute)
	}
	return nil
}

// Decode converts GSM 7-bit bytes to text using DefaultConfig.
func Decode(data []byte) (string, error) {
	return DecodeWithConfig(data, DefaultConfig())
}

// DecodeWithConfig converts GSM 7-bit bytes to text. Each output character
// consumes one byte, or two for an escape sequence. Bytes >= 0x80 are outside
// the alphabet and always decode to the replacement character, in strict mode
// too. With cfg.ValidateInput the whole input is validated before decoding.
func DecodeWithConfig(data []byte, cfg Config) (string, error) {
	if err := checkLength(len(data), cfg.MaxInputLength); err != nil {
		return "", err
	}
	if cfg.ValidateInput {
		if err := Validate(data); err != nil {
			return "", err
		}
	}

	replacement := cfg.replacement()
	var sb strings.Builder
	sb.Grow(len(data))
	err := loadTables().scan(data, cfg.Strict, func(r rune) {
		if r == substitute {
			r = replacement
		}
		sb.WriteRune(r)
	})
	if err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Validate reports the first error a strict decode of data would return.
// Bytes >= 0x80 are accepted, as the decoder replaces them.
func Validate(data []byte) error {
	return loadTables().scan(data, true, func(rune) {})
}

// ValidateWithConfig is Validate with cfg.MaxInputLength enforced first.
// Validation is always strict, so the other fields have no effect.
func ValidateWithConfig(data []byte, cfg Config) error {
	if err := checkLength(len(data), cfg.MaxInputLength); err != nil {
		return err
	}
	return Validate(data)
}

func checkLength(n, limit int) error {
	if limit > 0 && n > limit {
		return lengthExceeded(n, limit)
	}
	return nil
}

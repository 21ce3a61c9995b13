package gsm7

import "unicode/utf8"

// DefaultReplacement is emitted for unmappable input when no replacement
// character is configured.
const DefaultReplacement = '�'

// Config controls how the codec treats input outside the alphabet. It is
// passed by value and never modified by the codec.
type Config struct {
	// Strict makes unmappable input fail instead of being replaced.
	Strict bool
	// ReplacementChar substitutes unmappable input in lenient mode. The zero
	// value, or any value that is not a valid rune, selects
	// DefaultReplacement.
	ReplacementChar rune
	// MaxInputLength bounds the raw input: runes when encoding, bytes when
	// decoding. 0 or a negative value means unbounded.
	MaxInputLength int
	// ValidateInput runs a strict validation pass before decoding.
	ValidateInput bool
	// Normalize composes the text to NFC before encoding.
	Normalize bool
}

// DefaultConfig returns the lenient configuration used by Encode and Decode.
func DefaultConfig() Config {
	return Config{ReplacementChar: DefaultReplacement}
}

// StrictConfig returns DefaultConfig with Strict enabled.
func StrictConfig() Config {
	cfg := DefaultConfig()
	cfg.Strict = true
	return cfg
}

// Validate reports settings the codec would silently fall back from: a
// negative limit or a replacement that is not a valid rune. The codec never
// calls it; services use it to reject bad configuration at the edge.
func (c Config) Validate() error {
	if c.MaxInputLength < 0 {
		return malformed("negative max input length %d", c.MaxInputLength)
	}
	if c.ReplacementChar != 0 && !utf8.ValidRune(c.ReplacementChar) {
		return malformed("invalid replacement character U+%04X", c.ReplacementChar)
	}
	return nil
}

func (c Config) replacement() rune {
	if c.ReplacementChar == 0 || !utf8.ValidRune(c.ReplacementChar) {
		return DefaultReplacement
	}
	return c.ReplacementChar
}

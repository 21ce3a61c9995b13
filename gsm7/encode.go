package gsm7

import (
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// spaceCode is used when even the replacement character has no code.
var spaceCode = Code{Value: 0x20}

// Encode converts text to GSM 7-bit bytes using DefaultConfig.
func Encode(text string) ([]byte, error) {
	return EncodeWithConfig(text, DefaultConfig())
}

// EncodeWithConfig converts text to GSM 7-bit bytes, one byte per character
// or two for extension characters. In lenient mode an unmappable character is
// replaced by cfg.ReplacementChar, or by a space when that has no code either,
// so only the length check can fail whatever the configuration. No partial
// output is returned on error.
func EncodeWithConfig(text string, cfg Config) ([]byte, error) {
	if cfg.MaxInputLength > 0 {
		if err := checkLength(utf8.RuneCountInString(text), cfg.MaxInputLength); err != nil {
			return nil, err
		}
	}
	if cfg.Normalize {
		text = norm.NFC.String(text)
	}

	t := loadTables()
	out := make([]byte, 0, len(text))
	offset := 0
	for _, r := range text {
		code, err := t.encodeRune(r, offset, cfg)
		if err != nil {
			return nil, err
		}
		out = code.AppendTo(out)
		offset++
	}
	return out, nil
}

func (t *tables) encodeRune(r rune, offset int, cfg Config) (Code, error) {
	if code, ok := t.codes[r]; ok {
		return code, nil
	}
	if cfg.Strict {
		return Code{}, unsupported(r, offset)
	}
	if code, ok := t.codes[cfg.replacement()]; ok {
		return code, nil
	}
	return spaceCode, nil
}

package gsm7

// EncodedLen returns the number of bytes Encode produces for text, failing on
// the first character without a code. It does not build the output.
func EncodedLen(text string) (int, error) {
	t := loadTables()
	n, offset := 0, 0
	for _, r := range text {
		code, ok := t.codes[r]
		if !ok {
			return 0, unsupported(r, offset)
		}
		n += code.Len()
		offset++
	}
	return n, nil
}

// IsGSM7Compatible reports whether every character of text has a code.
func IsGSM7Compatible(text string) bool {
	_, err := EncodedLen(text)
	return err == nil
}

// Sanitize returns text with every character that has no code replaced by
// replacement, or by a space if replacement has no code either. The result is
// always GSM 7-bit compatible.
func Sanitize(text string, replacement rune) string {
	encoded, _ := EncodeWithConfig(text, Config{ReplacementChar: replacement})
	decoded, _ := Decode(encoded)
	return decoded
}

package gsm7

// Code is the representation of one character in the GSM 7-bit alphabet:
// either a single default alphabet byte, or a suffix byte that must be
// preceded by EscapeByte.
type Code struct {
	Value   byte
	Escaped bool
}

// Len returns the number of bytes the code occupies on the wire.
func (c Code) Len() int {
	if c.Escaped {
		return 2
	}
	return 1
}

// AppendTo appends the wire form of c to dst.
func (c Code) AppendTo(dst []byte) []byte {
	if c.Escaped {
		return append(dst, EscapeByte, c.Value)
	}
	return append(dst, c.Value)
}

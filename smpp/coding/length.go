package coding

import "zultys-gsm7/gsm7"

// Sizer reports how many bits a rune occupies in a data coding.
type Sizer func(rune) int

var (
	// GSM7Sizer counts one septet per default alphabet character and two for
	// extension characters. Runes without a code count as the one septet of
	// a replacement.
	GSM7Sizer Sizer = func(r rune) int {
		if code, ok := gsm7.Lookup(r); ok {
			return 7 * code.Len()
		}
		return 7
	}
	// UCS2Sizer counts UTF-16 code units.
	UCS2Sizer Sizer = func(r rune) int {
		if (r <= 0xD7FF) || ((r >= 0xE000) && (r <= 0xFFFF)) {
			return 16
		}
		return 32
	}
)

// Len returns the number of octets input occupies, rounded up.
func (fn Sizer) Len(input string) (n int) {
	for _, point := range input {
		n += fn(point)
	}
	return octets(n)
}

// Size describes a text for capacity planning.
type Size struct {
	Septets      int  `json:"septets"`
	PackedOctets int  `json:"packed_octets"`
	UCS2Octets   int  `json:"ucs2_octets"`
	Compatible   bool `json:"compatible"`
}

// Measure returns the size of text in both codings. Septets and PackedOctets
// are only set when text is GSM 7-bit compatible; the error is the one
// gsm7.EncodedLen reports otherwise.
func Measure(text string) (Size, error) {
	size := Size{UCS2Octets: UCS2Sizer.Len(text)}
	septets, err := gsm7.EncodedLen(text)
	if err != nil {
		return size, err
	}
	size.Septets = septets
	size.PackedOctets = PackedLen(septets)
	size.Compatible = true
	return size, nil
}

// PackedLen returns the octets needed to carry septets once bit-packed.
func PackedLen(septets int) int {
	return octets(septets * 7)
}

func octets(bits int) int {
	if bits%8 != 0 {
		bits += 8 - bits%8
	}
	return bits / 8
}

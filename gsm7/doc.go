// Package gsm7 converts between Unicode text and the GSM 03.38 default 7-bit
// alphabet used by SMS.
//
// Output is one byte per septet value, not bit-packed. Characters of the
// extension table take two bytes: EscapeByte followed by a suffix code.
//
//	encoded, err := gsm7.Encode("Hello {world} €!")
//	text, err := gsm7.Decode(encoded)
//
// By default unmappable input is replaced. StrictConfig makes it fail with
// one of the typed errors in this package; use errors.Is with the Err values
// or errors.As with the *Error types. Decoding never fails on bytes >= 0x80,
// which are outside the alphabet and always become the replacement character.
//
// GSM7 and GSM7Strict expose the codec as a golang.org/x/text encoding.Encoding
// for use with transform readers and writers.
package gsm7

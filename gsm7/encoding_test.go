package gsm7

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/transform"
)

func TestEncodingMatchesBufferedCodec(t *testing.T) {
	cases := []string{
		"",
		"Hello World!",
		"Hello {world} €!",
		"ΔΦΓΛΩΠΨΣΘΞ [x] ~y~ |z| ^",
		"Hello 🦀 World",
	}

	for _, text := range cases {
		want, err := Encode(text)
		require.NoError(t, err)

		got, err := GSM7.NewEncoder().String(text)
		require.NoError(t, err)
		assert.Equal(t, string(want), got)

		decoded, err := GSM7.NewDecoder().Bytes(want)
		require.NoError(t, err)
		wantText, err := Decode(want)
		require.NoError(t, err)
		assert.Equal(t, wantText, string(decoded))
	}
}

func TestEncodingReaderOneByteAtATime(t *testing.T) {
	const text = "{Hello} €uro [ΔΦ] ~^|\\"
	encoded, err := Encode(text)
	require.NoError(t, err)

	r := transform.NewReader(iotest.OneByteReader(bytes.NewReader(encoded)), GSM7Strict.NewDecoder())
	decoded, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, text, string(decoded))

	w := &bytes.Buffer{}
	enc := transform.NewWriter(w, GSM7Strict.NewEncoder())
	for _, chunk := range splitEvery([]byte(text), 1) {
		_, err := enc.Write(chunk)
		require.NoError(t, err)
	}
	require.NoError(t, enc.Close())
	assert.Equal(t, encoded, w.Bytes())
}

func TestEncodingStrictErrors(t *testing.T) {
	_, err := GSM7Strict.NewEncoder().String("Hello 🦀")
	assert.True(t, errors.Is(err, ErrUnsupportedCharacter))

	_, err = GSM7Strict.NewDecoder().Bytes([]byte{0x48, 0x1B})
	assert.True(t, errors.Is(err, ErrMalformedData))

	_, err = GSM7Strict.NewDecoder().Bytes([]byte{0x48, 0x1B, 0x48})
	assert.True(t, errors.Is(err, ErrInvalidEscapeSequence))

	got, err := GSM7Strict.NewDecoder().Bytes([]byte{0x48, 0x81})
	require.NoError(t, err)
	assert.Equal(t, "H�", string(got))
}

func TestEncodingLenientEscapeAtEnd(t *testing.T) {
	got, err := GSM7.NewDecoder().Bytes([]byte{0x48, 0x1B})
	require.NoError(t, err)
	assert.Equal(t, "H�", string(got))

	r := transform.NewReader(iotest.OneByteReader(bytes.NewReader([]byte{0x48, 0x1B})), GSM7.NewDecoder())
	streamed, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "H�", string(streamed))
}

func TestEncodingLengthLimit(t *testing.T) {
	enc := NewEncoding(Config{MaxInputLength: 5})

	_, err := enc.NewEncoder().String("Hello World")
	assert.True(t, errors.Is(err, ErrMalformedData))

	encoder := enc.NewEncoder()
	got, err := encoder.String("Hello")
	require.NoError(t, err)
	assert.Equal(t, "Hello", got)
	// String resets the transformer, so the count starts over.
	_, err = encoder.String("World")
	require.NoError(t, err)

	_, err = enc.NewDecoder().Bytes([]byte("Hello World"))
	assert.True(t, errors.Is(err, ErrMalformedData))
}

func TestEncodingValidateInputIsStrict(t *testing.T) {
	enc := NewEncoding(Config{ValidateInput: true})
	_, err := enc.NewDecoder().Bytes([]byte{0x1B, 0x41})
	assert.True(t, errors.Is(err, ErrInvalidEscapeSequence))
}

func TestEncodingNormalize(t *testing.T) {
	enc := NewEncoding(Config{Strict: true, Normalize: true})
	got, err := enc.NewEncoder().String("Cafe\u0301")
	require.NoError(t, err)
	assert.Equal(t, "Caf\x05", got)
}

func TestEncodingNormalizeCountsRawInput(t *testing.T) {
	const decomposed = "Cafe\u0301"
	cfg := Config{Strict: true, Normalize: true, MaxInputLength: 4}

	_, bufferedErr := EncodeWithConfig(decomposed, cfg)
	assert.True(t, errors.Is(bufferedErr, ErrMalformedData))

	_, err := NewEncoding(cfg).NewEncoder().String(decomposed)
	assert.True(t, errors.Is(err, ErrMalformedData))

	cfg.MaxInputLength = 5
	got, err := NewEncoding(cfg).NewEncoder().String(decomposed)
	require.NoError(t, err)
	assert.Equal(t, "Caf\x05", got)

	w := &bytes.Buffer{}
	enc := transform.NewWriter(w, NewEncoding(cfg).NewEncoder())
	for _, chunk := range splitEvery([]byte(decomposed), 1) {
		_, err := enc.Write(chunk)
		require.NoError(t, err)
	}
	require.NoError(t, enc.Close())
	assert.Equal(t, []byte{0x43, 0x61, 0x66, 0x05}, w.Bytes())
}

func TestEncodingString(t *testing.T) {
	assert.Equal(t, "GSM 03.38", fmt.Sprint(GSM7))
	assert.Equal(t, "GSM 03.38", fmt.Sprint(GSM7Strict))
}

func splitEvery(b []byte, n int) [][]byte {
	var chunks [][]byte
	for len(b) > n {
		chunks = append(chunks, b[:n])
		b = b[n:]
	}
	return append(chunks, b)
}

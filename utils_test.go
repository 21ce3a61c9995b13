package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatBytes(t *testing.T) {
	data := []byte{0x48, 0x1B, 0x65}

	out, err := formatBytes(data, "")
	require.NoError(t, err)
	assert.Equal(t, "481B65", out)

	out, err = formatBytes(data, "BASE64")
	require.NoError(t, err)
	assert.Equal(t, "SBtl", out)

	out, err = formatBytes(data, FormatRaw)
	require.NoError(t, err)
	assert.Equal(t, "H\x1be", out)

	_, err = formatBytes(data, "octal")
	assert.Error(t, err)
}

func TestParseBytes(t *testing.T) {
	data, err := parseBytes("48 1b\n65", FormatHex)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x48, 0x1B, 0x65}, data)

	data, err = parseBytes(" SBtl\n", FormatBase64)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x48, 0x1B, 0x65}, data)

	_, err = parseBytes("4", FormatHex)
	assert.ErrorContains(t, err, "invalid hex input")
	_, err = parseBytes("***", FormatBase64)
	assert.ErrorContains(t, err, "invalid base64 input")
	_, err = parseBytes("00", "octal")
	assert.Error(t, err)
}

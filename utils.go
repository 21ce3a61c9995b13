package main

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
)

// Byte formats accepted on the command line and in the HTTP API.
const (
	FormatHex    = "hex"
	FormatBase64 = "base64"
	FormatRaw    = "raw"
)

// formatBytes renders encoded output in the requested format.
func formatBytes(data []byte, format string) (string, error) {
	switch strings.ToLower(format) {
	case "", FormatHex:
		return strings.ToUpper(hex.EncodeToString(data)), nil
	case FormatBase64:
		return base64.StdEncoding.EncodeToString(data), nil
	case FormatRaw:
		return string(data), nil
	}
	return "", fmt.Errorf("unknown format %q", format)
}

// parseBytes reads encoded input. Hex may contain whitespace between octets.
func parseBytes(s, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "", FormatHex:
		data, err := hex.DecodeString(strings.Join(strings.Fields(s), ""))
		if err != nil {
			return nil, fmt.Errorf("invalid hex input: %w", err)
		}
		return data, nil
	case FormatBase64:
		data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("invalid base64 input: %w", err)
		}
		return data, nil
	case FormatRaw:
		return []byte(s), nil
	}
	return nil, fmt.Errorf("unknown format %q", format)
}

package main

import (
	"zultys-gsm7/gsm7"
)

// CleanSMS replaces every character outside GSM 03.38 with '?' so the text
// can be sent with the default alphabet.
func CleanSMS(text string) string {
	return gsm7.Sanitize(text, '?')
}

// codecOptions are per-call overrides of the service codec defaults. Unset
// fields keep the default.
type codecOptions struct {
	Strict      *bool  `json:"strict,omitempty"`
	Replacement string `json:"replacement,omitempty"`
	MaxLength   *int   `json:"max_length,omitempty"`
	Validate    *bool  `json:"validate,omitempty"`
	Normalize   *bool  `json:"normalize,omitempty"`
}

func (o codecOptions) apply(base gsm7.Config) (gsm7.Config, error) {
	cfg := base
	if o.Strict != nil {
		cfg.Strict = *o.Strict
	}
	if o.Replacement != "" {
		r, err := parseReplacement(o.Replacement)
		if err != nil {
			return base, err
		}
		cfg.ReplacementChar = r
	}
	if o.MaxLength != nil {
		cfg.MaxInputLength = *o.MaxLength
	}
	if o.Validate != nil {
		cfg.ValidateInput = *o.Validate
	}
	if o.Normalize != nil {
		cfg.Normalize = *o.Normalize
	}
	if err := cfg.Validate(); err != nil {
		return base, err
	}
	return cfg, nil
}

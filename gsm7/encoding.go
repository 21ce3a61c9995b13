package gsm7

import (
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// GSM7 is the lenient GSM 03.38 encoding.
	GSM7 encoding.Encoding = NewEncoding(DefaultConfig())

	// GSM7Strict fails on any character or byte outside the alphabet.
	GSM7Strict encoding.Encoding = NewEncoding(StrictConfig())
)

type gsm7Encoding struct {
	cfg Config
}

// NewEncoding returns an encoding.Encoding whose transformers apply cfg.
// MaxInputLength bounds the input consumed since the last Reset, counted
// before normalization as in EncodeWithConfig. There is no separate
// validation pass when streaming: ValidateInput makes decoding strict.
func NewEncoding(cfg Config) encoding.Encoding {
	return &gsm7Encoding{cfg: cfg}
}

func (e *gsm7Encoding) NewDecoder() *encoding.Decoder {
	return &encoding.Decoder{Transformer: &decoder{cfg: e.cfg}}
}

func (e *gsm7Encoding) NewEncoder() *encoding.Encoder {
	if !e.cfg.Normalize {
		return &encoding.Encoder{Transformer: &encoder{cfg: e.cfg}}
	}
	cfg := e.cfg
	cfg.MaxInputLength = 0
	var stages []transform.Transformer
	if e.cfg.MaxInputLength > 0 {
		stages = append(stages, &runeLimiter{limit: e.cfg.MaxInputLength})
	}
	stages = append(stages, norm.NFC, &encoder{cfg: cfg})
	return &encoding.Encoder{Transformer: transform.Chain(stages...)}
}

func (e *gsm7Encoding) String() string {
	return "GSM 03.38"
}

// encoder implements transform.Transformer by encoding from UTF-8.
type encoder struct {
	cfg      Config
	consumed int
}

func (e *encoder) Reset() {
	e.consumed = 0
}

func (e *encoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	t := loadTables()
	for nSrc < len(src) {
		r, size := rune(src[nSrc]), 1
		if r >= utf8.RuneSelf {
			if !atEOF && !utf8.FullRune(src[nSrc:]) {
				return nDst, nSrc, transform.ErrShortSrc
			}
			r, size = utf8.DecodeRune(src[nSrc:])
		}
		if limit := e.cfg.MaxInputLength; limit > 0 && e.consumed >= limit {
			return nDst, nSrc, lengthExceeded(e.consumed+1, limit)
		}
		code, err := t.encodeRune(r, e.consumed, e.cfg)
		if err != nil {
			return nDst, nSrc, err
		}
		if nDst+code.Len() > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += copy(dst[nDst:], code.AppendTo(nil))
		nSrc += size
		e.consumed++
	}
	return nDst, nSrc, nil
}

// runeLimiter copies UTF-8 input unchanged and fails once more than limit
// runes have passed since the last Reset.
type runeLimiter struct {
	limit    int
	consumed int
}

func (l *runeLimiter) Reset() {
	l.consumed = 0
}

func (l *runeLimiter) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		size := 1
		if src[nSrc] >= utf8.RuneSelf {
			if !atEOF && !utf8.FullRune(src[nSrc:]) {
				return nDst, nSrc, transform.ErrShortSrc
			}
			_, size = utf8.DecodeRune(src[nSrc:])
		}
		if l.consumed >= l.limit {
			return nDst, nSrc, lengthExceeded(l.consumed+1, l.limit)
		}
		if nDst+size > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += copy(dst[nDst:], src[nSrc:nSrc+size])
		nSrc += size
		l.consumed++
	}
	return nDst, nSrc, nil
}

// decoder implements transform.Transformer by decoding to UTF-8. The escape
// pending state survives across Transform calls.
type decoder struct {
	cfg      Config
	state    decodeState
	consumed int
}

func (d *decoder) Reset() {
	d.state = statePlain
	d.consumed = 0
}

func (d *decoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	t := loadTables()
	strict := d.cfg.Strict || d.cfg.ValidateInput
	replacement := d.cfg.replacement()
	for nSrc < len(src) {
		if limit := d.cfg.MaxInputLength; limit > 0 && d.consumed >= limit {
			return nDst, nSrc, lengthExceeded(d.consumed+1, limit)
		}
		next, r, fault := t.step(d.state, src[nSrc], d.consumed)
		if fault != nil && strict {
			return nDst, nSrc, fault
		}
		if r != noRune {
			if r == substitute {
				r = replacement
			}
			if nDst+utf8.RuneLen(r) > len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			nDst += utf8.EncodeRune(dst[nDst:], r)
		}
		d.state = next
		nSrc++
		d.consumed++
	}
	if atEOF && d.state == stateEscapePending {
		if strict {
			return nDst, nSrc, escapeAtEnd()
		}
		if nDst+utf8.RuneLen(replacement) > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += utf8.EncodeRune(dst[nDst:], replacement)
		d.state = statePlain
	}
	return nDst, nSrc, nil
}

package tabq

import (
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// charsetConverter transcodes field text from a configured source charset
// to UTF-8. A converter with a nil decoder is the fast no-op path used
// when the source already is UTF-8.
type charsetConverter struct {
	decoder *encoding.Decoder
}

// newCharsetConverter resolves an IANA charset label. Empty and UTF-8
// labels yield the no-op converter; an unrecognized label fails with
// ErrValidation.
func newCharsetConverter(label string) (*charsetConverter, error) {
	normalized := strings.ToLower(strings.TrimSpace(label))
	if normalized == "" || normalized == "utf-8" || normalized == "utf8" {
		return &charsetConverter{}, nil
	}
	enc, err := htmlindex.Get(normalized)
	if err != nil {
		return nil, validationErrorf("unknown charset label %q", label)
	}
	if enc == unicode.UTF8 {
		return &charsetConverter{}, nil
	}
	return &charsetConverter{decoder: enc.NewDecoder()}, nil
}

// convert transcodes s to UTF-8, returning s unchanged on the no-op path.
// Decoding never hard-fails: undecodable bytes come back replaced, and the
// original text is returned if the transform itself errors.
func (c *charsetConverter) convert(s string) string {
	if c == nil || c.decoder == nil {
		return s
	}
	out, _, err := transform.String(c.decoder, s)
	if err != nil {
		return s
	}
	return out
}

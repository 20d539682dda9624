package tabq

// ByteOrderMark identifies the encoding-signature prefix detected at the
// start of a raw source, or BOMNone when no signature is present.
type ByteOrderMark int

const (
	// BOMNone represents the absence of a byte-order mark
	BOMNone ByteOrderMark = iota
	// BOMUTF8 represents the UTF-8 byte-order mark (EF BB BF)
	BOMUTF8
	// BOMUTF16LE represents the UTF-16 little-endian byte-order mark (FF FE)
	BOMUTF16LE
	// BOMUTF16BE represents the UTF-16 big-endian byte-order mark (FE FF)
	BOMUTF16BE
	// BOMUTF32LE represents the UTF-32 little-endian byte-order mark (FF FE 00 00)
	BOMUTF32LE
	// BOMUTF32BE represents the UTF-32 big-endian byte-order mark (00 00 FE FF)
	BOMUTF32BE
)

// String returns the encoding name associated with the byte-order mark.
func (b ByteOrderMark) String() string {
	switch b {
	case BOMUTF8:
		return "UTF-8"
	case BOMUTF16LE:
		return "UTF-16LE"
	case BOMUTF16BE:
		return "UTF-16BE"
	case BOMUTF32LE:
		return "UTF-32LE"
	case BOMUTF32BE:
		return "UTF-32BE"
	default:
		return "none"
	}
}

// Sequence returns the raw byte sequence of the mark, or the empty string
// for BOMNone.
func (b ByteOrderMark) Sequence() string {
	switch b {
	case BOMUTF8:
		return "\xEF\xBB\xBF"
	case BOMUTF16LE:
		return "\xFF\xFE"
	case BOMUTF16BE:
		return "\xFE\xFF"
	case BOMUTF32LE:
		return "\xFF\xFE\x00\x00"
	case BOMUTF32BE:
		return "\x00\x00\xFE\xFF"
	default:
		return ""
	}
}

// detectBOM matches the given prefix bytes against the canonical byte-order
// mark table. Longer sequences are tried first so that a UTF-32LE mark is
// not mistaken for its UTF-16LE prefix.
func detectBOM(prefix []byte) ByteOrderMark {
	candidates := []ByteOrderMark{BOMUTF32LE, BOMUTF32BE, BOMUTF8, BOMUTF16LE, BOMUTF16BE}
	for _, bom := range candidates {
		seq := bom.Sequence()
		if len(prefix) >= len(seq) && string(prefix[:len(seq)]) == seq {
			return bom
		}
	}
	return BOMNone
}

// trimBOM removes the detected byte-order mark from the front of the first
// field of the first row. When the remainder is wrapped in the enclosure
// character on both ends, the wrapping is removed as well: a mark followed
// directly by a quoted field reaches the field decoder fused together, so
// the quotes survive decoding and must be stripped here.
func trimBOM(field string, bom ByteOrderMark, enclosure rune) string {
	seq := bom.Sequence()
	if seq == "" || len(field) < len(seq) || field[:len(seq)] != seq {
		return field
	}
	field = field[len(seq):]
	q := string(enclosure)
	if len(field) >= 2*len(q) && field[:len(q)] == q && field[len(field)-len(q):] == q {
		field = field[len(q) : len(field)-len(q)]
	}
	return field
}

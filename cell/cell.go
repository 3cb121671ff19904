// Package cell packs and unpacks raw terminal cell values.
//
// A Value carries a single-byte character in its low byte and an
// attribute bit field in the bytes above it. The attribute layout is
// the classic curses one: a color-pair id in bits 8-15 and style flags
// above that. Decode and Encode round-trip a Value unchanged.
package cell

// Value is a raw backend cell: character in the low byte, attribute
// field in the upper bytes.
type Value uint32

// Attr is the attribute bit field of a cell. The zero value is a plain
// cell in color pair 0 (the backend default style).
type Attr uint32

const (
	// AttrNormal is the absence of styling.
	AttrNormal Attr = 0

	// Style flags live above the color-pair byte.
	AttrBold      Attr = 1 << 16
	AttrDim       Attr = 1 << 17
	AttrReverse   Attr = 1 << 18
	AttrUnderline Attr = 1 << 19
	AttrBlink     Attr = 1 << 20

	// AttrAltCharset marks the character byte as a code in the
	// line-drawing alternate charset rather than a literal byte.
	AttrAltCharset Attr = 1 << 21
)

// Alternate-charset codes for box drawing, following the DEC special
// graphics assignments. A cell whose attribute carries AttrAltCharset
// renders these as line glyphs.
const (
	ACSULCorner byte = 'l' // upper left corner
	ACSURCorner byte = 'k' // upper right corner
	ACSLLCorner byte = 'm' // lower left corner
	ACSLRCorner byte = 'j' // lower right corner
	ACSHLine    byte = 'q' // horizontal line
	ACSVLine    byte = 'x' // vertical line
	ACSLTee     byte = 't' // left tee
	ACSRTee     byte = 'u' // right tee
	ACSTTee     byte = 'w' // top tee
	ACSBTee     byte = 'v' // bottom tee
	ACSPlus     byte = 'n' // crossover
)

// acsRunes maps alternate-charset codes to the glyphs they render as.
var acsRunes = map[byte]rune{
	ACSULCorner: '┌',
	ACSURCorner: '┐',
	ACSLLCorner: '└',
	ACSLRCorner: '┘',
	ACSHLine:    '─',
	ACSVLine:    '│',
	ACSLTee:     '├',
	ACSRTee:     '┤',
	ACSTTee:     '┬',
	ACSBTee:     '┴',
	ACSPlus:     '┼',
}

// ACSRune resolves an alternate-charset code to its glyph. Unknown
// codes render as themselves.
func ACSRune(code byte) rune {
	if r, ok := acsRunes[code]; ok {
		return r
	}
	return rune(code)
}

// attrMask selects the attribute bytes of a Value (everything above the
// character byte).
const attrMask = ^Value(0xFF)

// ColorPair returns the attribute selecting color pair id. Ids occupy
// one byte; out-of-range ids are truncated.
func ColorPair(id int) Attr {
	return Attr(id&0xFF) << 8
}

// Pair extracts the color-pair id from an attribute.
func (a Attr) Pair() int {
	return int(a>>8) & 0xFF
}

// Cell is a decoded terminal cell.
type Cell struct {
	Ch   byte
	Attr Attr
}

// Decode splits a raw value into its character and attribute parts.
func Decode(v Value) (byte, Attr) {
	return byte(v), Attr(v & attrMask)
}

// Encode packs a character and attribute back into a raw value.
func Encode(ch byte, attr Attr) Value {
	return Value(attr)&attrMask | Value(ch)
}

package ui2d

// Glyph metrics in font pixels.
const (
	GlyphWidth   = 3
	GlyphHeight  = 5
	GlyphAdvance = GlyphWidth + 1
)

// Each row is GlyphWidth bits, most significant bit on the left.
var glyphs = map[rune][GlyphHeight]uint8{
	'0': {0b111, 0b101, 0b101, 0b101, 0b111},
	'1': {0b010, 0b110, 0b010, 0b010, 0b111},
	'2': {0b111, 0b001, 0b111, 0b100, 0b111},
	'3': {0b111, 0b001, 0b011, 0b001, 0b111},
	'4': {0b101, 0b101, 0b111, 0b001, 0b001},
	'5': {0b111, 0b100, 0b111, 0b001, 0b111},
	'6': {0b111, 0b100, 0b111, 0b101, 0b111},
	'7': {0b111, 0b001, 0b010, 0b010, 0b010},
	'8': {0b111, 0b101, 0b111, 0b101, 0b111},
	'9': {0b111, 0b101, 0b111, 0b001, 0b111},
	'+': {0b000, 0b010, 0b111, 0b010, 0b000},
	'-': {0b000, 0b000, 0b111, 0b000, 0b000},
}

func textWidth(s string, scale float32) float32 {
	n := 0
	for range s {
		n++
	}
	if n == 0 {
		return 0
	}
	return (float32(n)*GlyphAdvance - 1) * scale
}

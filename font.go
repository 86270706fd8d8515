package marquee

import (
	"fmt"
)

const (
	// GlyphWidth is the number of columns drawn for each character.
	GlyphWidth = 5
	// glyphAdvance is the number of canvas columns between adjacent characters.
	glyphAdvance = GlyphWidth + 1
	// maxTextLength is the number of characters that fit on the canvas.
	maxTextLength = 8
	// textAnchor is the canvas column where the rightmost character starts.
	textAnchor = Columns - glyphAdvance

	firstGlyph rune = 0x20
	lastGlyph  rune = 0x7d
)

// Glyph is a character bitmap stored column by column.
// Bit k of a column lights row k.
type Glyph [GlyphWidth]uint8

func init() {
	if err := validateFont(font); err != nil {
		panic(err)
	}
}

func validateFont(f map[rune]Glyph) error {
	for r := firstGlyph; r <= lastGlyph; r++ {
		g, ok := f[r]
		if !ok {
			return fmt.Errorf("font has no glyph for %q", r)
		}
		for j, col := range g {
			if col>>Rows != 0 {
				return fmt.Errorf("glyph %q column %d is taller than %d rows: %#02x", r, j, Rows, col)
			}
		}
	}
	if len(f) != int(lastGlyph-firstGlyph)+1 {
		return fmt.Errorf("font has %d glyphs, want %d", len(f), lastGlyph-firstGlyph+1)
	}
	return nil
}

// GlyphOf returns the glyph for r, or the space glyph when r has none.
func GlyphOf(r rune) Glyph {
	if r < firstGlyph || r > lastGlyph {
		r = firstGlyph
	}
	return font[r]
}

// Rasterize renders the last 8 characters of text right-aligned on the canvas.
func Rasterize(text string) []Pixel {
	runes := []rune(text)
	if len(runes) > maxTextLength {
		runes = runes[len(runes)-maxTextLength:]
	}
	var ps []Pixel
	for i := range runes {
		// rightmost character first
		g := GlyphOf(runes[len(runes)-1-i])
		base := textAnchor - i*glyphAdvance
		for j, col := range g {
			for k := range Rows {
				if col&(1<<k) != 0 {
					ps = append(ps, PixelAt(base+j, k))
				}
			}
		}
	}
	return ps
}

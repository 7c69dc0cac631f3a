package printing

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// textWidth sums the glyph advance of every rune at the given point
// size. Runes the font has no glyph for contribute nothing, matching
// how the receipt printer drops them.
func textWidth(f *sfnt.Font, text string, size float64) float64 {
	var buf sfnt.Buffer
	ppem := fixed.Int26_6(size * 64)

	var width fixed.Int26_6
	for _, r := range text {
		gi, err := f.GlyphIndex(&buf, r)
		if err != nil || gi == 0 {
			continue
		}
		adv, err := f.GlyphAdvance(&buf, gi, ppem, font.HintingNone)
		if err != nil {
			continue
		}
		width += adv
	}
	return float64(width) / 64.0
}

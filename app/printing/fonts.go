package printing

import (
	_ "embed"
	"sync"

	"HotelPos/app/errs"

	"golang.org/x/image/font/sfnt"
)

// The receipt font ships inside the binary, so a missing font file is
// not a runtime condition. A corrupt resource still surfaces as a
// RenderError instead of a panic.
//
//go:embed resources/fonts/DejaVuSans.ttf
var receiptFontTTF []byte

var (
	fontOnce   sync.Once
	parsedFont *sfnt.Font
	fontErr    error
)

// receiptFont parses the embedded font once and caches it.
func receiptFont() (*sfnt.Font, error) {
	fontOnce.Do(func() {
		f, err := sfnt.Parse(receiptFontTTF)
		if err != nil {
			fontErr = &errs.RenderError{Reason: "parse embedded receipt font", Err: err}
			return
		}
		parsedFont = f
	})
	return parsedFont, fontErr
}

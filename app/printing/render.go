package printing

import (
	"bytes"

	"HotelPos/app/errs"

	"github.com/jung-kurt/gofpdf"
)

// Render draws a computed layout into a PDF buffer. It places exactly
// the blocks the layout carries on a page of exactly the layout's size;
// no text decision is made here.
func Render(layout *Layout) ([]byte, error) {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "mm",
		Size:    gofpdf.SizeType{Wd: layout.PageWidth, Ht: layout.PageHeight},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddUTF8FontFromBytes("receipt", "", receiptFontTTF)
	pdf.AddPage()

	for _, block := range layout.Blocks {
		pdf.SetFont("receipt", "", block.Size)
		pdf.Text(block.X, block.Y, block.Text)
		if block.ColumnText != "" {
			pdf.Text(block.ColumnX, block.Y, block.ColumnText)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, &errs.RenderError{Reason: "write pdf", Err: err}
	}
	return buf.Bytes(), nil
}

package printing

import (
	"fmt"

	"HotelPos/app/errs"
	"HotelPos/app/models"
	"HotelPos/app/tax"

	"github.com/shopspring/decimal"
)

// Page geometry in layout millimetres. The page height is fixed at
// construction, so everything below is accumulated up front and the
// drawing pass walks the exact same numbers.
const (
	PageWidth      = 80.0
	headerHeight   = 15.0 // business name + address band
	subtitleHeight = 5.0  // invoice number line
	gapHeight      = 5.0  // spacing between subtitle and first product
	lineHeight     = 5.0  // per product line and per tax group line
	totalHeight    = 10.0 // total line incl. spacing above it
	bottomMargin   = 10.0

	headerX   = 10.0
	subtitleX = 15.0
	nameX     = 5.0
	priceX    = 60.0
	taxX      = 44.0
	totalX    = 44.0

	headerFontSize = 24.0
	bodyFontSize   = 12.0
	addressSize    = 10.0

	// NameWidthBudget is the widest a product name may render at body
	// size before it is truncated character by character.
	NameWidthBudget = 150.0
)

// TextBlock is one positioned piece of receipt text. X/Y are the text
// baseline from the page's top-left corner. Product lines carry their
// price in a second column at ColumnX on the same baseline.
type TextBlock struct {
	X          float64
	Y          float64
	Size       float64
	Text       string
	ColumnX    float64
	ColumnText string
}

// ReceiptLine is an invoice line resolved against the catalog.
type ReceiptLine struct {
	Name          string
	Price         float64
	TaxPercentage *float64
}

// Meta is the document header content, taken from the business config.
type Meta struct {
	BusinessName    string
	BusinessAddress string
	InvoiceID       uint
}

// Layout is the fully computed receipt: page size plus every drawable
// block in output order. Render draws it verbatim.
type Layout struct {
	PageWidth  float64
	PageHeight float64
	Blocks     []TextBlock
	TaxGroups  []tax.Group
	Total      float64
}

// ProductLookup resolves an original product id; the ticket and invoice
// services satisfy it through the catalog.
type ProductLookup interface {
	GetProduct(id uint) (*models.Product, error)
}

// LinesFromInvoice resolves the invoice's frozen lines against the
// catalog. A missing product fails the whole render closed rather than
// printing a line with unknown tax semantics.
func LinesFromInvoice(invoice *models.SimpleInvoice, catalog ProductLookup) ([]ReceiptLine, error) {
	lines := make([]ReceiptLine, 0, len(invoice.Items))
	for _, item := range invoice.Items {
		product, err := catalog.GetProduct(item.OriginalProductID)
		if err != nil {
			return nil, fmt.Errorf("resolve product %d: %w", item.OriginalProductID, err)
		}
		lines = append(lines, ReceiptLine{
			Name:          product.Name,
			Price:         item.Price,
			TaxPercentage: product.TaxPercentage,
		})
	}
	return lines, nil
}

// ComputeLayout sizes the page and positions every block from the same
// itemization and tax grouping, so the sizing pass and the drawing pass
// can never disagree. A zero-item invoice still yields a minimal valid
// page with a zero total.
func ComputeLayout(lines []ReceiptLine, meta Meta) (*Layout, error) {
	font, err := receiptFont()
	if err != nil {
		return nil, err
	}

	taxLines := make([]tax.Line, 0, len(lines))
	for _, line := range lines {
		taxLines = append(taxLines, tax.Line{Price: line.Price, Percentage: line.TaxPercentage})
	}
	groups := tax.Decompose(taxLines)

	pageHeight := headerHeight + subtitleHeight + gapHeight +
		lineHeight*float64(len(lines)) +
		lineHeight*float64(len(groups)) +
		totalHeight + bottomMargin

	layout := &Layout{
		PageWidth:  PageWidth,
		PageHeight: pageHeight,
		TaxGroups:  groups,
	}

	cursor := 10.0
	layout.Blocks = append(layout.Blocks, TextBlock{
		X: headerX, Y: cursor, Size: headerFontSize, Text: meta.BusinessName,
	})
	cursor += 5.0
	layout.Blocks = append(layout.Blocks, TextBlock{
		X: headerX, Y: cursor, Size: addressSize, Text: meta.BusinessAddress,
	})
	cursor += 5.0
	layout.Blocks = append(layout.Blocks, TextBlock{
		X: subtitleX, Y: cursor, Size: bodyFontSize,
		Text: fmt.Sprintf("Factura Simplificada Nº:%d", meta.InvoiceID),
	})
	cursor += gapHeight + lineHeight

	for _, line := range lines {
		runes := []rune(line.Name)
		for len(runes) > 0 && textWidth(font, string(runes), bodyFontSize) > NameWidthBudget {
			runes = runes[:len(runes)-1]
		}
		name := string(runes)

		layout.Blocks = append(layout.Blocks, TextBlock{
			X: nameX, Y: cursor, Size: bodyFontSize, Text: name,
			ColumnX: priceX, ColumnText: formatMoney(line.Price),
		})
		layout.Total += line.Price
		cursor += lineHeight
	}

	for _, group := range groups {
		layout.Blocks = append(layout.Blocks, TextBlock{
			X: taxX, Y: cursor, Size: bodyFontSize,
			Text: fmt.Sprintf("IVA: %s%% %s", formatPercentage(group.Key), formatMoney(group.Amount)),
		})
		cursor += lineHeight
	}

	cursor += totalHeight - lineHeight
	layout.Blocks = append(layout.Blocks, TextBlock{
		X: totalX, Y: cursor, Size: bodyFontSize,
		Text: fmt.Sprintf("TOTAL: %s", formatMoney(layout.Total)),
	})

	if cursor+bottomMargin > pageHeight {
		return nil, &errs.RenderError{Reason: "layout overflowed the computed page height"}
	}

	return layout, nil
}

// formatMoney renders a monetary value with exactly two decimals and
// the currency suffix.
func formatMoney(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2) + "€"
}

// formatPercentage renders a rounded grouping key back as a percentage.
func formatPercentage(key int64) string {
	return decimal.New(key, -2).StringFixed(2)
}

// internal/report/pdf.go
package report

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"
)

// Renderer geometry. A4 portrait in points, 50pt margin on every side.
const (
	pageMargin   = 50.0
	contentWidth = 595.28 - 2*pageMargin
	boxPadding   = 20.0
)

type pdfWriter struct {
	doc *gofpdf.Fpdf
}

// RenderPDF maps an assembled block sequence onto a paginated A4 document
// and returns the finished byte stream.
func RenderPDF(blocks []Block) ([]byte, error) {
	w := &pdfWriter{doc: gofpdf.New("P", "pt", "A4", "")}
	w.doc.SetMargins(pageMargin, pageMargin, pageMargin)
	w.doc.SetAutoPageBreak(true, pageMargin)
	w.doc.AddPage()

	for _, block := range blocks {
		switch b := block.(type) {
		case Heading:
			w.heading(b)
		case Paragraph:
			w.paragraph(b)
		case ListBlock:
			w.list(b)
		case KeyValueBlock:
			w.keyValue(b)
		case PageBreak:
			w.doc.AddPage()
		case InfoBox:
			w.infoBox(b)
		}
	}

	var buf bytes.Buffer
	if err := w.doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output failed: %w", err)
	}
	return buf.Bytes(), nil
}

func (w *pdfWriter) heading(h Heading) {
	size, style, align := 13.0, "B", "L"
	switch h.Level {
	case 1:
		size, align = 28, "C"
	case 2:
		size, style = 16, "BU"
	case 3:
		size = 14
	}

	w.setTextColor(h.Color)
	w.doc.SetFont("Helvetica", style, size)
	w.doc.MultiCell(contentWidth, size*1.2, h.Text, "", align, false)
	w.doc.Ln(size * 0.4)
}

func (w *pdfWriter) paragraph(p Paragraph) {
	w.setTextColor(p.Color)
	w.doc.SetFont("Helvetica", "", 10)
	w.doc.MultiCell(contentWidth, 14, p.Text, "", alignCode(p.Align), false)
	w.doc.Ln(10)
}

func (w *pdfWriter) list(l ListBlock) {
	w.setTextColor(colorBody)
	w.doc.SetFont("Helvetica", "", 10)

	align := "L"
	if l.Justified {
		align = "J"
	}

	for i, item := range l.Items {
		marker := "- "
		if l.Numbered {
			marker = strconv.Itoa(i+1) + ". "
		}
		w.doc.SetX(pageMargin + boxPadding)
		w.doc.MultiCell(contentWidth-boxPadding, 14, marker+item, "", align, false)
		w.doc.Ln(4)
	}
	w.doc.Ln(6)
}

func (w *pdfWriter) keyValue(kv KeyValueBlock) {
	w.setTextColor(colorTitle)
	w.doc.SetFont("Helvetica", "B", 11)
	w.doc.MultiCell(contentWidth, 14, kv.Key+":", "", "L", false)

	w.setTextColor(colorBody)
	w.doc.SetFont("Helvetica", "", 10)
	w.doc.SetX(pageMargin + boxPadding)
	w.doc.MultiCell(contentWidth-boxPadding, 14, kv.Value, "", "J", false)
	w.doc.Ln(8)
}

func (w *pdfWriter) infoBox(b InfoBox) {
	boxHeight := 35.0 + 15.0*float64(len(b.Lines))
	top := w.doc.GetY()

	w.doc.SetFillColor(0xf0, 0xf9, 0xff)
	w.doc.SetDrawColor(0x3b, 0x82, 0xf6)
	w.doc.Rect(pageMargin, top, contentWidth, boxHeight, "FD")

	w.setTextColor(colorBoxTitle)
	w.doc.SetFont("Helvetica", "B", 12)
	w.doc.SetXY(pageMargin+boxPadding, top+15)
	w.doc.CellFormat(contentWidth-2*boxPadding, 14, b.Title, "", 0, "L", false, 0, "")

	w.setTextColor(colorBody)
	w.doc.SetFont("Helvetica", "", 10)
	for i, line := range b.Lines {
		w.doc.SetXY(pageMargin+boxPadding, top+33+15*float64(i))
		w.doc.CellFormat(contentWidth-2*boxPadding, 12, line, "", 0, "L", false, 0, "")
	}

	w.doc.SetY(top + boxHeight + boxPadding)
}

func (w *pdfWriter) setTextColor(hex string) {
	r, g, b := parseHexColor(hex)
	w.doc.SetTextColor(r, g, b)
}

func alignCode(a Alignment) string {
	switch a {
	case AlignCenter:
		return "C"
	case AlignJustify:
		return "J"
	default:
		return "L"
	}
}

func parseHexColor(hex string) (int, int, int) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0
	}
	r, err1 := strconv.ParseUint(hex[1:3], 16, 8)
	g, err2 := strconv.ParseUint(hex[3:5], 16, 8)
	b, err3 := strconv.ParseUint(hex[5:7], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, 0, 0
	}
	return int(r), int(g), int(b)
}

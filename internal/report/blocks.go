// internal/report/blocks.go
package report

// Document blocks are the structural units of an assembled report, produced
// in final order by Assemble and consumed by the PDF renderer. Assembly does
// no layout math; coordinates and font metrics belong to the renderer.

type Alignment string

const (
	AlignLeft    Alignment = "left"
	AlignCenter  Alignment = "center"
	AlignJustify Alignment = "justify"
)

type Block interface {
	blockKind() string
}

// Heading levels: 1 display/title, 2 section, 3 subsection, 4 entry.
type Heading struct {
	Text  string
	Level int
	Color string // hex color hint for the renderer
}

type Paragraph struct {
	Text  string
	Align Alignment
	Color string
}

type ListBlock struct {
	Items     []string
	Numbered  bool
	Justified bool
}

type KeyValueBlock struct {
	Key   string
	Value string
}

type PageBreak struct{}

type InfoBox struct {
	Title string
	Lines []string
}

func (Heading) blockKind() string       { return "heading" }
func (Paragraph) blockKind() string     { return "paragraph" }
func (ListBlock) blockKind() string     { return "list" }
func (KeyValueBlock) blockKind() string { return "keyvalue" }
func (PageBreak) blockKind() string     { return "pagebreak" }
func (InfoBox) blockKind() string       { return "infobox" }

// Color hints shared across sections.
const (
	colorTitle    = "#1e40af"
	colorSubtitle = "#6b7280"
	colorBody     = "#374151"
	colorBoxTitle = "#1e3a8a"
	colorAccent   = "#7c3aed"
	colorScoreHdr = "#111827"
	colorGood     = "#059669"
	colorWarn     = "#d97706"
	colorBad      = "#dc2626"
	colorFooter   = "#9ca3af"
)

// internal/report/pdf_test.go
package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPDFProducesDocument(t *testing.T) {
	blocks := Assemble(scoredProduct(82), fullAnalysis(), reportDate())

	pdf, err := RenderPDF(blocks)
	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestRenderPDFHandlesEveryBlockKind(t *testing.T) {
	blocks := []Block{
		Heading{Text: "TITLE", Level: 1, Color: colorTitle},
		Paragraph{Text: "centered", Align: AlignCenter, Color: colorSubtitle},
		InfoBox{Title: "BOX", Lines: []string{"a", "b"}},
		Heading{Text: "SECTION", Level: 2, Color: colorTitle},
		ListBlock{Items: []string{"one", "two"}, Numbered: true},
		KeyValueBlock{Key: "material", Value: "bamboo"},
		PageBreak{},
		ListBlock{Items: []string{"free-form"}, Justified: true},
		Paragraph{Text: "justified body text", Align: AlignJustify, Color: colorBody},
	}

	pdf, err := RenderPDF(blocks)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestRenderPDFEmptySequence(t *testing.T) {
	pdf, err := RenderPDF(nil)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestParseHexColor(t *testing.T) {
	r, g, b := parseHexColor("#1e40af")
	assert.Equal(t, []int{0x1e, 0x40, 0xaf}, []int{r, g, b})

	r, g, b = parseHexColor("bogus")
	assert.Equal(t, []int{0, 0, 0}, []int{r, g, b})
}

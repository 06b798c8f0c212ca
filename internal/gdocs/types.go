package gdocs

import (
	"strings"
	"unicode/utf8"

	docs "google.golang.org/api/docs/v1"
)

// OutlineElement describes one structural element of a document body with
// its index range. The outline is what callers consult before issuing
// index-addressed operations.
type OutlineElement struct {
	Type       string `json:"type"` // "paragraph", "table", "sectionBreak", "tableOfContents"
	StartIndex int64  `json:"startIndex"`
	EndIndex   int64  `json:"endIndex"`
	// Heading is the named paragraph style, set for paragraphs only.
	Heading string `json:"heading,omitempty"`
	// Preview is the leading text of a paragraph, truncated.
	Preview string `json:"preview,omitempty"`
	// Rows and Columns are set for tables only.
	Rows    int64 `json:"rows,omitempty"`
	Columns int64 `json:"columns,omitempty"`
}

const outlinePreviewLen = 64

// DocumentOutline flattens a document body into outline elements. Index
// ranges are as reported by the service, so they can be fed straight back
// into range-addressed operations.
func DocumentOutline(doc *docs.Document) []OutlineElement {
	if doc == nil || doc.Body == nil {
		return nil
	}

	outline := make([]OutlineElement, 0, len(doc.Body.Content))
	for _, element := range doc.Body.Content {
		oe := OutlineElement{
			StartIndex: element.StartIndex,
			EndIndex:   element.EndIndex,
		}
		switch {
		case element.Paragraph != nil:
			oe.Type = "paragraph"
			if style := element.Paragraph.ParagraphStyle; style != nil {
				oe.Heading = style.NamedStyleType
			}
			oe.Preview = paragraphPreview(element.Paragraph)
		case element.Table != nil:
			oe.Type = "table"
			oe.Rows = element.Table.Rows
			oe.Columns = element.Table.Columns
		case element.SectionBreak != nil:
			oe.Type = "sectionBreak"
		case element.TableOfContents != nil:
			oe.Type = "tableOfContents"
		default:
			continue
		}
		outline = append(outline, oe)
	}
	return outline
}

// DocumentText extracts the plain text of a document body. Tables are
// flattened cell by cell in reading order.
func DocumentText(doc *docs.Document) string {
	if doc == nil || doc.Body == nil {
		return ""
	}

	var text strings.Builder
	for _, element := range doc.Body.Content {
		writeElementText(&text, element)
	}
	return text.String()
}

func writeElementText(text *strings.Builder, element *docs.StructuralElement) {
	switch {
	case element.Paragraph != nil:
		for _, pe := range element.Paragraph.Elements {
			if pe.TextRun != nil {
				text.WriteString(pe.TextRun.Content)
			}
		}
	case element.Table != nil:
		for _, row := range element.Table.TableRows {
			for _, cell := range row.TableCells {
				for _, cellElement := range cell.Content {
					writeElementText(text, cellElement)
				}
			}
		}
	}
}

func paragraphPreview(p *docs.Paragraph) string {
	var text strings.Builder
	for _, pe := range p.Elements {
		if pe.TextRun != nil {
			text.WriteString(pe.TextRun.Content)
		}
		if text.Len() >= outlinePreviewLen {
			break
		}
	}
	preview := strings.TrimRight(text.String(), "\n")
	if len(preview) > outlinePreviewLen {
		cut := outlinePreviewLen
		for cut > 0 && !utf8.RuneStart(preview[cut]) {
			cut--
		}
		preview = preview[:cut]
	}
	return preview
}

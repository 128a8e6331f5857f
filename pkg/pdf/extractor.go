package pdf

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PageMarkerPrefix starts every page boundary marker in extracted text.
// Downstream consumers (mind map fallback, highlight matching) scan for it,
// so the format must stay stable.
const PageMarkerPrefix = "[Page"

type Extracted struct {
	Text     string // Full text with [Page N] markers
	NumPages int
	FileName string
	FilePath string
}

// Extract reads a PDF and returns its plain text with a "[Page N]" marker in
// front of every page, 1-based. Pages that fail to decode contribute only
// their marker; a document that yields no text at all is not an error here,
// the caller decides how to degrade.
func Extract(filePath string) (*Extracted, error) {
	file, reader, err := pdf.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer file.Close()

	numPages := reader.NumPage()
	var builder strings.Builder

	for pageNum := 1; pageNum <= numPages; pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		builder.WriteString(fmt.Sprintf("[Page %d]\n", pageNum))

		pageText, err := page.GetPlainText(nil)
		if err == nil {
			builder.WriteString(pageText)
		}
		builder.WriteString("\n\n")
	}

	return &Extracted{
		Text:     builder.String(),
		NumPages: numPages,
		FileName: filepath.Base(filePath),
		FilePath: filePath,
	}, nil
}

package pdftext

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"

	appLog "syllabuscal/internal/log"
)

// PlainProvider reads the embedded text layer with a pure-Go parser. It has
// no layout analysis but copes with some files MuPDF returns nothing for.
type PlainProvider struct{}

func (PlainProvider) Name() string { return "plain" }

func (PlainProvider) TryExtract(data []byte) (pages []Page) {
	// Malformed streams can panic deep inside the parser.
	defer func() {
		if r := recover(); r != nil {
			appLog.Error("plain extraction panicked", fmt.Errorf("%v", r))
			pages = nil
		}
	}()

	if len(data) == 0 {
		return nil
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		appLog.Debug("plain extractor could not open document", "err", err)
		return nil
	}

	fonts := make(map[string]*pdf.Font)
	numPages := reader.NumPage()
	pages = make([]Page, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, Page{Number: i})
			continue
		}

		for _, name := range page.Fonts() {
			if _, ok := fonts[name]; !ok {
				f := page.Font(name)
				fonts[name] = &f
			}
		}

		text, err := page.GetPlainText(fonts)
		if err != nil {
			appLog.Debug("plain page text failed", "page", i, "err", err)
			text = ""
		}
		pages = append(pages, Page{Number: i, Text: text})
	}
	return pages
}

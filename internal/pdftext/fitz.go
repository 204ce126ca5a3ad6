package pdftext

import (
	"fmt"

	"github.com/gen2brain/go-fitz"

	appLog "syllabuscal/internal/log"
)

// FitzProvider extracts text with MuPDF, which keeps the reading order of
// multi-column layouts.
type FitzProvider struct{}

func (FitzProvider) Name() string { return "mupdf" }

func (FitzProvider) TryExtract(pdf []byte) (pages []Page) {
	defer func() {
		if r := recover(); r != nil {
			appLog.Error("mupdf extraction panicked", fmt.Errorf("%v", r))
			pages = nil
		}
	}()

	if len(pdf) == 0 {
		return nil
	}

	doc, err := fitz.NewFromMemory(pdf)
	if err != nil {
		appLog.Debug("mupdf could not open document", "err", err)
		return nil
	}
	defer doc.Close()

	numPages := doc.NumPage()
	pages = make([]Page, 0, numPages)
	for i := 0; i < numPages; i++ {
		text, err := doc.Text(i)
		if err != nil {
			// Keep the page slot so numbering stays aligned.
			appLog.Debug("mupdf page text failed", "page", i+1, "err", err)
			text = ""
		}
		pages = append(pages, Page{Number: i + 1, Text: text})
	}
	return pages
}

// Package pdftext pulls per-page text out of PDF bytes through an ordered
// chain of extractors. Malformed input never fails the caller: an extractor
// that cannot read the document contributes no pages.
package pdftext

import (
	"strings"

	appLog "syllabuscal/internal/log"
)

// Page is the text of one PDF page. Number is 1-based.
type Page struct {
	Number int
	Text   string
}

// Provider is one way of turning PDF bytes into page text.
type Provider interface {
	Name() string
	// TryExtract returns every page of the document, empty pages included,
	// or nil when the document cannot be read at all.
	TryExtract(pdf []byte) []Page
}

// HasText reports whether any page carries non-whitespace text.
func HasText(pages []Page) bool {
	for _, p := range pages {
		if strings.TrimSpace(p.Text) != "" {
			return true
		}
	}
	return false
}

// Chain tries providers in order and keeps the first whole-document result
// that has any text. When no provider produces text, the last provider's
// page list is returned as-is.
type Chain struct {
	providers []Provider
}

func NewChain(providers ...Provider) *Chain {
	return &Chain{providers: providers}
}

// DefaultChain is the layout-aware MuPDF extractor followed by the plain
// structural extractor.
func DefaultChain() *Chain {
	return NewChain(FitzProvider{}, PlainProvider{})
}

// Acquire returns the per-page text of pdf.
func (c *Chain) Acquire(pdf []byte) []Page {
	var pages []Page
	for _, p := range c.providers {
		pages = p.TryExtract(pdf)
		if HasText(pages) {
			appLog.Debug("pdf text acquired", "provider", p.Name(), "pages", len(pages))
			return pages
		}
		appLog.Debug("pdf provider yielded no text", "provider", p.Name(), "pages", len(pages))
	}
	return pages
}

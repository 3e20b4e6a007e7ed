package scraper

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"opencanada-grants-parser/internal/normalize"
)

type Scraper struct {
	selectors *Selectors
}

func NewScraper(selectors *Selectors) *Scraper {
	return &Scraper{
		selectors: selectors,
	}
}

// Items parses a listing page and returns its record subtrees in document
// order. An empty result means the listing has run out of pages.
func (s *Scraper) Items(html string) ([]*goquery.Selection, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var items []*goquery.Selection
	doc.Find(s.selectors.Item).Each(func(_ int, sel *goquery.Selection) {
		items = append(items, sel)
	})

	return items, nil
}

// DateText reads the raw agreement-start date string from a record subtree.
// The cutoff gate consumes this before any other field is touched.
func (s *Scraper) DateText(item *goquery.Selection) string {
	return strings.TrimSpace(item.Find(s.selectors.DateCheck).First().Text())
}

// Extract pulls all record fields from one listing item. Missing markup
// degrades the affected field to an empty string, never to an error.
func (s *Scraper) Extract(item *goquery.Selection) *Record {
	sel := s.selectors

	return &Record{
		Agreement:           s.firstParagraphHTML(item.Find(sel.Info).First()),
		AgreementNumber:     s.firstParagraphHTML(s.blockWithLabel(item, sel.Info, sel.Labels.AgreementNumber)),
		DateRange:           s.labeledText(item, sel.Info, sel.Labels.Duration),
		DateAgreed:          s.DateText(item),
		Description:         normalize.StripLabel(s.firstParagraphHTML(s.blockWithLabel(item, sel.Generic, sel.Labels.Description)), sel.Labels.Description),
		Recipient:           s.labeledText(item, sel.Generic, sel.Labels.Organization),
		RecipientPublicName: s.firstParagraphHTML(item.Find(sel.Name).First()),
		Price:               innerHTML(item.Find(sel.Price).First()),
		Location:            s.labeledText(item, sel.Generic, sel.Labels.Location),
	}
}

// blockWithLabel finds the first block under item matching selector whose
// rendered text contains the label word. Returns nil when nothing matches.
func (s *Scraper) blockWithLabel(item *goquery.Selection, selector, label string) *goquery.Selection {
	var found *goquery.Selection
	item.Find(selector).EachWithBreak(func(_ int, block *goquery.Selection) bool {
		if strings.Contains(block.Text(), label) {
			found = block
			return false
		}
		return true
	})
	return found
}

// firstParagraphHTML takes the inner markup of the first paragraph node
// inside a block.
func (s *Scraper) firstParagraphHTML(block *goquery.Selection) string {
	if block == nil || block.Length() == 0 {
		return ""
	}
	return innerHTML(block.Find(s.selectors.Paragraph).First())
}

// labeledText concatenates the full text of the label-matching block and
// strips the label word itself.
func (s *Scraper) labeledText(item *goquery.Selection, selector, label string) string {
	block := s.blockWithLabel(item, selector, label)
	if block == nil {
		return ""
	}
	return normalize.StripLabel(block.Text(), label)
}

func innerHTML(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	html, err := sel.Html()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(html)
}

// internal/webparser/extractor.go
package webparser

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// ParsedArticle is the result of one extraction. Absent fields are nil
// and serialize as JSON null.
type ParsedArticle struct {
	Title   *string `json:"title"`
	Date    *string `json:"date"`
	Content *string `json:"content"`
}

// Extractor applies ordered selector heuristics to article HTML.
// It holds no mutable state and is safe for concurrent use.
type Extractor struct {
	rules Rules
}

// NewExtractor creates an extractor running the given rules.
func NewExtractor(rules Rules) *Extractor {
	return &Extractor{rules: rules}
}

// Extract derives title, date and main text from raw HTML. It never fails:
// whatever cannot be found is left nil.
func (e *Extractor) Extract(html string) ParsedArticle {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ParsedArticle{}
	}
	return ParsedArticle{
		Title:   optional(e.extractTitle(doc)),
		Date:    optional(e.extractDate(doc)),
		Content: optional(e.extractContent(doc)),
	}
}

func (e *Extractor) extractTitle(doc *goquery.Document) string {
	for _, sel := range e.rules.Title {
		if text := strings.TrimSpace(doc.Find(sel).First().Text()); text != "" {
			return text
		}
	}
	if e.rules.TitleFallback == "" {
		return ""
	}
	return strings.TrimSpace(doc.Find(e.rules.TitleFallback).Text())
}

func (e *Extractor) extractDate(doc *goquery.Document) string {
	for _, rule := range e.rules.Date {
		el := doc.Find(rule.Selector).First()
		if el.Length() == 0 {
			continue
		}
		if v := firstAttr(el, rule.Attrs); v != "" {
			return v
		}
		if text := strings.TrimSpace(el.Text()); text != "" {
			return text
		}
	}
	return ""
}

// extractContent returns the first container whose cleaned text is longer
// than MinContentLength, else the cleaned fallback container.
// Noise removal mutates doc, so later tiers see the already cleaned tree.
func (e *Extractor) extractContent(doc *goquery.Document) string {
	for _, sel := range e.rules.Content {
		found := doc.Find(sel).First()
		if found.Length() == 0 {
			continue
		}
		text := e.cleanText(found)
		if utf8.RuneCountInString(text) > e.rules.MinContentLength {
			return Normalize(text)
		}
	}
	if e.rules.ContentFallback == "" {
		return ""
	}
	return Normalize(e.cleanText(doc.Find(e.rules.ContentFallback)))
}

func (e *Extractor) cleanText(sel *goquery.Selection) string {
	if e.rules.Noise != "" {
		sel.Find(e.rules.Noise).Remove()
	}
	return strings.TrimSpace(sel.Text())
}

func firstAttr(el *goquery.Selection, attrs []string) string {
	for _, name := range attrs {
		if v, ok := el.Attr(name); ok {
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		}
	}
	return ""
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

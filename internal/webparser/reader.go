package webparser

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/go-shiori/go-readability"
)

// ReaderView is go-readability's reading of the same page. It is used to
// cross-check the selector rules, never to build the ParsedArticle.
type ReaderView struct {
	Title    string
	Byline   string
	SiteName string
	Excerpt  string
	Text     string
}

// Comparison summarizes how the selector extraction and the reader view
// agree on one page.
type Comparison struct {
	Reader       ReaderView
	TitleMatches bool
	ContentRunes int
	ReaderRunes  int
	Coverage     float64 // ContentRunes / ReaderRunes, 0 when the reader found nothing
	ReaderLonger bool
}

// Read runs go-readability over html. pageURL resolves relative links and
// may be nil.
func Read(html string, pageURL *url.URL) (ReaderView, error) {
	if pageURL == nil {
		pageURL = &url.URL{}
	}
	article, err := readability.FromReader(strings.NewReader(html), pageURL)
	if err != nil {
		return ReaderView{}, fmt.Errorf("readability failed: %w", err)
	}
	return ReaderView{
		Title:    strings.TrimSpace(article.Title),
		Byline:   strings.TrimSpace(article.Byline),
		SiteName: strings.TrimSpace(article.SiteName),
		Excerpt:  Normalize(article.Excerpt),
		Text:     Normalize(article.TextContent),
	}, nil
}

// Compare lines up an extraction result with the reader view of the page.
func Compare(article ParsedArticle, view ReaderView) Comparison {
	c := Comparison{
		Reader:      view,
		ReaderRunes: utf8.RuneCountInString(view.Text),
	}
	if article.Title != nil {
		c.TitleMatches = strings.EqualFold(Normalize(*article.Title), Normalize(view.Title))
	}
	if article.Content != nil {
		c.ContentRunes = utf8.RuneCountInString(*article.Content)
	}
	if c.ReaderRunes > 0 {
		c.Coverage = float64(c.ContentRunes) / float64(c.ReaderRunes)
	}
	c.ReaderLonger = c.ReaderRunes > c.ContentRunes
	return c
}

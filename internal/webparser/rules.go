package webparser

// AttrSelector is a CSS selector whose first match yields a value, taken
// from the first non-empty attribute in Attrs or else from its text.
type AttrSelector struct {
	Selector string
	Attrs    []string
}

// Rules is the ordered selector configuration the Extractor runs.
// Every list is tried first to last and the first usable match wins.
type Rules struct {
	Title         []string
	TitleFallback string

	Date []AttrSelector

	Content          []string
	ContentFallback  string
	Noise            string
	MinContentLength int // content must be strictly longer than this (in runes)
}

var dateAttrs = []string{"datetime", "content"}

// DefaultRules returns the selector tiers used for news and blog pages.
func DefaultRules() Rules {
	return Rules{
		Title: []string{
			"h1",
			"article h1",
			".post-title",
			".article-title",
			`[class*="title"]`,
			"title",
		},
		TitleFallback: "title",
		Date: []AttrSelector{
			{Selector: "time[datetime]", Attrs: dateAttrs},
			{Selector: "time", Attrs: dateAttrs},
			{Selector: `[class*="date"]`, Attrs: dateAttrs},
			{Selector: `[class*="published"]`, Attrs: dateAttrs},
			{Selector: `[class*="time"]`, Attrs: dateAttrs},
			{Selector: `meta[property="article:published_time"]`, Attrs: dateAttrs},
			{Selector: `meta[name="publish-date"]`, Attrs: dateAttrs},
			{Selector: `meta[name="date"]`, Attrs: dateAttrs},
		},
		Content: []string{
			"article",
			".post",
			".content",
			".article-content",
			`[class*="article"]`,
			`[class*="post-content"]`,
			`[class*="entry-content"]`,
			"main",
		},
		ContentFallback:  "body",
		Noise:            "script, style, nav, aside, .ad, .advertisement",
		MinContentLength: 100,
	}
}

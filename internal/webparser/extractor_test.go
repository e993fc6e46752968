package webparser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func extract(html string) ParsedArticle {
	return NewExtractor(DefaultRules()).Extract(html)
}

func TestExtract_TitlePriority(t *testing.T) {
	html := `<html><head><title>Doc title</title></head><body>
		<div class="post-title">Class title</div>
		<h1>  Heading title  </h1>
	</body></html>`

	got := extract(html)
	require.NotNil(t, got.Title)
	assert.Equal(t, "Heading title", *got.Title)
}

func TestExtract_TitleSkipsEmptyMatches(t *testing.T) {
	html := `<html><head><title>Doc title</title></head><body>
		<h1>   </h1>
		<span class="article-title">Article title</span>
	</body></html>`

	got := extract(html)
	require.NotNil(t, got.Title)
	assert.Equal(t, "Article title", *got.Title)
}

func TestExtract_TitleFallsBackToTitleTag(t *testing.T) {
	html := `<html><head><title> Only the tag </title></head><body><p>text</p></body></html>`

	got := extract(html)
	require.NotNil(t, got.Title)
	assert.Equal(t, "Only the tag", *got.Title)
}

func TestExtract_TitleNilWhenNothingFound(t *testing.T) {
	html := `<html><head><title>   </title></head><body><p>text</p></body></html>`

	got := extract(html)
	assert.Nil(t, got.Title)
}

func TestExtract_DatePrefersDatetimeAttribute(t *testing.T) {
	html := `<html><body><time datetime="2024-03-01T10:00:00Z">March 1</time></body></html>`

	got := extract(html)
	require.NotNil(t, got.Date)
	assert.Equal(t, "2024-03-01T10:00:00Z", *got.Date)
}

func TestExtract_DateFromTimeText(t *testing.T) {
	html := `<html><body><time> 1 марта 2024 </time></body></html>`

	got := extract(html)
	require.NotNil(t, got.Date)
	assert.Equal(t, "1 марта 2024", *got.Date)
}

func TestExtract_DateFromClassText(t *testing.T) {
	html := `<html><body><span class="entry-published">Yesterday</span></body></html>`

	got := extract(html)
	require.NotNil(t, got.Date)
	assert.Equal(t, "Yesterday", *got.Date)
}

func TestExtract_DateFromMetaContent(t *testing.T) {
	html := `<html><head>
		<meta property="article:published_time" content="2023-12-31">
	</head><body><p>no dates here</p></body></html>`

	got := extract(html)
	require.NotNil(t, got.Date)
	assert.Equal(t, "2023-12-31", *got.Date)
}

func TestExtract_DateSkipsEmptyCandidates(t *testing.T) {
	html := `<html><head><meta name="date" content="2020-05-05"></head>
		<body><time></time></body></html>`

	got := extract(html)
	require.NotNil(t, got.Date)
	assert.Equal(t, "2020-05-05", *got.Date)
}

func TestExtract_DateNilWhenAbsent(t *testing.T) {
	got := extract(`<html><body><p>plain</p></body></html>`)
	assert.Nil(t, got.Date)
}

func TestExtract_ContentFromArticle(t *testing.T) {
	body := strings.Repeat("Long article sentence. ", 10)
	html := `<html><body><nav>Menu</nav><article>
		<script>track()</script>
		<p>` + body + `</p>
		<div class="ad">Buy now</div>
	</article></body></html>`

	got := extract(html)
	require.NotNil(t, got.Content)
	assert.Equal(t, strings.TrimSpace(body), *got.Content)
	assert.NotContains(t, *got.Content, "Buy now")
	assert.NotContains(t, *got.Content, "track()")
}

func TestExtract_ContentPrefersLaterLongerContainer(t *testing.T) {
	long := strings.Repeat("word ", 40)
	html := `<html><body>
		<article>Too short to count.</article>
		<main>` + long + `</main>
	</body></html>`

	got := extract(html)
	require.NotNil(t, got.Content)
	assert.Equal(t, strings.TrimSpace(long), *got.Content)
}

func TestExtract_ContentLengthCountsCharactersNotBytes(t *testing.T) {
	// 60 Cyrillic letters are 120 bytes but only 60 characters.
	short := strings.Repeat("я", 60)
	long := strings.Repeat("слово ", 30)
	html := `<html><body>
		<article>` + short + `</article>
		<main>` + long + `</main>
	</body></html>`

	got := extract(html)
	require.NotNil(t, got.Content)
	assert.Equal(t, strings.TrimSpace(long), *got.Content)
}

func TestExtract_ContentFallsBackToBody(t *testing.T) {
	html := "<html><body>\n<nav>menu</nav>\n<article>Short</article>\n<p>Tail</p>\n<script>var x = 1</script>\n</body></html>"

	got := extract(html)
	require.NotNil(t, got.Content)
	assert.Equal(t, "Short Tail", *got.Content)
}

func TestExtract_ContentNilForEmptyBody(t *testing.T) {
	got := extract(`<html><body><script>only()</script></body></html>`)
	assert.Nil(t, got.Content)
}

func TestExtract_ContentWhitespaceInvariant(t *testing.T) {
	text := "First\tline\n\n   second line   " + strings.Repeat("padding text ", 10)
	got := extract(`<html><body><article>  ` + text + `  </article></body></html>`)

	require.NotNil(t, got.Content)
	c := *got.Content
	assert.NotContains(t, c, "  ")
	assert.NotContains(t, c, "\n")
	assert.NotContains(t, c, "\t")
	assert.Equal(t, strings.TrimSpace(c), c)
	assert.True(t, strings.HasPrefix(c, "First line second line"))
}

func TestExtract_MalformedHTMLDoesNotFail(t *testing.T) {
	html := `<html><body><h1>Broken <b>title<article><p>unclosed <div><i>` + strings.Repeat("text ", 30)

	got := extract(html)
	require.NotNil(t, got.Title)
	require.NotNil(t, got.Content)
	assert.Contains(t, *got.Content, "text text")
}

func TestExtract_EmptyInput(t *testing.T) {
	got := extract("")
	assert.Nil(t, got.Title)
	assert.Nil(t, got.Date)
	assert.Nil(t, got.Content)
}

func TestExtract_CustomRules(t *testing.T) {
	rules := Rules{
		Title:            []string{".headline"},
		Content:          []string{"#story"},
		ContentFallback:  "body",
		MinContentLength: 5,
	}
	html := `<html><head><title>Ignored</title></head><body>
		<h1>Also ignored</h1>
		<p class="headline">Custom headline</p>
		<div id="story">Story text here</div>
	</body></html>`

	got := NewExtractor(rules).Extract(html)
	require.NotNil(t, got.Title)
	assert.Equal(t, "Custom headline", *got.Title)
	require.NotNil(t, got.Content)
	assert.Equal(t, "Story text here", *got.Content)
	assert.Nil(t, got.Date)
}

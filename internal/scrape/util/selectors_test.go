package util

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobmatch-engine/internal/domain"
)

func doc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	d, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return d
}

func TestChainFirstMatchWins(t *testing.T) {
	d := doc(t, `<div><span class="title">second</span><h3 class="job-title"> first  </h3></div>`)
	ch := Selectors("h3.job-title", "span.title")
	assert.Equal(t, "first", ch.Extract(d.Selection))

	ch = Selectors("h2.missing", "span.title")
	assert.Equal(t, "second", ch.Extract(d.Selection))

	assert.Equal(t, "", Selectors("h2.missing").Extract(d.Selection))
}

func TestAttrExtractor(t *testing.T) {
	d := doc(t, `<a class="job" title="Data Engineer" href="/x">View</a>`)
	assert.Equal(t, "Data Engineer", Attr{Sel: "a.job", Name: "title"}.Extract(d.Selection))
	assert.Equal(t, "", Attr{Sel: "a.job", Name: "data-id"}.Extract(d.Selection))
}

func TestLayoutParse(t *testing.T) {
	layout := Layout{
		Containers:  []string{"article.modern", "div.job-card"},
		Title:       Selectors("h3.job-title", "span.title"),
		Description: Selectors("div.description"),
	}

	html := `<html><body>
<div class="job-card"><span class="title">Only title</span></div>
<div class="job-card"><div class="description">Only description</div></div>
<div class="job-card"><p>nothing useful</p></div>
<div class="job-card"><h3 class="job-title">Both</h3><div class="description">Full</div></div>
</body></html>`

	var skipped []int
	got := layout.Parse(doc(t, html), domain.SourceSeek, 10, func(i int, _ string) { skipped = append(skipped, i) })

	assert.Equal(t, []domain.JobPosting{
		{Source: domain.SourceSeek, Title: "Only title", Description: domain.NoDescription},
		{Source: domain.SourceSeek, Title: domain.NoTitle, Description: "Only description"},
		{Source: domain.SourceSeek, Title: "Both", Description: "Full"},
	}, got)
	assert.Equal(t, []int{2}, skipped)
}

func TestLayoutParseCapsResults(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 15; i++ {
		b.WriteString(`<div class="job-card"><span class="title">t</span></div>`)
	}
	layout := Layout{Containers: []string{"div.job-card"}, Title: Selectors("span.title")}

	got := layout.Parse(doc(t, b.String()), domain.SourceSeek, 10, nil)
	assert.Len(t, got, 10)
}

func TestLayoutNoContainers(t *testing.T) {
	layout := Layout{Containers: []string{"div.job-card"}, Title: Selectors("span.title")}
	assert.Empty(t, layout.Parse(doc(t, `<p>blocked</p>`), domain.SourceSeek, 10, nil))
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "a b c", CleanText("  a b \n\t c "))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, []int{1, 2}, Truncate([]int{1, 2, 3}, 2))
	assert.Equal(t, []int{1}, Truncate([]int{1}, 5))
	assert.Equal(t, []int{1, 2}, Truncate([]int{1, 2}, -1))
}

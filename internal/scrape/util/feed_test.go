package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobmatch-engine/internal/domain"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>jobs</title>
<item><title>Go Engineer</title><description>&lt;b&gt;Build&lt;/b&gt; services in Go</description></item>
<item><title></title><description></description></item>
<item><title>Title only</title></item>
</channel></rss>`

func TestParseFeed(t *testing.T) {
	got, err := ParseFeed(strings.NewReader(sampleFeed), domain.SourceIndeed, 10)
	require.NoError(t, err)
	assert.Equal(t, []domain.JobPosting{
		{Source: domain.SourceIndeed, Title: "Go Engineer", Description: "Build services in Go"},
		{Source: domain.SourceIndeed, Title: "Title only", Description: domain.NoDescription},
	}, got)
}

func TestParseFeedRejectsGarbage(t *testing.T) {
	_, err := ParseFeed(strings.NewReader("not a feed"), domain.SourceIndeed, 10)
	assert.Error(t, err)
}

func TestStripHTML(t *testing.T) {
	assert.Equal(t, "a b", StripHTML("<p>a</p> <em>b</em>"))
	assert.Equal(t, "plain", StripHTML(" plain "))
}

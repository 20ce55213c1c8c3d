package util

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"jobmatch-engine/internal/domain"
)

// ParseFeed reads an RSS/Atom document and turns up to max items into
// postings. Items with neither a title nor a description are skipped.
func ParseFeed(r io.Reader, src domain.Source, max int) ([]domain.JobPosting, error) {
	feed, err := gofeed.NewParser().Parse(r)
	if err != nil {
		return nil, err
	}
	var out []domain.JobPosting
	for _, it := range feed.Items {
		if max > 0 && len(out) >= max {
			break
		}
		if it == nil {
			continue
		}
		desc := it.Description
		if desc == "" {
			desc = it.Content
		}
		job := Posting(src, StripHTML(it.Title), StripHTML(desc))
		if job.Empty() {
			continue
		}
		out = append(out, job)
	}
	return out, nil
}

// Posting builds a posting, substituting sentinels for missing fields.
func Posting(src domain.Source, title, desc string) domain.JobPosting {
	title = CleanText(title)
	desc = CleanText(desc)
	if title == "" {
		title = domain.NoTitle
	}
	if desc == "" {
		desc = domain.NoDescription
	}
	return domain.JobPosting{Source: src, Title: title, Description: desc}
}

// StripHTML returns the text content of an HTML fragment.
func StripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return CleanText(s)
	}
	d, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return CleanText(s)
	}
	return CleanText(d.Text())
}

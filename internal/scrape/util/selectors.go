package util

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"jobmatch-engine/internal/domain"
)

// FieldExtractor pulls one field out of a posting container. An empty result
// means "not found here, try the next one".
type FieldExtractor interface {
	Extract(container *goquery.Selection) string
}

// Selector extracts the cleaned text of the first element matching a CSS selector.
type Selector string

func (s Selector) Extract(c *goquery.Selection) string {
	return CleanText(c.Find(string(s)).First().Text())
}

// Attr extracts an attribute of the first element matching Sel.
type Attr struct {
	Sel  string
	Name string
}

func (a Attr) Extract(c *goquery.Selection) string {
	v, _ := c.Find(a.Sel).First().Attr(a.Name)
	return CleanText(v)
}

// Chain tries extractors in priority order; the first non-empty value wins.
type Chain []FieldExtractor

func (ch Chain) Extract(c *goquery.Selection) string {
	for _, fe := range ch {
		if fe == nil {
			continue
		}
		if v := fe.Extract(c); v != "" {
			return v
		}
	}
	return ""
}

// Selectors builds a Chain from plain CSS selectors.
func Selectors(sels ...string) Chain {
	ch := make(Chain, 0, len(sels))
	for _, s := range sels {
		ch = append(ch, Selector(s))
	}
	return ch
}

// Layout describes how postings are laid out on a results page.
type Layout struct {
	Containers  []string
	Title       FieldExtractor
	Description FieldExtractor
}

// FindContainers returns the elements matched by the first container selector
// that matches anything.
func (l Layout) FindContainers(doc *goquery.Document) *goquery.Selection {
	for _, sel := range l.Containers {
		if found := doc.Find(sel); found.Length() > 0 {
			return found
		}
	}
	return doc.Selection.Slice(0, 0)
}

// Parse extracts up to max postings. Missing fields become sentinels; a
// container where both fields miss is skipped. onSkip is called for
// containers that could not be parsed.
func (l Layout) Parse(doc *goquery.Document, src domain.Source, max int, onSkip func(i int, reason string)) []domain.JobPosting {
	var out []domain.JobPosting
	l.FindContainers(doc).EachWithBreak(func(i int, c *goquery.Selection) bool {
		job, reason := l.parseOne(c, src)
		if reason != "" {
			if onSkip != nil {
				onSkip(i, reason)
			}
			return true
		}
		out = append(out, job)
		return max <= 0 || len(out) < max
	})
	return out
}

func (l Layout) parseOne(c *goquery.Selection, src domain.Source) (job domain.JobPosting, reason string) {
	defer func() {
		if r := recover(); r != nil {
			reason = "malformed posting"
		}
	}()

	title := extract(l.Title, c)
	desc := extract(l.Description, c)
	if title == "" && desc == "" {
		return domain.JobPosting{}, "no title or description"
	}
	if title == "" {
		title = domain.NoTitle
	}
	if desc == "" {
		desc = domain.NoDescription
	}
	return domain.JobPosting{Source: src, Title: title, Description: desc}, ""
}

func extract(fe FieldExtractor, c *goquery.Selection) string {
	if fe == nil {
		return ""
	}
	return strings.TrimSpace(fe.Extract(c))
}

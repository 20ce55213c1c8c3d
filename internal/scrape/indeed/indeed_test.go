package indeed

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"jobmatch-engine/internal/domain"
	"jobmatch-engine/internal/scrape/types"
)

const feed = `<?xml version="1.0"?>
<rss version="2.0"><channel><title>Indeed</title>
<item><title>Python Developer - Acme</title><description>Django and &lt;b&gt;PostgreSQL&lt;/b&gt;</description></item>
<item><title>SRE</title><description>Kubernetes on-call</description></item>
</channel></rss>`

const emptyFeed = `<?xml version="1.0"?><rss version="2.0"><channel><title>Indeed</title></channel></rss>`

const page = `<html><body>
<div class="job_seen_beacon"><h2 class="jobTitle">Backend Engineer</h2><div class="job-snippet">Go, gRPC</div></div>
<div class="job_seen_beacon"><a data-jk="1" title="Analyst">x</a></div>
</body></html>`

func server(t *testing.T, rss, html string, rssStatus, htmlStatus int) (*httptest.Server, func() []string) {
	t.Helper()
	var (
		mu    sync.Mutex
		paths []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()
		switch r.URL.Path {
		case "/rss":
			w.WriteHeader(rssStatus)
			_, _ = io.WriteString(w, rss)
		case "/jobs":
			w.WriteHeader(htmlStatus)
			_, _ = io.WriteString(w, html)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, func() []string {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), paths...)
	}
}

func TestFetchFromRSS(t *testing.T) {
	srv, paths := server(t, feed, page, http.StatusOK, http.StatusOK)

	res := New(Config{BaseURL: srv.URL}, nil).Fetch(context.Background(), types.Query{Keyword: "python", Location: "Sydney", Country: "Australia"})

	assert.Empty(t, res.Warning)
	assert.Equal(t, []domain.JobPosting{
		{Source: domain.SourceIndeed, Title: "Python Developer - Acme", Description: "Django and PostgreSQL"},
		{Source: domain.SourceIndeed, Title: "SRE", Description: "Kubernetes on-call"},
	}, res.Postings)
	assert.Equal(t, []string{"/rss"}, paths())
}

func TestFetchFallsBackToHTML(t *testing.T) {
	srv, paths := server(t, emptyFeed, page, http.StatusOK, http.StatusOK)

	res := New(Config{BaseURL: srv.URL}, nil).Fetch(context.Background(), types.Query{Keyword: "go", Country: "Germany"})

	assert.Equal(t, []domain.JobPosting{
		{Source: domain.SourceIndeed, Title: "Backend Engineer", Description: "Go, gRPC"},
		{Source: domain.SourceIndeed, Title: "Analyst", Description: domain.NoDescription},
	}, res.Postings)
	assert.Equal(t, []string{"/rss", "/jobs"}, paths())
}

func TestFetchRSSBlockedHTMLOK(t *testing.T) {
	srv, _ := server(t, "", page, http.StatusForbidden, http.StatusOK)

	res := New(Config{BaseURL: srv.URL}, nil).Fetch(context.Background(), types.Query{Keyword: "go", Country: "Canada"})
	assert.Len(t, res.Postings, 2)
	assert.Empty(t, res.Warning)
}

func TestFetchNon200Everywhere(t *testing.T) {
	srv, _ := server(t, feed, page, http.StatusForbidden, http.StatusForbidden)

	res := New(Config{BaseURL: srv.URL}, nil).Fetch(context.Background(), types.Query{Keyword: "go", Country: "Canada"})
	assert.Empty(t, res.Postings)
	assert.Contains(t, res.Warning, "403")
}

func TestFetchUnsupportedCountry(t *testing.T) {
	res := New(Config{BaseURL: "http://127.0.0.1:1"}, nil).Fetch(context.Background(), types.Query{Keyword: "go", Country: "Atlantis"})
	assert.Empty(t, res.Postings)
	assert.NotEmpty(t, res.Warning)
}

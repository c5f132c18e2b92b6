package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listPage = `<html><body>
<article><h2><a href="/news/btc-breaks-out">BTC breaks out</a></h2><time>2h ago</time></article>
<article><h2><a href="https://example.com/eth">ETH follows</a></h2><time>3h ago</time></article>
<article><h2><a href="/news/third">Third story</a></h2><time>4h ago</time></article>
</body></html>`

func TestScrapeSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(listPage))
	}))
	defer srv.Close()

	s := NewScraper("bitcoin", 5*time.Second)
	src := Source{
		Name:    "TestSource",
		BaseURL: srv.URL,
		Selectors: Selectors{
			Container:   "article",
			Title:       "h2 a",
			URL:         "h2 a",
			PublishedAt: "time",
		},
	}

	headlines, err := s.scrapeSource(context.Background(), src, 2)
	require.NoError(t, err)
	require.Len(t, headlines, 2, "respects the per-source cap")

	assert.Equal(t, "BTC breaks out", headlines[0].Title)
	assert.Equal(t, srv.URL+"/news/btc-breaks-out", headlines[0].URL, "relative links are made absolute")
	assert.Equal(t, "https://example.com/eth", headlines[1].URL, "absolute links pass through")
	assert.Equal(t, "TestSource", headlines[0].Source)
	assert.Equal(t, "2h ago", headlines[0].PublishedAt)
}

func TestDomainOf(t *testing.T) {
	assert.Equal(t, "www.coindesk.com", domainOf("https://www.coindesk.com"))
	assert.Equal(t, "", domainOf("://bad"))
}

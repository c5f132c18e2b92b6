package news

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/gocolly/colly/v2"

	"bithumb-ai-trader/internal/interfaces"
	"bithumb-ai-trader/internal/logger"
	"bithumb-ai-trader/internal/types"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Scraper gathers recent crypto headlines from multiple sources
type Scraper struct {
	query   string
	sources []Source
	timeout time.Duration
	rest    *resty.Client
}

var _ interfaces.NewsProvider = (*Scraper)(nil)

// Source defines a news source configuration
type Source struct {
	Name      string
	BaseURL   string
	ListPath  string
	Selectors Selectors
	RateLimit time.Duration
}

// Selectors defines CSS selectors for extracting headline data
type Selectors struct {
	Container   string
	Title       string
	URL         string
	PublishedAt string
}

// NewScraper creates a scraper with default crypto news sources. query is
// the search term used for the fallback path, e.g. "bitcoin".
func NewScraper(query string, timeout time.Duration) *Scraper {
	return &Scraper{
		query:   query,
		sources: defaultSources(),
		timeout: timeout,
		rest: resty.New().
			SetTimeout(timeout).
			SetHeader("User-Agent", userAgent),
	}
}

func defaultSources() []Source {
	return []Source{
		{
			Name:     "CoinDesk",
			BaseURL:  "https://www.coindesk.com",
			ListPath: "/markets",
			Selectors: Selectors{
				Container:   "div.article-cardstyles__StyledWrapper-sc-q1x8lc-0, article",
				Title:       "h2 a, h3 a, h6 a",
				URL:         "h2 a, h3 a, h6 a",
				PublishedAt: "time",
			},
			RateLimit: 2 * time.Second,
		},
		{
			Name:     "Cointelegraph",
			BaseURL:  "https://cointelegraph.com",
			ListPath: "/tags/bitcoin",
			Selectors: Selectors{
				Container:   "article",
				Title:       "a span, h2 a",
				URL:         "a",
				PublishedAt: "time",
			},
			RateLimit: 2 * time.Second,
		},
	}
}

// Headlines fetches up to limit headlines across all sources. When every
// source comes back empty it falls back to a Google News search.
func (s *Scraper) Headlines(ctx context.Context, limit int) ([]types.NewsHeadline, error) {
	logger.Info(ctx, "Starting news scraping", "query", s.query, "sources", len(s.sources))

	perSource := limit / len(s.sources)
	if perSource < 1 {
		perSource = 1
	}

	all := []types.NewsHeadline{}
	for _, src := range s.sources {
		hs, err := s.scrapeSource(ctx, src, perSource)
		if err != nil {
			logger.ErrorWithErr(ctx, "Failed to scrape source", err, "source", src.Name)
			continue
		}
		all = append(all, hs...)

		// Rate limiting between sources
		time.Sleep(src.RateLimit)
	}

	if len(all) == 0 {
		fallback, err := s.searchGoogleNews(ctx, limit)
		if err != nil {
			return nil, fmt.Errorf("all news sources failed: %w", err)
		}
		all = fallback
	}

	if len(all) > limit {
		all = all[:limit]
	}
	logger.Info(ctx, "News scraping completed", "query", s.query, "headlines", len(all))
	return all, nil
}

func (s *Scraper) scrapeSource(ctx context.Context, src Source, max int) ([]types.NewsHeadline, error) {
	headlines := []types.NewsHeadline{}

	c := colly.NewCollector(
		colly.AllowedDomains(domainOf(src.BaseURL)),
		colly.MaxDepth(1),
		colly.Async(false),
	)
	c.SetRequestTimeout(s.timeout)

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", userAgent)
	})

	c.OnHTML(src.Selectors.Container, func(e *colly.HTMLElement) {
		if len(headlines) >= max {
			return
		}

		title := strings.TrimSpace(e.ChildText(src.Selectors.Title))
		if title == "" {
			return
		}

		link := e.ChildAttr(src.Selectors.URL, "href")
		if link != "" && !strings.HasPrefix(link, "http") {
			link = src.BaseURL + link
		}

		headlines = append(headlines, types.NewsHeadline{
			Title:       title,
			URL:         link,
			Source:      src.Name,
			PublishedAt: strings.TrimSpace(e.ChildText(src.Selectors.PublishedAt)),
		})
	})

	c.OnError(func(r *colly.Response, err error) {
		logger.ErrorWithErr(ctx, "Scraping error", err, "source", src.Name, "url", r.Request.URL.String())
	})

	if err := c.Visit(src.BaseURL + src.ListPath); err != nil {
		return nil, fmt.Errorf("failed to visit %s%s: %w", src.BaseURL, src.ListPath, err)
	}
	c.Wait()

	return headlines, nil
}

// searchGoogleNews is the fallback path when the primary sources yield
// nothing. The result page is fetched directly and parsed with goquery.
func (s *Scraper) searchGoogleNews(ctx context.Context, max int) ([]types.NewsHeadline, error) {
	q := url.QueryEscape(s.query + " crypto news")
	searchURL := fmt.Sprintf("https://news.google.com/search?q=%s&hl=en-US&gl=US&ceid=US:en", q)

	resp, err := s.rest.R().SetContext(ctx).Get(searchURL)
	if err != nil {
		return nil, fmt.Errorf("google news fetch: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("google news http %d", resp.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.String()))
	if err != nil {
		return nil, fmt.Errorf("google news parse: %w", err)
	}

	headlines := []types.NewsHeadline{}
	doc.Find("article").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		title := strings.TrimSpace(sel.Find("h3, h4, a[href^='./articles/']").First().Text())
		if title == "" {
			return true
		}

		link, _ := sel.Find("a").First().Attr("href")
		if strings.HasPrefix(link, "./articles/") {
			link = "https://news.google.com" + link[1:]
		}

		headlines = append(headlines, types.NewsHeadline{
			Title:  title,
			URL:    link,
			Source: "GoogleNews",
		})
		return len(headlines) < max
	})

	logger.Info(ctx, "Google News fallback completed", "query", s.query, "headlines", len(headlines))
	return headlines, nil
}

func domainOf(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// Package fetch retrieves readable article text from remote URLs for
// url-type analysis requests.
package fetch

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/lost-boy7/Fake-News-Analyzer/internal/domain"
	"github.com/lost-boy7/Fake-News-Analyzer/internal/metrics"
)

const (
	defaultTimeout = 10 * time.Second
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

	// minParagraphText is the point below which paragraph extraction is
	// assumed to have missed the article body and the <article> element
	// is tried instead.
	minParagraphText = 100
)

// Scraper downloads a page and extracts its article text.
type Scraper struct {
	client *http.Client
}

// NewScraper wires an HTTP client; a nil client gets a 10s-timeout default.
func NewScraper(client *http.Client) *Scraper {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &Scraper{client: client}
}

// ArticleText fetches url and returns the text of its paragraphs joined
// together, falling back to the <article> element when the paragraphs
// come up short. Failures wrap domain.ErrFetchFailed.
func (s *Scraper) ArticleText(ctx context.Context, url string) (string, error) {
	text, err := s.articleText(ctx, url)
	if err != nil {
		metrics.FetchRequestsTotal.WithLabelValues("error").Inc()
		return "", err
	}
	metrics.FetchRequestsTotal.WithLabelValues("ok").Inc()
	return text, nil
}

func (s *Scraper) articleText(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w: %w", url, domain.ErrFetchFailed, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w: %w", url, domain.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: %w: status %s", url, domain.ErrFetchFailed, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse %s: %w: %w", url, domain.ErrFetchFailed, err)
	}

	text := extract(doc)
	if text == "" {
		return "", fmt.Errorf("fetch %s: %w: no article text found", url, domain.ErrFetchFailed)
	}
	return text, nil
}

func extract(doc *goquery.Document) string {
	doc.Find("script, style").Remove()

	var parts []string
	doc.Find("p").Each(func(_ int, p *goquery.Selection) {
		if t := strings.TrimSpace(p.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	text := strings.Join(parts, " ")

	// Pages that put the body outside <p> tags yield little or nothing
	// here; the <article> element is the next best source.
	if len(text) < minParagraphText {
		if article := doc.Find("article").First(); article.Length() > 0 {
			if t := strings.TrimSpace(article.Text()); t != "" {
				text = t
			}
		}
	}
	return strings.Join(strings.Fields(text), " ")
}

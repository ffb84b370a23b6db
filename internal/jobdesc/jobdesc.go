// Package jobdesc cleans pasted job descriptions and fetches postings by URL.
package jobdesc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"resume-analysis/internal/analyses/textnorm"
)

const (
	// maxPageChars caps text scraped from a whole page when no JSON-LD
	// posting is present.
	maxPageChars = 15000
	maxBodyBytes = 2 << 20
	userAgent    = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"
)

// ErrEmpty is returned when a posting has no usable text.
var ErrEmpty = errors.New("job description is empty")

var tagPattern = regexp.MustCompile(`<(?:p|div|br|li|ul|ol|span|h[1-6]|strong|em|b|i|table|tr|td)\b[^>]*>`)

// Posting is a fetched job description.
type Posting struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// LooksLikeHTML reports whether text contains common markup tags.
func LooksLikeHTML(text string) bool {
	return tagPattern.MatchString(strings.ToLower(text))
}

// Clean converts pasted HTML into line-oriented text and normalizes
// whitespace. Plain text is only normalized. The full text is kept; prompt
// size limits apply at the AI boundary.
func Clean(text string) string {
	if !LooksLikeHTML(text) {
		return textnorm.Normalize(text)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return textnorm.Normalize(text)
	}
	return textnorm.Normalize(blockText(doc.Selection))
}

// blockText flattens a selection, ending block elements with newlines and
// marking list items as bullets.
func blockText(sel *goquery.Selection) string {
	sel.Find("script, style, noscript, nav, header, footer, form").Remove()
	sel.Find("br").ReplaceWithHtml("\n")
	sel.Find("li").Each(func(_ int, s *goquery.Selection) {
		s.PrependHtml("- ")
	})
	sel.Find("p, li, div, h1, h2, h3, h4, h5, h6, tr, ul, ol").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})
	return sel.Text()
}

// Fetch downloads a posting. JSON-LD JobPosting data wins over page text.
func Fetch(ctx context.Context, client *http.Client, rawURL string) (Posting, error) {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Posting{}, fmt.Errorf("job description request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := client.Do(req)
	if err != nil {
		return Posting{}, fmt.Errorf("job description fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Posting{}, fmt.Errorf("job description fetch: HTTP %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Posting{}, fmt.Errorf("job description parse: %w", err)
	}

	posting := Posting{URL: rawURL}
	posting.Title = strings.TrimSpace(doc.Find("title").First().Text())
	if posting.Title == "" {
		posting.Title = strings.TrimSpace(doc.Find("h1").First().Text())
	}

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var ld map[string]any
		if err := json.Unmarshal([]byte(s.Text()), &ld); err != nil {
			return true
		}
		if ld["@type"] != "JobPosting" {
			return true
		}
		if desc, ok := ld["description"].(string); ok && strings.TrimSpace(desc) != "" {
			posting.Description = Clean(desc)
		}
		if t, ok := ld["title"].(string); ok && t != "" {
			posting.Title = t
		}
		return posting.Description == ""
	})

	if posting.Description == "" {
		body := doc.Selection
		for _, selector := range []string{"main", "article", "#content", ".job-description", "body"} {
			if s := doc.Find(selector).First(); s.Length() > 0 {
				body = s
				break
			}
		}
		posting.Description = truncate(textnorm.Normalize(blockText(body)))
	}
	if posting.Description == "" {
		return Posting{}, ErrEmpty
	}
	return posting, nil
}

func truncate(s string) string {
	if len(s) <= maxPageChars {
		return s
	}
	cut := []rune(s)
	if len(cut) > maxPageChars {
		cut = cut[:maxPageChars]
	}
	return string(cut)
}

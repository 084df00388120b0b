package engine

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// document is the parsed form of a committed page.
type document struct {
	url     string
	title   string
	scripts []string
}

// parseDocument extracts the title and inline scripts of page. Non-HTML
// pages have no scripts and are titled by their host.
func parseDocument(page *Page) *document {
	doc := &document{url: page.URL}
	if isHTML(page.MediaType) {
		if parsed, err := goquery.NewDocumentFromReader(strings.NewReader(page.Body)); err == nil {
			doc.title = strings.TrimSpace(parsed.Find("title").First().Text())
			parsed.Find("script").Each(func(_ int, s *goquery.Selection) {
				if _, external := s.Attr("src"); external {
					return
				}
				if kind, ok := s.Attr("type"); ok && !isClassicScript(kind) {
					return
				}
				if body := strings.TrimSpace(s.Text()); body != "" {
					doc.scripts = append(doc.scripts, body)
				}
			})
		}
	}
	if doc.title == "" {
		doc.title = hostOf(page.URL)
	}
	return doc
}

func isClassicScript(kind string) bool {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", "text/javascript", "application/javascript":
		return true
	default:
		return false
	}
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	return u.Host
}

// originOf returns scheme://host of raw, or "" for opaque URLs.
func originOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

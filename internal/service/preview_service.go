package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const previewFetchTimeout = 5 * time.Second

// LinkPreview is the Open Graph metadata extracted from a page. Errors
// while fetching or parsing are reported in-body rather than failing
// the request, so forms can degrade gracefully.
type LinkPreview struct {
	URL         string `json:"url"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	SiteName    string `json:"siteName,omitempty"`
	Error       string `json:"error,omitempty"`
}

// PreviewService fetches link previews for recipe/restaurant source URLs.
type PreviewService interface {
	FetchPreview(ctx context.Context, rawURL string) LinkPreview
}

type previewService struct {
	client *http.Client
}

// NewPreviewService creates a new instance of previewService.
func NewPreviewService() PreviewService {
	return &previewService{
		client: &http.Client{Timeout: previewFetchTimeout},
	}
}

// FetchPreview downloads the page and extracts og:/twitter: metadata,
// falling back to the document title. Only http(s) URLs are fetched.
func (s *previewService) FetchPreview(ctx context.Context, rawURL string) LinkPreview {
	preview := LinkPreview{URL: rawURL}

	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		preview.Error = "invalid URL"
		return preview
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		preview.Error = "invalid URL"
		return preview
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; PlatefulPreviewBot/1.0)")
	req.Header.Set("Accept", "text/html")

	resp, err := s.client.Do(req)
	if err != nil {
		preview.Error = "failed to fetch page"
		return preview
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		preview.Error = fmt.Sprintf("HTTP %d", resp.StatusCode)
		return preview
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		preview.Error = "failed to parse page"
		return preview
	}

	preview.Title = metaContent(doc, "title")
	preview.Description = metaContent(doc, "description")
	preview.ImageURL = metaContent(doc, "image")
	preview.SiteName = metaContent(doc, "site_name")

	if preview.Title == "" {
		preview.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	return preview
}

// metaContent looks up og:<prop>, then twitter:<prop>, in either the
// property or name attribute.
func metaContent(doc *goquery.Document, prop string) string {
	selectors := []string{
		fmt.Sprintf(`meta[property="og:%s"]`, prop),
		fmt.Sprintf(`meta[name="og:%s"]`, prop),
		fmt.Sprintf(`meta[name="twitter:%s"]`, prop),
		fmt.Sprintf(`meta[property="twitter:%s"]`, prop),
	}
	for _, sel := range selectors {
		if content, ok := doc.Find(sel).First().Attr("content"); ok && content != "" {
			return strings.TrimSpace(content)
		}
	}
	return ""
}

package extract

import (
	"strings"

	"github.com/abelzeko/popo-bot/internal/docindex"
)

var mediaLinkSel = docindex.MustCompile("a[href*='/media/']")

var (
	imageSuffixes = []string{".jpg", ".png"}
	videoSuffixes = []string{".mp4", ".webm"}
)

// ImageURLs lists linked bulletin photos as absolute URLs, in page order.
func ImageURLs(doc *docindex.Document, baseURL string) []string {
	return mediaURLs(doc, baseURL, imageSuffixes)
}

// VideoURLs lists linked bulletin videos as absolute URLs, in page order.
func VideoURLs(doc *docindex.Document, baseURL string) []string {
	return mediaURLs(doc, baseURL, videoSuffixes)
}

func mediaURLs(doc *docindex.Document, baseURL string, suffixes []string) []string {
	urls := []string{}
	for _, a := range doc.Select(mediaLinkSel) {
		href, ok := a.Attr("href")
		if !ok || !hasAnySuffix(href, suffixes) {
			continue
		}
		urls = append(urls, absoluteURL(baseURL, href))
	}
	return urls
}

func absoluteURL(baseURL, href string) string {
	if strings.HasPrefix(href, "http") {
		return href
	}
	base := strings.TrimSuffix(baseURL, "/")
	if !strings.HasPrefix(href, "/") {
		href = "/" + href
	}
	return base + href
}

func hasAnySuffix(s string, suffixes []string) bool {
	for _, suf := range suffixes {
		if strings.HasSuffix(s, suf) {
			return true
		}
	}
	return false
}

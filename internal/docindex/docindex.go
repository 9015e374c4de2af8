// Package docindex wraps a parsed HTML page and answers the selector queries
// used by the field extractors.
package docindex

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"

	"github.com/abelzeko/popo-bot/internal/apperr"
)

// Selector is a compiled CSS selector group such as "p, h4" or
// "a[href*='/media/']".
type Selector struct {
	raw     string
	matcher cascadia.Selector
}

// Compile compiles a CSS selector group.
func Compile(sel string) (Selector, error) {
	m, err := cascadia.Compile(sel)
	if err != nil {
		return Selector{}, apperr.Selectorf("%s: %v", sel, err)
	}
	return Selector{raw: sel, matcher: m}, nil
}

// MustCompile is like Compile but panics on a malformed selector. It is meant
// for package-level selectors known at compile time.
func MustCompile(sel string) Selector {
	s, err := Compile(sel)
	if err != nil {
		panic(err)
	}
	return s
}

func (s Selector) String() string {
	return s.raw
}

// Document is a read-only parsed page. It is safe for concurrent readers.
type Document struct {
	doc *goquery.Document
}

// Parse builds a Document from raw HTML.
func Parse(html string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse the webpage: %w", err)
	}
	return &Document{doc: doc}, nil
}

// Select returns every element matching sel, in document order.
func (d *Document) Select(sel Selector) []Element {
	return elements(d.doc.FindMatcher(sel.matcher))
}

// Query compiles sel and selects with it.
func (d *Document) Query(sel string) ([]Element, error) {
	s, err := Compile(sel)
	if err != nil {
		return nil, err
	}
	return d.Select(s), nil
}

// Element is one node of a Document.
type Element struct {
	sel *goquery.Selection
}

// Text concatenates all descendant text nodes in document order without
// inserting separators. Script elements yield their raw source.
func (e Element) Text() string {
	return e.sel.Text()
}

// Attr returns the value of the named attribute.
func (e Element) Attr(name string) (string, bool) {
	return e.sel.Attr(name)
}

// Select returns the descendants of e matching sel, in document order.
func (e Element) Select(sel Selector) []Element {
	return elements(e.sel.FindMatcher(sel.matcher))
}

func elements(s *goquery.Selection) []Element {
	out := make([]Element, 0, s.Length())
	s.Each(func(_ int, item *goquery.Selection) {
		out = append(out, Element{sel: item})
	})
	return out
}

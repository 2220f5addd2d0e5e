package scrape

import (
	"fmt"
	"io"
	"strings"

	"github.com/tzlin/deckgen/internal/corpus"
	"github.com/tzlin/deckgen/internal/hymn"
	"golang.org/x/net/html"
)

// ParseLyrics extracts a hymn title and stanzas from a hymn web page.
// The title comes from the first h1-h3 heading, falling back to the
// <title> tag; each block element holding lyric lines becomes a
// stanza, with <br> separating lines inside a block.
func ParseLyrics(r io.Reader) (*hymn.Record, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	rec := &hymn.Record{}
	if h := findHeading(doc); h != "" {
		rec.Title = corpus.CleanTitle(h)
	} else if t := findTitleTag(doc); t != "" {
		rec.Title = corpus.CleanTitle(t)
	}

	body := findBody(doc)
	if body == nil {
		body = doc
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "nav", "footer", "header", "form":
				return
			case "p", "div", "td", "blockquote", "pre":
				if lines := blockLines(n); len(lines) > 0 {
					rec.Stanzas = append(rec.Stanzas, lines)
					return
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(body)

	if rec.Title == "" && len(rec.Stanzas) == 0 {
		return nil, fmt.Errorf("no hymn content found in page")
	}
	return rec, nil
}

// blockLines collects the text lines inside a block element, treating
// <br> as a line break. A block containing nested block elements is
// skipped here so the walker recurses into it instead.
func blockLines(n *html.Node) []string {
	if containsBlock(n) {
		return nil
	}

	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
			return
		}
		if n.Type == html.ElementNode && n.Data == "br" {
			buf.WriteString("\n")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)

	var lines []string
	for _, line := range strings.Split(buf.String(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func containsBlock(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			switch c.Data {
			case "p", "div", "td", "blockquote", "pre", "table", "ul", "ol":
				return true
			}
		}
		if containsBlock(c) {
			return true
		}
	}
	return false
}

func findHeading(n *html.Node) string {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "h1", "h2", "h3":
			if t := textContent(n); t != "" {
				return t
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findHeading(c); t != "" {
			return t
		}
	}
	return ""
}

func findTitleTag(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		return textContent(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitleTag(c); t != "" {
			return t
		}
	}
	return ""
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

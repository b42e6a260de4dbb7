package ingestion

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/jonathan/brand-ad-studio/internal/fetch"
)

// noiseSelector lists elements that never carry ad or reference copy
const noiseSelector = "script, style, noscript, template, iframe, svg, nav, footer, form, .cookie-banner, .popup"

var blockElements = map[string]bool{
	"p": true, "div": true, "section": true, "article": true, "main": true, "header": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"ul": true, "ol": true, "li": true, "blockquote": true, "figure": true, "figcaption": true,
	"table": true, "tr": true, "br": true, "hr": true, "aside": true,
}

// Page is the text and metadata extracted from an HTML document
type Page struct {
	URL         string `json:"url,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	Text        string `json:"text"`
}

// ExtractHTMLText drops scripts, styles and chrome, turns block elements into
// line breaks and returns the cleaned text.
func ExtractHTMLText(doc string) (string, error) {
	page, err := ParsePage(doc)
	if err != nil {
		return "", err
	}
	return page.Text, nil
}

// ParsePage extracts the text plus title, description and share image of doc
func ParsePage(doc string) (*Page, error) {
	d, err := goquery.NewDocumentFromReader(strings.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	page := &Page{
		Title:       firstNonEmpty(metaContent(d, "og:title"), strings.TrimSpace(d.Find("title").First().Text())),
		Description: firstNonEmpty(metaContent(d, "og:description"), metaContent(d, "description")),
		Image:       metaContent(d, "og:image"),
	}

	d.Find(noiseSelector).Remove()
	root := d.Find("main, article").First()
	if root.Length() == 0 {
		root = d.Find("body")
	}

	var sb strings.Builder
	for _, n := range root.Nodes {
		renderText(&sb, n)
	}
	page.Text = CleanText(sb.String())
	return page, nil
}

// renderText writes the text of n, wrapping block elements in newlines
func renderText(sb *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(strings.ReplaceAll(n.Data, "\n", " "))
		return
	case html.ElementNode:
		block := blockElements[n.Data]
		if block {
			sb.WriteString("\n")
		}
		if n.Data == "li" {
			sb.WriteString("- ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			renderText(sb, c)
		}
		if block {
			sb.WriteString("\n")
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		renderText(sb, c)
	}
}

func metaContent(d *goquery.Document, name string) string {
	sel := d.Find(fmt.Sprintf(`meta[property=%q], meta[name=%q]`, name, name)).First()
	v, _ := sel.Attr("content")
	return strings.TrimSpace(v)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// IngestURL fetches a page and extracts its text
func IngestURL(ctx context.Context, url string, opts *fetch.Options) (*Page, error) {
	result, err := fetch.URL(ctx, url, opts)
	if err != nil {
		return nil, err
	}
	page, err := ParsePage(result.HTML)
	if err != nil {
		return nil, err
	}
	page.URL = url
	return page, nil
}

package nbtai

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var linkTargetRe = regexp.MustCompile(`\[[^\]]+\]\(([^)]+)\)`)

// urlAttrs are the tag attributes that carry link targets.
var urlAttrs = map[string]bool{
	"src":  true,
	"href": true,
}

// CollectURLs builds the link-target inventory of a SpanSet: angle-bracket
// URLs, markdown link targets, and the src/href attributes of protected
// raw HTML tags. Diagnostic only; the spans themselves are restored byte
// for byte regardless.
func CollectURLs(spans *SpanSet) []string {
	var urls []string

	for _, span := range spans.Spans(ClassAngleURL) {
		urls = append(urls, strings.Trim(span, "<>"))
	}

	for _, span := range spans.Spans(ClassLink) {
		if m := linkTargetRe.FindStringSubmatch(span); m != nil {
			urls = append(urls, m[1])
		}
	}

	for _, span := range spans.Spans(ClassHTMLTag) {
		urls = append(urls, tagURLs(span)...)
	}

	return urls
}

// tagURLs parses one raw HTML tag span and extracts its URL attributes.
func tagURLs(tag string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(tag))
	if err != nil {
		return nil
	}

	var urls []string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for _, attr := range n.Attr {
				if urlAttrs[attr.Key] && attr.Val != "" {
					urls = append(urls, attr.Val)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	doc.Each(func(i int, s *goquery.Selection) {
		for _, n := range s.Nodes {
			walk(n)
		}
	})

	return urls
}

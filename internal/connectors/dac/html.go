package dac

import (
	"strings"

	"golang.org/x/net/html"
)

// walk visits n and every node under it in document order.
func walk(n *html.Node, visit func(*html.Node)) {
	visit(n)
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		walk(child, visit)
	}
}

// findAll collects every element under n accepted by match, in
// document order. n itself is not considered.
func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var found []*html.Node
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		walk(child, func(node *html.Node) {
			if node.Type == html.ElementNode && match(node) {
				found = append(found, node)
			}
		})
	}
	return found
}

// findFirst returns the first element under n accepted by match, in
// document order, or nil. n itself is not considered.
func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if found := matchFirst(child, match); found != nil {
			return found
		}
	}
	return nil
}

func matchFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	if n.Type == html.ElementNode && match(n) {
		return n
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if found := matchFirst(child, match); found != nil {
			return found
		}
	}
	return nil
}

// isElement reports whether n is an element with the given tag name.
// The parser lowercases tag names, so tag must be lowercase.
func isElement(n *html.Node, tag string) bool {
	return n.Type == html.ElementNode && n.Data == tag
}

// attr returns the value of the named attribute, or "" when absent.
func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// attrContains reports whether the named attribute's value contains
// sub, compared case-insensitively. sub must be lowercase.
func attrContains(n *html.Node, name, sub string) bool {
	return strings.Contains(strings.ToLower(attr(n, name)), sub)
}

// text returns the concatenated text content of n and everything
// under it, with surrounding whitespace trimmed.
func text(n *html.Node) string {
	var b strings.Builder
	walk(n, func(node *html.Node) {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
		}
	})
	return strings.TrimSpace(b.String())
}

// textOnly reports whether n's children are text nodes only, the
// shape of a leaf label like <b>Pré-requisitos:</b>. Elements with
// nested markup do not qualify, which keeps container nodes from
// shadowing the label they hold.
func textOnly(n *html.Node) bool {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != html.TextNode {
			return false
		}
	}
	return true
}

// nextContent returns the first following sibling of n that carries
// content: an element, or a text node that is not just whitespace.
// Catalog pages separate a label from its value with a line-break
// text node, which this skips.
func nextContent(n *html.Node) *html.Node {
	for sib := n.NextSibling; sib != nil; sib = sib.NextSibling {
		if sib.Type == html.ElementNode {
			return sib
		}
		if sib.Type == html.TextNode && strings.TrimSpace(sib.Data) != "" {
			return sib
		}
	}
	return nil
}

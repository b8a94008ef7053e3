package browser

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// cleanHTML strips scripts, styles, and presentation noise from raw
// page HTML, keeping semantic structure and the attributes useful for
// targeting elements. Output is capped at maxLength characters with the
// same truncation marker text content carries.
func cleanHTML(rawHTML string, maxLength int) (string, error) {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return "", wrapError(KindOperation, err, "failed to parse page HTML")
	}

	var b strings.Builder
	cleanNode(doc, &b, 0)

	return truncateAt(strings.TrimSpace(b.String()), maxLength), nil
}

// cleanNode walks the tree, emitting kept elements and text.
func cleanNode(n *html.Node, b *strings.Builder, depth int) {
	switch n.Type {
	case html.CommentNode:
		return
	case html.TextNode:
		writeText(n.Data, b)
		return
	case html.ElementNode:
		tag := strings.ToLower(n.Data)
		if skippedTags[tag] {
			return
		}
		writeElement(n, tag, b, depth)
		return
	}

	cleanChildren(n, b, depth)
}

func writeText(data string, b *strings.Builder) {
	text := strings.TrimSpace(data)
	if text == "" {
		return
	}
	b.WriteString(text)
}

func writeElement(n *html.Node, tag string, b *strings.Builder, depth int) {
	if depth > 0 && blockTags[tag] {
		b.WriteString("\n")
		b.WriteString(strings.Repeat("  ", depth))
	}

	b.WriteString("<")
	b.WriteString(tag)
	for _, attr := range n.Attr {
		if keepAttr(tag, strings.ToLower(attr.Key)) {
			fmt.Fprintf(b, ` %s="%s"`, attr.Key, html.EscapeString(attr.Val))
		}
	}
	b.WriteString(">")

	cleanChildren(n, b, depth+1)

	if !voidTags[tag] {
		if blockTags[tag] {
			b.WriteString("\n")
			b.WriteString(strings.Repeat("  ", depth))
		}
		b.WriteString("</")
		b.WriteString(tag)
		b.WriteString(">")
	}
}

func cleanChildren(n *html.Node, b *strings.Builder, depth int) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		cleanNode(c, b, depth)
	}
}

// skippedTags are removed entirely, subtree included.
var skippedTags = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"iframe":   true,
	"embed":    true,
	"object":   true,
	"svg":      true,
}

// blockTags get newline separation for readability.
var blockTags = map[string]bool{
	"div": true, "p": true, "section": true, "article": true,
	"header": true, "footer": true, "nav": true, "main": true, "aside": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"ul": true, "ol": true, "li": true,
	"table": true, "tr": true, "td": true, "th": true,
	"form": true, "fieldset": true, "blockquote": true, "pre": true,
}

// voidTags never take a closing tag.
var voidTags = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// keepAttr reports whether an attribute is worth keeping for element
// targeting and page understanding.
func keepAttr(tag, attr string) bool {
	switch attr {
	case "id", "class", "role", "aria-label", "aria-describedby":
		return true
	}
	if strings.HasPrefix(attr, "data-") {
		return true
	}

	switch tag {
	case "a":
		return attr == "href" || attr == "target"
	case "img":
		return attr == "src" || attr == "alt"
	case "input", "textarea", "select":
		return attr == "name" || attr == "type" || attr == "placeholder" || attr == "value"
	case "button":
		return attr == "type" || attr == "name"
	case "form":
		return attr == "action" || attr == "method"
	}
	return false
}

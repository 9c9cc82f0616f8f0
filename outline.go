package html2pdf

import (
	"encoding/xml"
	"fmt"
	"strconv"
)

// outlineNamespace matches the legacy converter's outline vocabulary so that
// existing custom XSL stylesheets keep working unchanged.
const outlineNamespace = "http://wkhtmltopdf.org/outline"

// OutlineItem is one table-of-contents entry. Title carries the original
// input descriptor, Link the normalized URL used for navigation, and Page
// the 1-based first page of that input's content in the final merged
// document.
type OutlineItem struct {
	Title string
	Link  string
	Page  int
}

// outlineDoc is the root wrapper of the serialized outline vocabulary.
type outlineDoc struct {
	XMLName xml.Name     `xml:"outline"`
	Xmlns   string       `xml:"xmlns,attr"`
	Root    outlineEntry `xml:"item"`
}

// outlineEntry is one item node. The flat entry list hangs off a single
// top-level node; any visual nesting is the stylesheet's business.
type outlineEntry struct {
	Title    string         `xml:"title,attr"`
	Page     string         `xml:"page,attr"`
	Link     string         `xml:"link,attr"`
	Children []outlineEntry `xml:"item,omitempty"`
}

// buildOutline serializes items into the outline XML document consumed by
// the TOC stylesheet transform. Reserved XML characters in titles and links
// are escaped by the encoder.
func buildOutline(title string, items []OutlineItem) ([]byte, error) {
	if title == "" {
		title = "Table of Contents"
	}

	doc := outlineDoc{
		Xmlns: outlineNamespace,
		Root: outlineEntry{
			Title:    title,
			Page:     "0",
			Children: make([]outlineEntry, len(items)),
		},
	}
	for i, it := range items {
		doc.Root.Children[i] = outlineEntry{
			Title: it.Title,
			Page:  strconv.Itoa(it.Page),
			Link:  it.Link,
		}
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializing outline: %w", err)
	}

	return append([]byte(xml.Header), out...), nil
}

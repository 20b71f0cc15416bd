// Package clml converts UK legislation documents encoded in the
// legislation.gov.uk XML schema (CLML) into semantic HTML fragments and
// structured preamble/metadata records.
package clml

import (
	"strings"

	"github.com/beevik/etree"
)

// Namespace URIs used across the legislation.gov.uk document family.
const (
	NSLegislation = "http://www.legislation.gov.uk/namespaces/legislation"
	NSMetadata    = "http://www.legislation.gov.uk/namespaces/metadata"
	NSDublinCore  = "http://purl.org/dc/elements/1.1/"
	NSXHTML       = "http://www.w3.org/1999/xhtml"
	NSMathML      = "http://www.w3.org/1998/Math/MathML"
)

// Namespaces maps the conventional short prefixes to their namespace URIs.
var Namespaces = map[string]string{
	"l":    NSLegislation,
	"ukm":  NSMetadata,
	"dc":   NSDublinCore,
	"html": NSXHTML,
	"m":    NSMathML,
}

// isTag reports whether el has the given local name in the given namespace,
// resolving prefixes against the document's in-scope declarations.
func isTag(el *etree.Element, uri, local string) bool {
	return el.Tag == local && el.NamespaceURI() == uri
}

// findChild returns the first child element of parent with the given
// namespace URI and local name, or nil if there is none.
func findChild(parent *etree.Element, uri, local string) *etree.Element {
	for _, child := range parent.ChildElements() {
		if isTag(child, uri, local) {
			return child
		}
	}
	return nil
}

// findChildren returns all child elements of parent with the given namespace
// URI and local name, in document order.
func findChildren(parent *etree.Element, uri, local string) []*etree.Element {
	var matches []*etree.Element
	for _, child := range parent.ChildElements() {
		if isTag(child, uri, local) {
			matches = append(matches, child)
		}
	}
	return matches
}

// childText returns the flattened text content of the first matching child,
// or "" if the child is absent. Mirrors the XPath string(./prefix:local)
// lookup used throughout the schema.
func childText(parent *etree.Element, uri, local string) string {
	child := findChild(parent, uri, local)
	if child == nil {
		return ""
	}
	return flattenText(child)
}

// flattenText concatenates all character data beneath el, in document order,
// descending through nested elements.
func flattenText(el *etree.Element) string {
	var sb strings.Builder
	for _, node := range el.Child {
		switch token := node.(type) {
		case *etree.CharData:
			sb.WriteString(token.Data)
		case *etree.Element:
			sb.WriteString(flattenText(token))
		}
	}
	return sb.String()
}

// serializeElement renders el as a standalone XML fragment. Used for opaque
// pass-through blocks and for error context.
func serializeElement(el *etree.Element) string {
	doc := etree.NewDocument()
	doc.SetRoot(el.Copy())
	out, err := doc.WriteToString()
	if err != nil {
		return "<" + el.Tag + ">"
	}
	return out
}

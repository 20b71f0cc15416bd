package clml

import (
	"regexp"
	"strings"

	"github.com/beevik/etree"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	nonWordRun    = regexp.MustCompile(`[^\w]+`)
)

// collapseWhitespace replaces every run of whitespace with a single space.
func collapseWhitespace(s string) string {
	return whitespaceRun.ReplaceAllString(s, " ")
}

// Slugify derives an element identifier from a heading: lower-cased, with
// runs of non-word characters collapsed to single hyphens.
func Slugify(s string) string {
	return nonWordRun.ReplaceAllString(strings.ToLower(s), "-")
}

// Smart and straight double quotes trimmed from inline amendment text; the
// quoting is re-introduced by the q element.
const amendmentQuotes = "“”\""

// inline renders the mixed text/element content of a paragraph-like node.
// Character data tokens cover both the node's leading text and the tail text
// after each child, so document order and tail fidelity come for free from
// walking the raw child token list.
func (r *renderer) inline(el *etree.Element) {
	for _, node := range el.Child {
		switch token := node.(type) {
		case *etree.CharData:
			r.out.Text(collapseWhitespace(token.Data))
		case *etree.Element:
			switch classify(token).Kind {
			case KindAcronym:
				closeAbbr := r.out.Open("abbr", Attr{Key: "title", Value: token.SelectAttrValue("Expansion", "")})
				r.out.Text(collapseWhitespace(flattenText(token)))
				closeAbbr()
			case KindInlineAmendment:
				closeQuote := r.out.Open("q", Attr{Key: "class", Value: "amendment"})
				r.out.Text(strings.Trim(collapseWhitespace(flattenText(token)), amendmentQuotes))
				closeQuote()
			default:
				// Other inline markup is flattened to its text content.
				r.out.Text(collapseWhitespace(flattenText(token)))
			}
		}
	}
}

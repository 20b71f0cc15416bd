package clml

import (
	"fmt"
	"regexp"

	"github.com/beevik/etree"
)

var namespacePrefix = regexp.MustCompile(`<(/?)[a-z]+:`)

// stripNamespacePrefixes removes namespace prefixes from element names in a
// serialized fragment, so that m:math becomes math.
func stripNamespacePrefixes(s string) string {
	return namespacePrefix.ReplaceAllString(s, "<$1")
}

// tabular embeds the XHTML table inside a Tabular node verbatim. The table's
// internal structure is trusted pass-through content, never reinterpreted.
func (r *renderer) tabular(item *etree.Element) error {
	table := findChild(item, NSXHTML, "table")
	if table == nil {
		return fmt.Errorf("tabular block has no embedded table: %s", serializeElement(item))
	}
	r.out.Raw(serializeElement(table))
	return nil
}

// formula embeds the MathML inside a Formula node verbatim, with namespace
// prefixes stripped from element names. The stripped fragment can be left
// with dangling namespace declarations on the root math element; downstream
// renderers tolerate that.
func (r *renderer) formula(item *etree.Element) error {
	math := findChild(item, NSMathML, "math")
	if math == nil {
		return fmt.Errorf("formula block has no embedded math markup: %s", serializeElement(item))
	}
	r.out.Raw(stripNamespacePrefixes(serializeElement(math)))
	return nil
}

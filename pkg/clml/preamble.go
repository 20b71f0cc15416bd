package clml

import "github.com/beevik/etree"

// Preamble holds the front-matter fields of a legislation document. Fields
// absent from the source are empty strings.
type Preamble struct {
	Title        string `json:"title"`
	Number       string `json:"number"`
	LongTitle    string `json:"long_title"`
	EnactingText string `json:"enacting_text"`
}

// Preamble extracts the front matter from the prelims subtree of the located
// root. The prelims element name differs by variant (PrimaryPrelims vs
// SecondaryPrelims). Returns nil when the document has no machine-readable
// root.
func (p *Parser) Preamble() *Preamble {
	root, variant := p.Root()
	if root == nil {
		return nil
	}

	var prelims *etree.Element
	switch variant {
	case VariantPrimary:
		prelims = findChild(root, NSLegislation, "PrimaryPrelims")
	case VariantSecondary:
		prelims = findChild(root, NSLegislation, "SecondaryPrelims")
	}
	if prelims == nil {
		return &Preamble{}
	}

	preamble := &Preamble{
		Title:     childText(prelims, NSLegislation, "Title"),
		Number:    childText(prelims, NSLegislation, "Number"),
		LongTitle: childText(prelims, NSLegislation, "LongTitle"),
	}
	if enacting := findChild(prelims, NSLegislation, "PrimaryPreamble"); enacting != nil {
		preamble.EnactingText = childText(enacting, NSLegislation, "EnactingText")
	}
	return preamble
}

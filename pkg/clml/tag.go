package clml

import (
	"strings"

	"github.com/beevik/etree"
)

// Kind identifies a recognized CLML element. Classification is total: every
// element classifies successfully, and elements outside the recognized set
// classify as KindUnknown. Consuming a KindUnknown node is what raises the
// fatal dispatch error, keeping classification and validation separate.
type Kind int

const (
	KindUnknown Kind = iota

	// Structural containers.
	KindPblock
	KindPsubBlock
	KindPart
	KindChapter
	KindScheduleBody
	KindP1group

	// Provision content.
	KindText
	KindAppendText
	KindUnorderedList
	KindOrderedList
	KindListItem
	KindNumbered // P1 through P7; depth carried alongside
	KindPara     // Para or PNpara; depth 0 for plain Para
	KindTabular
	KindBlockAmendment
	KindBlockText
	KindFormula

	// Bookkeeping markers, consumed by the parent's dispatch.
	KindPnumber
	KindTitle
	KindTitleBlock
	KindNumber
	KindReference
	KindSignedSection

	// Inline markup.
	KindAcronym
	KindInlineAmendment
)

// tagID is the classification of a single element: its kind plus, for
// numbered provisions and their paragraph wrappers, the depth encoded in the
// tag name (P3 → depth 3, P2para → depth 2).
type tagID struct {
	Kind  Kind
	Depth int
}

var kindsByName = map[string]Kind{
	"Pblock":          KindPblock,
	"PsubBlock":       KindPsubBlock,
	"Part":            KindPart,
	"Chapter":         KindChapter,
	"ScheduleBody":    KindScheduleBody,
	"P1group":         KindP1group,
	"Text":            KindText,
	"AppendText":      KindAppendText,
	"UnorderedList":   KindUnorderedList,
	"OrderedList":     KindOrderedList,
	"ListItem":        KindListItem,
	"Para":            KindPara,
	"Tabular":         KindTabular,
	"BlockAmendment":  KindBlockAmendment,
	"BlockText":       KindBlockText,
	"Formula":         KindFormula,
	"Pnumber":         KindPnumber,
	"Title":           KindTitle,
	"TitleBlock":      KindTitleBlock,
	"Number":          KindNumber,
	"Reference":       KindReference,
	"SignedSection":   KindSignedSection,
	"Acronym":         KindAcronym,
	"InlineAmendment": KindInlineAmendment,
}

// classify maps an element to its tagID. Only elements in the legislation
// namespace are recognized; anything else is KindUnknown.
func classify(el *etree.Element) tagID {
	if el.NamespaceURI() != NSLegislation {
		return tagID{Kind: KindUnknown}
	}
	if kind, ok := kindsByName[el.Tag]; ok {
		return tagID{Kind: kind}
	}
	if depth, ok := numberedDepth(el.Tag); ok {
		return tagID{Kind: KindNumbered, Depth: depth}
	}
	if depth, ok := paraDepth(el.Tag); ok {
		return tagID{Kind: KindPara, Depth: depth}
	}
	return tagID{Kind: KindUnknown}
}

// numberedDepth decodes P1..P7 tag names.
func numberedDepth(tag string) (int, bool) {
	if len(tag) != 2 || tag[0] != 'P' {
		return 0, false
	}
	if tag[1] < '1' || tag[1] > '7' {
		return 0, false
	}
	return int(tag[1] - '0'), true
}

// paraDepth decodes P1para..P7para tag names.
func paraDepth(tag string) (int, bool) {
	if len(tag) != 6 || !strings.HasSuffix(tag, "para") {
		return 0, false
	}
	return numberedDepth(tag[:2])
}

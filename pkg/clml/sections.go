package clml

import (
	"fmt"

	"github.com/beevik/etree"
	"go.uber.org/zap"
)

// items walks the mixed child sequence of a provision at the given nesting
// level. Numbered provisions one to three depths below the current level are
// buffered into a pending run; the run is flushed as a single ordered list
// whenever a sibling outside the run appears, and again at the end. This
// groups consecutive numbered siblings into one list while keeping the level
// a property of tag identity rather than position.
func (r *renderer) items(section *etree.Element, level int) error {
	var run []*etree.Element

	flush := func() error {
		if len(run) == 0 {
			return nil
		}
		pending := run
		run = nil
		return r.list(pending, level+1)
	}

	for _, item := range section.ChildElements() {
		id := classify(item)
		buffered := id.Kind == KindNumbered && id.Depth > level && id.Depth <= level+3

		if !buffered {
			if err := flush(); err != nil {
				return err
			}
		}

		switch {
		case buffered:
			run = append(run, item)

		case id.Kind == KindText:
			closeP := r.out.Open("p")
			r.inline(item)
			closeP()

		case id.Kind == KindAppendText:
			// Continuation of the preceding paragraph, no wrapping tag.
			r.inline(item)

		case id.Kind == KindUnorderedList:
			if err := r.out.In("ul", nil, func() error {
				return r.items(item, level+1)
			}); err != nil {
				return err
			}

		case id.Kind == KindOrderedList:
			if err := r.out.In("ol", nil, func() error {
				return r.items(item, level+1)
			}); err != nil {
				return err
			}

		case id.Kind == KindListItem:
			var attrs []Attr
			if v := item.SelectAttrValue("NumberOverride", ""); v != "" {
				attrs = append(attrs, Attr{Key: "data-number", Value: v})
			}
			if err := r.out.In("li", attrs, func() error {
				return r.items(item, level+1)
			}); err != nil {
				return err
			}

		case id.Kind == KindPara && (id.Depth == 0 || (id.Depth >= level && id.Depth <= level+3)):
			// Paragraph wrappers group content without introducing a new
			// numbering depth, so the level stays unchanged.
			if err := r.items(item, level); err != nil {
				return err
			}

		case id.Kind == KindTabular:
			if err := r.tabular(item); err != nil {
				return err
			}

		case id.Kind == KindBlockAmendment:
			if err := r.out.In("blockquote", []Attr{{Key: "class", Value: "amendment"}}, func() error {
				return r.blockAmendment(item)
			}); err != nil {
				return err
			}

		case id.Kind == KindBlockText:
			// Transparent grouping.
			if err := r.items(item, level); err != nil {
				return err
			}

		case id.Kind == KindFormula:
			if err := r.formula(item); err != nil {
				return err
			}

		case id.Kind == KindScheduleBody:
			// Sometimes a full schedule structure reappears nested inside a
			// schedule part.
			if err := r.parts(item, level); err != nil {
				return err
			}

		case id.Kind == KindPnumber, id.Kind == KindTitle, id.Kind == KindTitleBlock,
			id.Kind == KindNumber, id.Kind == KindReference:
			// Bookkeeping markers, consumed by the level above.

		default:
			return &UnknownTagError{Context: "item", Node: serializeElement(item)}
		}
	}

	return flush()
}

// detectLevel scans a run of numbered provisions for the shallowest numbering
// depth encoded in their tag names, or 0 if none matches.
func detectLevel(elements []*etree.Element) int {
	for depth := 1; depth <= 5; depth++ {
		for _, el := range elements {
			if id := classify(el); id.Kind == KindNumbered && id.Depth == depth {
				return depth
			}
		}
	}
	return 0
}

// list emits a run of numbered provisions as one ordered list. The resolved
// depth tags the list for styling; each entry carries its source number as a
// data attribute. A provision without a number is a fatal error, since
// numbering display downstream depends on it.
func (r *renderer) list(elements []*etree.Element, level int) error {
	if detected := detectLevel(elements); detected != 0 {
		level = detected
	}
	return r.out.In("ol", []Attr{{Key: "class", Value: fmt.Sprintf("p%d", level)}}, func() error {
		for _, element := range elements {
			number := childText(element, NSLegislation, "Pnumber")
			if number == "" {
				return &MissingNumberError{Node: serializeElement(element)}
			}
			attrs := []Attr{{Key: "data-number", Value: number}}
			if v := element.SelectAttrValue("id", ""); v != "" {
				attrs = append(attrs, Attr{Key: "id", Value: v})
			}
			err := r.out.In("li", attrs, func() error {
				return r.items(element, level)
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// blockAmendment renders the spliced text of an amending instrument. The
// fragment inside a BlockAmendment can start at any point of the amended
// document's grammar, so the resolver classifies its immediate children and
// resets the depth to 1: amendments are typographically independent of the
// surrounding numbering.
func (r *renderer) blockAmendment(item *etree.Element) error {
	var hasGroup, hasLeaf bool
	for _, child := range item.ChildElements() {
		switch classify(child).Kind {
		case KindP1group, KindPblock, KindPart, KindChapter:
			hasGroup = true
		case KindTabular, KindText:
			hasLeaf = true
		}
	}

	switch {
	case hasGroup:
		r.log.Debug("block amendment contains grouped structure", zap.String("tag", item.Tag))
		return r.parts(item, 1)
	case hasLeaf:
		return r.items(item, 1)
	default:
		return r.list(item.ChildElements(), 1)
	}
}

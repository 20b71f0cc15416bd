package clml

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// parts is the outer structural dispatcher. It walks the children of a
// container (body, part, chapter, schedule body) and emits nested sectioning
// HTML, recursing into items for leaf provisions. The dispatch is
// exhaustive-or-fail: any unrecognized child is a fatal UnknownTagError.
func (r *renderer) parts(body *etree.Element, level int) error {
	for _, part := range body.ChildElements() {
		id := classify(part)
		switch id.Kind {
		case KindPblock, KindPsubBlock, KindPart, KindChapter, KindScheduleBody:
			var attrs []Attr
			if v := part.SelectAttrValue("id", ""); v != "" {
				attrs = append(attrs, Attr{Key: "id", Value: v})
			}
			err := r.out.In("section", attrs, func() error {
				// Container titles are usually duplicated by a Title marker
				// child, which renders through the marker branch below.
				if hasProvisionChildren(part) {
					// A structural wrapper holding bare provisions rather
					// than sub-containers; skip straight to the item walker.
					return r.items(part, 0)
				}
				return r.parts(part, level+1)
			})
			if err != nil {
				return err
			}

		case KindP1group:
			slug := Slugify(childText(part, NSLegislation, "Title"))
			err := r.out.In("section", []Attr{{Key: "id", Value: slug}}, func() error {
				r.title(part, 3)
				return r.list(findChildren(part, NSLegislation, "P1"), 1)
			})
			if err != nil {
				return err
			}

		case KindTitle, KindTitleBlock:
			// The heading reads from the parent container, not the marker.
			r.title(body, level)

		case KindNumber:
			// TODO: render schedule numbers.

		case KindSignedSection:
			// TODO: render signatory blocks.

		case KindReference:
			// Handled by the caller.

		case KindText:
			closeP := r.out.Open("p")
			r.inline(part)
			closeP()

		default:
			return &UnknownTagError{Context: "part", Node: serializeElement(part)}
		}
	}
	return nil
}

// hasProvisionChildren reports whether el directly holds leaf provisions or
// opaque blocks. Any matching child counts, empty or not; containers like
// Pblock sometimes hold bare P1 elements instead of sub-containers.
func hasProvisionChildren(el *etree.Element) bool {
	for _, child := range el.ChildElements() {
		switch id := classify(child); id.Kind {
		case KindTabular, KindBlockAmendment:
			return true
		case KindNumbered:
			if id.Depth == 1 {
				return true
			}
		}
	}
	return false
}

// title emits a heading at the given depth from el's Number and Title (or
// TitleBlock/Title) children, joined as "number: title" when a number is
// present.
func (r *renderer) title(el *etree.Element, level int) {
	number := childText(el, NSLegislation, "Number")
	titleText := headingTitle(el)

	closeHeading := r.out.Open(fmt.Sprintf("h%d", level))
	if number != "" {
		r.out.Text(strings.TrimSpace(collapseWhitespace(number)) + ": " +
			strings.TrimSpace(collapseWhitespace(titleText)))
	} else {
		r.out.Text(strings.TrimSpace(collapseWhitespace(titleText)))
	}
	closeHeading()
}

// headingTitle returns the text of the first Title child or TitleBlock/Title
// grandchild, whichever appears first in document order.
func headingTitle(el *etree.Element) string {
	for _, child := range el.ChildElements() {
		if isTag(child, NSLegislation, "Title") {
			return flattenText(child)
		}
		if isTag(child, NSLegislation, "TitleBlock") {
			if nested := findChild(child, NSLegislation, "Title"); nested != nil {
				return flattenText(nested)
			}
		}
	}
	return ""
}

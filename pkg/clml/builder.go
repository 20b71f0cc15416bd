package clml

import (
	"html"
	"strings"
)

// Attr is a single HTML attribute on an emitted element.
type Attr struct {
	Key   string
	Value string
}

// Builder accumulates one HTML fragment. It is append-only and owned by a
// single top-level extraction for its duration.
//
// Open returns a guard that closes the element; In runs a body between the
// open and close so that every opened tag is closed on every exit path,
// including early error returns.
type Builder struct {
	buf strings.Builder
}

// Open writes the opening tag and returns the guard that writes the matching
// closing tag.
func (b *Builder) Open(tag string, attrs ...Attr) func() {
	b.buf.WriteByte('<')
	b.buf.WriteString(tag)
	for _, attr := range attrs {
		b.buf.WriteByte(' ')
		b.buf.WriteString(attr.Key)
		b.buf.WriteString(`="`)
		b.buf.WriteString(html.EscapeString(attr.Value))
		b.buf.WriteByte('"')
	}
	b.buf.WriteByte('>')
	return func() {
		b.buf.WriteString("</")
		b.buf.WriteString(tag)
		b.buf.WriteByte('>')
	}
}

// In emits tag around the output produced by body. The closing tag is
// written even when body returns an error, so a failed walk still leaves the
// buffer well formed up to the point of failure.
func (b *Builder) In(tag string, attrs []Attr, body func() error) error {
	closeTag := b.Open(tag, attrs...)
	err := body()
	closeTag()
	return err
}

// Text appends escaped character data.
func (b *Builder) Text(s string) {
	b.buf.WriteString(html.EscapeString(s))
}

// Raw appends a pre-serialized fragment verbatim. Used for opaque blocks
// (embedded tables and formulae) that are trusted pass-through content.
func (b *Builder) Raw(s string) {
	b.buf.WriteString(s)
}

// String returns the accumulated fragment.
func (b *Builder) String() string {
	return b.buf.String()
}

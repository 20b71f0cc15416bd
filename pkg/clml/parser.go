package clml

import (
	"fmt"

	"github.com/beevik/etree"
	"go.uber.org/zap"
)

// Variant identifies which of the two top-level document shapes was located.
type Variant int

const (
	// VariantNone means the document has no machine-readable body; some
	// instruments exist only as scanned PDF text.
	VariantNone Variant = iota
	VariantPrimary
	VariantSecondary
)

func (v Variant) String() string {
	switch v {
	case VariantPrimary:
		return "primary"
	case VariantSecondary:
		return "secondary"
	default:
		return "none"
	}
}

// Parser reads one parsed legislation document. It holds no mutable state
// between calls: Body, Schedules, Preamble, and Metadata are independently
// callable and deterministic for a fixed input tree. Separate documents can
// be processed concurrently with separate Parser values.
type Parser struct {
	doc *etree.Document
	log *zap.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger attaches a logger for debug traces. The default is a nop
// logger; the engine never logs in place of failing.
func WithLogger(log *zap.Logger) Option {
	return func(p *Parser) { p.log = log }
}

// NewParser wraps an already-parsed document tree.
func NewParser(doc *etree.Document, opts ...Option) *Parser {
	p := &Parser{doc: doc, log: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse reads a UTF-8 CLML document from data.
func Parse(data []byte, opts ...Option) (*Parser, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("failed to parse legislation XML: %w", err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("legislation XML has no root element")
	}
	return NewParser(doc, opts...), nil
}

// Root locates the legislation root element: the Primary subtree if present,
// otherwise the Secondary subtree. A nil element with VariantNone means the
// document carries no machine-readable body, which callers must treat as
// "nothing to render" rather than an error.
func (p *Parser) Root() (*etree.Element, Variant) {
	docRoot := p.doc.Root()
	if docRoot == nil {
		return nil, VariantNone
	}
	if primary := findChild(docRoot, NSLegislation, "Primary"); primary != nil {
		return primary, VariantPrimary
	}
	if secondary := findChild(docRoot, NSLegislation, "Secondary"); secondary != nil {
		return secondary, VariantSecondary
	}
	return nil, VariantNone
}

// Body renders the enacting text as an HTML fragment. An empty string with a
// nil error means the document has no machine-readable root or no body.
func (p *Parser) Body() (string, error) {
	root, variant := p.Root()
	if root == nil {
		return "", nil
	}
	body := findChild(root, NSLegislation, "Body")
	if body == nil {
		return "", nil
	}
	p.log.Debug("rendering body", zap.String("variant", variant.String()))

	r := &renderer{out: &Builder{}, log: p.log}
	if err := r.parts(body, 2); err != nil {
		return "", err
	}
	return r.out.String(), nil
}

// Schedules renders the schedules subtree as an HTML fragment, or an empty
// string if the document has no root or no schedules.
func (p *Parser) Schedules() (string, error) {
	root, _ := p.Root()
	if root == nil {
		return "", nil
	}
	schedules := findChild(root, NSLegislation, "Schedules")
	if schedules == nil {
		return "", nil
	}

	r := &renderer{out: &Builder{}, log: p.log}
	for _, schedule := range findChildren(schedules, NSLegislation, "Schedule") {
		err := r.out.In("section", []Attr{{Key: "class", Value: "schedule"}}, func() error {
			r.title(schedule, 2)
			return r.parts(schedule, 2)
		})
		if err != nil {
			return "", err
		}
	}
	return r.out.String(), nil
}

// renderer carries the output buffer through one top-level extraction. The
// recursive walk threads the nesting level explicitly; the only shared state
// is the append-only buffer.
type renderer struct {
	out *Builder
	log *zap.Logger
}

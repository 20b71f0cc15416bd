package clml

// metadataFields maps record keys to their Dublin Core source elements.
// Metadata completeness varies a lot across document sources, so extraction
// degrades gracefully: absent elements are simply omitted from the record.
var metadataFields = []struct {
	key   string
	local string
}{
	{"title", "title"},
	{"description", "description"},
	{"modified", "modified"},
}

// Metadata extracts bibliographic fields from the ukm:Metadata subtree.
// Returns an empty record when the subtree is absent; never fails.
func (p *Parser) Metadata() map[string]string {
	record := map[string]string{}

	docRoot := p.doc.Root()
	if docRoot == nil {
		return record
	}
	metadata := findChild(docRoot, NSMetadata, "Metadata")
	if metadata == nil {
		return record
	}

	for _, field := range metadataFields {
		if el := findChild(metadata, NSDublinCore, field.local); el != nil {
			record[field.key] = el.Text()
		}
	}
	return record
}

// Package ukleg fetches legislation documents from legislation.gov.uk as
// CLML XML, with request pacing and a TTL cache. The conversion engine in
// pkg/clml never performs I/O; this package is the collaborator that hands
// it document bytes.
package ukleg

import (
	"fmt"
	"strings"
)

// LegislationType is the type slug of UK legislation on legislation.gov.uk.
// See: https://www.legislation.gov.uk/developer
type LegislationType string

const (
	LegislationTypeUKPGA LegislationType = "ukpga" // UK Public General Acts
	LegislationTypeUKSI  LegislationType = "uksi"  // UK Statutory Instruments
	LegislationTypeASP   LegislationType = "asp"   // Acts of the Scottish Parliament
	LegislationTypeWSI   LegislationType = "wsi"   // Wales Statutory Instruments
	LegislationTypeNISR  LegislationType = "nisr"  // Northern Ireland Statutory Rules
)

// LegislationBaseURL is the base URL for legislation.gov.uk documents.
const LegislationBaseURL = "https://www.legislation.gov.uk/"

// DocumentID identifies one piece of legislation on legislation.gov.uk.
// Format: {type}/{year}/{number}, e.g. ukpga/2018/12.
type DocumentID struct {
	Type   LegislationType `json:"type"`
	Year   string          `json:"year"`
	Number string          `json:"number"`
}

// ParseDocumentID parses a type/year/number path such as "ukpga/2018/12"
// or a full legislation.gov.uk URL.
func ParseDocumentID(s string) (DocumentID, error) {
	s = strings.TrimPrefix(s, LegislationBaseURL)
	s = strings.TrimPrefix(s, "https://legislation.gov.uk/")
	s = strings.Trim(s, "/")

	segments := strings.Split(s, "/")
	if len(segments) != 3 {
		return DocumentID{}, fmt.Errorf("invalid legislation reference %q: want type/year/number", s)
	}
	for i, segment := range segments {
		if segment == "" {
			return DocumentID{}, fmt.Errorf("invalid legislation reference %q: empty segment %d", s, i+1)
		}
	}
	return DocumentID{
		Type:   LegislationType(segments[0]),
		Year:   segments[1],
		Number: segments[2],
	}, nil
}

// String returns the document's legislation.gov.uk page URL.
func (id DocumentID) String() string {
	return LegislationBaseURL + string(id.Type) + "/" + id.Year + "/" + id.Number
}

// DataXMLURL returns the URL of the document's CLML XML representation.
func (id DocumentID) DataXMLURL() string {
	return id.String() + "/data.xml"
}

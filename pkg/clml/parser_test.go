package clml

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const docOpen = `<Legislation xmlns="http://www.legislation.gov.uk/namespaces/legislation"` +
	` xmlns:ukm="http://www.legislation.gov.uk/namespaces/metadata"` +
	` xmlns:dc="http://purl.org/dc/elements/1.1/"` +
	` xmlns:html="http://www.w3.org/1999/xhtml"` +
	` xmlns:m="http://www.w3.org/1998/Math/MathML">`

func mustParse(t *testing.T, xml string) *Parser {
	t.Helper()
	parser, err := Parse([]byte(xml))
	require.NoError(t, err)
	return parser
}

func primaryDoc(body string) string {
	return docOpen + "<Primary><Body>" + body + "</Body></Primary></Legislation>"
}

func TestRootLocator(t *testing.T) {
	cases := []struct {
		name    string
		xml     string
		variant Variant
	}{
		{
			name:    "primary root",
			xml:     docOpen + "<Primary><Body/></Primary></Legislation>",
			variant: VariantPrimary,
		},
		{
			name:    "secondary root",
			xml:     docOpen + "<Secondary><Body/></Secondary></Legislation>",
			variant: VariantSecondary,
		},
		{
			name:    "primary wins over secondary",
			xml:     docOpen + "<Primary><Body/></Primary><Secondary><Body/></Secondary></Legislation>",
			variant: VariantPrimary,
		},
		{
			name:    "no machine-readable root",
			xml:     docOpen + "</Legislation>",
			variant: VariantNone,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			root, variant := mustParse(t, tc.xml).Root()
			assert.Equal(t, tc.variant, variant)
			if tc.variant == VariantNone {
				assert.Nil(t, root)
			} else {
				require.NotNil(t, root)
			}
		})
	}
}

func TestRootAbsence(t *testing.T) {
	parser := mustParse(t, docOpen+"</Legislation>")

	body, err := parser.Body()
	require.NoError(t, err)
	assert.Empty(t, body)

	schedules, err := parser.Schedules()
	require.NoError(t, err)
	assert.Empty(t, schedules)

	assert.Nil(t, parser.Preamble())
}

func TestBodyListGrouping(t *testing.T) {
	parser := mustParse(t, primaryDoc(`<P1group>`+
		`<Title>General Provisions!</Title>`+
		`<P1 id="section-1"><Pnumber>1</Pnumber><P1para>`+
		`<Text>Intro.</Text>`+
		`<P2><Pnumber>1</Pnumber><P2para><Text>first</Text></P2para></P2>`+
		`<P2><Pnumber>2</Pnumber><P2para><Text>second</Text></P2para></P2>`+
		`<P2><Pnumber>3</Pnumber><P2para><Text>third</Text></P2para></P2>`+
		`<Text>Interlude.</Text>`+
		`<P2><Pnumber>4</Pnumber><P2para><Text>fourth</Text></P2para></P2>`+
		`<P2><Pnumber>5</Pnumber><P2para><Text>fifth</Text></P2para></P2>`+
		`</P1para></P1>`+
		`</P1group>`))

	body, err := parser.Body()
	require.NoError(t, err)

	want := `<section id="general-provisions-"><h3>General Provisions!</h3>` +
		`<ol class="p1"><li data-number="1" id="section-1">` +
		`<p>Intro.</p>` +
		`<ol class="p2"><li data-number="1"><p>first</p></li><li data-number="2"><p>second</p></li><li data-number="3"><p>third</p></li></ol>` +
		`<p>Interlude.</p>` +
		`<ol class="p2"><li data-number="4"><p>fourth</p></li><li data-number="5"><p>fifth</p></li></ol>` +
		`</li></ol></section>`
	assert.Equal(t, want, body)

	// The run of numbered siblings is split into exactly two lists by the
	// interleaved paragraph.
	assert.Equal(t, 2, strings.Count(body, `<ol class="p2">`))
}

func TestBodyDeterminism(t *testing.T) {
	parser := mustParse(t, primaryDoc(`<P1group><Title>One</Title>`+
		`<P1><Pnumber>1</Pnumber><P1para><Text>text</Text></P1para></P1></P1group>`))

	first, err := parser.Body()
	require.NoError(t, err)
	second, err := parser.Body()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestBareContainerDispatch(t *testing.T) {
	// A Pblock holding provisions directly skips straight to the item
	// walker instead of nesting another section level.
	parser := mustParse(t, primaryDoc(`<Pblock id="pb1">` +
		`<P1><Pnumber>1</Pnumber><P1para><Text>bare</Text></P1para></P1>` +
		`</Pblock>`))

	body, err := parser.Body()
	require.NoError(t, err)
	assert.Equal(t, `<section id="pb1"><ol class="p1"><li data-number="1"><p>bare</p></li></ol></section>`, body)
}

func TestEmptyProvisionChildStillCountsAsBare(t *testing.T) {
	// Existence of a P1 child is what matters, not its contents; an empty
	// provision still marks the container as provision-bearing (and then
	// fails list emission for want of a number).
	parser := mustParse(t, primaryDoc(`<Pblock><P1/></Pblock>`))

	_, err := parser.Body()
	var missingNumber *MissingNumberError
	require.ErrorAs(t, err, &missingNumber)
}

func TestNestedContainers(t *testing.T) {
	parser := mustParse(t, primaryDoc(`<Part id="part-1">` +
		`<Number>Part 1</Number><Title>Openings</Title>` +
		`<Chapter id="chapter-1"><Title>First Chapter</Title>` +
		`<P1group><Title>Duty</Title>` +
		`<P1><Pnumber>1</Pnumber><P1para><Text>content</Text></P1para></P1>` +
		`</P1group></Chapter></Part>`))

	body, err := parser.Body()
	require.NoError(t, err)

	want := `<section id="part-1"><h3>Part 1: Openings</h3>` +
		`<section id="chapter-1"><h4>First Chapter</h4>` +
		`<section id="duty"><h3>Duty</h3>` +
		`<ol class="p1"><li data-number="1"><p>content</p></li></ol>` +
		`</section></section></section>`
	assert.Equal(t, want, body)
}

func TestEmbeddedLists(t *testing.T) {
	parser := mustParse(t, primaryDoc(`<P1group><Title>Lists</Title>` +
		`<P1><Pnumber>1</Pnumber><P1para>` +
		`<UnorderedList><ListItem NumberOverride="—"><Text>item one</Text></ListItem></UnorderedList>` +
		`<OrderedList><ListItem><Text>item two</Text></ListItem></OrderedList>` +
		`</P1para></P1></P1group>`))

	body, err := parser.Body()
	require.NoError(t, err)
	assert.Contains(t, body, `<ul><li data-number="—"><p>item one</p></li></ul>`)
	assert.Contains(t, body, `<ol><li><p>item two</p></li></ol>`)
}

func TestLevelDetectionOverridesCandidate(t *testing.T) {
	// A run of P3 items reached at level 1 is emitted at the depth encoded
	// in its tags, not the candidate level.
	parser := mustParse(t, primaryDoc(`<P1group><Title>Deep</Title>` +
		`<P1><Pnumber>1</Pnumber><P1para>` +
		`<P3><Pnumber>i</Pnumber><P3para><Text>deep item</Text></P3para></P3>` +
		`</P1para></P1></P1group>`))

	body, err := parser.Body()
	require.NoError(t, err)
	assert.Contains(t, body, `<ol class="p3"><li data-number="i"><p>deep item</p></li></ol>`)
}

func TestBlockAmendmentDepthReset(t *testing.T) {
	parser := mustParse(t, primaryDoc(`<P1group><Title>Amendments</Title>` +
		`<P1 id="s1"><Pnumber>1</Pnumber><P1para>` +
		`<Text>After section 9 insert</Text>` +
		`<BlockAmendment><Pblock>` +
		`<Title>Inserted rules</Title>` +
		`<P1group><Title>New duty</Title>` +
		`<P1><Pnumber>9A</Pnumber><P1para><Text>body text</Text></P1para></P1>` +
		`</P1group></Pblock></BlockAmendment>` +
		`</P1para></P1></P1group>`))

	body, err := parser.Body()
	require.NoError(t, err)

	// The amendment's heading depth restarts at the outermost value even
	// though it appears inside a depth-1 provision.
	want := `<section id="amendments"><h3>Amendments</h3>` +
		`<ol class="p1"><li data-number="1" id="s1">` +
		`<p>After section 9 insert</p>` +
		`<blockquote class="amendment"><section><h2>Inserted rules</h2>` +
		`<section id="new-duty"><h3>New duty</h3>` +
		`<ol class="p1"><li data-number="9A"><p>body text</p></li></ol>` +
		`</section></section></blockquote>` +
		`</li></ol></section>`
	assert.Equal(t, want, body)
}

func TestBlockAmendmentTextFragment(t *testing.T) {
	parser := mustParse(t, primaryDoc(`<P1group><Title>Words</Title>` +
		`<P1><Pnumber>1</Pnumber><P1para>` +
		`<BlockAmendment><Text>substituted words</Text></BlockAmendment>` +
		`</P1para></P1></P1group>`))

	body, err := parser.Body()
	require.NoError(t, err)
	assert.Contains(t, body, `<blockquote class="amendment"><p>substituted words</p></blockquote>`)
}

func TestBlockAmendmentNumberedRun(t *testing.T) {
	parser := mustParse(t, primaryDoc(`<P1group><Title>Run</Title>` +
		`<P1><Pnumber>1</Pnumber><P1para>` +
		`<BlockAmendment>` +
		`<P2><Pnumber>a</Pnumber><P2para><Text>one</Text></P2para></P2>` +
		`<P2><Pnumber>b</Pnumber><P2para><Text>two</Text></P2para></P2>` +
		`</BlockAmendment>` +
		`</P1para></P1></P1group>`))

	body, err := parser.Body()
	require.NoError(t, err)
	assert.Contains(t, body, `<blockquote class="amendment">`+
		`<ol class="p2"><li data-number="a"><p>one</p></li><li data-number="b"><p>two</p></li></ol>`+
		`</blockquote>`)
}

func TestUnknownTagIsFatal(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		context string
		tag     string
	}{
		{
			name:    "unknown structural tag",
			body:    `<Wibble/>`,
			context: "part",
			tag:     "Wibble",
		},
		{
			name: "unknown item tag",
			body: `<P1group><Title>T</Title><P1><Pnumber>1</Pnumber>` +
				`<P1para><Wobble/></P1para></P1></P1group>`,
			context: "item",
			tag:     "Wobble",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := mustParse(t, primaryDoc(tc.body)).Body()

			var unknownTag *UnknownTagError
			require.ErrorAs(t, err, &unknownTag)
			assert.Equal(t, tc.context, unknownTag.Context)
			assert.Contains(t, unknownTag.Node, tc.tag)
		})
	}
}

func TestMissingNumberIsFatal(t *testing.T) {
	parser := mustParse(t, primaryDoc(`<P1group><Title>T</Title>` +
		`<P1><P1para><Text>unnumbered</Text></P1para></P1></P1group>`))

	_, err := parser.Body()
	var missingNumber *MissingNumberError
	require.ErrorAs(t, err, &missingNumber)
	assert.Contains(t, missingNumber.Node, "unnumbered")
}

func TestSchedules(t *testing.T) {
	parser := mustParse(t, docOpen + `<Secondary><Schedules>` +
		`<Schedule id="schedule-1">` +
		`<Number>SCHEDULE 1</Number>` +
		`<TitleBlock><Title>Forms</Title></TitleBlock>` +
		`<ScheduleBody><P1group><Title>Prescribed form</Title>` +
		`<P1><Pnumber>1</Pnumber><P1para><Text>Use form A.</Text></P1para></P1>` +
		`</P1group></ScheduleBody>` +
		`</Schedule>` +
		`</Schedules></Secondary></Legislation>`)

	schedules, err := parser.Schedules()
	require.NoError(t, err)

	// The schedule wrapper and the title marker each contribute a heading.
	want := `<section class="schedule"><h2>SCHEDULE 1: Forms</h2><h2>SCHEDULE 1: Forms</h2>` +
		`<section><section id="prescribed-form"><h3>Prescribed form</h3>` +
		`<ol class="p1"><li data-number="1"><p>Use form A.</p></li></ol>` +
		`</section></section></section>`
	assert.Equal(t, want, schedules)
}

func TestSchedulesAbsent(t *testing.T) {
	parser := mustParse(t, docOpen+"<Primary><Body/></Primary></Legislation>")

	schedules, err := parser.Schedules()
	require.NoError(t, err)
	assert.Empty(t, schedules)
}

func TestNestedScheduleBody(t *testing.T) {
	// A full schedule structure occasionally reappears below the top level
	// inside a schedule part; it routes back through the structural walker.
	parser := mustParse(t, docOpen + `<Secondary><Schedules>` +
		`<Schedule><TitleBlock><Title>Outer</Title></TitleBlock>` +
		`<ScheduleBody>` +
		`<P1><Pnumber>1</Pnumber><P1para>` +
		`<ScheduleBody><P1group><Title>Inner</Title>` +
		`<P1><Pnumber>1</Pnumber><P1para><Text>nested</Text></P1para></P1>` +
		`</P1group></ScheduleBody>` +
		`</P1para></P1>` +
		`</ScheduleBody></Schedule>` +
		`</Schedules></Secondary></Legislation>`)

	schedules, err := parser.Schedules()
	require.NoError(t, err)
	assert.Contains(t, schedules, `<section id="inner"><h3>Inner</h3>`)
}

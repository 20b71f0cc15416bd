package clml

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilderOpenGuard(t *testing.T) {
	var b Builder
	closeSection := b.Open("section", Attr{Key: "id", Value: "s1"})
	b.Text("hello")
	closeSection()
	assert.Equal(t, `<section id="s1">hello</section>`, b.String())
}

func TestBuilderEscaping(t *testing.T) {
	var b Builder
	closeP := b.Open("p", Attr{Key: "data-number", Value: `1 "a" <b>`})
	b.Text("2 < 3 & 4")
	closeP()
	assert.Equal(t, `<p data-number="1 &#34;a&#34; &lt;b&gt;">2 &lt; 3 &amp; 4</p>`, b.String())
}

func TestBuilderInClosesOnError(t *testing.T) {
	var b Builder
	boom := errors.New("boom")
	err := b.In("section", nil, func() error {
		b.Text("partial")
		return boom
	})
	assert.ErrorIs(t, err, boom)
	// The element is closed even though the body failed.
	assert.Equal(t, `<section>partial</section>`, b.String())
}

func TestBuilderRaw(t *testing.T) {
	var b Builder
	b.Raw(`<table><tr><td>verbatim & untouched</td></tr></table>`)
	assert.Equal(t, `<table><tr><td>verbatim & untouched</td></tr></table>`, b.String())
}

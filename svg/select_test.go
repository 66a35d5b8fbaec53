package svg

import (
	"strings"
	"testing"

	"github.com/tdewolff/test"
)

const selectDoc = `<svg id="root">
	<defs><circle id="dot" class="a b" r="1"/></defs>
	<g id="g1" transform="scale(2)">
		<circle id="c1" transform="translate(1)" data-x="en-US"/>
		<g id="g2"><rect id="r1" xlink:href="#dot"/></g>
	</g>
	<svg:path id="p1" d="M0 0" href="icons.svg#one"/>
</svg>`

func ids(nodes []*Node) []string {
	s := []string{}
	for _, n := range nodes {
		s = append(s, n.ID())
	}
	return s
}

func TestSelectAll(t *testing.T) {
	doc, err := Parse(strings.NewReader(selectDoc))
	test.Error(t, err)

	var tts = []struct {
		sel string
		ids []string
	}{
		{"circle", []string{"dot", "c1"}},
		{"*", []string{"root", "", "dot", "g1", "c1", "g2", "r1", "p1"}},
		{"#c1", []string{"c1"}},
		{"circle#dot", []string{"dot"}},
		{"[transform]", []string{"g1", "c1"}},
		{"circle[transform]", []string{"c1"}},
		{"path", []string{"p1"}},
		{"[class~=b]", []string{"dot"}},
		{"[class~='a b']", []string{}},
		{"[data-x|=en]", []string{"c1"}},
		{"[href^=icons]", []string{"p1"}},
		{"[href$=\"#one\"]", []string{"p1"}},
		{"[d*='0 0']", []string{"p1"}},
		{"[xlink:href]", []string{"r1"}},
		{"[xlink|href='#dot']", []string{"r1"}},
		{"g rect", []string{"r1"}},
		{"g > rect", []string{"r1"}},
		{"svg > g > rect", []string{}},
		{"#g1 > circle, defs circle", []string{"dot", "c1"}},
		{"g  >  g", []string{"g2"}},
		{"[id=" + Quote(`p1`) + "]", []string{"p1"}},
	}
	for _, tt := range tts {
		t.Run(tt.sel, func(t *testing.T) {
			nodes, err := SelectAll(doc, tt.sel)
			test.Error(t, err)
			test.T(t, ids(nodes), tt.ids)
		})
	}
}

func TestSelect(t *testing.T) {
	doc, err := Parse(strings.NewReader(selectDoc))
	test.Error(t, err)

	n, err := Select(doc, "g circle")
	test.Error(t, err)
	test.String(t, n.ID(), "c1")

	n, err = Select(doc, "ellipse")
	test.Error(t, err)
	test.That(t, n == nil)

	// the root itself is not selected
	g1, err := Select(doc, "#g1")
	test.Error(t, err)
	n = MustCompile("g").Select(g1)
	test.String(t, n.ID(), "g2")

	test.That(t, MustCompile("g > circle").Match(g1.Elements()[0]))
	test.That(t, !MustCompile("defs > circle").Match(g1.Elements()[0]))
}

func TestSelectSnapshot(t *testing.T) {
	doc, err := Parse(strings.NewReader(selectDoc))
	test.Error(t, err)

	nodes := MustCompile("g").SelectAll(doc)
	for _, n := range nodes {
		n.Remove()
	}
	test.T(t, len(nodes), 2)
	test.T(t, ids(MustCompile("*").SelectAll(doc)), []string{"root", "", "dot", "p1"})
}

func TestCompileError(t *testing.T) {
	var tts = []string{
		"",
		",",
		"g,",
		"> g",
		"g >",
		"[",
		"[id",
		"[id=]",
		"[=a]",
		"g:hover",
		"circle circle circle.x",
		"a + b",
	}
	for _, tt := range tts {
		t.Run(tt, func(t *testing.T) {
			_, err := Compile(tt)
			test.That(t, err != nil, "expected error")
		})
	}
}

func TestQuote(t *testing.T) {
	test.String(t, Quote(`a"b\c`), `"a\"b\\c"`)
	test.String(t, unquote(Quote(`a"b\c`)), `a"b\c`)
}

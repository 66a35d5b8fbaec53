package svg

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tdewolff/test"
)

func TestParseWrite(t *testing.T) {
	var tts = []string{
		`<svg></svg>`,
		`<svg/>`,
		`<?xml version="1.0" encoding="UTF-8"?>` + "\n" + `<svg xmlns="http://www.w3.org/2000/svg"><circle r="1"/></svg>`,
		`<!DOCTYPE svg><svg><!-- comment --><text x='1'>a &amp; b</text></svg>`,
		`<svg><style><![CDATA[circle{fill:red}]]></style><g id="a" class="x y"><path d="M0 0"/></g></svg>`,
		`<svg:svg xmlns:svg="http://www.w3.org/2000/svg"><svg:rect xlink:href="#a"/></svg:svg>`,
	}
	for _, tt := range tts {
		t.Run(tt, func(t *testing.T) {
			doc, err := Parse(strings.NewReader(tt))
			test.Error(t, err)
			test.String(t, doc.String(), tt)

			buf := &bytes.Buffer{}
			n, err := doc.WriteTo(buf)
			test.Error(t, err)
			test.T(t, n, int64(len(tt)))
			test.String(t, buf.String(), tt)
		})
	}
}

func TestParseTree(t *testing.T) {
	doc, err := Parse(strings.NewReader(`<svg width="10"><g><circle id="c" r='2'/>text</g><rect/></svg>`))
	test.Error(t, err)
	test.T(t, doc.Type, DocumentNode)

	svg := doc.Elements()[0]
	test.String(t, svg.Tag, "svg")
	test.That(t, svg.Parent == doc)
	width, ok := svg.Attr("width")
	test.That(t, ok)
	test.String(t, width, "10")
	test.T(t, len(svg.Elements()), 2)

	g := svg.Elements()[0]
	test.T(t, len(g.Children), 2)
	test.T(t, g.Children[1].Type, TextNode)
	test.String(t, string(g.Children[1].Data), "text")

	c := g.Elements()[0]
	test.String(t, c.ID(), "c")
	test.T(t, c.Attrs[1], Attr{"r", "2", '\''})
	test.That(t, c.Void)
}

func TestParseError(t *testing.T) {
	var tts = []string{
		`<svg><g></svg>`,
		`<svg>`,
		`<svg></g>`,
		`</svg>`,
	}
	for _, tt := range tts {
		t.Run(tt, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt))
			test.That(t, err != nil, "expected error")
		})
	}
}

func TestNode(t *testing.T) {
	g := NewElement("g", Attr{Key: "id", Val: "a"})
	c := NewElement("circle")
	g.AppendChild(c)
	test.String(t, g.String(), `<g id="a"><circle/></g>`)

	c.SetAttr("r", "1")
	c.SetAttr("cx", "2")
	c.SetAttr("r", "3")
	test.String(t, c.String(), `<circle r="3" cx="2"/>`)
	test.That(t, c.HasAttr("cx"))
	test.That(t, c.DelAttr("cx"))
	test.That(t, !c.DelAttr("cx"))

	clone := g.Clone()
	test.That(t, clone.Parent == nil)
	test.That(t, clone.Children[0].Parent == clone)
	clone.Children[0].SetAttr("r", "4")
	test.String(t, c.String(), `<circle r="3"/>`)

	h := NewElement("g")
	h.AppendChild(c)
	test.T(t, len(g.Children), 0)
	test.That(t, c.Parent == h)
	c.Remove()
	test.T(t, len(h.Children), 0)
	test.That(t, c.Parent == nil)

	test.String(t, NewElement("svg:path").LocalName(), "path")
	test.String(t, ElementNode.String(), "Element")
}

func TestWalk(t *testing.T) {
	doc, err := Parse(strings.NewReader(`<svg><g><a/><b/></g><c/></svg>`))
	test.Error(t, err)

	tags := []string{}
	doc.Walk(func(n *Node) bool {
		if n.Type == ElementNode {
			tags = append(tags, n.Tag)
			if n.Tag == "a" {
				n.Remove()
			}
		}
		return n.Tag != "c"
	})
	test.T(t, tags, []string{"svg", "g", "a", "b", "c"})
	test.String(t, doc.String(), `<svg><g><b/></g><c/></svg>`)
}

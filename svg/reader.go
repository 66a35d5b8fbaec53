package svg

import (
	"io"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/xml"
)

// Parse reads an SVG (or any XML) document into a tree rooted at a DocumentNode.
func Parse(r io.Reader) (*Node, error) {
	z := parse.NewInput(r)
	defer z.Restore()

	l := xml.NewLexer(z)
	doc := &Node{Type: DocumentNode}
	cur := doc
	for {
		tt, data := l.Next()
		switch tt {
		case xml.ErrorToken:
			if l.Err() != io.EOF {
				return doc, l.Err()
			} else if cur != doc {
				return doc, parse.NewErrorLexer(z, "unclosed tag %s", cur.Tag)
			}
			return doc, nil
		case xml.StartTagToken, xml.StartTagPIToken:
			n := &Node{
				Type: ElementNode,
				Tag:  string(data[1:]),
			}
			if tt == xml.StartTagPIToken {
				n.Type = ProcInstNode
				n.Tag = string(data[2:])
			}
			for {
				tt, _ = l.Next()
				if tt != xml.AttributeToken {
					break
				}
				key := string(l.Text())
				val := l.AttrVal()
				quote := byte('"')
				if 1 < len(val) && (val[0] == '\'' || val[0] == '"') && val[0] == val[len(val)-1] {
					quote = val[0]
					val = val[1 : len(val)-1]
				}
				n.Attrs = append(n.Attrs, Attr{Key: key, Val: string(val), Quote: quote})
			}

			cur.AppendChild(n)
			switch tt {
			case xml.StartTagCloseToken:
				cur = n
			case xml.StartTagCloseVoidToken, xml.StartTagClosePIToken:
				n.Void = true
			case xml.ErrorToken:
				if l.Err() == io.EOF {
					return doc, parse.NewErrorLexer(z, "unexpected end of file in tag %s", n.Tag)
				}
				return doc, l.Err()
			}
		case xml.EndTagToken:
			tag := string(l.Text())
			if cur.Type != ElementNode || cur.Tag != tag {
				return doc, parse.NewErrorLexer(z, "unexpected end tag %s", tag)
			}
			cur = cur.Parent
		case xml.TextToken:
			cur.AppendChild(&Node{Type: TextNode, Data: copyBytes(data)})
		case xml.CommentToken:
			cur.AppendChild(&Node{Type: CommentNode, Data: copyBytes(data)})
		case xml.CDATAToken:
			cur.AppendChild(&Node{Type: CDATANode, Data: copyBytes(data)})
		case xml.DOCTYPEToken:
			cur.AppendChild(&Node{Type: DoctypeNode, Data: copyBytes(data)})
		}
	}
}

// copyBytes detaches token data from the lexer's buffer.
func copyBytes(b []byte) []byte {
	return append([]byte{}, b...)
}

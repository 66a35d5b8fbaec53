package svg

import (
	"io"
)

// WriteTo writes n and its descendants as XML.
func (n *Node) WriteTo(w io.Writer) (int64, error) {
	b := n.appendTo(nil)
	m, err := w.Write(b)
	return int64(m), err
}

func (n *Node) String() string {
	return string(n.appendTo(nil))
}

func (n *Node) appendTo(b []byte) []byte {
	switch n.Type {
	case DocumentNode:
		for _, c := range n.Children {
			b = c.appendTo(b)
		}
	case ElementNode:
		b = append(b, '<')
		b = append(b, n.Tag...)
		b = appendAttrs(b, n.Attrs)
		if n.Void && len(n.Children) == 0 {
			return append(b, '/', '>')
		}
		b = append(b, '>')
		for _, c := range n.Children {
			b = c.appendTo(b)
		}
		b = append(b, '<', '/')
		b = append(b, n.Tag...)
		b = append(b, '>')
	case ProcInstNode:
		b = append(b, '<', '?')
		b = append(b, n.Tag...)
		b = appendAttrs(b, n.Attrs)
		b = append(b, '?', '>')
	default:
		b = append(b, n.Data...)
	}
	return b
}

func appendAttrs(b []byte, attrs []Attr) []byte {
	for _, attr := range attrs {
		quote := attr.Quote
		if quote == 0 {
			quote = '"'
		}
		b = append(b, ' ')
		b = append(b, attr.Key...)
		b = append(b, '=', quote)
		b = append(b, attr.Val...)
		b = append(b, quote)
	}
	return b
}

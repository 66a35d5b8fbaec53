// Package svg holds a lightweight, mutable SVG document tree. Elements keep their
// attributes in source order and their values in escaped source form so that a document
// can be read, edited and written back with minimal churn.
package svg

import (
	"strings"
)

// NodeType is the kind of a Node.
type NodeType int

// NodeType values.
const (
	DocumentNode NodeType = iota
	ElementNode
	TextNode
	CommentNode
	CDATANode
	DoctypeNode
	ProcInstNode
)

func (t NodeType) String() string {
	switch t {
	case DocumentNode:
		return "Document"
	case ElementNode:
		return "Element"
	case TextNode:
		return "Text"
	case CommentNode:
		return "Comment"
	case CDATANode:
		return "CDATA"
	case DoctypeNode:
		return "Doctype"
	case ProcInstNode:
		return "ProcInst"
	}
	return "Invalid"
}

// Attr is an element attribute. Val is kept escaped, Quote is the quote character used
// when writing (a double quote when zero).
type Attr struct {
	Key   string
	Val   string
	Quote byte
}

// Node is a document, element or raw token in an SVG tree. Data holds the verbatim
// source of non-element nodes. Void elements without children are written self-closing.
type Node struct {
	Type     NodeType
	Tag      string
	Attrs    []Attr
	Children []*Node
	Parent   *Node
	Data     []byte
	Void     bool
}

// NewElement returns a detached element node.
func NewElement(tag string, attrs ...Attr) *Node {
	return &Node{
		Type:  ElementNode,
		Tag:   tag,
		Attrs: attrs,
		Void:  true,
	}
}

// Attr returns the value of attribute key.
func (n *Node) Attr(key string) (string, bool) {
	for _, attr := range n.Attrs {
		if attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

// HasAttr returns true if attribute key is present.
func (n *Node) HasAttr(key string) bool {
	_, ok := n.Attr(key)
	return ok
}

// SetAttr sets attribute key to val, appending it when it did not exist.
func (n *Node) SetAttr(key, val string) {
	for i := range n.Attrs {
		if n.Attrs[i].Key == key {
			n.Attrs[i].Val = val
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Key: key, Val: val})
}

// DelAttr removes attribute key and reports whether it was present.
func (n *Node) DelAttr(key string) bool {
	for i := range n.Attrs {
		if n.Attrs[i].Key == key {
			n.Attrs = append(n.Attrs[:i], n.Attrs[i+1:]...)
			return true
		}
	}
	return false
}

// ID returns the id attribute.
func (n *Node) ID() string {
	id, _ := n.Attr("id")
	return id
}

// AppendChild adds c as the last child of n, detaching it from its previous parent.
func (n *Node) AppendChild(c *Node) {
	if c.Parent != nil {
		c.Parent.RemoveChild(c)
	}
	c.Parent = n
	n.Children = append(n.Children, c)
}

// RemoveChild detaches c from n and reports whether it was a child.
func (n *Node) RemoveChild(c *Node) bool {
	for i, child := range n.Children {
		if child == c {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			c.Parent = nil
			return true
		}
	}
	return false
}

// Remove detaches n from its parent.
func (n *Node) Remove() {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// Elements returns the element children of n.
func (n *Node) Elements() []*Node {
	elems := []*Node{}
	for _, c := range n.Children {
		if c.Type == ElementNode {
			elems = append(elems, c)
		}
	}
	return elems
}

// Walk calls f for n and all its descendants in document order. When f returns false
// the children of that node are skipped.
func (n *Node) Walk(f func(*Node) bool) {
	if !f(n) {
		return
	}
	// the slice is copied so f may detach nodes
	children := append([]*Node{}, n.Children...)
	for _, c := range children {
		c.Walk(f)
	}
}

// Clone returns a deep copy of n without a parent.
func (n *Node) Clone() *Node {
	m := &Node{
		Type:  n.Type,
		Tag:   n.Tag,
		Attrs: append([]Attr{}, n.Attrs...),
		Void:  n.Void,
	}
	if n.Data != nil {
		m.Data = append([]byte{}, n.Data...)
	}
	for _, c := range n.Children {
		cc := c.Clone()
		cc.Parent = m
		m.Children = append(m.Children, cc)
	}
	return m
}

// LocalName returns the tag without its namespace prefix.
func (n *Node) LocalName() string {
	if i := strings.IndexByte(n.Tag, ':'); i != -1 {
		return n.Tag[i+1:]
	}
	return n.Tag
}

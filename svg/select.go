package svg

import (
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Selector is a compiled CSS selector group. It supports type and universal selectors,
// #id, attribute selectors ([a], [a=v], [a~=v], [a|=v], [a^=v], [a$=v], [a*=v]),
// descendant and child combinators, and comma-separated alternatives.
type Selector []complexSelector

type complexSelector []compoundSelector

type compoundSelector struct {
	comb  byte // combinator with the previous compound: ' ' or '>'
	tag   string
	attrs []attrSelector
}

type attrSelector struct {
	key string
	op  byte
	val string
}

type selectorToken struct {
	tt   css.TokenType
	data string
}

// MustCompile is like Compile but panics on error.
func MustCompile(sel string) Selector {
	s, err := Compile(sel)
	if err != nil {
		panic(err)
	}
	return s
}

// Compile parses a selector group.
func Compile(sel string) (Selector, error) {
	l := css.NewLexer(parse.NewInputString(sel))
	toks := []selectorToken{}
	for {
		tt, data := l.Next()
		if tt == css.ErrorToken {
			if l.Err() != io.EOF {
				return nil, fmt.Errorf("bad selector %q: %w", sel, l.Err())
			}
			break
		}
		toks = append(toks, selectorToken{tt, string(data)})
	}

	s := Selector{}
	cur := complexSelector{}
	var c *compoundSelector
	comb := byte(' ')
	dangling := false
	closeCompound := func() {
		if c != nil {
			cur = append(cur, *c)
			c = nil
		}
	}
	newCompound := func() *compoundSelector {
		dangling = false
		if len(cur) == 0 {
			return &compoundSelector{}
		}
		return &compoundSelector{comb: comb}
	}

	for i := 0; i < len(toks); i++ {
		t := toks[i]
		switch t.tt {
		case css.WhitespaceToken, css.CommentToken:
			if c != nil {
				closeCompound()
				comb = ' '
			}
		case css.CommaToken:
			closeCompound()
			if len(cur) == 0 || dangling {
				return nil, fmt.Errorf("bad selector %q: empty selector", sel)
			}
			s = append(s, cur)
			cur = complexSelector{}
			comb = ' '
		case css.IdentToken:
			if c != nil {
				return nil, fmt.Errorf("bad selector %q: unexpected %s", sel, t.data)
			}
			c = newCompound()
			c.tag = t.data
		case css.DelimToken:
			switch t.data {
			case "*":
				if c != nil {
					return nil, fmt.Errorf("bad selector %q: unexpected *", sel)
				}
				c = newCompound()
				c.tag = "*"
			case ">":
				closeCompound()
				if len(cur) == 0 {
					return nil, fmt.Errorf("bad selector %q: combinator without left-hand side", sel)
				}
				comb = '>'
				dangling = true
			default:
				return nil, fmt.Errorf("bad selector %q: unexpected %s", sel, t.data)
			}
		case css.HashToken:
			if c == nil {
				c = newCompound()
			}
			c.attrs = append(c.attrs, attrSelector{"id", '=', t.data[1:]})
		case css.LeftBracketToken:
			if c == nil {
				c = newCompound()
			}
			attr, n, err := parseAttrSelector(toks[i+1:])
			if err != nil {
				return nil, fmt.Errorf("bad selector %q: %w", sel, err)
			}
			c.attrs = append(c.attrs, attr)
			i += n
		default:
			return nil, fmt.Errorf("bad selector %q: unexpected %s", sel, t.data)
		}
	}
	closeCompound()
	if len(cur) == 0 || dangling {
		return nil, fmt.Errorf("bad selector %q: empty selector", sel)
	}
	return append(s, cur), nil
}

// parseAttrSelector parses the tokens following a left bracket and returns the number
// of tokens consumed including the right bracket.
func parseAttrSelector(toks []selectorToken) (attrSelector, int, error) {
	attr := attrSelector{}
	i := 0
	skipWhitespace := func() {
		for i < len(toks) && toks[i].tt == css.WhitespaceToken {
			i++
		}
	}

	skipWhitespace()
	for i < len(toks) {
		t := toks[i]
		if t.tt == css.IdentToken {
			attr.key += t.data
		} else if t.tt == css.ColonToken || t.tt == css.DelimToken && t.data == "|" {
			// namespace prefix, as in xlink:href or xlink|href
			attr.key += ":"
		} else {
			break
		}
		i++
	}
	if attr.key == "" {
		return attr, 0, fmt.Errorf("expected attribute name")
	}

	skipWhitespace()
	if i == len(toks) {
		return attr, 0, fmt.Errorf("unterminated attribute selector")
	}
	switch toks[i].tt {
	case css.RightBracketToken:
		return attr, i + 1, nil
	case css.IncludeMatchToken:
		attr.op = '~'
	case css.DashMatchToken:
		attr.op = '|'
	case css.PrefixMatchToken:
		attr.op = '^'
	case css.SuffixMatchToken:
		attr.op = '$'
	case css.SubstringMatchToken:
		attr.op = '*'
	case css.DelimToken:
		if toks[i].data != "=" {
			return attr, 0, fmt.Errorf("unexpected %s", toks[i].data)
		}
		attr.op = '='
	default:
		return attr, 0, fmt.Errorf("unexpected %s", toks[i].data)
	}
	i++

	skipWhitespace()
	if i == len(toks) {
		return attr, 0, fmt.Errorf("expected attribute value")
	}
	switch toks[i].tt {
	case css.StringToken:
		attr.val = unquote(toks[i].data)
	case css.IdentToken, css.NumberToken, css.DimensionToken, css.PercentageToken:
		attr.val = toks[i].data
	default:
		return attr, 0, fmt.Errorf("unexpected %s", toks[i].data)
	}
	i++

	skipWhitespace()
	if i == len(toks) || toks[i].tt != css.RightBracketToken {
		return attr, 0, fmt.Errorf("unterminated attribute selector")
	}
	return attr, i + 1, nil
}

func unquote(s string) string {
	if 1 < len(s) && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		s = s[1 : len(s)-1]
	}
	if strings.IndexByte(s, '\\') == -1 {
		return s
	}
	sb := strings.Builder{}
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

// Quote returns val as a quoted selector string, for use in attribute selectors.
func Quote(val string) string {
	val = strings.ReplaceAll(val, `\`, `\\`)
	return `"` + strings.ReplaceAll(val, `"`, `\"`) + `"`
}

// Match returns true if element n matches any of the selectors in the group.
func (s Selector) Match(n *Node) bool {
	if n == nil || n.Type != ElementNode {
		return false
	}
	for _, cs := range s {
		if cs.matchAt(len(cs)-1, n) {
			return true
		}
	}
	return false
}

func (cs complexSelector) matchAt(i int, n *Node) bool {
	if !cs[i].match(n) {
		return false
	} else if i == 0 {
		return true
	}

	if cs[i].comb == '>' {
		p := n.Parent
		return p != nil && p.Type == ElementNode && cs.matchAt(i-1, p)
	}
	for p := n.Parent; p != nil && p.Type == ElementNode; p = p.Parent {
		if cs.matchAt(i-1, p) {
			return true
		}
	}
	return false
}

func (c compoundSelector) match(n *Node) bool {
	if c.tag != "" && c.tag != "*" && c.tag != n.Tag && c.tag != n.LocalName() {
		return false
	}
	for _, attr := range c.attrs {
		if !attr.match(n) {
			return false
		}
	}
	return true
}

func (a attrSelector) match(n *Node) bool {
	val, ok := n.Attr(a.key)
	if !ok {
		return false
	}
	switch a.op {
	case 0:
		return true
	case '=':
		return val == a.val
	case '~':
		if a.val == "" {
			return false
		}
		for _, item := range strings.Fields(val) {
			if item == a.val {
				return true
			}
		}
		return false
	case '|':
		return val == a.val || strings.HasPrefix(val, a.val+"-")
	case '^':
		return a.val != "" && strings.HasPrefix(val, a.val)
	case '$':
		return a.val != "" && strings.HasSuffix(val, a.val)
	case '*':
		return a.val != "" && strings.Contains(val, a.val)
	}
	return false
}

// SelectAll returns the descendants of root matching s in document order. The result is
// a snapshot, so the tree may be modified while iterating over it.
func (s Selector) SelectAll(root *Node) []*Node {
	nodes := []*Node{}
	for _, c := range root.Children {
		c.Walk(func(n *Node) bool {
			if s.Match(n) {
				nodes = append(nodes, n)
			}
			return true
		})
	}
	return nodes
}

// Select returns the first descendant of root matching s, or nil.
func (s Selector) Select(root *Node) *Node {
	var found *Node
	for _, c := range root.Children {
		c.Walk(func(n *Node) bool {
			if found != nil {
				return false
			} else if s.Match(n) {
				found = n
				return false
			}
			return true
		})
		if found != nil {
			break
		}
	}
	return found
}

// SelectAll compiles sel and returns all matching descendants of root.
func SelectAll(root *Node, sel string) ([]*Node, error) {
	s, err := Compile(sel)
	if err != nil {
		return nil, err
	}
	return s.SelectAll(root), nil
}

// Select compiles sel and returns the first matching descendant of root, or nil.
func Select(root *Node, sel string) (*Node, error) {
	s, err := Compile(sel)
	if err != nil {
		return nil, err
	}
	return s.Select(root), nil
}

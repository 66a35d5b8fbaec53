// Package flatten bakes the translate, rotate and scale transforms of SVG shapes into their coordinates. Circles keep their tag, rects and ellipses become paths, use elements are replaced by the element they reference, and group transforms are pushed down to the shapes they contain.
package flatten

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/tdewolff/flatten/svg"
)

// Options are the options for Flatten.
type Options struct {
	// Precision is the number of significant digits of written numbers, zero keeps all digits.
	Precision int

	// RemoveReferenced removes elements referenced by a use element after all references are resolved.
	RemoveReferenced bool
}

// DefaultOptions are the default options.
var DefaultOptions = Options{
	Precision:        0,
	RemoveReferenced: false,
}

var (
	useSelector       = svg.MustCompile("use[href], use[xlink:href]")
	groupSelector     = svg.MustCompile("g[transform], mask[transform]")
	shapeSelector     = svg.MustCompile("rect, ellipse")
	transformSelector = svg.MustCompile("[transform]")
)

type flattener struct {
	root   *svg.Node
	opts   Options
	diags  Diagnostics
	failed map[*svg.Node]bool

	resolved   map[*svg.Node]bool
	resolving  map[*svg.Node]bool
	referenced []*svg.Node
}

// Flatten removes all transform attributes from the shapes in the tree at root by rewriting their geometry, see FlattenElement. It first resolves use elements, then pushes the transforms of g and mask elements down to their children, converts rect and ellipse elements to paths, and finally flattens every element that still has a transform. Elements that fail keep their attributes, all other elements are still flattened. The returned error joins the errors of all failed elements. Warnings are reported in the diagnostics only.
func Flatten(root *svg.Node, opts Options) (Diagnostics, error) {
	f := &flattener{
		root:      root,
		opts:      opts,
		diags:     Diagnostics{},
		failed:    map[*svg.Node]bool{},
		resolved:  map[*svg.Node]bool{},
		resolving: map[*svg.Node]bool{},
	}
	f.resolveUses()
	f.pushDownGroups()
	f.convertShapes()
	f.flattenElements()
	return f.diags, f.diags.Err()
}

func (f *flattener) fail(n *svg.Node, err error) {
	f.failed[n] = true
	f.diags.fail(n, err)
}

////////////////////////////////////////////////////////////////

func href(n *svg.Node) (string, bool) {
	if val, ok := n.Attr("href"); ok {
		return val, true
	}
	return n.Attr("xlink:href")
}

func isAncestor(a, n *svg.Node) bool {
	for p := n; p != nil; p = p.Parent {
		if p == a {
			return true
		}
	}
	return false
}

func (f *flattener) resolveUses() {
	for _, n := range useSelector.SelectAll(f.root) {
		f.resolveUse(n)
	}
	if f.opts.RemoveReferenced {
		for _, ref := range f.referenced {
			ref.Remove()
		}
	}
}

// resolveUse replaces use element n by a copy of the element it references and reports whether it succeeded.
func (f *flattener) resolveUse(n *svg.Node) bool {
	if f.resolved[n] {
		return n.LocalName() != "use"
	} else if f.resolving[n] {
		return false
	}
	f.resolving[n] = true
	defer func() {
		delete(f.resolving, n)
		f.resolved[n] = true
	}()

	// x and y translate the referenced element after the transform of the use element
	var x, y float64
	if err := readAttrs(n, []string{"x", "y"}, []*float64{&x, &y}); err != nil {
		f.fail(n, err)
		return false
	}

	val, _ := href(n)
	n.DelAttr("href")
	n.DelAttr("xlink:href")

	var ref *svg.Node
	if id := strings.TrimSpace(val); strings.HasPrefix(id, "#") {
		if sel, err := svg.Compile("[id=" + svg.Quote(id[1:]) + "]"); err == nil {
			ref = sel.Select(f.root)
		}
	}
	if ref == nil {
		f.unresolved(n, "unresolved reference "+val)
		return false
	} else if isAncestor(ref, n) {
		f.unresolved(n, "recursive reference "+val)
		return false
	} else if ref.LocalName() == "use" && !f.resolveUse(ref) {
		f.unresolved(n, "unresolved reference "+val)
		return false
	} else if !f.resolveNested(ref) {
		f.unresolved(n, "recursive reference "+val)
		return false
	}

	n.DelAttr("x")
	n.DelAttr("y")
	if x != 0.0 || y != 0.0 {
		translate := "translate(" + formatNumber(x, 0) + "," + formatNumber(y, 0) + ")"
		if t, ok := n.Attr("transform"); ok && strings.TrimSpace(t) != "" {
			translate = t + " " + translate
		}
		n.SetAttr("transform", translate)
	}

	for _, attr := range ref.Attrs {
		if attr.Key == "id" {
			continue
		} else if val, ok := n.Attr(attr.Key); ok {
			n.SetAttr(attr.Key, val+" "+attr.Val)
		} else {
			n.Attrs = append(n.Attrs, attr)
		}
	}
	n.Tag = ref.Tag
	n.Void = ref.Void
	for _, c := range ref.Children {
		c = c.Clone()
		c.Walk(func(m *svg.Node) bool {
			m.DelAttr("id")
			return true
		})
		n.AppendChild(c)
	}
	f.referenced = append(f.referenced, ref)
	Logger().Debug("resolved use", slog.String("href", val), slog.String("tag", n.Tag))
	return true
}

// resolveNested resolves the use elements inside ref so that copies of ref contain none. It returns false when one of them is being resolved already.
func (f *flattener) resolveNested(ref *svg.Node) bool {
	ok := true
	for _, m := range useSelector.SelectAll(ref) {
		if f.resolving[m] {
			ok = false
		} else {
			f.resolveUse(m)
		}
	}
	return ok
}

// unresolved marks a use element that references nothing, it draws nothing so its transform is dropped.
func (f *flattener) unresolved(n *svg.Node, msg string) {
	n.DelAttr("transform")
	f.diags.warn(n, msg)
}

////////////////////////////////////////////////////////////////

// hidden are elements that are never rendered, including use elements left unresolved.
var hidden = map[string]bool{
	"defs":     true,
	"desc":     true,
	"metadata": true,
	"script":   true,
	"style":    true,
	"title":    true,
	"use":      true,
}

// pushDownGroups prepends the transform of every g and mask element to the transforms of its rendered element children, from the outermost group inwards. A group keeps its transform when the transform of a child is malformed.
func (f *flattener) pushDownGroups() {
	f.root.Walk(func(n *svg.Node) bool {
		if n.Type != svg.ElementNode || !groupSelector.Match(n) {
			return true
		}
		val, _ := n.Attr("transform")
		if t, err := ParseTransform(val); err != nil {
			f.fail(n, err)
			return true
		} else if len(t) == 0 {
			n.DelAttr("transform")
			return true
		}

		children := []*svg.Node{}
		transforms := []string{}
		for _, c := range n.Elements() {
			if hidden[c.LocalName()] {
				continue
			}
			t, ok := c.Attr("transform")
			if ok && strings.TrimSpace(t) != "" {
				var uerr *UnsupportedTransformError
				if _, err := ParseTransform(t); err != nil && !errors.As(err, &uerr) {
					f.failed[n] = true
					f.diags.warn(n, "cannot push transform down to child with invalid transform")
					return true
				}
				t = val + " " + t
			} else {
				t = val
			}
			children = append(children, c)
			transforms = append(transforms, t)
		}
		for i, c := range children {
			c.SetAttr("transform", transforms[i])
		}
		n.DelAttr("transform")
		return true
	})
}

func (f *flattener) convertShapes() {
	for _, n := range shapeSelector.SelectAll(f.root) {
		if n.HasAttr("transform") {
			// converted while flattening to avoid rounding twice
			continue
		} else if _, err := convertShape(n, f.opts.Precision); err != nil {
			f.fail(n, err)
		}
	}
}

func (f *flattener) flattenElements() {
	for _, n := range transformSelector.SelectAll(f.root) {
		if f.failed[n] {
			continue
		}
		val, _ := n.Attr("transform")
		err := FlattenElement(n, f.opts)
		if errElem := (*UnsupportedElementError)(nil); errors.As(err, &errElem) {
			f.diags.warn(n, "cannot flatten transform of unsupported element")
		} else if err != nil {
			f.fail(n, err)
		} else {
			Logger().Debug("flattened", slog.String("tag", n.Tag), slog.String("transform", val))
		}
	}
}

package flatten

import (
	"math"

	"github.com/tdewolff/flatten/svg"
)

// shape is the geometry of a supported element, read from its attributes and written back after transformation.
type shape interface {
	Geometry
	write(n *svg.Node, prec int)
}

// readAttr parses a numeric attribute, returning def when it is absent.
func readAttr(n *svg.Node, key string, def float64) (float64, bool, error) {
	val, ok := n.Attr(key)
	if !ok {
		return def, false, nil
	}
	f, err := parseNumber(key, val)
	if err != nil {
		return 0.0, true, err
	}
	return f, true, nil
}

// readAttrs parses the numeric attributes keys into dst, missing attributes are zero.
func readAttrs(n *svg.Node, keys []string, dst []*float64) error {
	for i, key := range keys {
		f, _, err := readAttr(n, key, 0.0)
		if err != nil {
			return err
		}
		*dst[i] = f
	}
	return nil
}

// retag changes the element name, keeping its namespace prefix.
func retag(n *svg.Node, local string) {
	n.Tag = n.Tag[:len(n.Tag)-len(n.LocalName())] + local
}

////////////////////////////////////////////////////////////////

type circleShape struct {
	cx, cy, r float64
	hasR      bool
	scaled    bool
}

func readCircle(n *svg.Node) (*circleShape, error) {
	c := &circleShape{}
	if err := readAttrs(n, []string{"cx", "cy"}, []*float64{&c.cx, &c.cy}); err != nil {
		return nil, err
	}
	var err error
	if c.r, c.hasR, err = readAttr(n, "r", 0.0); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *circleShape) Translate(dx, dy float64) {
	c.cx += dx
	c.cy += dy
}

func (c *circleShape) Rotate(rot Rotator, deg float64) {
	c.cx, c.cy = rot(c.cx, c.cy)
}

// Scale assumes |sx| equals |sy|, other scalings turn the circle into an ellipse path first.
func (c *circleShape) Scale(sx, sy float64) {
	c.cx *= sx
	c.cy *= sy
	c.r *= math.Abs(sx)
	c.scaled = true
}

func (c *circleShape) write(n *svg.Node, prec int) {
	// zero is the default and is omitted
	for _, attr := range []struct {
		key string
		val float64
	}{{"cx", c.cx}, {"cy", c.cy}} {
		if s := formatNumber(attr.val, prec); s != "0" {
			n.SetAttr(attr.key, s)
		} else {
			n.DelAttr(attr.key)
		}
	}
	if c.hasR && c.scaled {
		n.SetAttr("r", formatNumber(c.r, prec))
	}
}

func (c *circleShape) path() *Path {
	return Circle(c.cx, c.cy, c.r)
}

////////////////////////////////////////////////////////////////

type pathShape struct {
	*Path
}

func readPath(n *svg.Node) (*pathShape, error) {
	d, _ := n.Attr("d")
	p, err := ParsePath(d)
	if err != nil {
		return nil, err
	}
	return &pathShape{p}, nil
}

func (p *pathShape) write(n *svg.Node, prec int) {
	n.SetAttr("d", p.Format(prec))
}

////////////////////////////////////////////////////////////////

// rectPath returns the path of a rect element.
func rectPath(n *svg.Node) (*Path, error) {
	var x, y, w, h float64
	if err := readAttrs(n, []string{"x", "y", "width", "height"}, []*float64{&x, &y, &w, &h}); err != nil {
		return nil, err
	}
	rx, hasRx, err := readAttr(n, "rx", 0.0)
	if err != nil {
		return nil, err
	}
	ry, hasRy, err := readAttr(n, "ry", 0.0)
	if err != nil {
		return nil, err
	}
	rx, ry = resolveRadii(rx, ry, hasRx, hasRy)
	return Rectangle(x, y, w, h, rx, ry), nil
}

// ellipsePath returns the path of an ellipse element.
func ellipsePath(n *svg.Node) (*Path, error) {
	var cx, cy float64
	if err := readAttrs(n, []string{"cx", "cy"}, []*float64{&cx, &cy}); err != nil {
		return nil, err
	}
	rx, hasRx, err := readAttr(n, "rx", 0.0)
	if err != nil {
		return nil, err
	}
	ry, hasRy, err := readAttr(n, "ry", 0.0)
	if err != nil {
		return nil, err
	}
	rx, ry = resolveRadii(rx, ry, hasRx, hasRy)
	return Ellipse(cx, cy, rx, ry), nil
}

// toPath replaces the geometry attributes of n by path data p and renames it to a path element.
func toPath(n *svg.Node, p *Path, prec int, keys ...string) {
	for _, key := range keys {
		n.DelAttr(key)
	}
	retag(n, "path")
	n.SetAttr("d", p.Format(prec))
}

// convertShape converts rect and ellipse elements into path elements and reports whether n was converted. The element is unchanged on error.
func convertShape(n *svg.Node, prec int) (bool, error) {
	switch n.LocalName() {
	case "rect":
		p, err := rectPath(n)
		if err != nil {
			return false, err
		}
		toPath(n, p, prec, "x", "y", "width", "height", "rx", "ry")
	case "ellipse":
		p, err := ellipsePath(n)
		if err != nil {
			return false, err
		}
		toPath(n, p, prec, "cx", "cy", "rx", "ry")
	default:
		return false, nil
	}
	return true, nil
}

// FlattenElement bakes the transform attribute of a single circle, path, rect or ellipse element into its geometry and removes the attribute. Rect and ellipse elements become path elements, and so do circles under a scaling that is not uniform. The element is left unchanged when an error is returned. Other elements return an UnsupportedElementError.
func FlattenElement(n *svg.Node, opts Options) error {
	val, ok := n.Attr("transform")
	if !ok {
		return nil
	}
	t, err := ParseTransform(val)
	if err != nil {
		return err
	}

	var s shape
	switch n.LocalName() {
	case "circle":
		c, err := readCircle(n)
		if err != nil {
			return err
		}
		if !t.uniform() {
			p := c.path()
			t.Apply(p)
			toPath(n, p, opts.Precision, "cx", "cy", "r")
			n.DelAttr("transform")
			return nil
		}
		s = c
	case "path":
		if s, err = readPath(n); err != nil {
			return err
		}
	case "rect":
		p, err := rectPath(n)
		if err != nil {
			return err
		}
		t.Apply(p)
		toPath(n, p, opts.Precision, "x", "y", "width", "height", "rx", "ry")
		n.DelAttr("transform")
		return nil
	case "ellipse":
		p, err := ellipsePath(n)
		if err != nil {
			return err
		}
		t.Apply(p)
		toPath(n, p, opts.Precision, "cx", "cy", "rx", "ry")
		n.DelAttr("transform")
		return nil
	default:
		return &UnsupportedElementError{n.Tag}
	}

	t.Apply(s)
	s.write(n, opts.Precision)
	n.DelAttr("transform")
	return nil
}

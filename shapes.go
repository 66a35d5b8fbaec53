package flatten

import (
	"math"
)

// Rectangle returns a rectangle at (x,y) of width w and height h with corner radii rx and ry. The radii are clamped to half the width and height. A rectangle without area returns an empty path.
func Rectangle(x, y, w, h, rx, ry float64) *Path {
	p := &Path{abs: indexSet{}}
	if w <= 0.0 || h <= 0.0 {
		return p
	}

	rx = math.Min(math.Max(rx, 0.0), w/2.0)
	ry = math.Min(math.Max(ry, 0.0), h/2.0)
	if rx == 0.0 || ry == 0.0 {
		p.add('M', x, y)
		p.add('H', x+w)
		p.add('V', y+h)
		p.add('H', x)
		p.add('Z')
		return p
	}

	p.add('M', x+rx, y)
	p.add('H', x+w-rx)
	p.add('a', rx, ry, 0.0, 0.0, 1.0, rx, ry)
	p.add('V', y+h-ry)
	p.add('a', rx, ry, 0.0, 0.0, 1.0, -rx, ry)
	p.add('H', x+rx)
	p.add('a', rx, ry, 0.0, 0.0, 1.0, -rx, -ry)
	p.add('V', y+ry)
	p.add('a', rx, ry, 0.0, 0.0, 1.0, rx, -ry)
	p.add('Z')
	return p
}

// Ellipse returns an ellipse centered at (cx,cy) with radii rx and ry, drawn as two half arcs. An ellipse without area returns an empty path.
func Ellipse(cx, cy, rx, ry float64) *Path {
	p := &Path{abs: indexSet{}}
	if rx <= 0.0 || ry <= 0.0 {
		return p
	}

	p.add('M', cx+rx, cy)
	p.add('A', rx, ry, 0.0, 0.0, 1.0, cx-rx, cy)
	p.add('A', rx, ry, 0.0, 0.0, 1.0, cx+rx, cy)
	p.add('Z')
	return p
}

// Circle returns a circle centered at (cx,cy) with radius r.
func Circle(cx, cy, r float64) *Path {
	return Ellipse(cx, cy, r, r)
}

// resolveRadii resolves the corner or ellipse radii, where a missing radius takes the value of the other one.
func resolveRadii(rx, ry float64, hasRx, hasRy bool) (float64, float64) {
	if !hasRx && hasRy {
		rx = ry
	} else if hasRx && !hasRy {
		ry = rx
	}
	return rx, ry
}

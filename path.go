package flatten

import (
	"math"
	"strings"
)

// PathCmd is a single path command with one coordinate group, such as L with two arguments or A with seven. Uppercase commands hold absolute coordinates, lowercase commands hold deltas relative to the current point.
type PathCmd struct {
	Cmd  byte
	Args []float64
}

func isRelative(cmd byte) bool {
	return 'a' <= cmd && cmd <= 'z'
}

func toUpper(cmd byte) byte {
	if isRelative(cmd) {
		return cmd - 'a' + 'A'
	}
	return cmd
}

// toAbsolute returns the absolute form of the command given the current point.
func (c PathCmd) toAbsolute(cur Point) PathCmd {
	args := append([]float64{}, c.Args...)
	switch c.Cmd {
	case 'h':
		args[0] += cur.X
	case 'v':
		args[0] += cur.Y
	case 'a':
		args[5] += cur.X
		args[6] += cur.Y
	case 'z':
	default:
		for j := 0; j+1 < len(args); j += 2 {
			args[j] += cur.X
			args[j+1] += cur.Y
		}
	}
	return PathCmd{toUpper(c.Cmd), args}
}

// end returns the end point of the command given the current point. Closepath commands return the current point.
func (c PathCmd) end(cur Point) Point {
	switch c.Cmd {
	case 'Z', 'z':
		return cur
	case 'H':
		return Point{c.Args[0], cur.Y}
	case 'h':
		return Point{cur.X + c.Args[0], cur.Y}
	case 'V':
		return Point{cur.X, c.Args[0]}
	case 'v':
		return Point{cur.X, cur.Y + c.Args[0]}
	}
	n := len(c.Args)
	p := Point{c.Args[n-2], c.Args[n-1]}
	if isRelative(c.Cmd) {
		return cur.Add(p)
	}
	return p
}

////////////////////////////////////////////////////////////////

// indexSet holds the positions of commands with absolute coordinates.
type indexSet map[int]struct{}

func (s indexSet) has(i int) bool {
	_, ok := s[i]
	return ok
}

// Path is parsed path data. Coordinates are translated, rotated and scaled in place.
type Path struct {
	Cmds []PathCmd
	abs  indexSet
}

// Empty returns true if the path has no commands.
func (p *Path) Empty() bool {
	return len(p.Cmds) == 0
}

// Absolute returns true if the command at position i holds absolute coordinates.
func (p *Path) Absolute(i int) bool {
	return p.abs.has(i)
}

func (p *Path) add(cmd byte, args ...float64) {
	if p.abs == nil {
		p.abs = indexSet{}
	}
	if !isRelative(cmd) {
		p.abs[len(p.Cmds)] = struct{}{}
	}
	p.Cmds = append(p.Cmds, PathCmd{cmd, args})
}

// Coords returns the absolute end point of every command except closepaths.
func (p *Path) Coords() []Point {
	coords := []Point{}
	var cur, start Point
	for _, c := range p.Cmds {
		if c.Cmd == 'Z' || c.Cmd == 'z' {
			cur = start
			continue
		}
		cur = c.end(cur)
		if c.Cmd == 'M' || c.Cmd == 'm' {
			start = cur
		}
		coords = append(coords, cur)
	}
	return coords
}

// Translate moves all absolute coordinates by (dx,dy); relative commands are unaffected.
func (p *Path) Translate(dx, dy float64) {
	for i := range p.Cmds {
		if !p.abs.has(i) {
			continue
		}
		args := p.Cmds[i].Args
		switch p.Cmds[i].Cmd {
		case 'Z':
		case 'H':
			for j := range args {
				args[j] += dx
			}
		case 'V':
			for j := range args {
				args[j] += dy
			}
		case 'A':
			args[5] += dx
			args[6] += dy
		default:
			for j := 0; j+1 < len(args); j += 2 {
				args[j] += dx
				args[j+1] += dy
			}
		}
	}
}

// Rotate rotates all coordinates using rot, and adds deg to the x-axis rotation of arcs. Horizontal and vertical lines cannot express a rotated direction and are rewritten into relative lines, for which the current point is tracked.
func (p *Path) Rotate(rot Rotator, deg float64) {
	var cur, start Point
	for i := range p.Cmds {
		c := &p.Cmds[i]
		switch c.Cmd {
		case 'Z', 'z':
			cur = start
		case 'H', 'h', 'V', 'v':
			var d Point
			switch c.Cmd {
			case 'H':
				d.X = c.Args[0] - cur.X
			case 'h':
				d.X = c.Args[0]
			case 'V':
				d.Y = c.Args[0] - cur.Y
			case 'v':
				d.Y = c.Args[0]
			}
			cur = cur.Add(d)

			x, y := rot(d.X, d.Y)
			*c = PathCmd{'l', []float64{x, y}}
			delete(p.abs, i)
		default:
			cur = c.end(cur)
			if c.Cmd == 'M' || c.Cmd == 'm' {
				start = cur
			}

			if c.Cmd == 'A' || c.Cmd == 'a' {
				c.Args[5], c.Args[6] = rot(c.Args[5], c.Args[6])
				c.Args[2] += deg
			} else {
				for j := 0; j+1 < len(c.Args); j += 2 {
					c.Args[j], c.Args[j+1] = rot(c.Args[j], c.Args[j+1])
				}
			}
		}
	}
}

// Scale multiplies all coordinates and deltas by (sx,sy). Arc radii and rotation follow the scaled ellipse, and the sweep flag flips for reflections.
func (p *Path) Scale(sx, sy float64) {
	for i := range p.Cmds {
		args := p.Cmds[i].Args
		switch p.Cmds[i].Cmd {
		case 'Z', 'z':
		case 'H', 'h':
			for j := range args {
				args[j] *= sx
			}
		case 'V', 'v':
			for j := range args {
				args[j] *= sy
			}
		case 'A', 'a':
			scaleArc(args, sx, sy)
		default:
			for j := 0; j+1 < len(args); j += 2 {
				args[j] *= sx
				args[j+1] *= sy
			}
		}
	}
}

func scaleArc(args []float64, sx, sy float64) {
	rx, ry, rot := args[0], args[1], args[2]
	if Equal(math.Abs(sx), math.Abs(sy)) {
		args[0], args[1] = rx*math.Abs(sx), ry*math.Abs(sx)
		if sx*sy < 0.0 {
			args[2] = -rot
		}
	} else {
		args[0], args[1], args[2] = Identity.Scale(sx, sy).Rotate(rot).Scale(rx, ry).ellipseAxes()
	}
	if sx*sy < 0.0 {
		args[4] = 1.0 - args[4]
	}
	args[5] *= sx
	args[6] *= sy
}

// Transform applies the transformation, for tests and callers that already hold a Transform.
func (p *Path) Transform(t Transform) *Path {
	t.Apply(p)
	return p
}

// Copy returns a deep copy of the path.
func (p *Path) Copy() *Path {
	q := &Path{
		Cmds: make([]PathCmd, len(p.Cmds)),
		abs:  make(indexSet, len(p.abs)),
	}
	for i, c := range p.Cmds {
		q.Cmds[i] = PathCmd{c.Cmd, append([]float64{}, c.Args...)}
	}
	for i := range p.abs {
		q.abs[i] = struct{}{}
	}
	return q
}

// String returns the path data with all digits.
func (p *Path) String() string {
	return p.Format(0)
}

// Format returns the path data with numbers of prec significant digits, where zero keeps all digits. Each command is written as its letter, a space and its comma-separated arguments.
func (p *Path) Format(prec int) string {
	sb := strings.Builder{}
	for i, c := range p.Cmds {
		if i != 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte(c.Cmd)
		for j, arg := range c.Args {
			if j == 0 {
				sb.WriteByte(' ')
			} else {
				sb.WriteByte(',')
			}
			sb.WriteString(formatNumber(arg, prec))
		}
	}
	return sb.String()
}

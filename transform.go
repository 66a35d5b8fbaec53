package flatten

import (
	"fmt"
	"math"
	"strings"

	"github.com/tdewolff/parse/v2/strconv"
)

// TransformFunc is one function of a transform attribute, with its arguments not yet parsed.
type TransformFunc struct {
	Name string
	Args string
}

func (f TransformFunc) String() string {
	return f.Name + "(" + f.Args + ")"
}

// SplitTransform splits a transform attribute into its functions in written order. Functions may be separated by whitespace or a comma. Function names are not checked here.
func SplitTransform(s string) ([]TransformFunc, error) {
	b := []byte(s)
	funcs := []TransformFunc{}
	i := skipWhitespace(b)
	for i < len(b) {
		start := i
		for i < len(b) && isLetter(b[i]) {
			i++
		}
		if i == start {
			return nil, &ParseError{Value: s, Err: fmt.Errorf("expected function name at position %d", i)}
		}
		name := s[start:i]

		i += skipWhitespace(b[i:])
		if i == len(b) || b[i] != '(' {
			return nil, &ParseError{Value: s, Err: fmt.Errorf("expected ( after %s", name)}
		}
		end := strings.IndexByte(s[i:], ')')
		if end == -1 {
			return nil, &ParseError{Value: s, Err: fmt.Errorf("unterminated %s", name)}
		}
		funcs = append(funcs, TransformFunc{name, s[i+1 : i+end]})
		i += end + 1

		i += skipWhitespace(b[i:])
		if i < len(b) && b[i] == ',' {
			i++
			i += skipWhitespace(b[i:])
			if i == len(b) {
				return nil, &ParseError{Value: s, Err: fmt.Errorf("trailing comma")}
			}
		}
	}
	return funcs, nil
}

// parseArgs parses a list of numbers separated by whitespace and at most one comma.
func parseArgs(s string) ([]float64, error) {
	b := []byte(s)
	args := []float64{}
	i := skipWhitespace(b)
	for i < len(b) {
		if 0 < len(args) {
			if b[i] == ',' {
				i++
				i += skipWhitespace(b[i:])
			}
		}
		f, n := strconv.ParseFloat(b[i:])
		if n == 0 {
			return nil, fmt.Errorf("expected number at position %d", i)
		}
		args = append(args, f)
		i += n
		i += skipWhitespace(b[i:])
	}
	return args, nil
}

// Operation returns the geometric operation of the function. Functions other than translate, rotate and scale return an UnsupportedTransformError.
func (f TransformFunc) Operation() (Operation, error) {
	var counts []int
	switch f.Name {
	case "translate", "scale":
		counts = []int{1, 2}
	case "rotate":
		counts = []int{1, 3}
	default:
		return nil, &UnsupportedTransformError{f.Name}
	}

	args, err := parseArgs(f.Args)
	if err != nil {
		return nil, &ParseError{Func: f.Name, Value: f.Args, Err: err}
	} else if len(args) != counts[0] && len(args) != counts[1] {
		return nil, &ParseError{Func: f.Name, Value: f.Args, Err: fmt.Errorf("expected %d or %d numbers, got %d", counts[0], counts[1], len(args))}
	}
	for _, arg := range args {
		if math.IsInf(arg, 0) || math.IsNaN(arg) {
			return nil, &ParseError{Func: f.Name, Value: f.Args, Err: fmt.Errorf("number out of range")}
		}
	}

	switch f.Name {
	case "translate":
		if len(args) == 1 {
			return Translation{args[0], 0.0}, nil
		}
		return Translation{args[0], args[1]}, nil
	case "scale":
		if len(args) == 1 {
			return Scaling{args[0], args[0]}, nil
		}
		return Scaling{args[0], args[1]}, nil
	}
	if len(args) == 1 {
		return Rotation{Angle: args[0]}, nil
	}
	return Rotation{Angle: args[0], Pivot: &Point{args[1], args[2]}}, nil
}

////////////////////////////////////////////////////////////////

// Rotator maps a vector to its rotated vector around the origin.
type Rotator func(x, y float64) (float64, float64)

// NewRotator returns the rotator for deg degrees, positive angles rotate the x-axis towards the y-axis.
func NewRotator(deg float64) Rotator {
	m := Identity.Rotate(deg)
	return func(x, y float64) (float64, float64) {
		p := m.Dot(Point{x, y})
		return p.X, p.Y
	}
}

// Geometry is implemented by coordinate data that can be transformed in place.
type Geometry interface {
	Translate(dx, dy float64)
	Rotate(rot Rotator, deg float64)
	Scale(sx, sy float64)
}

// Operation is a single parsed transform function.
type Operation interface {
	Apply(Geometry)
	Matrix() Matrix
}

// Translation is an offset.
type Translation struct {
	Dx, Dy float64
}

func (t Translation) Apply(g Geometry) {
	g.Translate(t.Dx, t.Dy)
}

func (t Translation) Matrix() Matrix {
	return Identity.Translate(t.Dx, t.Dy)
}

// Rotation is a rotation of Angle degrees around the origin, or around Pivot if set.
type Rotation struct {
	Angle float64
	Pivot *Point
}

func (r Rotation) Apply(g Geometry) {
	if r.Pivot != nil {
		g.Translate(-r.Pivot.X, -r.Pivot.Y)
	}
	g.Rotate(NewRotator(r.Angle), r.Angle)
	if r.Pivot != nil {
		g.Translate(r.Pivot.X, r.Pivot.Y)
	}
}

func (r Rotation) Matrix() Matrix {
	if r.Pivot != nil {
		return Identity.RotateAt(r.Angle, r.Pivot.X, r.Pivot.Y)
	}
	return Identity.Rotate(r.Angle)
}

// Scaling multiplies each axis.
type Scaling struct {
	Sx, Sy float64
}

func (s Scaling) Apply(g Geometry) {
	g.Scale(s.Sx, s.Sy)
}

func (s Scaling) Matrix() Matrix {
	return Identity.Scale(s.Sx, s.Sy)
}

////////////////////////////////////////////////////////////////

// Transform is a list of operations in written order.
type Transform []Operation

// ParseTransform parses a transform attribute. It returns a ParseError for malformed input and an UnsupportedTransformError for functions other than translate, rotate and scale.
func ParseTransform(s string) (Transform, error) {
	funcs, err := SplitTransform(s)
	if err != nil {
		return nil, err
	}
	t := make(Transform, 0, len(funcs))
	for _, f := range funcs {
		op, err := f.Operation()
		if err != nil {
			return nil, err
		}
		t = append(t, op)
	}
	return t, nil
}

// Apply applies the operations to g from last to first, so the first written function acts last.
func (t Transform) Apply(g Geometry) {
	for i := len(t) - 1; 0 <= i; i-- {
		t[i].Apply(g)
	}
}

// Matrix returns the composed affine matrix.
func (t Transform) Matrix() Matrix {
	m := Identity
	for _, op := range t {
		m = m.Mul(op.Matrix())
	}
	return m
}

// IsIdentity returns true if the transform does not move any point.
func (t Transform) IsIdentity() bool {
	return t.Matrix().Equals(Identity)
}

// uniform returns true if all scalings scale both axes by the same absolute factor, so circles stay circles.
func (t Transform) uniform() bool {
	for _, op := range t {
		if s, ok := op.(Scaling); ok && !Equal(math.Abs(s.Sx), math.Abs(s.Sy)) {
			return false
		}
	}
	return true
}

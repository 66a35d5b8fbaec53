package flatten

import (
	"fmt"
	"math"
)

// Epsilon is the tolerance used when comparing coordinates.
const Epsilon = 1e-10

// Equal returns true if a and b are equal with tolerance Epsilon.
func Equal(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

////////////////////////////////////////////////////////////////

// Point is a coordinate in 2D space.
type Point struct {
	X, Y float64
}

// IsZero returns true if P is exactly zero.
func (p Point) IsZero() bool {
	return p.X == 0.0 && p.Y == 0.0
}

// Equals returns true if P and Q are equal with tolerance Epsilon.
func (p Point) Equals(q Point) bool {
	return Equal(p.X, q.X) && Equal(p.Y, q.Y)
}

// Add adds Q to P.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub subtracts Q from P.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

////////////////////////////////////////////////////////////////

// Matrix is used for affine transformations. Be aware that concatenating transformation functions will be evaluated right-to-left! So in Identity.Rotate(30).Translate(20,0) will first translate 20 points horizontally and then rotate 30 degrees, the same order as in a transform attribute.
type Matrix [2][3]float64

// Identity is the identity transformation.
var Identity = Matrix{
	{1.0, 0.0, 0.0},
	{0.0, 1.0, 0.0},
}

// Mul multiplies the matrices, so that Q is applied before M.
func (m Matrix) Mul(q Matrix) Matrix {
	return Matrix{{
		m[0][0]*q[0][0] + m[0][1]*q[1][0],
		m[0][0]*q[0][1] + m[0][1]*q[1][1],
		m[0][0]*q[0][2] + m[0][1]*q[1][2] + m[0][2],
	}, {
		m[1][0]*q[0][0] + m[1][1]*q[1][0],
		m[1][0]*q[0][1] + m[1][1]*q[1][1],
		m[1][0]*q[0][2] + m[1][1]*q[1][2] + m[1][2],
	}}
}

// Dot transforms point P.
func (m Matrix) Dot(p Point) Point {
	return Point{
		m[0][0]*p.X + m[0][1]*p.Y + m[0][2],
		m[1][0]*p.X + m[1][1]*p.Y + m[1][2],
	}
}

// Translate adds a translation.
func (m Matrix) Translate(x, y float64) Matrix {
	return m.Mul(Matrix{
		{1.0, 0.0, x},
		{0.0, 1.0, y},
	})
}

// Rotate adds a rotation of rot degrees, positive angles rotate the x-axis towards the y-axis.
func (m Matrix) Rotate(rot float64) Matrix {
	sintheta, costheta := math.Sincos(rot * math.Pi / 180.0)
	return m.Mul(Matrix{
		{costheta, -sintheta, 0.0},
		{sintheta, costheta, 0.0},
	})
}

// RotateAt adds a rotation of rot degrees around (x,y).
func (m Matrix) RotateAt(rot, x, y float64) Matrix {
	return m.Translate(x, y).Rotate(rot).Translate(-x, -y)
}

// Scale adds a scaling.
func (m Matrix) Scale(x, y float64) Matrix {
	return m.Mul(Matrix{
		{x, 0.0, 0.0},
		{0.0, y, 0.0},
	})
}

// Det returns the determinant of the linear part.
func (m Matrix) Det() float64 {
	return m[0][0]*m[1][1] - m[0][1]*m[1][0]
}

// Equals returns true if both matrices are equal with tolerance Epsilon.
func (m Matrix) Equals(q Matrix) bool {
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			if !Equal(m[i][j], q[i][j]) {
				return false
			}
		}
	}
	return true
}

// ellipseAxes returns the radii and the rotation in degrees of the ellipse that is the image of the unit circle under M.
func (m Matrix) ellipseAxes() (float64, float64, float64) {
	// eigen decomposition of M·Mᵀ, which is symmetric
	a, b, c, d := m[0][0], m[0][1], m[1][0], m[1][1]
	p := a*a + b*b
	q := a*c + b*d
	r := c*c + d*d
	mean := (p + r) / 2.0
	dev := math.Hypot((p-r)/2.0, q)
	lambda1, lambda2 := mean+dev, math.Max(mean-dev, 0.0)
	theta := 0.5 * math.Atan2(2.0*q, p-r)
	return math.Sqrt(lambda1), math.Sqrt(lambda2), theta * 180.0 / math.Pi
}

func (m Matrix) String() string {
	return fmt.Sprintf("[%g, %g, %g; %g, %g, %g; 0, 0, 1]", m[0][0], m[0][1], m[0][2], m[1][0], m[1][1], m[1][2])
}

package shapes

import (
	"math"
	"math/rand/v2"
)

// Source is the random source consumed by a Sampler.
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	// IntN returns a uniform integer in [0, n).
	IntN(n int) int
	// Float64 returns a uniform float in [0, 1).
	Float64() float64
}

// NewSource returns a seeded PCG source. Equal seeds yield equal scenes.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Vec2 is a point or vector in pixel space.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Matrix2 is a 2x2 matrix in row-major order.
type Matrix2 [2][2]float64

// Rotation returns the standard rotation matrix for an angle in degrees:
//
//	[cos θ, -sin θ]
//	[sin θ,  cos θ]
func Rotation(degrees int) Matrix2 {
	theta := float64(degrees) * math.Pi / 180.0
	sin, cos := math.Sincos(theta)
	return Matrix2{
		{cos, -sin},
		{sin, cos},
	}
}

// MulRow returns the row vector v multiplied by m (v·m).
func (m Matrix2) MulRow(v Vec2) Vec2 {
	return Vec2{
		X: v.X*m[0][0] + v.Y*m[1][0],
		Y: v.X*m[0][1] + v.Y*m[1][1],
	}
}

// Transform places one shape on the canvas.
type Transform struct {
	// Angle is the sampled rotation in whole degrees, in [0, 360).
	Angle int `json:"angle"`

	// Rotation is the rotation matrix for Angle.
	Rotation Matrix2 `json:"rotation"`

	// Offset is the integer pixel translation of the shape's local origin.
	Offset Vec2 `json:"offset"`
}

// NewTransform builds a Transform from an angle and an offset.
func NewTransform(degrees int, offset Vec2) Transform {
	return Transform{Angle: degrees, Rotation: Rotation(degrees), Offset: offset}
}

// Sampler draws random transforms and random geometry parameters.
type Sampler struct {
	src Source
}

// NewSampler returns a Sampler reading from src.
func NewSampler(src Source) *Sampler {
	return &Sampler{src: src}
}

// Transform samples a rotation uniformly over whole degrees in [0, 360) and
// an offset whose axes are each round(size * U(0.1, 0.9)).
func (s *Sampler) Transform(size int) Transform {
	angle := s.src.IntN(360)
	x := math.Round((s.src.Float64()*0.8 + 0.1) * float64(size))
	y := math.Round((s.src.Float64()*0.8 + 0.1) * float64(size))
	return NewTransform(angle, Vec2{X: x, Y: y})
}

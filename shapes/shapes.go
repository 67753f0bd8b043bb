// Package shapes generates vertex data for simple primitives
package shapes

import (
	"math"

	"github.com/bloeys/gglm/gglm"
)

// Shape is indexed triangle data with counter-clockwise front faces
type Shape struct {
	Positions []gglm.Vec3
	Normals   []gglm.Vec3
	Tangents  []gglm.Vec3
	UV0s      []gglm.Vec2
	Indices   []uint32
}

func (s *Shape) VertexCount() int {
	return len(s.Positions)
}

func (s *Shape) appendVertex(pos, normal, tangent gglm.Vec3, uv gglm.Vec2) {
	s.Positions = append(s.Positions, pos)
	s.Normals = append(s.Normals, normal)
	s.Tangents = append(s.Tangents, tangent)
	s.UV0s = append(s.UV0s, uv)
}

type boxFace struct {
	n, u, v [3]float32
}

var boxFaces = [6]boxFace{
	{n: [3]float32{1, 0, 0}, u: [3]float32{0, 0, -1}, v: [3]float32{0, 1, 0}},
	{n: [3]float32{-1, 0, 0}, u: [3]float32{0, 0, 1}, v: [3]float32{0, 1, 0}},
	{n: [3]float32{0, 1, 0}, u: [3]float32{1, 0, 0}, v: [3]float32{0, 0, -1}},
	{n: [3]float32{0, -1, 0}, u: [3]float32{1, 0, 0}, v: [3]float32{0, 0, 1}},
	{n: [3]float32{0, 0, 1}, u: [3]float32{1, 0, 0}, v: [3]float32{0, 1, 0}},
	{n: [3]float32{0, 0, -1}, u: [3]float32{-1, 0, 0}, v: [3]float32{0, 1, 0}},
}

// Box is an axis aligned box of the given size centered on the origin.
// Every face has its own 4 vertices so normals stay flat.
func Box(width, height, depth float32) Shape {

	half := [3]float32{width / 2, height / 2, depth / 2}
	s := Shape{
		Positions: make([]gglm.Vec3, 0, 24),
		Normals:   make([]gglm.Vec3, 0, 24),
		Tangents:  make([]gglm.Vec3, 0, 24),
		UV0s:      make([]gglm.Vec2, 0, 24),
		Indices:   make([]uint32, 0, 36),
	}

	corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	for _, f := range boxFaces {

		base := uint32(s.VertexCount())
		for _, c := range corners {

			var p [3]float32
			for axis := 0; axis < 3; axis++ {
				p[axis] = (f.n[axis] + f.u[axis]*c[0] + f.v[axis]*c[1]) * half[axis]
			}

			s.appendVertex(
				gglm.NewVec3(p[0], p[1], p[2]),
				gglm.NewVec3(f.n[0], f.n[1], f.n[2]),
				gglm.NewVec3(f.u[0], f.u[1], f.u[2]),
				gglm.NewVec2((c[0]+1)/2, (c[1]+1)/2),
			)
		}

		s.Indices = append(s.Indices, base, base+1, base+2, base, base+2, base+3)
	}

	return s
}

// Sphere is a UV sphere centered on the origin. Segment counts below 3 (width) and 2 (height) are raised.
func Sphere(radius float32, widthSegments, heightSegments uint32) Shape {

	widthSegments = max(widthSegments, 3)
	heightSegments = max(heightSegments, 2)

	vertCount := int((widthSegments + 1) * (heightSegments + 1))
	s := Shape{
		Positions: make([]gglm.Vec3, 0, vertCount),
		Normals:   make([]gglm.Vec3, 0, vertCount),
		Tangents:  make([]gglm.Vec3, 0, vertCount),
		UV0s:      make([]gglm.Vec2, 0, vertCount),
		Indices:   make([]uint32, 0, widthSegments*(heightSegments-1)*6),
	}

	for iy := uint32(0); iy <= heightSegments; iy++ {

		v := float64(iy) / float64(heightSegments)
		sinTheta, cosTheta := math.Sincos(v * math.Pi)

		for ix := uint32(0); ix <= widthSegments; ix++ {

			u := float64(ix) / float64(widthSegments)
			sinPhi, cosPhi := math.Sincos(u * 2 * math.Pi)

			nx := float32(-cosPhi * sinTheta)
			ny := float32(cosTheta)
			nz := float32(sinPhi * sinTheta)

			s.appendVertex(
				gglm.NewVec3(nx*radius, ny*radius, nz*radius),
				gglm.NewVec3(nx, ny, nz),
				gglm.NewVec3(float32(sinPhi), 0, float32(cosPhi)),
				gglm.NewVec2(float32(u), float32(1-v)),
			)
		}
	}

	rowLen := widthSegments + 1
	for iy := uint32(0); iy < heightSegments; iy++ {
		for ix := uint32(0); ix < widthSegments; ix++ {

			a := iy*rowLen + ix + 1
			b := iy*rowLen + ix
			c := (iy+1)*rowLen + ix
			d := (iy+1)*rowLen + ix + 1

			// Rows touching a pole have one degenerate triangle which is skipped
			if iy != 0 {
				s.Indices = append(s.Indices, a, b, d)
			}

			if iy != heightSegments-1 {
				s.Indices = append(s.Indices, b, c, d)
			}
		}
	}

	return s
}

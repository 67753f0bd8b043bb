// Package std140 lays out and encodes uniform block data following the
// OpenGL std140 rules, so a Go value can be copied into a uniform buffer as is.
package std140

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/shadowmapping/assert"
)

type Type uint8

const (
	Type_Unknown Type = iota
	Type_Float32
	Type_Int32
	Type_Uint32
	Type_Vec2
	Type_Vec3
	Type_Vec4
	Type_Mat3
	Type_Mat4
)

func (t Type) String() string {

	switch t {
	case Type_Float32:
		return "float"
	case Type_Int32:
		return "int"
	case Type_Uint32:
		return "uint"
	case Type_Vec2:
		return "vec2"
	case Type_Vec3:
		return "vec3"
	case Type_Vec4:
		return "vec4"
	case Type_Mat3:
		return "mat3"
	case Type_Mat4:
		return "mat4"
	default:
		return "unknown"
	}
}

// Alignment is the base alignment in bytes of a single (non-array) value.
// Matrices are arrays of vec4 sized columns.
func (t Type) Alignment() int {

	switch t {
	case Type_Float32, Type_Int32, Type_Uint32:
		return 4
	case Type_Vec2:
		return 8
	case Type_Vec3, Type_Vec4, Type_Mat3, Type_Mat4:
		return 16
	default:
		return 0
	}
}

// Size is the number of bytes a single value occupies, without trailing padding
func (t Type) Size() int {

	switch t {
	case Type_Float32, Type_Int32, Type_Uint32:
		return 4
	case Type_Vec2:
		return 8
	case Type_Vec3:
		return 12
	case Type_Vec4:
		return 16
	case Type_Mat3:
		return 3 * 16
	case Type_Mat4:
		return 4 * 16
	default:
		return 0
	}
}

type Field struct {
	Name string
	Type Type

	// Count is the array length. Zero and one both mean a single value.
	Count int
}

type LaidOutField struct {
	Field
	Offset int

	// Stride is the distance between array elements. Only meaningful for arrays.
	Stride int
}

type Layout struct {
	Fields []LaidOutField

	// Size is the total block size, rounded up to a vec4
	Size int

	byName map[string]int
}

func roundUp(v, to int) int {

	rem := v % to
	if rem == 0 {
		return v
	}

	return v + to - rem
}

func NewLayout(fields ...Field) (Layout, error) {

	l := Layout{
		Fields: make([]LaidOutField, 0, len(fields)),
		byName: make(map[string]int, len(fields)),
	}

	offset := 0
	for i := 0; i < len(fields); i++ {

		f := fields[i]
		if f.Type.Alignment() == 0 {
			return Layout{}, fmt.Errorf("field '%s' has unknown type %d", f.Name, f.Type)
		}

		if _, ok := l.byName[f.Name]; ok {
			return Layout{}, fmt.Errorf("field name '%s' is used more than once", f.Name)
		}

		if f.Count < 0 {
			return Layout{}, fmt.Errorf("field '%s' has a negative count", f.Name)
		}

		if f.Count == 0 {
			f.Count = 1
		}

		align := f.Type.Alignment()
		size := f.Type.Size()
		stride := 0

		// Array elements are aligned and padded to a vec4
		if f.Count > 1 {
			align = 16
			stride = roundUp(f.Type.Size(), 16)
			size = stride * f.Count
		}

		offset = roundUp(offset, align)

		l.byName[f.Name] = len(l.Fields)
		l.Fields = append(l.Fields, LaidOutField{Field: f, Offset: offset, Stride: stride})

		offset += size
	}

	l.Size = roundUp(offset, 16)
	return l, nil
}

// MustLayout is NewLayout that panics on error. Meant for package level layouts.
func MustLayout(fields ...Field) Layout {

	l, err := NewLayout(fields...)
	if err != nil {
		panic("std140: " + err.Error())
	}

	return l
}

func (l *Layout) Field(name string) (LaidOutField, bool) {

	i, ok := l.byName[name]
	if !ok {
		return LaidOutField{}, false
	}

	return l.Fields[i], true
}

// Buffer is the CPU side copy of a uniform block
type Buffer struct {
	Layout *Layout
	Data   []byte
}

func NewBuffer(l *Layout) *Buffer {
	return &Buffer{
		Layout: l,
		Data:   make([]byte, l.Size),
	}
}

func (b *Buffer) offsetOf(name string, t Type) int {

	f, ok := b.Layout.Field(name)
	assert.T(ok, "uniform block has no field named '%s'", name)
	assert.T(f.Type == t, "uniform block field '%s' is a %s but is being set as a %s", name, f.Type, t)
	return f.Offset
}

func (b *Buffer) putF32(offset int, v float32) {
	binary.LittleEndian.PutUint32(b.Data[offset:], math.Float32bits(v))
}

func (b *Buffer) putF32s(offset int, vs []float32) {
	for i := 0; i < len(vs); i++ {
		b.putF32(offset+i*4, vs[i])
	}
}

func (b *Buffer) SetFloat32(name string, v float32) {
	b.putF32(b.offsetOf(name, Type_Float32), v)
}

func (b *Buffer) SetInt32(name string, v int32) {
	binary.LittleEndian.PutUint32(b.Data[b.offsetOf(name, Type_Int32):], uint32(v))
}

func (b *Buffer) SetUint32(name string, v uint32) {
	binary.LittleEndian.PutUint32(b.Data[b.offsetOf(name, Type_Uint32):], v)
}

func (b *Buffer) SetVec2(name string, v *gglm.Vec2) {
	b.putF32s(b.offsetOf(name, Type_Vec2), v.Data[:])
}

func (b *Buffer) SetVec3(name string, v *gglm.Vec3) {
	b.putF32s(b.offsetOf(name, Type_Vec3), v.Data[:])
}

func (b *Buffer) SetVec4(name string, v *gglm.Vec4) {
	b.putF32s(b.offsetOf(name, Type_Vec4), v.Data[:])
}

// SetMat3 writes each column padded to a vec4
func (b *Buffer) SetMat3(name string, m *gglm.Mat3) {

	offset := b.offsetOf(name, Type_Mat3)
	for col := 0; col < 3; col++ {
		b.putF32s(offset+col*16, m.Data[col][:])
	}
}

func (b *Buffer) SetMat4(name string, m *gglm.Mat4) {

	offset := b.offsetOf(name, Type_Mat4)
	for col := 0; col < 4; col++ {
		b.putF32s(offset+col*16, m.Data[col][:])
	}
}

// Float32At reads back a float. Mostly useful for tests and debugging.
func (b *Buffer) Float32At(offset int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b.Data[offset:]))
}

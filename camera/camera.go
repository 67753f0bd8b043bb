package camera

import (
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/shadowmapping/logging"
)

type Type int32

const (
	Type_Unknown Type = iota
	Type_Perspective
	Type_Orthographic
)

type Camera struct {
	Type Type

	Pos     gglm.Vec3
	Forward gglm.Vec3
	WorldUp gglm.Vec3

	NearClip float32
	FarClip  float32

	// Perspective data
	FovRad      float32
	AspectRatio float32

	// Ortho data
	Left, Right, Top, Bottom float32

	ViewMat gglm.Mat4
	ProjMat gglm.Mat4
}

// Update recalculates the view and projection matrices
func (c *Camera) Update() {

	target := c.Pos.Clone().Add(&c.Forward)
	c.ViewMat = gglm.LookAtRH(&c.Pos, target, &c.WorldUp).Mat4

	switch c.Type {
	case Type_Perspective:
		c.ProjMat = gglm.Perspective(c.FovRad, c.AspectRatio, c.NearClip, c.FarClip)

	case Type_Orthographic:
		c.ProjMat = gglm.Ortho(c.Left, c.Right, c.Top, c.Bottom, c.NearClip, c.FarClip).Mat4

	default:
		logging.ErrLog.Fatalf("unknown camera type. Type=%d\n", c.Type)
	}
}

// LookAt points the camera at target and updates the matrices.
// Nothing changes if target is the camera position.
func (c *Camera) LookAt(target *gglm.Vec3) {

	dir := gglm.NewVec3(target.X()-c.Pos.X(), target.Y()-c.Pos.Y(), target.Z()-c.Pos.Z())
	if dir.X() == 0 && dir.Y() == 0 && dir.Z() == 0 {
		return
	}

	c.Forward = *dir.Normalize()
	c.Update()
}

// SetViewportSize sets the aspect ratio from a viewport size and updates the projection.
// Zero sized viewports (e.g. minimized windows) are ignored.
func (c *Camera) SetViewportSize(width, height int32) {

	if width <= 0 || height <= 0 {
		return
	}

	c.AspectRatio = float32(width) / float32(height)
	c.Update()
}

func (c *Camera) ProjViewMat() gglm.Mat4 {
	return *c.ProjMat.Clone().Mul(&c.ViewMat)
}

func NewPerspective(pos, forward, worldUp *gglm.Vec3, nearClip, farClip, fovRadians, aspectRatio float32) Camera {

	cam := Camera{
		Type:        Type_Perspective,
		Pos:         *pos,
		Forward:     *forward,
		WorldUp:     *worldUp,
		NearClip:    nearClip,
		FarClip:     farClip,
		FovRad:      fovRadians,
		AspectRatio: aspectRatio,
	}

	cam.Update()
	return cam
}

func NewOrthographic(pos, forward, worldUp *gglm.Vec3, nearClip, farClip, left, right, bottom, top float32) Camera {

	cam := Camera{
		Type:     Type_Orthographic,
		Pos:      *pos,
		Forward:  *forward,
		WorldUp:  *worldUp,
		NearClip: nearClip,
		FarClip:  farClip,
		Left:     left,
		Right:    right,
		Top:      top,
		Bottom:   bottom,
	}

	cam.Update()
	return cam
}

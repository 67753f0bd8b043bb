package camera

import (
	"math"

	"github.com/bloeys/gglm/gglm"
)

const maxOrbitPitch = math.Pi/2 - 0.01

// Orbit moves a camera on a sphere around a target point
type Orbit struct {
	Target gglm.Vec3

	Radius float32
	Yaw    float32
	Pitch  float32

	MinRadius float32
	MaxRadius float32

	// RotateSpeed is radians per unit of input motion (usually pixels)
	RotateSpeed float32

	// ZoomFactor is how much the radius is scaled per zoom step
	ZoomFactor float32
}

func (o *Orbit) Rotate(dx, dy float32) {

	o.Yaw -= dx * o.RotateSpeed
	o.Pitch += dy * o.RotateSpeed

	if o.Pitch > maxOrbitPitch {
		o.Pitch = maxOrbitPitch
	} else if o.Pitch < -maxOrbitPitch {
		o.Pitch = -maxOrbitPitch
	}
}

// Zoom moves towards the target for positive steps and away for negative ones
func (o *Orbit) Zoom(steps float32) {

	o.Radius *= float32(math.Pow(float64(o.ZoomFactor), float64(-steps)))

	if o.Radius < o.MinRadius {
		o.Radius = o.MinRadius
	} else if o.Radius > o.MaxRadius {
		o.Radius = o.MaxRadius
	}
}

func (o *Orbit) Position() gglm.Vec3 {

	sinYaw, cosYaw := math.Sincos(float64(o.Yaw))
	sinPitch, cosPitch := math.Sincos(float64(o.Pitch))

	return gglm.NewVec3(
		o.Target.X()+o.Radius*float32(sinYaw*cosPitch),
		o.Target.Y()+o.Radius*float32(sinPitch),
		o.Target.Z()+o.Radius*float32(cosYaw*cosPitch),
	)
}

// Apply moves cam to the orbit position and points it at the target
func (o *Orbit) Apply(cam *Camera) {
	cam.Pos = o.Position()
	cam.LookAt(&o.Target)
}

// NewOrbit creates an orbit around target that starts at the current position of cam
func NewOrbit(cam *Camera, target gglm.Vec3) Orbit {

	dx := float64(cam.Pos.X() - target.X())
	dy := float64(cam.Pos.Y() - target.Y())
	dz := float64(cam.Pos.Z() - target.Z())
	radius := math.Sqrt(dx*dx + dy*dy + dz*dz)

	o := Orbit{
		Target:      target,
		Radius:      float32(radius),
		MinRadius:   10,
		MaxRadius:   cam.FarClip / 2,
		RotateSpeed: 0.005,
		ZoomFactor:  1.1,
	}

	if radius > 0 {
		o.Yaw = float32(math.Atan2(dx, dz))
		o.Pitch = float32(math.Asin(dy / radius))
	}

	if o.MaxRadius < o.Radius {
		o.MaxRadius = o.Radius
	}

	return o
}

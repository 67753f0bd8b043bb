package lights

import (
	"fmt"
	"math"
)

type RotationMode int32

const (
	// RotationPerFrame rotates by Speed*dt every frame, giving a constant angular velocity
	RotationPerFrame RotationMode = iota
	// RotationCumulative rotates by Speed*elapsed every frame, so the light speeds up over time
	RotationCumulative
)

func (m RotationMode) String() string {

	switch m {
	case RotationPerFrame:
		return "per_frame"
	case RotationCumulative:
		return "cumulative"
	default:
		return fmt.Sprintf("RotationMode(%d)", int32(m))
	}
}

func ParseRotationMode(s string) (RotationMode, error) {

	switch s {
	case "per_frame":
		return RotationPerFrame, nil
	case "cumulative":
		return RotationCumulative, nil
	default:
		return RotationPerFrame, fmt.Errorf("unknown rotation mode '%s'. Expected 'per_frame' or 'cumulative'", s)
	}
}

const DefaultRotationSpeed float32 = 0.2

// RotateXZ rotates the point (x, z) around the origin by theta radians
func RotateXZ(x, z, theta float32) (nx, nz float32) {

	sin, cos := math.Sincos(float64(theta))
	s, c := float32(sin), float32(cos)

	return x*c - z*s, x*s + z*c
}

// Rotator orbits a DirLight around the Y axis
type Rotator struct {
	// Speed in radians per second
	Speed float32
	Mode  RotationMode
}

func (r *Rotator) Angle(dt, elapsed float32) float32 {

	if r.Mode == RotationCumulative {
		return r.Speed * elapsed
	}

	return r.Speed * dt
}

// Update rotates the light on the XZ plane then re-aims its shadow camera at the origin
func (r *Rotator) Update(light *DirLight, dt, elapsed float32) {

	theta := r.Angle(dt, elapsed)
	if theta != 0 {
		nx, nz := RotateXZ(light.Pos.X(), light.Pos.Z(), theta)
		light.Pos.Data[0] = nx
		light.Pos.Data[2] = nz
	}

	light.SyncShadowCam()
}

func NewRotator(speed float32, mode RotationMode) Rotator {
	return Rotator{
		Speed: speed,
		Mode:  mode,
	}
}

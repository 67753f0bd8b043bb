package lights

import (
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/shadowmapping/camera"
	"github.com/bloeys/shadowmapping/renderer"
)

const (
	DefaultShadowNear    float32 = 1
	DefaultFrustumSize   float32 = 200
	DefaultShadowMapSize uint32  = 2048
)

// DirLight is a directional light that always points at the origin from Pos.
// ShadowCam renders the depth map into ShadowMap.
type DirLight struct {
	Pos gglm.Vec3

	ShadowCam     camera.Camera
	ShadowMapSize uint32
	ShadowMap     renderer.Target
}

// SyncShadowCam moves the shadow camera to the light and points it at the origin.
// A light straight above or below the origin looks along Y, so -Z is used as up there.
func (d *DirLight) SyncShadowCam() {

	origin := gglm.NewVec3(0, 0, 0)

	if d.Pos.X() == 0 && d.Pos.Z() == 0 {
		d.ShadowCam.WorldUp = gglm.NewVec3(0, 0, -1)
	} else {
		d.ShadowCam.WorldUp = gglm.NewVec3(0, 1, 0)
	}

	d.ShadowCam.Pos = d.Pos
	d.ShadowCam.LookAt(&origin)
}

// NewDirLight creates a light whose shadow camera covers a frustumSize sided box
func NewDirLight(pos gglm.Vec3, frustumSize float32, shadowMapSize uint32) *DirLight {

	half := frustumSize / 2
	forward := gglm.NewVec3(0, 0, -1)
	worldUp := gglm.NewVec3(0, 1, 0)

	d := &DirLight{
		Pos:           pos,
		ShadowCam:     camera.NewOrthographic(&pos, &forward, &worldUp, DefaultShadowNear, frustumSize, -half, half, -half, half),
		ShadowMapSize: shadowMapSize,
	}

	d.SyncShadowCam()
	return d
}

package scene

import "github.com/bloeys/gglm/gglm"

// UniformSnapshot holds the per-frame shader inputs shared by every material
type UniformSnapshot struct {
	Time     float32
	LightPos gglm.Vec3

	ShadowCamP gglm.Mat4
	ShadowCamV gglm.Mat4

	// DepthMapSlot is the texture unit the shadow map is bound to
	DepthMapSlot int32
	Intensity    gglm.Vec4
}

// UniformSink makes a snapshot visible to all materials at once
type UniformSink interface {
	Publish(snap *UniformSnapshot)
}

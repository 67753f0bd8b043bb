package renderer

import (
	"github.com/bloeys/gglm/gglm"
)

// Target is something a pass can render into
type Target interface {
	Size() (width, height uint32)
}

type screenTarget struct{}

func (screenTarget) Size() (width, height uint32) {
	return 0, 0
}

// Screen is the visible framebuffer. Its size is owned by the backend.
var Screen Target = screenTarget{}

func IsScreen(t Target) bool {
	return t == Screen
}

type Material interface {
	MatId() uint32
	SetUnifVec3(uniformName string, vec3 *gglm.Vec3)
	SetUnifMat4(uniformName string, mat4 *gglm.Mat4)
}

type Geometry interface {
	VaoId() uint32
}

type CullFace int32

const (
	CullFace_None CullFace = iota
	CullFace_Back
	CullFace_Front
)

func (c CullFace) String() string {

	switch c {
	case CullFace_None:
		return "none"
	case CullFace_Back:
		return "back"
	case CullFace_Front:
		return "front"
	default:
		return "unknown"
	}
}

type Pass int32

const (
	Pass_Shadow Pass = iota
	Pass_Color
)

func (p Pass) String() string {

	if p == Pass_Shadow {
		return "shadow"
	}

	return "color"
}

type Render interface {
	BindTarget(t Target)
	Clear(t Target)
	SetCulling(c CullFace)
	DrawMesh(geom Geometry, trMat *gglm.TrMat, mat Material)
	DrawDepthViewer(src Target, dv DepthViewer)
	FrameEnd()
}

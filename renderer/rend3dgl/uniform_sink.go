package rend3dgl

import (
	"github.com/bloeys/shadowmapping/buffers"
	"github.com/bloeys/shadowmapping/materials"
	"github.com/bloeys/shadowmapping/scene"
	"github.com/bloeys/shadowmapping/std140"
)

const (
	ShadowBlockName      = "ShadowBlock"
	ShadowBlockBindPoint = 0

	DepthMapUnifName = "uDepthMap"
)

// ShadowBlockLayout must match the ShadowBlock uniform block of the scene shaders
var ShadowBlockLayout = std140.MustLayout(
	std140.Field{Name: "uShadowCameraP", Type: std140.Type_Mat4},
	std140.Field{Name: "uShadowCameraV", Type: std140.Type_Mat4},
	std140.Field{Name: "uIntensity_0", Type: std140.Type_Vec4},
	std140.Field{Name: "uLightPos", Type: std140.Type_Vec3},
	std140.Field{Name: "uTime", Type: std140.Type_Float32},
)

var _ scene.UniformSink = &UboSink{}

// UboSink writes every snapshot into one uniform buffer shared by all scene materials,
// so all materials see the same values within a frame
type UboSink struct {
	Ubo buffers.UniformBuffer

	// samplerMats are the materials that sample the depth map
	samplerMats  []*materials.Material
	depthMapSlot int32
}

// Register binds the ShadowBlock of mat to the sink buffer.
// samplesDepthMap materials also get their depth map sampler kept on the snapshot slot.
func (s *UboSink) Register(mat *materials.Material, samplesDepthMap bool) {

	mat.SetUniformBlockBindingPoint(ShadowBlockName, ShadowBlockBindPoint)

	if samplesDepthMap {
		s.samplerMats = append(s.samplerMats, mat)
		if s.depthMapSlot >= 0 {
			mat.SetUnifInt32(DepthMapUnifName, s.depthMapSlot)
		}
	}
}

func (s *UboSink) Publish(snap *scene.UniformSnapshot) {

	b := s.Ubo.Data
	b.SetMat4("uShadowCameraP", &snap.ShadowCamP)
	b.SetMat4("uShadowCameraV", &snap.ShadowCamV)
	b.SetVec4("uIntensity_0", &snap.Intensity)
	b.SetVec3("uLightPos", &snap.LightPos)
	b.SetFloat32("uTime", snap.Time)
	s.Ubo.Upload()

	if snap.DepthMapSlot != s.depthMapSlot {

		s.depthMapSlot = snap.DepthMapSlot
		for i := 0; i < len(s.samplerMats); i++ {
			s.samplerMats[i].SetUnifInt32(DepthMapUnifName, s.depthMapSlot)
		}
	}
}

func (s *UboSink) Delete() {
	s.Ubo.Delete()
}

func NewUboSink() *UboSink {

	s := &UboSink{
		Ubo:          buffers.NewUniformBuffer(&ShadowBlockLayout, buffers.BufUsage_Dynamic_Draw),
		depthMapSlot: -1,
	}

	s.Ubo.SetBindPoint(ShadowBlockBindPoint)
	return s
}

package rend3dgl

import (
	"io/fs"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/shadowmapping/assert"
	"github.com/bloeys/shadowmapping/buffers"
	"github.com/bloeys/shadowmapping/materials"
	"github.com/bloeys/shadowmapping/meshes"
	"github.com/bloeys/shadowmapping/renderer"
	"github.com/go-gl/gl/v4.1-core/gl"
)

var _ renderer.Render = &Rend3DGL{}

type Rend3DGL struct {
	BoundVaoId uint32
	BoundMatId uint32

	// ScreenWidth and ScreenHeight are the drawable size of the window in pixels
	ScreenWidth  int32
	ScreenHeight int32
	ClearColor   gglm.Vec3

	depthViewerMat *materials.Material

	// Empty vao for draws that generate their vertices in the shader
	emptyVao buffers.VertexArray
}

func (r *Rend3DGL) SetScreenSize(width, height int32) {
	r.ScreenWidth = width
	r.ScreenHeight = height
}

func (r *Rend3DGL) BindTarget(t renderer.Target) {

	if renderer.IsScreen(t) {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		gl.Viewport(0, 0, r.ScreenWidth, r.ScreenHeight)
		return
	}

	fbo, ok := t.(*buffers.Framebuffer)
	assert.T(ok, "Rend3DGL can only render into *buffers.Framebuffer targets, got %T", t)
	fbo.BindWithViewport()
}

// Clear clears the target, which must be the bound one
func (r *Rend3DGL) Clear(t renderer.Target) {

	if renderer.IsScreen(t) {
		gl.ClearColor(r.ClearColor.X(), r.ClearColor.Y(), r.ClearColor.Z(), 1)
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT | gl.STENCIL_BUFFER_BIT)
		return
	}

	fbo, ok := t.(*buffers.Framebuffer)
	assert.T(ok, "Rend3DGL can only clear *buffers.Framebuffer targets, got %T", t)
	fbo.Clear()
}

func (r *Rend3DGL) SetCulling(c renderer.CullFace) {

	switch c {
	case renderer.CullFace_None:
		gl.Disable(gl.CULL_FACE)
	case renderer.CullFace_Back:
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
	case renderer.CullFace_Front:
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.FRONT)
	}
}

func (r *Rend3DGL) DrawMesh(geom renderer.Geometry, modelMat *gglm.TrMat, rMat renderer.Material) {

	mesh, ok := geom.(*meshes.Mesh)
	assert.T(ok, "Rend3DGL can only draw *meshes.Mesh, got %T", geom)

	mat, ok := rMat.(*materials.Material)
	assert.T(ok, "Rend3DGL can only draw with *materials.Material, got %T", rMat)

	if mesh.Vao.Id != r.BoundVaoId {
		mesh.Vao.Bind()
		r.BoundVaoId = mesh.Vao.Id
	}

	if mat.Id != r.BoundMatId {
		mat.Bind()
		r.BoundMatId = mat.Id
	}

	if mat.Settings.Has(materials.MaterialSettings_HasModelMtx) {
		mat.SetUnifMat4("modelMat", &modelMat.Mat4)
	}

	if mat.Settings.Has(materials.MaterialSettings_HasNormalMtx) {
		mat.SetUnifMat4("normalMat", normalMatrix(modelMat))
	}

	for i := 0; i < len(mesh.SubMeshes); i++ {
		// Offset is in bytes
		gl.DrawElementsBaseVertexWithOffset(gl.TRIANGLES, mesh.SubMeshes[i].IndexCount, gl.UNSIGNED_INT, uintptr(mesh.SubMeshes[i].BaseIndex*4), mesh.SubMeshes[i].BaseVertex)
	}
}

// DrawDepthViewer draws the depth attachment of src as a grayscale quad on the bound target
func (r *Rend3DGL) DrawDepthViewer(src renderer.Target, dv renderer.DepthViewer) {

	fbo, ok := src.(*buffers.Framebuffer)
	assert.T(ok, "Rend3DGL can only view depth of *buffers.Framebuffer targets, got %T", src)

	depthTex := fbo.DepthTexId()
	assert.T(depthTex != 0, "depth viewer source framebuffer has no depth texture")

	r.depthViewerMat.DiffuseTex = depthTex
	r.depthViewerMat.Bind()
	r.BoundMatId = r.depthViewerMat.Id
	r.depthViewerMat.SetUnifVec2("scale", &dv.Scale)
	r.depthViewerMat.SetUnifVec2("offset", &dv.Offset)

	r.emptyVao.Bind()
	r.BoundVaoId = r.emptyVao.Id

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	gl.Enable(gl.CULL_FACE)
	gl.Enable(gl.DEPTH_TEST)
}

func (r *Rend3DGL) FrameEnd() {
	r.BoundVaoId = 0
	r.BoundMatId = 0
}

func (r *Rend3DGL) Delete() {
	r.depthViewerMat.Delete()
	r.emptyVao.Delete()
}

// NewRend3DGL needs a current OpenGL context. shaderFS must have the depth viewer shader at depthViewerShaderPath.
func NewRend3DGL(shaderFS fs.FS, depthViewerShaderPath string) (*Rend3DGL, error) {

	depthViewerMat, err := materials.NewMaterialFS("Depth Viewer Mat", shaderFS, depthViewerShaderPath)
	if err != nil {
		return nil, err
	}

	depthViewerMat.SetUnifInt32("depthMap", int32(materials.TextureSlot_Diffuse))

	return &Rend3DGL{
		depthViewerMat: depthViewerMat,
		emptyVao:       buffers.NewVertexArray(),
	}, nil
}

// normalMatrix returns the inverse transpose of modelMat, leaving modelMat untouched
func normalMatrix(modelMat *gglm.TrMat) *gglm.Mat4 {
	return modelMat.Clone().InvertAndTranspose()
}

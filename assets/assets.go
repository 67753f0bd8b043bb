// Package assets creates the OpenGL resources of the scene
package assets

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/bloeys/shadowmapping/buffers"
	"github.com/bloeys/shadowmapping/materials"
	"github.com/bloeys/shadowmapping/meshes"
	"github.com/bloeys/shadowmapping/renderer"
	"github.com/bloeys/shadowmapping/renderer/rend3dgl"
	"github.com/bloeys/shadowmapping/res"
	"github.com/bloeys/shadowmapping/scene"
	"github.com/bloeys/shadowmapping/shapes"
)

var _ scene.Assets = &GLAssets{}

// GLAssets owns everything it creates. Needs a current OpenGL context.
type GLAssets struct {
	ShaderFS fs.FS
	Sink     *rend3dgl.UboSink

	shadowMap *buffers.Framebuffer
	meshes    []*meshes.Mesh
	mats      []*materials.Material
}

func (a *GLAssets) addMesh(mesh meshes.Mesh, err error) (renderer.Geometry, error) {

	if err != nil {
		return nil, err
	}

	m := &mesh
	a.meshes = append(a.meshes, m)
	return m, nil
}

func (a *GLAssets) Box(name string, width, height, depth float32) (renderer.Geometry, error) {
	shape := shapes.Box(width, height, depth)
	return a.addMesh(meshes.NewMeshFromShape(name, &shape))
}

func (a *GLAssets) Sphere(name string, radius float32, widthSegments, heightSegments uint32) (renderer.Geometry, error) {
	shape := shapes.Sphere(radius, widthSegments, heightSegments)
	return a.addMesh(meshes.NewMeshFromShape(name, &shape))
}

func (a *GLAssets) Model(name, path string) (renderer.Geometry, error) {
	return a.addMesh(meshes.NewMesh(name, path, 0))
}

// ShadowMap creates the depth-only framebuffer the shadow pass renders into
func (a *GLAssets) ShadowMap(size uint32) (renderer.Target, error) {

	if a.shadowMap != nil {
		return nil, errors.New("shadow map was already created")
	}

	fbo := buffers.NewFramebuffer(size, size)
	fbo.NewDepthAttachment(buffers.FramebufferAttachmentDataFormat_DepthF32)
	fbo.SetNoColorBuffer()

	if !fbo.IsComplete() {
		fbo.Delete()
		return nil, fmt.Errorf("shadow map framebuffer of size %d is not complete", size)
	}

	a.shadowMap = &fbo
	return a.shadowMap, nil
}

func (a *GLAssets) MaterialPair(name string) (scene.MaterialPair, error) {

	if a.shadowMap == nil {
		return scene.MaterialPair{}, errors.New("materials need the shadow map to be created first")
	}

	colorMat, err := materials.NewMaterialFS(name+" Color Mat", a.ShaderFS, res.ShadowLitShader)
	if err != nil {
		return scene.MaterialPair{}, err
	}

	colorMat.Settings.Set(materials.MaterialSettings_HasModelMtx | materials.MaterialSettings_HasNormalMtx)
	colorMat.ShadowMapTex1 = a.shadowMap.DepthTexId()
	a.Sink.Register(colorMat, true)
	a.mats = append(a.mats, colorMat)

	shadowMat, err := materials.NewMaterialFS(name+" Shadow Mat", a.ShaderFS, res.ShadowDepthShader)
	if err != nil {
		return scene.MaterialPair{}, err
	}

	shadowMat.Settings.Set(materials.MaterialSettings_HasModelMtx)
	a.mats = append(a.mats, shadowMat)

	return scene.MaterialPair{Color: colorMat, Shadow: shadowMat}, nil
}

func (a *GLAssets) Delete() {

	for _, m := range a.mats {
		m.Delete()
	}

	for _, m := range a.meshes {
		m.Vao.Delete()
	}

	if a.shadowMap != nil {
		a.shadowMap.Delete()
	}

	a.mats = nil
	a.meshes = nil
	a.shadowMap = nil
}

func NewGLAssets(shaderFS fs.FS, sink *rend3dgl.UboSink) *GLAssets {
	return &GLAssets{
		ShaderFS: shaderFS,
		Sink:     sink,
	}
}

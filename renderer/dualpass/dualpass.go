// Package dualpass renders a scene twice per frame: first into the light's shadow map
// and then, using that shadow map, into the screen.
package dualpass

import (
	"github.com/bloeys/shadowmapping/assert"
	"github.com/bloeys/shadowmapping/camera"
	"github.com/bloeys/shadowmapping/renderer"
	"github.com/bloeys/shadowmapping/scene"
)

const ProjViewUnifName = "projViewMat"

type DualPass struct {
	Rend renderer.Render
	Sink scene.UniformSink
}

// RenderFrame publishes the frame uniforms then runs the shadow pass, the color pass
// and, if enabled, the depth viewer blit, in that order
func (dp *DualPass) RenderFrame(ctx *scene.Context) {

	snap := ctx.Snapshot()
	dp.Sink.Publish(&snap)

	assert.T(ctx.Light.ShadowMap != nil, "light has no shadow map")
	assert.T(!renderer.IsScreen(ctx.Light.ShadowMap), "shadow map of the light can not be the screen")

	dp.renderPass(ctx, renderer.Pass_Shadow, ctx.Light.ShadowMap, &ctx.Light.ShadowCam, renderer.CullFace_Front)
	dp.renderPass(ctx, renderer.Pass_Color, renderer.Screen, &ctx.MainCam, renderer.CullFace_Back)

	if ctx.ShowDepthViewer {
		dv := renderer.DepthViewerViewport(ctx.FbWidth, ctx.FbHeight, int32(float32(ctx.DepthViewerSize)*ctx.PixelRatio))
		dp.Rend.DrawDepthViewer(ctx.Light.ShadowMap, dv)
	}

	dp.Rend.FrameEnd()
}

func (dp *DualPass) renderPass(ctx *scene.Context, pass renderer.Pass, target renderer.Target, cam *camera.Camera, cull renderer.CullFace) {

	dp.Rend.BindTarget(target)
	dp.Rend.Clear(target)
	dp.Rend.SetCulling(cull)

	projView := cam.ProjViewMat()
	for i := 0; i < len(ctx.Objects); i++ {

		obj := ctx.Objects[i]

		mat := obj.Bind(pass)
		mat.SetUnifMat4(ProjViewUnifName, &projView)

		dp.Rend.DrawMesh(obj.Geometry, &obj.Transform, mat)
	}
}

func NewDualPass(rend renderer.Render, sink scene.UniformSink) *DualPass {
	return &DualPass{
		Rend: rend,
		Sink: sink,
	}
}

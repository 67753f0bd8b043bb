package dualpass

import (
	"fmt"
	"testing"
	"time"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/shadowmapping/camera"
	"github.com/bloeys/shadowmapping/lights"
	"github.com/bloeys/shadowmapping/renderer"
	"github.com/bloeys/shadowmapping/scene"
	"github.com/bloeys/shadowmapping/timing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMaterial struct {
	id       uint32
	projView gglm.Mat4
}

func (m *fakeMaterial) MatId() uint32 { return m.id }

func (m *fakeMaterial) SetUnifVec3(string, *gglm.Vec3) {}

func (m *fakeMaterial) SetUnifMat4(name string, v *gglm.Mat4) {
	if name == ProjViewUnifName {
		m.projView = *v
	}
}

type fakeGeometry struct{ id uint32 }

func (g *fakeGeometry) VaoId() uint32 { return g.id }

type fakeTarget struct{}

func (fakeTarget) Size() (uint32, uint32) { return 2048, 2048 }

type draw struct {
	target renderer.Target
	cull   renderer.CullFace
	obj    *scene.Object
	mat    renderer.Material

	// active is what the object reported as bound while it was drawn
	active renderer.Material
}

type fakeRender struct {
	ctx *scene.Context

	target renderer.Target
	cull   renderer.CullFace

	events     []string
	draws      []draw
	depthViews []renderer.DepthViewer
}

func (r *fakeRender) BindTarget(t renderer.Target) {
	r.target = t
	if renderer.IsScreen(t) {
		r.events = append(r.events, "bind:screen")
	} else {
		r.events = append(r.events, "bind:fbo")
	}
}

func (r *fakeRender) Clear(t renderer.Target) {
	r.events = append(r.events, "clear")
}

func (r *fakeRender) SetCulling(c renderer.CullFace) {
	r.cull = c
	r.events = append(r.events, "cull:"+c.String())
}

func (r *fakeRender) DrawMesh(geom renderer.Geometry, trMat *gglm.TrMat, mat renderer.Material) {

	for _, o := range r.ctx.Objects {
		if o.Geometry == geom {
			r.draws = append(r.draws, draw{target: r.target, cull: r.cull, obj: o, mat: mat, active: o.Active()})
			r.events = append(r.events, "draw:"+o.Name)
			return
		}
	}

	panic("draw of unknown geometry")
}

func (r *fakeRender) DrawDepthViewer(src renderer.Target, dv renderer.DepthViewer) {
	r.depthViews = append(r.depthViews, dv)
	r.events = append(r.events, "depth-viewer")
}

func (r *fakeRender) FrameEnd() {
	r.events = append(r.events, "frame-end")
}

type fakeSink struct {
	render    *fakeRender
	snapshots []scene.UniformSnapshot
}

func (s *fakeSink) Publish(snap *scene.UniformSnapshot) {
	s.snapshots = append(s.snapshots, *snap)
	s.render.events = append(s.render.events, "publish")
}

func newTestContext() *scene.Context {

	light := lights.NewDirLight(gglm.NewVec3(-60, 50, 40), lights.DefaultFrustumSize, lights.DefaultShadowMapSize)
	light.ShadowMap = fakeTarget{}

	pos := gglm.NewVec3(180, 120, 180)
	forward := gglm.NewVec3(0, 0, -1)
	up := gglm.NewVec3(0, 1, 0)

	ctx := &scene.Context{
		MainCam:         camera.NewPerspective(&pos, &forward, &up, 1, 10000, 45*gglm.Deg2Rad, 1),
		Light:           light,
		Rotator:         lights.NewRotator(lights.DefaultRotationSpeed, lights.RotationPerFrame),
		Clock:           timing.NewClockWithSource(func() time.Time { return time.Unix(0, 0) }),
		Intensity:       gglm.NewVec4(1, 0, 0, 0),
		ShowDepthViewer: true,
		DepthViewerSize: 300,
	}

	for i, name := range []string{"ground", "cube", "sphere"} {

		id := uint32(i + 1)
		pair := scene.MaterialPair{
			Color:  &fakeMaterial{id: id * 10},
			Shadow: &fakeMaterial{id: id*10 + 1},
		}

		ctx.Objects = append(ctx.Objects, scene.NewObject(name, &fakeGeometry{id: id}, gglm.NewVec3(0, float32(i), 0), gglm.NewVec3(1, 1, 1), pair))
	}

	ctx.Resize(1200, 600, 1)
	return ctx
}

func newTestDualPass(ctx *scene.Context) (*DualPass, *fakeRender, *fakeSink) {
	rend := &fakeRender{ctx: ctx}
	sink := &fakeSink{render: rend}
	return NewDualPass(rend, sink), rend, sink
}

func TestRenderFrameOrder(t *testing.T) {

	ctx := newTestContext()
	dp, rend, _ := newTestDualPass(ctx)

	dp.RenderFrame(ctx)

	assert.Equal(t, []string{
		"publish",
		"bind:fbo", "clear", "cull:front", "draw:ground", "draw:cube", "draw:sphere",
		"bind:screen", "clear", "cull:back", "draw:ground", "draw:cube", "draw:sphere",
		"depth-viewer",
		"frame-end",
	}, rend.events)
}

func TestRenderFrameTargets(t *testing.T) {

	ctx := newTestContext()
	dp, rend, _ := newTestDualPass(ctx)

	dp.RenderFrame(ctx)

	require.Len(t, rend.draws, 2*len(ctx.Objects))
	for i, d := range rend.draws {

		if i < len(ctx.Objects) {
			assert.False(t, renderer.IsScreen(d.target), "shadow pass draw %d went to the screen", i)
			assert.Equal(t, ctx.Light.ShadowMap, d.target)
			assert.Equal(t, renderer.CullFace_Front, d.cull)
			assert.Same(t, d.obj.Pair.Shadow, d.mat)
		} else {
			assert.True(t, renderer.IsScreen(d.target), "color pass draw %d did not go to the screen", i)
			assert.Equal(t, renderer.CullFace_Back, d.cull)
			assert.Same(t, d.obj.Pair.Color, d.mat)
		}

		// The object must report the material it is being drawn with
		assert.Same(t, d.mat, d.active)
	}
}

func TestRenderFrameLeavesColorMaterialActive(t *testing.T) {

	ctx := newTestContext()
	dp, _, _ := newTestDualPass(ctx)

	for frame := 0; frame < 3; frame++ {

		ctx.Update()
		dp.RenderFrame(ctx)

		for _, o := range ctx.Objects {
			assert.Same(t, o.Pair.Color, o.Active(), fmt.Sprintf("frame=%d obj=%s", frame, o.Name))
		}
	}
}

func TestRenderFrameProjViews(t *testing.T) {

	ctx := newTestContext()
	dp, _, _ := newTestDualPass(ctx)

	dp.RenderFrame(ctx)

	lightProjView := ctx.Light.ShadowCam.ProjViewMat()
	camProjView := ctx.MainCam.ProjViewMat()

	for _, o := range ctx.Objects {
		assert.Equal(t, lightProjView, o.Pair.Shadow.(*fakeMaterial).projView, o.Name)
		assert.Equal(t, camProjView, o.Pair.Color.(*fakeMaterial).projView, o.Name)
	}
}

func TestRenderFramePublishesSnapshot(t *testing.T) {

	ctx := newTestContext()
	dp, _, sink := newTestDualPass(ctx)

	dp.RenderFrame(ctx)
	dp.RenderFrame(ctx)

	require.Len(t, sink.snapshots, 2)
	assert.Equal(t, ctx.Snapshot(), sink.snapshots[1])
	assert.Equal(t, ctx.Light.Pos, sink.snapshots[0].LightPos)
}

func TestRenderFrameDepthViewer(t *testing.T) {

	ctx := newTestContext()
	dp, rend, _ := newTestDualPass(ctx)

	dp.RenderFrame(ctx)
	require.Len(t, rend.depthViews, 1)
	assert.Equal(t, renderer.DepthViewerViewport(1200, 600, 300), rend.depthViews[0])

	ctx.ShowDepthViewer = false
	dp.RenderFrame(ctx)
	assert.Len(t, rend.depthViews, 1)
}

func TestRenderFrameRejectsScreenShadowMap(t *testing.T) {

	ctx := newTestContext()
	ctx.Light.ShadowMap = renderer.Screen
	dp, _, _ := newTestDualPass(ctx)

	assert.Panics(t, func() { dp.RenderFrame(ctx) })
}

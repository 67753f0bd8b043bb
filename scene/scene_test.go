package scene

import (
	"errors"
	"testing"
	"time"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/shadowmapping/config"
	"github.com/bloeys/shadowmapping/renderer"
	"github.com/bloeys/shadowmapping/timing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMaterial struct {
	id    uint32
	name  string
	vec3s map[string]gglm.Vec3
	mat4s map[string]gglm.Mat4
}

func newFakeMaterial(id uint32, name string) *fakeMaterial {
	return &fakeMaterial{
		id:    id,
		name:  name,
		vec3s: map[string]gglm.Vec3{},
		mat4s: map[string]gglm.Mat4{},
	}
}

func (m *fakeMaterial) MatId() uint32 { return m.id }

func (m *fakeMaterial) SetUnifVec3(name string, v *gglm.Vec3) { m.vec3s[name] = *v }

func (m *fakeMaterial) SetUnifMat4(name string, v *gglm.Mat4) { m.mat4s[name] = *v }

type fakeGeometry struct {
	name string
	id   uint32
}

func (g *fakeGeometry) VaoId() uint32 { return g.id }

type fakeTarget struct{ size uint32 }

func (t *fakeTarget) Size() (uint32, uint32) { return t.size, t.size }

type fakeAssets struct {
	nextId    uint32
	modelErr  error
	modelPath []string
}

func (a *fakeAssets) id() uint32 {
	a.nextId++
	return a.nextId
}

func (a *fakeAssets) Box(name string, w, h, d float32) (renderer.Geometry, error) {
	return &fakeGeometry{name: name, id: a.id()}, nil
}

func (a *fakeAssets) Sphere(name string, r float32, ws, hs uint32) (renderer.Geometry, error) {
	return &fakeGeometry{name: name, id: a.id()}, nil
}

func (a *fakeAssets) Model(name, path string) (renderer.Geometry, error) {
	a.modelPath = append(a.modelPath, path)
	if a.modelErr != nil {
		return nil, a.modelErr
	}
	return &fakeGeometry{name: name, id: a.id()}, nil
}

func (a *fakeAssets) MaterialPair(name string) (MaterialPair, error) {
	return MaterialPair{
		Color:  newFakeMaterial(a.id(), name+"-color"),
		Shadow: newFakeMaterial(a.id(), name+"-shadow"),
	}, nil
}

func (a *fakeAssets) ShadowMap(size uint32) (renderer.Target, error) {
	return &fakeTarget{size: size}, nil
}

type fakeTime struct{ t time.Time }

func (f *fakeTime) now() time.Time { return f.t }

func newTestContext(t *testing.T) (*Context, *fakeTime) {

	t.Helper()

	ft := &fakeTime{t: time.Unix(100, 0)}
	cfg := config.Default()

	ctx, err := NewDemoContext(&cfg, &fakeAssets{}, timing.NewClockWithSource(ft.now))
	require.NoError(t, err)
	return ctx, ft
}

func translated(x, y, z float32) gglm.TrMat {
	pos := gglm.NewVec3(x, y, z)
	trMat := gglm.NewTrMatId()
	trMat.TranslateVec(&pos)
	return *trMat.Clone()
}

func TestNewDemoContext(t *testing.T) {

	ctx, _ := newTestContext(t)

	require.Len(t, ctx.Objects, 3)
	assert.Equal(t, "ground", ctx.Objects[0].Name)
	assert.Equal(t, "cube", ctx.Objects[1].Name)
	assert.Equal(t, "sphere", ctx.Objects[2].Name)

	assert.Equal(t, translated(0, -125, 0), ctx.ObjectByName("ground").Transform)
	assert.Equal(t, translated(40, 10, -30), ctx.ObjectByName("cube").Transform)
	assert.Equal(t, translated(-20, 24, 0), ctx.ObjectByName("sphere").Transform)
	assert.Nil(t, ctx.ObjectByName("teapot"))

	assert.Equal(t, ColorFromHex(GroundColorHex), ctx.Objects[0].Color)
	for _, o := range ctx.Objects {
		colorMat := o.Pair.Color.(*fakeMaterial)
		assert.Equal(t, o.Color, colorMat.vec3s["uColor"], o.Name)
		assert.Nil(t, o.Active(), o.Name)
	}

	assert.Equal(t, gglm.NewVec3(-60, 50, 40), ctx.Light.Pos)
	assert.Equal(t, ctx.Light.Pos, ctx.Light.ShadowCam.Pos)
	require.NotNil(t, ctx.Light.ShadowMap)
	w, h := ctx.Light.ShadowMap.Size()
	assert.Equal(t, uint32(2048), w)
	assert.Equal(t, uint32(2048), h)

	assert.Equal(t, gglm.NewVec4(1, 0, 0, 0), ctx.Intensity)
	assert.InDelta(t, 1280.0/720.0, ctx.MainCam.AspectRatio, 1e-6)
	assert.Equal(t, gglm.NewVec3(180, 120, 180), ctx.MainCam.Pos)
	assert.InDelta(t, 45*gglm.Deg2Rad, ctx.MainCam.FovRad, 1e-6)
	assert.Equal(t, float32(1), ctx.MainCam.NearClip)
	assert.Equal(t, float32(10000), ctx.MainCam.FarClip)
}

func TestNewDemoContextModels(t *testing.T) {

	cfg := config.Default()
	cfg.Models = []config.Model{{Path: "teapot.obj", Position: [3]float32{0, 5, 60}, Scale: 2}}

	assets := &fakeAssets{}
	ctx, err := NewDemoContext(&cfg, assets, timing.NewClock())
	require.NoError(t, err)

	require.Len(t, ctx.Objects, 4)
	assert.Equal(t, []string{"teapot.obj"}, assets.modelPath)
	assert.Equal(t, ColorFromHex(ObjectColorHex), ctx.Objects[3].Color)

	expected := translated(0, 5, 60)
	expected.Scale(2, 2, 2)
	assert.Equal(t, expected, ctx.Objects[3].Transform)

	assets = &fakeAssets{modelErr: errors.New("bad file")}
	_, err = NewDemoContext(&cfg, assets, timing.NewClock())
	assert.ErrorContains(t, err, "teapot.obj")
}

func TestNewDemoContextBadRotationMode(t *testing.T) {

	cfg := config.Default()
	cfg.Light.RotationMode = "sideways"

	_, err := NewDemoContext(&cfg, &fakeAssets{}, timing.NewClock())
	assert.Error(t, err)
}

func TestSelectMaterialIsPure(t *testing.T) {

	ctx, _ := newTestContext(t)
	cube := ctx.ObjectByName("cube")

	assert.Same(t, cube.Pair.Shadow, SelectMaterial(cube, renderer.Pass_Shadow))
	assert.Same(t, cube.Pair.Color, SelectMaterial(cube, renderer.Pass_Color))
	assert.Nil(t, cube.Active())
}

func TestObjectBind(t *testing.T) {

	ctx, _ := newTestContext(t)
	cube := ctx.ObjectByName("cube")

	assert.Same(t, cube.Pair.Shadow, cube.Bind(renderer.Pass_Shadow))
	assert.Same(t, cube.Pair.Shadow, cube.Active())

	assert.Same(t, cube.Pair.Color, cube.Bind(renderer.Pass_Color))
	assert.Same(t, cube.Pair.Color, cube.Active())
}

func TestResize(t *testing.T) {

	ctx, _ := newTestContext(t)

	ctx.Resize(800, 600, 1)
	assert.InDelta(t, 800.0/600.0, ctx.MainCam.AspectRatio, 1e-6)
	aspect, proj := ctx.MainCam.AspectRatio, ctx.MainCam.ProjMat

	ctx.Resize(800, 600, 1)
	assert.Equal(t, aspect, ctx.MainCam.AspectRatio)
	assert.Equal(t, proj, ctx.MainCam.ProjMat)
	assert.Equal(t, int32(800), ctx.FbWidth)
	assert.Equal(t, int32(600), ctx.FbHeight)
}

func TestResizePixelRatio(t *testing.T) {

	ctx, _ := newTestContext(t)

	// The framebuffer always matches the drawable size, whatever the ratio
	ctx.Resize(800, 600, 3)
	assert.Equal(t, float32(3), ctx.PixelRatio)
	assert.Equal(t, int32(2400), ctx.FbWidth)
	assert.Equal(t, int32(1800), ctx.FbHeight)
	assert.Equal(t, int32(800), ctx.WinWidth)

	ctx.Resize(800, 600, 1.5)
	assert.Equal(t, int32(1200), ctx.FbWidth)

	// Fractional drawable sizes round to the nearest pixel
	ctx.Resize(801, 601, 1.5)
	assert.Equal(t, int32(1202), ctx.FbWidth)
	assert.Equal(t, int32(902), ctx.FbHeight)

	// Minimized windows keep the last good size
	ctx.Resize(0, 0, 1)
	assert.Equal(t, int32(1200), ctx.FbWidth)
	assert.InDelta(t, 800.0/600.0, ctx.MainCam.AspectRatio, 1e-6)
}

func TestUpdateFirstFrameKeepsLight(t *testing.T) {

	ctx, _ := newTestContext(t)

	dt := ctx.Update()
	assert.Equal(t, float32(0), dt)
	assert.Equal(t, gglm.NewVec3(-60, 50, 40), ctx.Light.Pos)
}

func TestSnapshot(t *testing.T) {

	ctx, ft := newTestContext(t)

	ctx.Update()
	ft.t = ft.t.Add(500 * time.Millisecond)
	ctx.Update()

	snap := ctx.Snapshot()
	assert.InDelta(t, 0.5, snap.Time, 1e-6)
	assert.Equal(t, ctx.Light.Pos, snap.LightPos)
	assert.NotEqual(t, gglm.NewVec3(-60, 50, 40), snap.LightPos)
	assert.Equal(t, ctx.Light.ShadowCam.ProjMat, snap.ShadowCamP)
	assert.Equal(t, ctx.Light.ShadowCam.ViewMat, snap.ShadowCamV)
	assert.Equal(t, DefaultDepthMapSlot, snap.DepthMapSlot)
	assert.Equal(t, gglm.NewVec4(1, 0, 0, 0), snap.Intensity)
}

func TestColorFromHex(t *testing.T) {

	white := ColorFromHex(0xffffff)
	assert.InDelta(t, 1, white.X(), 1e-4)
	assert.InDelta(t, 1, white.Y(), 1e-4)
	assert.InDelta(t, 1, white.Z(), 1e-4)

	assert.Equal(t, gglm.NewVec3(0, 0, 0), ColorFromHex(0))

	red := ColorFromHex(0xff0000)
	assert.InDelta(t, 1, red.X(), 1e-4)
	assert.Equal(t, float32(0), red.Y())

	// Mid tones get darker when linearized
	ground := ColorFromHex(GroundColorHex)
	assert.Less(t, ground.X(), float32(0xe1)/255)
	assert.Greater(t, ground.X(), float32(0))
}

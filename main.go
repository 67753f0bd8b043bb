package main

import (
	"flag"
	"fmt"

	imgui "github.com/AllenDang/cimgui-go"
	"github.com/bloeys/shadowmapping/assets"
	"github.com/bloeys/shadowmapping/config"
	"github.com/bloeys/shadowmapping/engine"
	"github.com/bloeys/shadowmapping/input"
	"github.com/bloeys/shadowmapping/lights"
	"github.com/bloeys/shadowmapping/logging"
	"github.com/bloeys/shadowmapping/renderer/dualpass"
	"github.com/bloeys/shadowmapping/renderer/rend3dgl"
	"github.com/bloeys/shadowmapping/res"
	"github.com/bloeys/shadowmapping/scene"
	"github.com/bloeys/shadowmapping/timing"
	nmageimgui "github.com/bloeys/shadowmapping/ui/imgui"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	FRAME_TIME_MS_SAMPLES = 100
)

var _ engine.Game = &Game{}

type Game struct {
	Cfg config.Config
	Win *engine.Window

	Rend     *rend3dgl.Rend3DGL
	Sink     *rend3dgl.UboSink
	Assets   *assets.GLAssets
	DualPass *dualpass.DualPass
	Ctx      *scene.Context

	ImGUIInfo  *nmageimgui.ImguiInfo
	ShowUI     bool
	frameTimes *nmageimgui.FrameTimes
}

func main() {

	cfgPath := flag.String("config", "config.toml", "Path to a TOML config file. Defaults are used if the file doesn't exist.")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logging.ErrLog.Fatalln("Failed to load config. Err:", err)
	}

	//Init engine
	err = engine.Init()
	if err != nil {
		logging.ErrLog.Fatalln("Failed to init engine. Err:", err)
	}
	defer engine.DeInit()

	//Create window
	window, err := engine.CreateOpenGLWindowCentered(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height, engine.WindowFlags_RESIZABLE|engine.WindowFlags_ALLOW_HIGHDPI)
	if err != nil {
		logging.ErrLog.Fatalln("Failed to create window. Err: ", err)
	}
	defer window.Destroy()

	engine.SetMSAA(cfg.Window.MSAA)
	engine.SetVSync(cfg.Window.VSync)
	engine.SetSrgbFramebuffer(true)

	game := &Game{
		Cfg:        cfg,
		Win:        window,
		ShowUI:     cfg.Debug.ShowUI,
		frameTimes: nmageimgui.NewFrameTimes(FRAME_TIME_MS_SAMPLES),
	}

	engine.Run(game, window)
}

func (g *Game) Init() {

	var err error

	g.Rend, err = rend3dgl.NewRend3DGL(res.Shaders, res.DepthViewerShader)
	if err != nil {
		logging.ErrLog.Fatalln("Failed to create renderer. Err:", err)
	}

	g.ImGUIInfo, err = nmageimgui.NewImGui(res.Shaders, res.ImguiShader)
	if err != nil {
		logging.ErrLog.Fatalln("Failed to init imgui. Err:", err)
	}
	g.Win.Ui = g.ImGUIInfo

	g.Sink = rend3dgl.NewUboSink()
	g.Assets = assets.NewGLAssets(res.Shaders, g.Sink)

	g.Ctx, err = scene.NewDemoContext(&g.Cfg, g.Assets, timing.NewClock())
	if err != nil {
		logging.ErrLog.Fatalln("Failed to create scene. Err:", err)
	}

	g.Rend.ClearColor = g.Ctx.ClearColor
	g.DualPass = dualpass.NewDualPass(g.Rend, g.Sink)

	// The window may have been created with a different size or pixel ratio than asked for
	g.handleResize(g.Win.Size())
	g.Win.ResizeCallbacks = append(g.Win.ResizeCallbacks, g.handleResize)

	logging.InfoLog.Printf(
		"Scene ready. Objects=%d, shadow map=%dx%d, rotation mode=%s\n",
		len(g.Ctx.Objects),
		g.Ctx.Light.ShadowMapSize,
		g.Ctx.Light.ShadowMapSize,
		g.Ctx.Rotator.Mode,
	)
}

func (g *Game) handleResize(width, height int32, pixelRatio float32) {

	g.Ctx.Resize(width, height, pixelRatio)
	if g.Ctx.FbWidth > 0 && g.Ctx.FbHeight > 0 {
		g.Rend.SetScreenSize(g.Ctx.FbWidth, g.Ctx.FbHeight)
	}
}

func (g *Game) Update() {

	if input.KeyClicked(sdl.K_ESCAPE) {
		input.RequestQuit()
	}

	if input.KeyClicked(sdl.K_F1) {
		g.ShowUI = !g.ShowUI
	}

	dt := g.Ctx.Update()
	g.frameTimes.Add(dt)

	g.updateOrbit()

	if g.ShowUI {
		width, height := g.Win.SDLWin.GetSize()
		g.ImGUIInfo.FrameStart(float32(width), float32(height), dt)
		g.showDebugWindow()
	}
}

func (g *Game) updateOrbit() {

	orbitChanged := false

	dx, dy := input.GetMouseDrag(sdl.BUTTON_LEFT)
	if dx != 0 || dy != 0 {
		g.Ctx.Orbit.Rotate(float32(dx), float32(dy))
		orbitChanged = true
	}

	if wheel := input.GetMouseWheelYNorm(); wheel != 0 {
		g.Ctx.Orbit.Zoom(float32(wheel))
		orbitChanged = true
	}

	if orbitChanged {
		g.Ctx.Orbit.Apply(&g.Ctx.MainCam)
	}
}

func (g *Game) showDebugWindow() {

	imgui.Begin("Debug controls")

	imgui.PushStyleColorVec4(imgui.ColText, imgui.NewColor(1, 1, 0, 1).Value)
	imgui.LabelText("FPS", fmt.Sprintf("%.1f", g.Ctx.Clock.AvgFPS()))
	imgui.PopStyleColor()

	imgui.PlotLinesFloatPtrV("Frame Times", g.frameTimes.Samples, int32(len(g.frameTimes.Samples)), g.frameTimes.Offset, "", 0, 16, imgui.Vec2{Y: 50}, 4)

	imgui.Spacing()

	// Light
	imgui.Text("Light")
	imgui.DragFloatV("Rotation Speed", &g.Ctx.Rotator.Speed, 0.01, -5, 5, "%.3f rad/s", imgui.SliderFlagsNone)

	isCumulative := g.Ctx.Rotator.Mode == lights.RotationCumulative
	if imgui.Checkbox("Cumulative Rotation", &isCumulative) {

		if isCumulative {
			g.Ctx.Rotator.Mode = lights.RotationCumulative
		} else {
			g.Ctx.Rotator.Mode = lights.RotationPerFrame
		}
	}

	lightPos := &g.Ctx.Light.Pos
	imgui.Text(fmt.Sprintf("Position: (%.1f, %.1f, %.1f)", lightPos.X(), lightPos.Y(), lightPos.Z()))

	imgui.Spacing()

	// Shadow map
	imgui.Text("Shadow Map")
	imgui.Checkbox("Show Depth Map", &g.Ctx.ShowDepthViewer)

	imgui.End()
}

func (g *Game) Render() {

	g.DualPass.RenderFrame(g.Ctx)

	if g.ShowUI {
		width, height := g.Win.SDLWin.GetSize()
		fbWidth, fbHeight := g.Win.SDLWin.GLGetDrawableSize()
		g.ImGUIInfo.Render(float32(width), float32(height), fbWidth, fbHeight)
	}
}

func (g *Game) FrameEnd() {
}

func (g *Game) DeInit() {

	g.Assets.Delete()
	g.Sink.Delete()
	g.Rend.Delete()
	g.ImGUIInfo.Delete()
}

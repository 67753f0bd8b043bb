package engine

import (
	"runtime"

	"github.com/bloeys/shadowmapping/assert"
	"github.com/bloeys/shadowmapping/input"
	"github.com/bloeys/shadowmapping/logging"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
)

var (
	isInited = false
)

// UiLayer is an immediate mode UI that sits on top of the window. It sees every event
// and decides whether it owns the mouse and keyboard for the current frame.
type UiLayer interface {
	WantCaptureMouse() bool
	WantCaptureKeyboard() bool
	HandleEvent(e sdl.Event)

	// EventsDone is called once all events of the frame were handled
	EventsDone()
}

type ResizeCallback func(width, height int32, pixelRatio float32)

type Window struct {
	SDLWin          *sdl.Window
	GlCtx           sdl.GLContext
	EventCallbacks  []func(sdl.Event)
	ResizeCallbacks []ResizeCallback
	Ui              UiLayer
}

// NextFrame polls the events of the new frame and reports whether the window should keep running
func (w *Window) NextFrame() bool {
	w.handleInputs()
	return !input.IsQuitClicked()
}

// Present swaps the back buffer into view
func (w *Window) Present() {
	w.SDLWin.GLSwap()
}

func (w *Window) handleInputs() {

	uiCaptureMouse := w.Ui != nil && w.Ui.WantCaptureMouse()
	uiCaptureKeyboard := w.Ui != nil && w.Ui.WantCaptureKeyboard()

	input.EventLoopStart(uiCaptureMouse, uiCaptureKeyboard)

	// Held keys/buttons would otherwise stay held forever, since the release
	// event goes to the UI and never reaches us
	if uiCaptureMouse {
		input.ClearMouseState()
	}

	if uiCaptureKeyboard {
		input.ClearKeyboardState()
	}

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {

		//Fire callbacks
		for i := 0; i < len(w.EventCallbacks); i++ {
			w.EventCallbacks[i](event)
		}

		if w.Ui != nil {
			w.Ui.HandleEvent(event)
		}

		//Internal processing
		switch e := event.(type) {

		case *sdl.MouseWheelEvent:
			input.HandleMouseWheelEvent(e)

		case *sdl.KeyboardEvent:
			input.HandleKeyboardEvent(e)

		case *sdl.MouseButtonEvent:
			input.HandleMouseBtnEvent(e)

		case *sdl.MouseMotionEvent:
			input.HandleMouseMotionEvent(e)

		case *sdl.WindowEvent:

			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				w.handleWindowResize()
			}

		case *sdl.QuitEvent:
			input.HandleQuitEvent(e)
		}
	}

	if w.Ui != nil {
		w.Ui.EventsDone()
	}
}

// Size returns the window size in screen coordinates and the ratio of drawable pixels to screen coordinates
func (w *Window) Size() (width, height int32, pixelRatio float32) {

	width, height = w.SDLWin.GetSize()
	fbWidth, _ := w.SDLWin.GLGetDrawableSize()

	pixelRatio = 1
	if width > 0 && fbWidth > 0 {
		pixelRatio = float32(fbWidth) / float32(width)
	}

	return width, height, pixelRatio
}

func (w *Window) handleWindowResize() {

	fbWidth, fbHeight := w.SDLWin.GLGetDrawableSize()
	if fbWidth <= 0 || fbHeight <= 0 {
		return
	}
	gl.Viewport(0, 0, fbWidth, fbHeight)

	width, height, pixelRatio := w.Size()
	for i := 0; i < len(w.ResizeCallbacks); i++ {
		w.ResizeCallbacks[i](width, height, pixelRatio)
	}
}

func (w *Window) Destroy() error {
	sdl.GLDeleteContext(w.GlCtx)
	return w.SDLWin.Destroy()
}

func Init() error {

	isInited = true

	runtime.LockOSThread()
	err := initSDL()

	return err
}

func DeInit() {
	sdl.Quit()
}

func initSDL() error {

	err := sdl.Init(sdl.INIT_TIMER | sdl.INIT_VIDEO)
	if err != nil {
		return err
	}

	sdl.ShowCursor(1)

	sdl.GLSetAttribute(sdl.MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.MINOR_VERSION, 1)

	sdl.GLSetAttribute(sdl.GL_RED_SIZE, 8)
	sdl.GLSetAttribute(sdl.GL_GREEN_SIZE, 8)
	sdl.GLSetAttribute(sdl.GL_BLUE_SIZE, 8)
	sdl.GLSetAttribute(sdl.GL_ALPHA_SIZE, 8)

	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)
	sdl.GLSetAttribute(sdl.GL_STENCIL_SIZE, 8)

	sdl.GLSetAttribute(sdl.GL_FRAMEBUFFER_SRGB_CAPABLE, 1)

	sdl.GLSetAttribute(sdl.GL_MULTISAMPLEBUFFERS, 1)
	sdl.GLSetAttribute(sdl.GL_MULTISAMPLESAMPLES, 4)

	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)

	return nil
}

func CreateOpenGLWindowCentered(title string, width, height int32, flags WindowFlags) (*Window, error) {
	return createWindow(title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED, width, height, WindowFlags_OPENGL|flags)
}

func createWindow(title string, x, y, width, height int32, flags WindowFlags) (*Window, error) {

	assert.T(isInited, "engine.Init() was not called!")

	sdlWin, err := sdl.CreateWindow(title, x, y, width, height, uint32(flags))
	if err != nil {
		return nil, err
	}

	win := &Window{
		SDLWin:          sdlWin,
		EventCallbacks:  make([]func(sdl.Event), 0),
		ResizeCallbacks: make([]ResizeCallback, 0),
	}

	win.GlCtx, err = sdlWin.GLCreateContext()
	if err != nil {
		return nil, err
	}

	err = initOpenGL()
	if err != nil {
		return nil, err
	}

	logging.InfoLog.Printf("OpenGL %s on %s\n", gl.GoStr(gl.GetString(gl.VERSION)), gl.GoStr(gl.GetString(gl.RENDERER)))

	// Get rid of the blinding white startup screen (unfortunately there is still one frame of white)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT | gl.STENCIL_BUFFER_BIT)
	sdlWin.GLSwap()

	return win, err
}

func initOpenGL() error {

	if err := gl.Init(); err != nil {
		return err
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)

	gl.Enable(gl.MULTISAMPLE)
	gl.Enable(gl.FRAMEBUFFER_SRGB)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	gl.ClearColor(0, 0, 0, 1)

	return nil
}

func SetSrgbFramebuffer(isEnabled bool) {

	if isEnabled {
		gl.Enable(gl.FRAMEBUFFER_SRGB)
	} else {
		gl.Disable(gl.FRAMEBUFFER_SRGB)
	}
}

func SetVSync(enabled bool) {

	if enabled {
		sdl.GLSetSwapInterval(1)
	} else {
		sdl.GLSetSwapInterval(0)
	}
}

func SetMSAA(isEnabled bool) {

	if isEnabled {
		gl.Enable(gl.MULTISAMPLE)
	} else {
		gl.Disable(gl.MULTISAMPLE)
	}
}

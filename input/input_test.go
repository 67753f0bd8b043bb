package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/veandco/go-sdl2/sdl"
)

func resetState() {
	ClearKeyboardState()
	ClearMouseState()
	mouseMotion = mouseMotionState{}
	isQuitRequested = false
	EventLoopStart(false, false)
}

func TestMouseDrag(t *testing.T) {

	resetState()

	HandleMouseMotionEvent(&sdl.MouseMotionEvent{X: 10, Y: 10, XRel: 5, YRel: -2})
	x, y := GetMouseDrag(sdl.BUTTON_LEFT)
	assert.Zero(t, x)
	assert.Zero(t, y)

	HandleMouseBtnEvent(&sdl.MouseButtonEvent{Button: sdl.BUTTON_LEFT, State: sdl.PRESSED})
	HandleMouseMotionEvent(&sdl.MouseMotionEvent{X: 12, Y: 11, XRel: 2, YRel: 1})

	x, y = GetMouseDrag(sdl.BUTTON_LEFT)
	assert.Equal(t, int32(7), x)
	assert.Equal(t, int32(-1), y)
	assert.True(t, MouseClicked(sdl.BUTTON_LEFT))

	px, py := GetMousePos()
	assert.Equal(t, int32(12), px)
	assert.Equal(t, int32(11), py)

	// Next frame keeps the button held but drops the motion
	EventLoopStart(false, false)
	x, y = GetMouseDrag(sdl.BUTTON_LEFT)
	assert.Zero(t, x)
	assert.Zero(t, y)
	assert.True(t, MouseDown(sdl.BUTTON_LEFT))
	assert.False(t, MouseClicked(sdl.BUTTON_LEFT))

	HandleMouseBtnEvent(&sdl.MouseButtonEvent{Button: sdl.BUTTON_LEFT, State: sdl.RELEASED})
	assert.True(t, MouseReleased(sdl.BUTTON_LEFT))
	assert.False(t, MouseDown(sdl.BUTTON_LEFT))
}

func TestCapturedMouseIsHidden(t *testing.T) {

	resetState()
	EventLoopStart(true, false)
	assert.True(t, IsMouseCaptured())
	assert.False(t, IsKeyboardCaptured())

	HandleMouseBtnEvent(&sdl.MouseButtonEvent{Button: sdl.BUTTON_LEFT, State: sdl.PRESSED})
	HandleMouseMotionEvent(&sdl.MouseMotionEvent{XRel: 3, YRel: 4})
	HandleMouseWheelEvent(&sdl.MouseWheelEvent{Y: 2})

	assert.False(t, MouseDown(sdl.BUTTON_LEFT))
	x, y := GetMouseDrag(sdl.BUTTON_LEFT)
	assert.Zero(t, x)
	assert.Zero(t, y)
	assert.Zero(t, GetMouseWheelYNorm())

	x, y = GetMouseMotionCaptured()
	assert.Equal(t, int32(3), x)
	assert.Equal(t, int32(4), y)
}

func TestWheel(t *testing.T) {

	resetState()

	HandleMouseWheelEvent(&sdl.MouseWheelEvent{Y: 3})
	assert.Equal(t, int32(1), GetMouseWheelYNorm())

	EventLoopStart(false, false)
	assert.Equal(t, int32(0), GetMouseWheelYNorm())

	HandleMouseWheelEvent(&sdl.MouseWheelEvent{Y: -1})
	assert.Equal(t, int32(-1), GetMouseWheelYNorm())
}

func TestKeys(t *testing.T) {

	resetState()

	HandleKeyboardEvent(&sdl.KeyboardEvent{State: sdl.PRESSED, Keysym: sdl.Keysym{Sym: sdl.K_ESCAPE}})
	assert.True(t, KeyClicked(sdl.K_ESCAPE))
	assert.True(t, KeyDown(sdl.K_ESCAPE))

	// Repeats are held keys, not new clicks
	EventLoopStart(false, false)
	HandleKeyboardEvent(&sdl.KeyboardEvent{State: sdl.PRESSED, Repeat: 1, Keysym: sdl.Keysym{Sym: sdl.K_ESCAPE}})
	assert.False(t, KeyClicked(sdl.K_ESCAPE))
	assert.True(t, KeyDown(sdl.K_ESCAPE))

	EventLoopStart(false, false)
	HandleKeyboardEvent(&sdl.KeyboardEvent{State: sdl.RELEASED, Keysym: sdl.Keysym{Sym: sdl.K_ESCAPE}})
	assert.True(t, KeyReleased(sdl.K_ESCAPE))
	assert.False(t, KeyDown(sdl.K_ESCAPE))

	// Captured keyboard hides everything
	EventLoopStart(false, true)
	HandleKeyboardEvent(&sdl.KeyboardEvent{State: sdl.PRESSED, Keysym: sdl.Keysym{Sym: sdl.K_ESCAPE}})
	assert.False(t, KeyClicked(sdl.K_ESCAPE))
}

func TestQuit(t *testing.T) {

	resetState()
	assert.False(t, IsQuitClicked())

	HandleQuitEvent(&sdl.QuitEvent{})
	assert.True(t, IsQuitClicked())

	// Quit requests survive frame resets
	EventLoopStart(false, false)
	assert.True(t, IsQuitClicked())
}

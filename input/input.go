// Package input tracks per-frame mouse and keyboard state fed from SDL events.
//
// Most getters come in two forms, 'xy' and 'xyCaptured'. The captured form
// always returns the raw state, while the 'xy' form returns zero/false while the
// UI owns the respective device. Camera controls should use the 'xy' form so dragging
// a UI slider doesn't also orbit the scene.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

type keyState struct {
	Key                 sdl.Keycode
	State               int
	IsPressedThisFrame  bool
	IsReleasedThisFrame bool
}

type mouseBtnState struct {
	Btn   int
	State int

	IsPressedThisFrame  bool
	IsReleasedThisFrame bool
}

type mouseMotionState struct {
	XDelta int32
	YDelta int32
	XPos   int32
	YPos   int32
}

type mouseWheelState struct {
	XDelta int32
	YDelta int32
}

var (
	mouseWheel  = mouseWheelState{}
	mouseMotion = mouseMotionState{}
	mouseBtnMap = make(map[int]mouseBtnState)
	keyMap      = make(map[sdl.Keycode]keyState)

	isQuitRequested    bool
	isMouseCaptured    bool
	isKeyboardCaptured bool
)

// EventLoopStart resets the per-frame state. Must be called once per frame before any events are handled.
func EventLoopStart(mouseGotCaptured, keyboardGotCaptured bool) {

	isMouseCaptured = mouseGotCaptured
	isKeyboardCaptured = keyboardGotCaptured

	for k, v := range keyMap {
		v.IsPressedThisFrame = false
		v.IsReleasedThisFrame = false
		keyMap[k] = v
	}

	for k, v := range mouseBtnMap {
		v.IsPressedThisFrame = false
		v.IsReleasedThisFrame = false
		mouseBtnMap[k] = v
	}

	mouseMotion.XDelta = 0
	mouseMotion.YDelta = 0

	mouseWheel.XDelta = 0
	mouseWheel.YDelta = 0
}

// ClearKeyboardState forgets held keys. Used when the UI grabs the keyboard, as
// the key up events will never reach us.
func ClearKeyboardState() {
	clear(keyMap)
}

func ClearMouseState() {
	clear(mouseBtnMap)
	mouseMotion.XDelta = 0
	mouseMotion.YDelta = 0
	mouseWheel = mouseWheelState{}
}

func HandleQuitEvent(e *sdl.QuitEvent) {
	isQuitRequested = true
}

// RequestQuit behaves as if the window close button was clicked
func RequestQuit() {
	isQuitRequested = true
}

func IsMouseCaptured() bool {
	return isMouseCaptured
}

func IsKeyboardCaptured() bool {
	return isKeyboardCaptured
}

func IsQuitClicked() bool {
	return isQuitRequested
}

func HandleKeyboardEvent(e *sdl.KeyboardEvent) {

	ks, ok := keyMap[e.Keysym.Sym]
	if !ok {
		ks = keyState{Key: e.Keysym.Sym}
	}

	ks.State = int(e.State)
	ks.IsPressedThisFrame = e.State == sdl.PRESSED && e.Repeat == 0
	ks.IsReleasedThisFrame = e.State == sdl.RELEASED && e.Repeat == 0

	keyMap[ks.Key] = ks
}

func HandleMouseBtnEvent(e *sdl.MouseButtonEvent) {

	mb, ok := mouseBtnMap[int(e.Button)]
	if !ok {
		mb = mouseBtnState{Btn: int(e.Button)}
	}

	mb.State = int(e.State)
	mb.IsPressedThisFrame = e.State == sdl.PRESSED
	mb.IsReleasedThisFrame = e.State == sdl.RELEASED

	mouseBtnMap[int(e.Button)] = mb
}

// HandleMouseMotionEvent accumulates motion, as SDL may deliver several motion events in one frame
func HandleMouseMotionEvent(e *sdl.MouseMotionEvent) {

	mouseMotion.XPos = e.X
	mouseMotion.YPos = e.Y

	mouseMotion.XDelta += e.XRel
	mouseMotion.YDelta += e.YRel
}

func HandleMouseWheelEvent(e *sdl.MouseWheelEvent) {
	mouseWheel.XDelta += e.X
	mouseWheel.YDelta += e.Y
}

// GetMousePos returns the window coordinates of the mouse regardless of whether the mouse is captured or not
func GetMousePos() (x, y int32) {
	return mouseMotion.XPos, mouseMotion.YPos
}

// GetMouseMotion returns how many pixels were moved last frame
func GetMouseMotion() (xDelta, yDelta int32) {

	if isMouseCaptured {
		return 0, 0
	}

	return GetMouseMotionCaptured()
}

func GetMouseMotionCaptured() (xDelta, yDelta int32) {
	return mouseMotion.XDelta, mouseMotion.YDelta
}

// GetMouseDrag returns the mouse motion of this frame if mb is held, and zero otherwise
func GetMouseDrag(mb int) (xDelta, yDelta int32) {

	if !MouseDown(mb) {
		return 0, 0
	}

	return GetMouseMotion()
}

// GetMouseWheelYNorm returns 1 if mouse wheel yDelta > 0, -1 if yDelta < 0, and 0 otherwise
func GetMouseWheelYNorm() int32 {

	if isMouseCaptured {
		return 0
	}

	if mouseWheel.YDelta > 0 {
		return 1
	} else if mouseWheel.YDelta < 0 {
		return -1
	}

	return 0
}

func KeyClicked(kc sdl.Keycode) bool {

	if isKeyboardCaptured {
		return false
	}

	return keyMap[kc].IsPressedThisFrame
}

func KeyReleased(kc sdl.Keycode) bool {

	if isKeyboardCaptured {
		return false
	}

	return keyMap[kc].IsReleasedThisFrame
}

func KeyDown(kc sdl.Keycode) bool {

	if isKeyboardCaptured {
		return false
	}

	return keyMap[kc].State == sdl.PRESSED
}

func MouseClicked(mb int) bool {

	if isMouseCaptured {
		return false
	}

	return mouseBtnMap[mb].IsPressedThisFrame
}

func MouseReleased(mb int) bool {

	if isMouseCaptured {
		return false
	}

	return mouseBtnMap[mb].IsReleasedThisFrame
}

func MouseDown(mb int) bool {

	if isMouseCaptured {
		return false
	}

	return mouseBtnMap[mb].State == sdl.PRESSED
}

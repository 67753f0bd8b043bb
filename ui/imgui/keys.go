package imgui

import (
	imgui "github.com/AllenDang/cimgui-go"
	"github.com/veandco/go-sdl2/sdl"
)

var sdlToImguiKeys = map[sdl.Scancode]imgui.Key{
	sdl.SCANCODE_TAB:       imgui.KeyTab,
	sdl.SCANCODE_LEFT:      imgui.KeyLeftArrow,
	sdl.SCANCODE_RIGHT:     imgui.KeyRightArrow,
	sdl.SCANCODE_UP:        imgui.KeyUpArrow,
	sdl.SCANCODE_DOWN:      imgui.KeyDownArrow,
	sdl.SCANCODE_PAGEUP:    imgui.KeyPageUp,
	sdl.SCANCODE_PAGEDOWN:  imgui.KeyPageDown,
	sdl.SCANCODE_HOME:      imgui.KeyHome,
	sdl.SCANCODE_END:       imgui.KeyEnd,
	sdl.SCANCODE_INSERT:    imgui.KeyInsert,
	sdl.SCANCODE_DELETE:    imgui.KeyDelete,
	sdl.SCANCODE_BACKSPACE: imgui.KeyBackspace,
	sdl.SCANCODE_SPACE:     imgui.KeySpace,
	sdl.SCANCODE_RETURN:    imgui.KeyEnter,
	sdl.SCANCODE_KP_ENTER:  imgui.KeyKeypadEnter,
	sdl.SCANCODE_ESCAPE:    imgui.KeyEscape,
	sdl.SCANCODE_MINUS:     imgui.KeyMinus,
	sdl.SCANCODE_PERIOD:    imgui.KeyPeriod,
	sdl.SCANCODE_A:         imgui.KeyA,
	sdl.SCANCODE_C:         imgui.KeyC,
	sdl.SCANCODE_V:         imgui.KeyV,
	sdl.SCANCODE_X:         imgui.KeyX,
	sdl.SCANCODE_Y:         imgui.KeyY,
	sdl.SCANCODE_Z:         imgui.KeyZ,
	sdl.SCANCODE_0:         imgui.Key0,
	sdl.SCANCODE_1:         imgui.Key1,
	sdl.SCANCODE_2:         imgui.Key2,
	sdl.SCANCODE_3:         imgui.Key3,
	sdl.SCANCODE_4:         imgui.Key4,
	sdl.SCANCODE_5:         imgui.Key5,
	sdl.SCANCODE_6:         imgui.Key6,
	sdl.SCANCODE_7:         imgui.Key7,
	sdl.SCANCODE_8:         imgui.Key8,
	sdl.SCANCODE_9:         imgui.Key9,
	sdl.SCANCODE_LCTRL:     imgui.KeyLeftCtrl,
	sdl.SCANCODE_RCTRL:     imgui.KeyRightCtrl,
	sdl.SCANCODE_LSHIFT:    imgui.KeyLeftShift,
	sdl.SCANCODE_RSHIFT:    imgui.KeyRightShift,
	sdl.SCANCODE_LALT:      imgui.KeyLeftAlt,
	sdl.SCANCODE_RALT:      imgui.KeyRightAlt,
}

// SdlScancodeToImGuiKey returns the imgui key of a scancode, or imgui.KeyNone for keys imgui doesn't care about
func SdlScancodeToImGuiKey(scancode sdl.Scancode) imgui.Key {

	if k, ok := sdlToImguiKeys[scancode]; ok {
		return k
	}

	return imgui.KeyNone
}

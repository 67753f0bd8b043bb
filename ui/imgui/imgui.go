package imgui

import (
	"io/fs"
	"unsafe"

	imgui "github.com/AllenDang/cimgui-go"
	"github.com/bloeys/shadowmapping/materials"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
)

// ImguiInfo is an SDL+OpenGL backend for cimgui. It implements engine.UiLayer.
type ImguiInfo struct {
	Mat        *materials.Material
	VaoId      uint32
	VboId      uint32
	IndexBufId uint32
	TexId      uint32

	isLeftDown   bool
	isMiddleDown bool
	isRightDown  bool
}

func (i *ImguiInfo) WantCaptureMouse() bool {
	return imgui.CurrentIO().WantCaptureMouse()
}

func (i *ImguiInfo) WantCaptureKeyboard() bool {
	return imgui.CurrentIO().WantCaptureKeyboard()
}

func (i *ImguiInfo) HandleEvent(event sdl.Event) {

	imIo := imgui.CurrentIO()

	switch e := event.(type) {

	case *sdl.MouseWheelEvent:
		imIo.AddMouseWheelDelta(float32(e.X), float32(e.Y))

	case *sdl.KeyboardEvent:

		isDown := e.Type == sdl.KEYDOWN
		imIo.AddKeyEvent(SdlScancodeToImGuiKey(e.Keysym.Scancode), isDown)

		switch e.Keysym.Sym {
		case sdl.K_LCTRL, sdl.K_RCTRL:
			imIo.SetKeyCtrl(isDown)
		case sdl.K_LSHIFT, sdl.K_RSHIFT:
			imIo.SetKeyShift(isDown)
		case sdl.K_LALT, sdl.K_RALT:
			imIo.SetKeyAlt(isDown)
		case sdl.K_LGUI, sdl.K_RGUI:
			imIo.SetKeySuper(isDown)
		}

	case *sdl.TextInputEvent:
		imIo.AddInputCharactersUTF8(e.GetText())

	case *sdl.MouseButtonEvent:

		isPressed := e.State == sdl.PRESSED

		switch e.Button {
		case sdl.BUTTON_LEFT:
			i.isLeftDown = isPressed
		case sdl.BUTTON_MIDDLE:
			i.isMiddleDown = isPressed
		case sdl.BUTTON_RIGHT:
			i.isRightDown = isPressed
		}
	}
}

func (i *ImguiInfo) EventsDone() {

	imIo := imgui.CurrentIO()

	x, y, _ := sdl.GetMouseState()
	imIo.SetMousePos(imgui.Vec2{X: float32(x), Y: float32(y)})

	// A press is reported as held for the whole frame so clicks shorter than a frame aren't lost
	imIo.SetMouseButtonDown(imgui.MouseButtonLeft, i.isLeftDown)
	imIo.SetMouseButtonDown(imgui.MouseButtonRight, i.isRightDown)
	imIo.SetMouseButtonDown(imgui.MouseButtonMiddle, i.isMiddleDown)
}

// FrameStart begins a new imgui frame. Widgets may only be submitted between FrameStart and Render.
func (i *ImguiInfo) FrameStart(winWidth, winHeight, dt float32) {

	imIo := imgui.CurrentIO()
	imIo.SetDisplaySize(imgui.Vec2{X: winWidth, Y: winHeight})

	// imgui asserts on a zero delta
	if dt <= 0 {
		dt = 1.0 / 60
	}
	imIo.SetDeltaTime(dt)

	imgui.NewFrame()
}

// Render draws the submitted widgets on top of whatever is bound as the draw framebuffer
func (i *ImguiInfo) Render(winWidth, winHeight float32, fbWidth, fbHeight int32) {

	imgui.Render()

	// Minimized
	if fbWidth <= 0 || fbHeight <= 0 || winWidth <= 0 || winHeight <= 0 {
		return
	}

	drawData := imgui.CurrentDrawData()
	drawData.ScaleClipRects(imgui.Vec2{
		X: float32(fbWidth) / winWidth,
		Y: float32(fbHeight) / winHeight,
	})

	// imgui colors are already in sRGB
	gl.Disable(gl.FRAMEBUFFER_SRGB)
	gl.Enable(gl.BLEND)
	gl.BlendEquation(gl.FUNC_ADD)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.SCISSOR_TEST)
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)

	gl.Viewport(0, 0, fbWidth, fbHeight)

	orthoProjection := [4][4]float32{
		{2.0 / winWidth, 0.0, 0.0, 0.0},
		{0.0, 2.0 / -winHeight, 0.0, 0.0},
		{0.0, 0.0, -1.0, 0.0},
		{-1.0, 1.0, 0.0, 1.0},
	}

	i.Mat.Bind()
	i.Mat.SetUnifInt32("Texture", 0)
	gl.UniformMatrix4fv(i.Mat.GetUnifLoc("ProjMtx"), 1, false, &orthoProjection[0][0])

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindSampler(0, 0)
	gl.BindVertexArray(i.VaoId)
	gl.BindBuffer(gl.ARRAY_BUFFER, i.VboId)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, i.IndexBufId)

	vertexSize, vertexOffsetPos, vertexOffsetUv, vertexOffsetRgba := imgui.VertexBufferLayout()
	gl.EnableVertexAttribArray(0)
	gl.EnableVertexAttribArray(1)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, int32(vertexSize), uintptr(vertexOffsetPos))
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, int32(vertexSize), uintptr(vertexOffsetUv))
	gl.VertexAttribPointerWithOffset(2, 4, gl.UNSIGNED_BYTE, true, int32(vertexSize), uintptr(vertexOffsetRgba))

	indexSize := imgui.IndexBufferLayout()
	drawType := uint32(gl.UNSIGNED_SHORT)
	if indexSize == 4 {
		drawType = gl.UNSIGNED_INT
	}

	for _, list := range drawData.CommandLists() {

		vertexBuffer, vertexBufferSize := list.GetVertexBuffer()
		gl.BufferData(gl.ARRAY_BUFFER, vertexBufferSize, vertexBuffer, gl.STREAM_DRAW)

		indexBuffer, indexBufferSize := list.GetIndexBuffer()
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, indexBufferSize, indexBuffer, gl.STREAM_DRAW)

		for _, cmd := range list.Commands() {

			if cmd.HasUserCallback() {
				cmd.CallUserCallback(list)
				continue
			}

			gl.BindTexture(gl.TEXTURE_2D, glTexFromImgui(cmd.TextureId()))

			clipRect := cmd.ClipRect()
			gl.Scissor(int32(clipRect.X), fbHeight-int32(clipRect.W), int32(clipRect.Z-clipRect.X), int32(clipRect.W-clipRect.Y))

			gl.DrawElementsBaseVertexWithOffset(gl.TRIANGLES, int32(cmd.ElemCount()), drawType, uintptr(int(cmd.IdxOffset())*indexSize), int32(cmd.VtxOffset()))
		}
	}

	gl.Disable(gl.BLEND)
	gl.Disable(gl.SCISSOR_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.FRAMEBUFFER_SRGB)
}

func (i *ImguiInfo) Delete() {

	gl.DeleteTextures(1, &i.TexId)
	gl.DeleteBuffers(1, &i.VboId)
	gl.DeleteBuffers(1, &i.IndexBufId)
	gl.DeleteVertexArrays(1, &i.VaoId)
	i.Mat.Delete()

	imgui.DestroyContext()
}

// NewImGui creates the imgui context and its GL resources. The shader is a
// combined shader file read from shaderFS.
func NewImGui(shaderFS fs.FS, shaderPath string) (*ImguiInfo, error) {

	imgui.CreateContext()

	mat, err := materials.NewMaterialFS("ImGUI Mat", shaderFS, shaderPath)
	if err != nil {
		return nil, err
	}

	imguiInfo := &ImguiInfo{
		Mat: mat,
	}

	gl.GenVertexArrays(1, &imguiInfo.VaoId)
	gl.GenBuffers(1, &imguiInfo.VboId)
	gl.GenBuffers(1, &imguiInfo.IndexBufId)
	gl.GenTextures(1, &imguiInfo.TexId)

	// Upload font atlas
	fontAtlas := imgui.CurrentIO().Fonts()
	pixels, width, height, _ := fontAtlas.GetTextureDataAsRGBA32()

	gl.BindTexture(gl.TEXTURE_2D, imguiInfo.TexId)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, width, height, 0, gl.RGBA, gl.UNSIGNED_BYTE, pixels)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	fontAtlas.SetTexID(imguiTexFromGl(imguiInfo.TexId))

	return imguiInfo, nil
}

// imgui stores texture ids as opaque pointers, so GL names travel through it as pointer-sized integers
func imguiTexFromGl(texId uint32) imgui.TextureID {
	return imgui.TextureID(unsafe.Pointer(uintptr(texId)))
}

func glTexFromImgui(texId imgui.TextureID) uint32 {
	return uint32(uintptr(texId))
}

package scene

import (
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/shadowmapping/camera"
	"github.com/bloeys/shadowmapping/lights"
	"github.com/bloeys/shadowmapping/timing"
)

const (
	DefaultFovDeg       float32 = 45
	DefaultCamNear      float32 = 1
	DefaultCamFar       float32 = 10000
	DefaultDepthMapSlot int32   = 12
)

// Context is everything a frame needs. It is created once at startup
// and handed to the frame loop, the light rotator and the resize handler.
type Context struct {
	Objects []*Object

	MainCam camera.Camera
	Orbit   camera.Orbit

	Light   *lights.DirLight
	Rotator lights.Rotator
	Clock   *timing.Clock

	Intensity    gglm.Vec4
	ClearColor   gglm.Vec3
	DepthMapSlot int32

	WinWidth, WinHeight int32
	FbWidth, FbHeight   int32
	PixelRatio          float32

	ShowDepthViewer bool
	DepthViewerSize int32
}

// Update advances the clock and rotates the light. Returns the frame delta.
func (c *Context) Update() float32 {

	dt := c.Clock.Tick()
	c.Rotator.Update(c.Light, dt, c.Clock.Elapsed())
	return dt
}

// Snapshot captures the current light state for the shaders
func (c *Context) Snapshot() UniformSnapshot {
	return UniformSnapshot{
		Time:         c.Clock.Elapsed(),
		LightPos:     c.Light.Pos,
		ShadowCamP:   c.Light.ShadowCam.ProjMat,
		ShadowCamV:   c.Light.ShadowCam.ViewMat,
		DepthMapSlot: c.DepthMapSlot,
		Intensity:    c.Intensity,
	}
}

// Resize updates the main camera and framebuffer size for a window of width*height.
// pixelRatio is drawable pixels per window unit, so the framebuffer follows the drawable size.
// Calling it again with the same values changes nothing.
func (c *Context) Resize(width, height int32, pixelRatio float32) {

	if width <= 0 || height <= 0 {
		return
	}

	if pixelRatio <= 0 {
		pixelRatio = 1
	}

	c.WinWidth = width
	c.WinHeight = height
	c.PixelRatio = pixelRatio
	c.FbWidth = int32(float32(width)*pixelRatio + 0.5)
	c.FbHeight = int32(float32(height)*pixelRatio + 0.5)

	c.MainCam.SetViewportSize(width, height)
}

func (c *Context) ObjectByName(name string) *Object {

	for _, o := range c.Objects {
		if o.Name == name {
			return o
		}
	}

	return nil
}

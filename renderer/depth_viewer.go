package renderer

import "github.com/bloeys/gglm/gglm"

// DepthViewer places a full screen quad into a smaller part of the screen,
// in the same way as the debug fbo quads: ndc = pos*Scale + Offset
type DepthViewer struct {
	Scale  gglm.Vec2
	Offset gglm.Vec2
}

// DepthViewerViewport returns a DepthViewer that shows a size*size pixel square
// at the top-left corner of a fbWidth*fbHeight framebuffer
func DepthViewerViewport(fbWidth, fbHeight, size int32) DepthViewer {

	if fbWidth <= 0 || fbHeight <= 0 || size <= 0 {
		return DepthViewer{}
	}

	scaleX := min(float32(size)/float32(fbWidth), 1)
	scaleY := min(float32(size)/float32(fbHeight), 1)

	return DepthViewer{
		Scale:  gglm.NewVec2(scaleX, scaleY),
		Offset: gglm.NewVec2(-1+scaleX, 1-scaleY),
	}
}

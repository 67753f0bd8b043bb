// Package res holds the files embedded into the binary
package res

import "embed"

//go:embed shaders/*.glsl
var Shaders embed.FS

const (
	ShadowLitShader   = "shaders/shadow-lit.glsl"
	ShadowDepthShader = "shaders/shadow-depth.glsl"
	DepthViewerShader = "shaders/depth-viewer.glsl"
	ImguiShader       = "shaders/imgui.glsl"
)

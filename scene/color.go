package scene

import (
	"github.com/bloeys/gglm/gglm"
	"github.com/mandykoh/prism/srgb"
)

// ColorFromHex converts a 0xRRGGBB sRGB color into linear RGB.
// Linear values are what the shaders work with, with the framebuffer doing the sRGB encode.
func ColorFromHex(hex uint32) gglm.Vec3 {
	return gglm.NewVec3(
		srgb.From8Bit(uint8(hex>>16)),
		srgb.From8Bit(uint8(hex>>8)),
		srgb.From8Bit(uint8(hex)),
	)
}

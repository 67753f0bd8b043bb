package shaders

import (
	"bytes"
	"errors"
	"fmt"
)

const combinedShaderMarker = "//shader:"

type ShaderSource struct {
	Type ShaderType
	Src  []byte
}

// SplitCombinedSrc splits a combined shader file into its stages.
// Each stage starts with a '//shader:<type>' line, and vertex plus fragment stages are required.
func SplitCombinedSrc(combinedSrc []byte) ([]ShaderSource, error) {

	parts := bytes.Split(combinedSrc, []byte(combinedShaderMarker))
	if len(parts) < 2 {
		return nil, errors.New("failed to read combined shader. The minimum shader types to have are '//shader:vertex' and '//shader:fragment'")
	}

	out := make([]ShaderSource, 0, len(parts)-1)
	seen := map[ShaderType]bool{}
	for i := 0; i < len(parts); i++ {

		src := parts[i]

		// Happens when the shader type is at the start of the file
		if len(bytes.TrimSpace(src)) == 0 {
			continue
		}

		// Text before the first marker (e.g. a comment header) is not a stage
		if i == 0 {
			continue
		}

		shdrType := ShaderType_Unknown
		for _, t := range []ShaderType{ShaderType_Vertex, ShaderType_Fragment, ShaderType_Geometry} {
			if bytes.HasPrefix(src, []byte(t.String())) {
				shdrType = t
				src = src[len(t.String()):]
				break
			}
		}

		if shdrType == ShaderType_Unknown {
			return nil, errors.New("unknown shader type. Must be '//shader:vertex' or '//shader:fragment' or '//shader:geometry'")
		}

		if seen[shdrType] {
			return nil, fmt.Errorf("combined shader has more than one %s stage", shdrType)
		}

		seen[shdrType] = true
		out = append(out, ShaderSource{Type: shdrType, Src: src})
	}

	if !seen[ShaderType_Vertex] {
		return nil, errors.New("no valid vertex shader found. Please put '//shader:vertex' before your vertex shader")
	}

	if !seen[ShaderType_Fragment] {
		return nil, errors.New("no valid fragment shader found. Please put '//shader:fragment' before your fragment shader")
	}

	return out, nil
}

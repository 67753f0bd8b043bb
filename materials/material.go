package materials

import (
	"fmt"
	"io/fs"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/shadowmapping/assert"
	"github.com/bloeys/shadowmapping/renderer"
	"github.com/bloeys/shadowmapping/shaders"
	"github.com/go-gl/gl/v4.1-core/gl"
)

var (
	lastMatId uint32
)

var _ renderer.Material = &Material{}

type TextureSlot uint32

const (
	TextureSlot_Diffuse    TextureSlot = 0
	TextureSlot_ShadowMap1 TextureSlot = 12
)

type MaterialSettings uint64

const (
	MaterialSettings_None        MaterialSettings = iota
	MaterialSettings_HasModelMtx MaterialSettings = 1 << (iota - 1)
	MaterialSettings_HasNormalMtx
)

func (ms *MaterialSettings) Set(flags MaterialSettings) {
	*ms |= flags
}

func (ms *MaterialSettings) Remove(flags MaterialSettings) {
	*ms &= ^flags
}

func (ms *MaterialSettings) Has(flags MaterialSettings) bool {
	return *ms&flags == flags
}

type Material struct {
	Id         uint32
	Name       string
	ShaderProg shaders.ShaderProgram
	Settings   MaterialSettings

	UnifLocs map[string]int32

	DiffuseTex uint32

	// Shadowmaps
	ShadowMapTex1 uint32
}

func (m *Material) MatId() uint32 {
	return m.Id
}

func (m *Material) Bind() {

	m.ShaderProg.Bind()

	if m.DiffuseTex != 0 {
		gl.ActiveTexture(uint32(gl.TEXTURE0 + TextureSlot_Diffuse))
		gl.BindTexture(gl.TEXTURE_2D, m.DiffuseTex)
	}

	if m.ShadowMapTex1 != 0 {
		gl.ActiveTexture(uint32(gl.TEXTURE0 + TextureSlot_ShadowMap1))
		gl.BindTexture(gl.TEXTURE_2D, m.ShadowMapTex1)
	}
}

func (m *Material) UnBind() {
	gl.UseProgram(0)
}

func (m *Material) SetUniformBlockBindingPoint(uniformBlockName string, bindPointIndex uint32) {

	nullStr := gl.Str(uniformBlockName + "\x00")
	index := gl.GetUniformBlockIndex(m.ShaderProg.Id, nullStr)
	assert.T(
		index != gl.INVALID_INDEX,
		"SetUniformBlockBindingPoint for material=%s (matId=%d; shaderId=%d) failed because the uniform block=%s wasn't found",
		m.Name,
		m.Id,
		m.ShaderProg.Id,
		uniformBlockName,
	)
	gl.UniformBlockBinding(m.ShaderProg.Id, index, bindPointIndex)
}

func (m *Material) GetUnifLoc(uniformName string) int32 {

	loc, ok := m.UnifLocs[uniformName]
	if ok {
		return loc
	}

	name := gl.Str(uniformName + "\x00")
	loc = gl.GetUniformLocation(m.ShaderProg.Id, name)
	assert.T(loc != -1, "Uniform '"+uniformName+"' doesn't exist on material "+m.Name)
	m.UnifLocs[uniformName] = loc
	return loc
}

func (m *Material) SetUnifInt32(uniformName string, val int32) {
	gl.ProgramUniform1i(m.ShaderProg.Id, m.GetUnifLoc(uniformName), val)
}

func (m *Material) SetUnifVec2(uniformName string, vec2 *gglm.Vec2) {
	gl.ProgramUniform2fv(m.ShaderProg.Id, m.GetUnifLoc(uniformName), 1, &vec2.Data[0])
}

func (m *Material) SetUnifVec3(uniformName string, vec3 *gglm.Vec3) {
	gl.ProgramUniform3fv(m.ShaderProg.Id, m.GetUnifLoc(uniformName), 1, &vec3.Data[0])
}

func (m *Material) SetUnifMat4(uniformName string, mat4 *gglm.Mat4) {
	gl.ProgramUniformMatrix4fv(m.ShaderProg.Id, m.GetUnifLoc(uniformName), 1, false, &mat4.Data[0][0])
}

func (m *Material) Delete() {
	m.ShaderProg.Delete()
}

func getNewMatId() uint32 {
	lastMatId++
	return lastMatId
}

// NewMaterialFS creates a material from the combined shader file at shaderPath inside fsys
func NewMaterialFS(matName string, fsys fs.FS, shaderPath string) (*Material, error) {

	shdrProg, err := shaders.LoadAndCompileCombinedShaderFS(fsys, shaderPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create new material '%s': %w", matName, err)
	}

	return newMaterial(matName, shdrProg), nil
}

func newMaterial(matName string, shdrProg shaders.ShaderProgram) *Material {
	return &Material{
		Id:         getNewMatId(),
		Name:       matName,
		ShaderProg: shdrProg,
		UnifLocs:   make(map[string]int32),
	}
}

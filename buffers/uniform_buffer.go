package buffers

import (
	"github.com/bloeys/shadowmapping/logging"
	"github.com/bloeys/shadowmapping/std140"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// UniformBuffer is a std140 uniform block on the GPU plus its CPU side copy.
// Values are set on Data and sent to the GPU with Upload.
type UniformBuffer struct {
	Id uint32
	// Size is the allocated memory in bytes on the GPU for this uniform buffer
	Size uint32
	Data *std140.Buffer
}

func (ub *UniformBuffer) Bind() {
	gl.BindBuffer(gl.UNIFORM_BUFFER, ub.Id)
}

func (ub *UniformBuffer) UnBind() {
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)
}

func (ub *UniformBuffer) SetBindPoint(bindPointIndex uint32) {
	gl.BindBufferBase(gl.UNIFORM_BUFFER, bindPointIndex, ub.Id)
}

// Upload copies the whole CPU side block to the GPU
func (ub *UniformBuffer) Upload() {
	ub.Bind()
	gl.BufferSubData(gl.UNIFORM_BUFFER, 0, len(ub.Data.Data), gl.Ptr(&ub.Data.Data[0]))
	ub.UnBind()
}

func (ub *UniformBuffer) Delete() {

	if ub.Id == 0 {
		return
	}

	gl.DeleteBuffers(1, &ub.Id)
	ub.Id = 0
}

func NewUniformBuffer(layout *std140.Layout, usage BufUsage) UniformBuffer {

	ub := UniformBuffer{
		Size: uint32(layout.Size),
		Data: std140.NewBuffer(layout),
	}

	gl.GenBuffers(1, &ub.Id)
	if ub.Id == 0 {
		logging.ErrLog.Fatalf("failed to create OpenGL uniform buffer. GlError=%d\n", gl.GetError())
	}

	ub.Bind()
	gl.BufferData(gl.UNIFORM_BUFFER, int(ub.Size), nil, usage.ToGL())
	ub.UnBind()

	return ub
}

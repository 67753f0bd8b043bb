package buffers

import (
	"github.com/bloeys/shadowmapping/logging"
	"github.com/go-gl/gl/v4.1-core/gl"
)

type FramebufferAttachmentDataFormat int32

const (
	FramebufferAttachmentDataFormat_Unknown FramebufferAttachmentDataFormat = iota
	FramebufferAttachmentDataFormat_DepthF32
	FramebufferAttachmentDataFormat_Depth24
)

func (f FramebufferAttachmentDataFormat) IsDepthFormat() bool {
	return f == FramebufferAttachmentDataFormat_DepthF32 ||
		f == FramebufferAttachmentDataFormat_Depth24
}

func (f FramebufferAttachmentDataFormat) GlInternalFormat() int32 {

	switch f {
	case FramebufferAttachmentDataFormat_DepthF32:
		return gl.DEPTH_COMPONENT32F
	case FramebufferAttachmentDataFormat_Depth24:
		return gl.DEPTH_COMPONENT24
	default:
		logging.ErrLog.Fatalf("unknown framebuffer attachment data format. Format=%d\n", f)
		return 0
	}
}

func (f FramebufferAttachmentDataFormat) GlFormat() uint32 {

	if !f.IsDepthFormat() {
		logging.ErrLog.Fatalf("unknown framebuffer attachment data format. Format=%d\n", f)
	}

	return gl.DEPTH_COMPONENT
}

type FramebufferAttachment struct {
	Id     uint32
	Format FramebufferAttachmentDataFormat
}

// Framebuffer is an offscreen render target. Only depth texture attachments are supported,
// which is what shadow maps need.
type Framebuffer struct {
	Id          uint32
	Attachments []FramebufferAttachment
	Width       uint32
	Height      uint32
}

// Size makes framebuffers usable as render targets
func (fbo *Framebuffer) Size() (width, height uint32) {
	return fbo.Width, fbo.Height
}

func (fbo *Framebuffer) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, fbo.Id)
}

func (fbo *Framebuffer) BindWithViewport() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, fbo.Id)
	gl.Viewport(0, 0, int32(fbo.Width), int32(fbo.Height))
}

func (fbo *Framebuffer) UnBind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// IsComplete returns true if OpenGL reports that the fbo is complete/usable.
// Note that this function binds and then unbinds the fbo
func (fbo *Framebuffer) IsComplete() bool {
	fbo.Bind()
	isComplete := gl.CheckFramebufferStatus(gl.FRAMEBUFFER) == gl.FRAMEBUFFER_COMPLETE
	fbo.UnBind()
	return isComplete
}

func (fbo *Framebuffer) HasDepthAttachment() bool {

	for i := 0; i < len(fbo.Attachments); i++ {

		a := &fbo.Attachments[i]
		if a.Format.IsDepthFormat() {
			return true
		}
	}

	return false
}

// NewDepthAttachment adds a depth-only texture attachment meant to be sampled as a shadow map.
// Sampling outside the texture returns the max depth, so things outside the light frustum are lit.
func (fbo *Framebuffer) NewDepthAttachment(attachFormat FramebufferAttachmentDataFormat) {

	if fbo.HasDepthAttachment() {
		logging.ErrLog.Fatalf("failed creating depth attachment for framebuffer because a depth attachment already exists\n")
	}

	if !attachFormat.IsDepthFormat() {
		logging.ErrLog.Fatalf("failed creating depth attachment for framebuffer due to attachment data format not being a depth-only type. Data format=%d\n", attachFormat)
	}

	a := FramebufferAttachment{
		Format: attachFormat,
	}

	fbo.Bind()

	gl.GenTextures(1, &a.Id)
	if a.Id == 0 {
		logging.ErrLog.Fatalf("failed to generate texture for framebuffer. GlError=%d\n", gl.GetError())
	}

	gl.BindTexture(gl.TEXTURE_2D, a.Id)
	gl.TexImage2D(gl.TEXTURE_2D, 0, attachFormat.GlInternalFormat(), int32(fbo.Width), int32(fbo.Height), 0, attachFormat.GlFormat(), gl.FLOAT, nil)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_BORDER)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_BORDER)

	borderColor := [4]float32{1, 1, 1, 1}
	gl.TexParameterfv(gl.TEXTURE_2D, gl.TEXTURE_BORDER_COLOR, &borderColor[0])
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.TEXTURE_2D, a.Id, 0)

	fbo.UnBind()
	fbo.Attachments = append(fbo.Attachments, a)
}

// SetNoColorBuffer tells OpenGL this fbo has no color output, which depth-only fbos need to be complete
func (fbo *Framebuffer) SetNoColorBuffer() {
	fbo.Bind()
	gl.DrawBuffer(gl.NONE)
	gl.ReadBuffer(gl.NONE)
	fbo.UnBind()
}

// DepthTexId returns the id of the depth texture attachment, or 0 if there is none
func (fbo *Framebuffer) DepthTexId() uint32 {

	for i := 0; i < len(fbo.Attachments); i++ {

		a := &fbo.Attachments[i]
		if a.Format.IsDepthFormat() {
			return a.Id
		}
	}

	return 0
}

// Clear clears all the buffers the fbo has. The fbo must be bound.
func (fbo *Framebuffer) Clear() {

	if fbo.HasDepthAttachment() {
		gl.Clear(gl.DEPTH_BUFFER_BIT)
	}
}

func (fbo *Framebuffer) Delete() {

	if fbo.Id == 0 {
		return
	}

	for i := 0; i < len(fbo.Attachments); i++ {

		gl.DeleteTextures(1, &fbo.Attachments[i].Id)
	}

	fbo.Attachments = nil
	gl.DeleteFramebuffers(1, &fbo.Id)
	fbo.Id = 0
}

func NewFramebuffer(width, height uint32) Framebuffer {

	// All attachments share the fbo size so BindWithViewport is always right
	fbo := Framebuffer{
		Width:  width,
		Height: height,
	}

	gl.GenFramebuffers(1, &fbo.Id)
	if fbo.Id == 0 {
		logging.ErrLog.Fatalf("failed to generate framebuffer. GlError=%d\n", gl.GetError())
	}

	return fbo
}

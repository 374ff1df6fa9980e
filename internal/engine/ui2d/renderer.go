// Package ui2d draws the editor's flat 2D scene as batched solid quads
// with OpenGL. Text is built from the same quads using a tiny bitmap font.
package ui2d

import (
	"fmt"
	"image/color"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// floats per vertex: pos(2) + color(4)
const vertexFloats = 6

// Renderer batches solid color quads and flushes them in one draw call.
type Renderer struct {
	// Logical size used for the projection.
	width  int
	height int

	// Drawable size in pixels, larger than the logical size on HiDPI.
	viewportWidth  int
	viewportHeight int

	shader   uint32
	projLoc  int32
	vao      uint32
	vbo      uint32
	vertices []float32
}

// New initializes OpenGL and creates a renderer. A GL context must be
// current on the calling thread.
func New(width, height int) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl init: %w", err)
	}

	r := &Renderer{
		width:          width,
		height:         height,
		viewportWidth:  width,
		viewportHeight: height,
		vertices:       make([]float32, 0, 16*1024),
	}

	var err error
	r.shader, err = linkShaderProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return nil, fmt.Errorf("create solid shader: %w", err)
	}
	r.projLoc = gl.GetUniformLocation(r.shader, gl.Str("uProjection\x00"))

	r.createBuffers()
	return r, nil
}

// Resize updates the logical and drawable sizes.
func (r *Renderer) Resize(width, height, drawableWidth, drawableHeight int) {
	r.width, r.height = width, height
	r.viewportWidth, r.viewportHeight = drawableWidth, drawableHeight
}

// Begin clears the screen and starts a new batch.
func (r *Renderer) Begin(clear color.RGBA) {
	r.vertices = r.vertices[:0]

	c := FromRGBA(clear)
	gl.Viewport(0, 0, int32(r.viewportWidth), int32(r.viewportHeight))
	gl.ClearColor(c.R, c.G, c.B, c.A)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// End flushes the batch.
func (r *Renderer) End() {
	if len(r.vertices) == 0 {
		return
	}

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)

	proj := orthoMatrix(0, float32(r.width), float32(r.height), 0, -1, 1)

	gl.UseProgram(r.shader)
	gl.UniformMatrix4fv(r.projLoc, 1, false, &proj[0])

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(r.vertices)*4, unsafe.Pointer(&r.vertices[0]), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(r.vertices)/vertexFloats))

	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

// Close releases GL resources.
func (r *Renderer) Close() {
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.shader != 0 {
		gl.DeleteProgram(r.shader)
	}
}

// FillRect queues a filled rectangle.
func (r *Renderer) FillRect(x, y, w, h float32, c color.RGBA) {
	r.addQuad(x, y, w, h, FromRGBA(c))
}

// StrokeRect queues a rectangle outline.
func (r *Renderer) StrokeRect(x, y, w, h, thickness float32, c color.RGBA) {
	col := FromRGBA(c)
	r.addQuad(x, y, w, thickness, col)
	r.addQuad(x, y+h-thickness, w, thickness, col)
	r.addQuad(x, y+thickness, thickness, h-2*thickness, col)
	r.addQuad(x+w-thickness, y+thickness, thickness, h-2*thickness, col)
}

// Text queues s using the bitmap font; scale is the size of one font pixel.
func (r *Renderer) Text(x, y float32, s string, scale float32, c color.RGBA) {
	col := FromRGBA(c)
	for _, ch := range s {
		g, ok := glyphs[ch]
		if ok {
			for row := 0; row < GlyphHeight; row++ {
				for bit := 0; bit < GlyphWidth; bit++ {
					if g[row]&(1<<(GlyphWidth-1-bit)) != 0 {
						r.addQuad(x+float32(bit)*scale, y+float32(row)*scale, scale, scale, col)
					}
				}
			}
		}
		x += GlyphAdvance * scale
	}
}

// MeasureText returns the width of s at the given scale.
func (r *Renderer) MeasureText(s string, scale float32) float32 {
	return textWidth(s, scale)
}

func (r *Renderer) addQuad(x, y, w, h float32, c Color) {
	r.vertices = append(r.vertices,
		x, y, c.R, c.G, c.B, c.A,
		x+w, y, c.R, c.G, c.B, c.A,
		x+w, y+h, c.R, c.G, c.B, c.A,

		x, y, c.R, c.G, c.B, c.A,
		x+w, y+h, c.R, c.G, c.B, c.A,
		x, y+h, c.R, c.G, c.B, c.A,
	)
}

func (r *Renderer) createBuffers() {
	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)

	stride := int32(vertexFloats * 4)

	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)

	gl.VertexAttribPointerWithOffset(1, 4, gl.FLOAT, false, stride, 2*4)
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// orthoMatrix creates an orthographic projection matrix.
func orthoMatrix(left, right, bottom, top, near, far float32) [16]float32 {
	return [16]float32{
		2 / (right - left), 0, 0, 0,
		0, 2 / (top - bottom), 0, 0,
		0, 0, -2 / (far - near), 0,
		-(right + left) / (right - left), -(top + bottom) / (top - bottom), -(far + near) / (far - near), 1,
	}
}

const vertexShaderSource = `
	#version 410 core

	layout (location = 0) in vec2 aPos;
	layout (location = 1) in vec4 aColor;

	uniform mat4 uProjection;

	out vec4 vColor;

	void main() {
		gl_Position = uProjection * vec4(aPos, 0.0, 1.0);
		vColor = aColor;
	}
` + "\x00"

const fragmentShaderSource = `
	#version 410 core

	in vec4 vColor;
	out vec4 FragColor;

	void main() {
		FragColor = vColor;
	}
` + "\x00"

func linkShaderProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertexShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex shader: %w", err)
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment shader: %w", err)
	}
	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link failed: %s", log)
	}

	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile failed: %s", log)
	}

	return shader, nil
}

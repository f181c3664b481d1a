// Package renderer draws a tessellated surface with OpenGL.
package renderer

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/surfaceview/internal/engine/lighting"
	"github.com/Faultbox/surfaceview/internal/engine/shader"
	"github.com/Faultbox/surfaceview/internal/engine/shading"
	"github.com/Faultbox/surfaceview/internal/engine/shading/shaders"
	"github.com/Faultbox/surfaceview/internal/engine/texture"
	"github.com/Faultbox/surfaceview/internal/logger"
	"github.com/Faultbox/surfaceview/pkg/surface"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	Background [4]float32
	Filter     texture.Filter
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config

	program *shader.Program

	vao, vbo, ebo uint32
	indexCount    int32
	tex           uint32
}

// New initializes GL state, compiles the surface program and uploads the
// mesh, the checker texture and the lights.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config, mesh *surface.Mesh, checker *image.Gray, lights lighting.Set) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	bg := cfg.Background
	gl.ClearColor(bg[0], bg[1], bg[2], bg[3])

	var err error
	r.program, err = shader.New(shaders.SurfaceVertexShader, shaders.SurfaceFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	if err := r.program.Require(uniformNames()...); err != nil {
		r.program.Delete()
		return nil, fmt.Errorf("surface program: %w", err)
	}
	logger.Debug("shader program created", zap.Uint32("program", r.program.ID()))

	r.uploadMesh(mesh)
	r.tex = uploadTexture(checker, cfg.Filter)
	r.bindLights(lights)

	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))
	return r, nil
}

func uniformNames() []string {
	names := []string{"model", "view", "projection", "normal_matrix", "tex"}
	for i := range lighting.Count {
		names = append(names, lighting.PositionUniform(i), lighting.ColorUniform(i))
	}
	return names
}

// uploadMesh copies the interleaved vertices and the index buffer into a VAO.
func (r *Renderer) uploadMesh(mesh *surface.Mesh) {
	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	vertexSize := int(unsafe.Sizeof(surface.Vertex{}))
	if len(mesh.Vertices) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Vertices)*vertexSize, unsafe.Pointer(&mesh.Vertices[0]), gl.STATIC_DRAW)
	}

	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(vertexSize), 0)
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, int32(vertexSize), 3*4)
	gl.EnableVertexAttribArray(1)
	// TexCoord
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, int32(vertexSize), 6*4)
	gl.EnableVertexAttribArray(2)

	gl.GenBuffers(1, &r.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	if len(mesh.Indices) > 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, unsafe.Pointer(&mesh.Indices[0]), gl.STATIC_DRAW)
	}

	r.indexCount = int32(len(mesh.Indices))
	gl.BindVertexArray(0)

	logger.Debug("surface mesh uploaded",
		zap.Uint32("vao", r.vao),
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("triangles", mesh.TriangleCount()),
	)
}

// uploadTexture stores a single-channel image in the red channel of an R8
// texture with repeat wrapping.
func uploadTexture(img *image.Gray, filter texture.Filter) uint32 {
	glFilter := int32(gl.LINEAR)
	if filter == texture.Nearest {
		glFilter = gl.NEAREST
	}

	var texID uint32
	gl.GenTextures(1, &texID)
	gl.BindTexture(gl.TEXTURE_2D, texID)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride))
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.R8, int32(img.Bounds().Dx()), int32(img.Bounds().Dy()), 0, gl.RED, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, glFilter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, glFilter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)

	logger.Debug("checker texture uploaded",
		zap.Uint32("texture", texID),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()),
	)
	return texID
}

// bindLights uploads the fixed light uniforms and the sampler unit once.
func (r *Renderer) bindLights(lights lighting.Set) {
	r.program.Use()
	for i, l := range lights {
		r.program.SetVec3(lighting.PositionUniform(i), l.Position)
		r.program.SetVec3(lighting.ColorUniform(i), l.Color)
	}
	r.program.SetInt("tex", 0)

	logger.Debug("lights bound",
		zap.Float32s("positions", lights.Positions()),
		zap.Float32s("colors", lights.Colors()),
	)
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	if r.tex != 0 {
		gl.DeleteTextures(1, &r.tex)
	}
	if r.ebo != 0 {
		gl.DeleteBuffers(1, &r.ebo)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Size returns the current viewport size.
func (r *Renderer) Size() (int, int) {
	return r.config.Width, r.config.Height
}

// Begin clears the color and depth buffers.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Draw issues the indexed triangle draw with the given matrices.
func (r *Renderer) Draw(t shading.Transforms) {
	r.program.Use()
	r.program.SetMat4("model", t.Model)
	r.program.SetMat4("view", t.View)
	r.program.SetMat4("projection", t.Projection)
	r.program.SetMat4("normal_matrix", t.Normal)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.tex)

	gl.BindVertexArray(r.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, r.indexCount, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
}

// ReadPixels reads the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}

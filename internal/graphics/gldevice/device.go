// Package gldevice draws terrain meshes with OpenGL 4.1 core. Every call
// must happen on the goroutine that owns the GL context.
package gldevice

import (
	"embed"
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"voxview/internal/graphics"
	"voxview/internal/meshing"
	"voxview/internal/resources"
)

//go:embed shaders/*.vert shaders/*.frag
var shaderFS embed.FS

// ErrEmptyMesh is returned when asked to upload zero vertices.
var ErrEmptyMesh = errors.New("empty mesh")

// Sky colour behind the terrain.
var clearColor = mgl32.Vec3{0.2, 0.75, 0.8}

// Device implements graphics.Device.
type Device struct {
	shader  *Shader
	texture uint32
	log     *zap.Logger

	live int // meshes uploaded and not yet released
}

var _ graphics.Device = (*Device)(nil)

// New compiles the terrain shader and uploads the atlas.
func New(atlas *resources.Atlas, log *zap.Logger) (*Device, error) {
	shader, err := loadShader(shaderFS, "shaders/terrain.vert", "shaders/terrain.frag")
	if err != nil {
		return nil, fmt.Errorf("terrain shader: %w", err)
	}
	tex := uploadTexture(atlas)

	gl.Enable(gl.DEPTH_TEST)
	gl.ClearColor(clearColor.X(), clearColor.Y(), clearColor.Z(), 1)

	shader.Use()
	shader.SetInt("atlas", 0)

	log.Info("gl device ready",
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.Int("atlas_width", atlas.Width()),
		zap.Int("atlas_height", atlas.Height()),
	)
	return &Device{shader: shader, texture: tex, log: log}, nil
}

// BeginFrame clears the framebuffer.
func (d *Device) BeginFrame(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (d *Device) BindTexture() {
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, d.texture)
}

func (d *Device) SetView(view, proj mgl32.Mat4) {
	d.shader.Use()
	d.shader.SetMatrix4("view", view)
	d.shader.SetMatrix4("projection", proj)
}

func (d *Device) DrawMesh(m graphics.Mesh, model mgl32.Mat4) {
	gm, ok := m.(*mesh)
	if !ok || gm.vao == 0 {
		return
	}
	d.shader.SetMatrix4("model", model)
	gl.BindVertexArray(gm.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, gm.count)
}

func (d *Device) UploadMesh(vertices []meshing.Vertex) (graphics.Mesh, error) {
	if len(vertices) == 0 {
		return nil, ErrEmptyMesh
	}
	flat := meshing.Flatten(vertices)

	m := &mesh{count: int32(len(vertices)), dev: d}
	gl.GenVertexArrays(1, &m.vao)
	gl.GenBuffers(1, &m.vbo)
	gl.BindVertexArray(m.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(flat)*4, gl.Ptr(flat), gl.STATIC_DRAW)

	stride := int32(meshing.VertexStride * 4)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 1, gl.FLOAT, false, stride, 5*4)
	gl.EnableVertexAttribArray(2)
	gl.BindVertexArray(0)

	if e := gl.GetError(); e != gl.NO_ERROR {
		m.Release()
		return nil, fmt.Errorf("upload %d vertices: gl error 0x%x", len(vertices), e)
	}
	d.live++
	return m, nil
}

// LiveMeshes is the number of meshes not yet released.
func (d *Device) LiveMeshes() int { return d.live }

// Dispose frees the shader and the atlas texture.
func (d *Device) Dispose() {
	gl.DeleteTextures(1, &d.texture)
	d.shader.Delete()
}

type mesh struct {
	vao, vbo uint32
	count    int32
	dev      *Device
}

func (m *mesh) VertexCount() int { return int(m.count) }

func (m *mesh) Release() {
	if m.vao == 0 {
		return
	}
	gl.DeleteBuffers(1, &m.vbo)
	gl.DeleteVertexArrays(1, &m.vao)
	m.vao, m.vbo = 0, 0
	m.dev.live--
}

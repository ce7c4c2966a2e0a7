package graphics

import (
	"github.com/go-gl/mathgl/mgl32"

	"voxview/internal/meshing"
)

// Mesh is an uploaded vertex buffer owned by the caller until Release.
type Mesh interface {
	VertexCount() int
	Release()
}

// Device is the render backend the terrain draws through. All methods are
// called from the goroutine that owns the graphics context.
type Device interface {
	// UploadMesh copies vertices to the device.
	UploadMesh(vertices []meshing.Vertex) (Mesh, error)
	// BindTexture binds the terrain atlas for the following draws.
	BindTexture()
	// SetView sets the view and projection uniforms for the frame.
	SetView(view, proj mgl32.Mat4)
	// DrawMesh submits one draw call with the given model matrix.
	DrawMesh(m Mesh, model mgl32.Mat4)
}

// CameraView is what the terrain needs from a camera.
type CameraView interface {
	Translation() mgl32.Vec3
	ViewMatrix() mgl32.Mat4
	ProjectionMatrix() mgl32.Mat4
}

package terrain

import (
	"voxview/internal/graphics"
	"voxview/internal/meshing"
	"voxview/internal/world"
)

// Sector is a resident, fully generated piece of terrain. It is owned by
// the main goroutine.
type Sector struct {
	coord  world.SectorCoord
	blocks *world.BlockList

	// vertices wait here until the device upload; cleared afterwards.
	vertices []meshing.Vertex
	mesh     graphics.Mesh
	meshed   bool
}

func newSector(g Generated) *Sector {
	return &Sector{coord: g.Coord, blocks: g.Blocks, vertices: g.Vertices}
}

func (s *Sector) Coord() world.SectorCoord { return s.coord }

// Blocks returns the sector's read-only block list.
func (s *Sector) Blocks() *world.BlockList { return s.blocks }

// Meshed reports whether the mesh step has run. An all-air sector is meshed
// but has no mesh.
func (s *Sector) Meshed() bool { return s.meshed }

// Mesh returns the uploaded mesh, or nil.
func (s *Sector) Mesh() graphics.Mesh { return s.mesh }

// Release frees the device mesh.
func (s *Sector) Release() {
	if s.mesh != nil {
		s.mesh.Release()
		s.mesh = nil
	}
	s.vertices = nil
}

package config

import "fmt"

// WorldGen holds the terrain generator parameters. Frequencies are in
// cycles per block; amplitudes are in blocks.
type WorldGen struct {
	Seed       int64 `yaml:"seed"`
	BandSector int   `yaml:"band_sector"` // the only sector layer that samples noise

	CompressionFrequency float64 `yaml:"compression_frequency"`
	CompressionFloor     float64 `yaml:"compression_floor"`
	RegionalFrequency    float64 `yaml:"regional_frequency"`
	RegionalAmplitude    float64 `yaml:"regional_amplitude"`
	BaseFrequency        float64 `yaml:"base_frequency"`
	BaseAmplitude        float64 `yaml:"base_amplitude"`

	LoamDepth      int `yaml:"loam_depth"`
	LimestoneDepth int `yaml:"limestone_depth"`

	TreeCoarseFrequency float64 `yaml:"tree_coarse_frequency"`
	TreeCoarseThreshold float64 `yaml:"tree_coarse_threshold"`
	TreeFineFrequency   float64 `yaml:"tree_fine_frequency"`
	TreeFineThreshold   float64 `yaml:"tree_fine_threshold"`
	TreeEdgeMargin      int     `yaml:"tree_edge_margin"`
	TrunkHeight         int     `yaml:"trunk_height"`
	CanopyRadius        int     `yaml:"canopy_radius"`
}

// DefaultWorldGen returns the stock terrain parameters.
func DefaultWorldGen() WorldGen {
	return WorldGen{
		Seed:                 1337,
		BandSector:           0,
		CompressionFrequency: 0.002,
		CompressionFloor:     0.3,
		RegionalFrequency:    0.0015,
		RegionalAmplitude:    6,
		BaseFrequency:        0.007,
		BaseAmplitude:        14,
		LoamDepth:            1,
		LimestoneDepth:       4,
		TreeCoarseFrequency:  0.05,
		TreeCoarseThreshold:  0.15,
		TreeFineFrequency:    0.9,
		TreeFineThreshold:    0.45,
		TreeEdgeMargin:       3,
		TrunkHeight:          4,
		CanopyRadius:         2,
	}
}

func (w WorldGen) validate(sectorSize int) error {
	switch {
	case w.CompressionFloor < 0 || w.CompressionFloor > 1:
		return fmt.Errorf("%w: world_gen.compression_floor must be in [0, 1], got %v", ErrInvalid, w.CompressionFloor)
	case w.LoamDepth < 0 || w.LimestoneDepth < w.LoamDepth:
		return fmt.Errorf("%w: world_gen.limestone_depth (%d) must be >= loam_depth (%d) >= 0", ErrInvalid, w.LimestoneDepth, w.LoamDepth)
	case w.TrunkHeight < 0 || w.CanopyRadius < 0:
		return fmt.Errorf("%w: world_gen tree sizes must not be negative", ErrInvalid)
	case w.TreeEdgeMargin <= w.CanopyRadius:
		// canopies must stay off the boundary cells, which neighbours only see as terrain
		return fmt.Errorf("%w: world_gen.tree_edge_margin (%d) must exceed canopy_radius (%d)", ErrInvalid, w.TreeEdgeMargin, w.CanopyRadius)
	case 2*w.TreeEdgeMargin >= sectorSize:
		return fmt.Errorf("%w: world_gen.tree_edge_margin (%d) leaves no room in a %d sector", ErrInvalid, w.TreeEdgeMargin, sectorSize)
	}
	return nil
}

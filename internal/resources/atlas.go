package resources

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"

	"voxview/internal/meshing"
	"voxview/internal/world"
)

// ErrAtlasTooSmall is returned when the atlas cannot hold one tile per block.
var ErrAtlasTooSmall = errors.New("terrain atlas too small")

// Atlas is the decoded terrain texture: one row of square tiles, one per
// non-air block, in block order.
type Atlas struct {
	Image    *image.RGBA
	TileSize int
}

// LoadAtlas decodes a PNG or BMP atlas. An atlas whose height differs from
// tileSize is rescaled (nearest neighbour) so its row is exactly one tile high.
func LoadAtlas(path string, tileSize int) (*Atlas, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open atlas: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode atlas %s: %w", path, err)
	}
	return NewAtlas(img, tileSize)
}

// NewAtlas converts img to RGBA and checks it covers every block tile.
func NewAtlas(img image.Image, tileSize int) (*Atlas, error) {
	if tileSize <= 0 {
		return nil, fmt.Errorf("tile size %d: %w", tileSize, ErrAtlasTooSmall)
	}
	b := img.Bounds()
	if b.Dy() == 0 {
		return nil, fmt.Errorf("empty image: %w", ErrAtlasTooSmall)
	}

	w, h := b.Dx(), b.Dy()
	if h != tileSize {
		w = w * tileSize / h
		h = tileSize
	}
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	} else {
		draw.NearestNeighbor.Scale(rgba, rgba.Bounds(), img, b, draw.Src, nil)
	}

	if need := BlockTiles() * tileSize; w < need {
		return nil, fmt.Errorf("%w: %dpx wide, need %dpx for %d tiles", ErrAtlasTooSmall, w, need, BlockTiles())
	}
	return &Atlas{Image: rgba, TileSize: tileSize}, nil
}

// BlockTiles is the number of tiles the atlas must provide.
func BlockTiles() int {
	return int(world.Leaves)
}

func (a *Atlas) Width() int  { return a.Image.Bounds().Dx() }
func (a *Atlas) Height() int { return a.Image.Bounds().Dy() }

// Info is the mesh generator's view of the atlas.
func (a *Atlas) Info() meshing.AtlasInfo {
	return meshing.AtlasInfo{Width: a.Width(), Height: a.Height(), TileSize: a.TileSize}
}

// Flat tile colours in block order, used when no atlas file is shipped.
var placeholderColors = []color.RGBA{
	{R: 128, G: 128, B: 128, A: 255}, // limestone
	{R: 121, G: 85, B: 58, A: 255},   // loam
	{R: 96, G: 160, B: 64, A: 255},   // grass
	{R: 102, G: 81, B: 51, A: 255},   // tree
	{R: 60, G: 120, B: 40, A: 255},   // leaves
}

// PlaceholderAtlas builds an atlas of flat-coloured tiles with a darker
// one-pixel border so block edges stay visible.
func PlaceholderAtlas(tileSize int) *Atlas {
	n := BlockTiles()
	rgba := image.NewRGBA(image.Rect(0, 0, n*tileSize, tileSize))
	for i := 0; i < n; i++ {
		c := placeholderColors[i%len(placeholderColors)]
		edge := color.RGBA{R: c.R / 2, G: c.G / 2, B: c.B / 2, A: 255}
		for x := 0; x < tileSize; x++ {
			for y := 0; y < tileSize; y++ {
				px := c
				if x == 0 || y == 0 || x == tileSize-1 || y == tileSize-1 {
					px = edge
				}
				rgba.SetRGBA(i*tileSize+x, y, px)
			}
		}
	}
	return &Atlas{Image: rgba, TileSize: tileSize}
}

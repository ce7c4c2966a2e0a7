package resources

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

func stripe(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	return img
}

func TestLoadAtlasPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "terrain.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, stripe(80, 16)); err != nil {
		t.Fatal(err)
	}
	f.Close()

	a, err := LoadAtlas(path, 16)
	if err != nil {
		t.Fatalf("LoadAtlas: %v", err)
	}
	info := a.Info()
	if info.Width != 80 || info.Height != 16 || info.TileSize != 16 {
		t.Errorf("unexpected info %+v", info)
	}
	if got := a.Image.RGBAAt(3, 5); got.R != 3 || got.G != 5 {
		t.Errorf("pixel not preserved: %v", got)
	}
}

func TestLoadAtlasBMPRescaled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "terrain.bmp")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := bmp.Encode(f, stripe(160, 32)); err != nil {
		t.Fatal(err)
	}
	f.Close()

	a, err := LoadAtlas(path, 16)
	if err != nil {
		t.Fatalf("LoadAtlas: %v", err)
	}
	if a.Width() != 80 || a.Height() != 16 {
		t.Errorf("Expected 80x16 after rescale, got %dx%d", a.Width(), a.Height())
	}
}

func TestAtlasTooNarrow(t *testing.T) {
	_, err := NewAtlas(stripe(32, 16), 16)
	if !errors.Is(err, ErrAtlasTooSmall) {
		t.Fatalf("Expected ErrAtlasTooSmall, got %v", err)
	}
}

func TestLoadAtlasMissing(t *testing.T) {
	if _, err := LoadAtlas(filepath.Join(t.TempDir(), "none.png"), 16); err == nil {
		t.Fatal("expected error")
	}
}

func TestPlaceholderAtlasCoversBlocks(t *testing.T) {
	a := PlaceholderAtlas(8)
	if a.Width() != BlockTiles()*8 || a.Height() != 8 {
		t.Fatalf("unexpected size %dx%d", a.Width(), a.Height())
	}
	if _, err := NewAtlas(a.Image, 8); err != nil {
		t.Errorf("placeholder rejected: %v", err)
	}
	inner, border := a.Image.RGBAAt(8+3, 3), a.Image.RGBAAt(8, 0)
	if inner == border {
		t.Errorf("expected a darker border, got %v for both", inner)
	}
}

package world

import "testing"

var testGeom = Geometry{Size: 8, Padding: 1}

func TestPaddedIndexRoundTrip(t *testing.T) {
	l := NewAirList(testGeom)
	p := testGeom.Padded()
	seen := make(map[int]bool, l.Len())
	for z := 0; z < p; z++ {
		for y := 0; y < p; y++ {
			for x := 0; x < p; x++ {
				i := l.PaddedIndex(x, y, z)
				if seen[i] {
					t.Fatalf("index %d produced twice", i)
				}
				seen[i] = true
				gx, gy, gz := l.PaddedCoords(i)
				if gx != x || gy != y || gz != z {
					t.Fatalf("round trip (%d,%d,%d) -> %d -> (%d,%d,%d)", x, y, z, i, gx, gy, gz)
				}
			}
		}
	}
	if len(seen) != testGeom.Len() {
		t.Errorf("Expected %d indices, got %d", testGeom.Len(), len(seen))
	}
}

func TestPaddedIndexPanicsOutOfRange(t *testing.T) {
	l := NewAirList(testGeom)
	p := testGeom.Padded()
	for _, c := range [][3]int{{p, 0, 0}, {0, p, 0}, {0, 0, p}, {-1, 0, 0}} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Expected panic for %v", c)
				}
			}()
			l.PaddedIndex(c[0], c[1], c[2])
		}()
	}
}

func TestSectorSpaceCoordsPanicsOutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for x == Size")
		}
	}()
	NewSectorSpaceCoords(testGeom, testGeom.Size, 0, 0)
}

func TestInteriorOffsetByPadding(t *testing.T) {
	l := NewAirList(testGeom)
	l.Set(testGeom.Coords(0, 0, 0), Grass)
	if b := l.GetPadded(1, 1, 1); b != Grass {
		t.Errorf("Expected Grass at padded (1,1,1), got %v", b)
	}
	if b := l.GetPadded(0, 0, 0); b != Air {
		t.Errorf("Expected padding untouched, got %v", b)
	}
}

func TestNeighbourQueriesAtBoundary(t *testing.T) {
	last := testGeom.Size - 1
	corner := testGeom.Coords(0, 0, 0)
	if _, ok := corner.Back(); ok {
		t.Error("Back at z=0 should be absent")
	}
	if _, ok := corner.Bottom(); ok {
		t.Error("Bottom at y=0 should be absent")
	}
	if _, ok := corner.Left(); ok {
		t.Error("Left at x=0 should be absent")
	}
	far := testGeom.Coords(last, last, last)
	for _, f := range []Face{Front, Top, Right} {
		if _, ok := far.Neighbor(f); ok {
			t.Errorf("%v at the far corner should be absent", f)
		}
	}
	n, ok := corner.Front()
	if !ok || n.Z() != 1 || n.X() != 0 || n.Y() != 0 {
		t.Errorf("Front of origin: got %v ok=%v", n, ok)
	}
}

func TestAcrossWrapsToOppositeEdge(t *testing.T) {
	last := testGeom.Size - 1
	c := testGeom.Coords(0, 3, last)
	if got := c.Across(Left); got.X() != last || got.Y() != 3 || got.Z() != last {
		t.Errorf("Across(Left) = %v", got)
	}
	if got := c.Across(Front); got.Z() != 0 {
		t.Errorf("Across(Front) = %v", got)
	}
}

func TestAllAirAndNeedsRendering(t *testing.T) {
	l := NewAirList(testGeom)
	if !l.IsAllAir() || l.NeedsRendering() {
		t.Fatal("fresh list should be all air")
	}
	l.SetPadded(0, 0, 0, Limestone) // padding does not count
	if !l.IsAllAir() {
		t.Error("padding should not affect IsAllAir")
	}
	l.Set(testGeom.Coords(4, 4, 4), Leaves)
	if l.IsAllAir() || !l.NeedsRendering() {
		t.Error("list with leaves should need rendering")
	}
}

func TestPaddingSourceReadsRing(t *testing.T) {
	l := NewAirList(testGeom)
	last := testGeom.Size - 1
	// cell just behind interior (2,3,0)
	l.SetPadded(3, 4, 0, Loam)
	back := PaddingSource(l, Back)
	if b := back.Block(testGeom.Coords(2, 3, last)); b != Loam {
		t.Errorf("Expected Loam through back ring, got %v", b)
	}
	if PaddingSource(NewAirList(Geometry{Size: 4}), Back) != nil {
		t.Error("Expected nil source without padding")
	}
}

func TestSectorAtRoundsThenFloors(t *testing.T) {
	cases := []struct {
		x    float32
		want int
	}{
		{0, 0}, {7.4, 0}, {7.5, 1}, {-0.4, 0}, {-0.6, -1}, {-8.6, -2},
	}
	for _, c := range cases {
		got := SectorAt([3]float32{c.x, 0, 0}, testGeom.Size)
		if got.X != c.want {
			t.Errorf("SectorAt(%v) = %d, want %d", c.x, got.X, c.want)
		}
	}
}

func TestSplitBlockNegative(t *testing.T) {
	sc, local := SplitBlock(testGeom, -1, 0, 9)
	if sc != (SectorCoord{-1, 0, 1}) {
		t.Errorf("Expected sector (-1,0,1), got %v", sc)
	}
	if local.X() != 7 || local.Z() != 1 {
		t.Errorf("Expected local (7,_,1), got %v", local)
	}
}

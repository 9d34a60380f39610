package domain

import "testing"

func TestTileAtOutOfBounds(t *testing.T) {
	m := NewTileMap(4, 3, TileSize)
	tests := []struct{ col, row int }{
		{-1, 0}, {0, -1}, {4, 0}, {0, 3}, {-5, -5}, {100, 100},
	}
	for _, tt := range tests {
		if got := m.TileAt(tt.col, tt.row); got != TileVoid {
			t.Errorf("TileAt(%d,%d) = %v, want TileVoid", tt.col, tt.row, got)
		}
	}
	if m.TileAt(0, 0) != TileFloor {
		t.Error("in-bounds tile of a fresh map must be floor")
	}
}

func TestWorldToGrid(t *testing.T) {
	m := NewTileMap(10, 10, 32)
	tests := []struct {
		p    Vec2
		want GridPos
	}{
		{Vec2{X: 0, Y: 0}, GridPos{Col: 0, Row: 0}},
		{Vec2{X: 31.9, Y: 31.9}, GridPos{Col: 0, Row: 0}},
		{Vec2{X: 32, Y: 32}, GridPos{Col: 1, Row: 1}},
		{Vec2{X: 100, Y: 200}, GridPos{Col: 3, Row: 6}},
		{Vec2{X: -1, Y: -1}, GridPos{Col: -1, Row: -1}},
	}
	for _, tt := range tests {
		if got := m.WorldToGrid(tt.p); got != tt.want {
			t.Errorf("WorldToGrid(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestGridToWorldRoundTrip(t *testing.T) {
	m := NewTileMap(20, 15, 32)
	for row := 0; row < m.Height; row++ {
		for col := 0; col < m.Width; col++ {
			g := GridPos{Col: col, Row: row}
			if back := m.WorldToGrid(m.GridToWorld(g)); back != g {
				t.Fatalf("round trip %v -> %v", g, back)
			}
		}
	}
}

func TestPixelDimensions(t *testing.T) {
	m := NewTileMap(24, 16, 32)
	if m.PixelWidth() != 768 {
		t.Errorf("PixelWidth = %v, want 768", m.PixelWidth())
	}
	if m.PixelHeight() != 512 {
		t.Errorf("PixelHeight = %v, want 512", m.PixelHeight())
	}
}

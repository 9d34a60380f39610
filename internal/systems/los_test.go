package systems

import (
	"testing"

	"drifter-server/internal/domain"
)

func TestHasLineOfSight(t *testing.T) {
	// Карта 5x5
	// . . . . .
	// . . # . .
	// . # # # .
	// . . # . .
	// . . . . .
	m := buildMap(
		".....",
		"..#..",
		".###.",
		"..#..",
		".....",
	)

	tests := []struct {
		name string
		a    domain.GridPos
		b    domain.GridPos
		want bool
	}{
		{"Same cell", domain.GridPos{Col: 2, Row: 0}, domain.GridPos{Col: 2, Row: 0}, true},
		{"Clear horizontal", domain.GridPos{Col: 0, Row: 0}, domain.GridPos{Col: 4, Row: 0}, true},
		{"Blocked horizontal", domain.GridPos{Col: 0, Row: 2}, domain.GridPos{Col: 4, Row: 2}, false},
		{"Clear diagonal", domain.GridPos{Col: 0, Row: 0}, domain.GridPos{Col: 1, Row: 1}, true},
		{"Blocked diagonal", domain.GridPos{Col: 0, Row: 0}, domain.GridPos{Col: 4, Row: 4}, false},
		{"Adjacent wall", domain.GridPos{Col: 2, Row: 1}, domain.GridPos{Col: 2, Row: 2}, true},
		{"Behind wall", domain.GridPos{Col: 2, Row: 1}, domain.GridPos{Col: 2, Row: 3}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasLineOfSight(m, tt.a, tt.b); got != tt.want {
				t.Errorf("HasLineOfSight(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestHasLineOfSightOpenGrid(t *testing.T) {
	// На карте без блокирующих тайлов видимость есть между любыми клетками,
	// в обе стороны.
	m := emptyMap(6, 6)

	for r1 := 0; r1 < 6; r1++ {
		for c1 := 0; c1 < 6; c1++ {
			for r2 := 0; r2 < 6; r2++ {
				for c2 := 0; c2 < 6; c2++ {
					a := domain.GridPos{Col: c1, Row: r1}
					b := domain.GridPos{Col: c2, Row: r2}
					if !HasLineOfSight(m, a, b) {
						t.Fatalf("HasLineOfSight(%v, %v) = false on open grid", a, b)
					}
				}
			}
		}
	}
}

func TestHasLineOfSightSingleBlocker(t *testing.T) {
	// Один блокирующий тайл ровно между двумя выровненными точками
	// рубит видимость в обе стороны.
	m := emptyMap(7, 7)
	m.Tiles[3][3] = domain.TileWall

	a := domain.GridPos{Col: 1, Row: 3}
	b := domain.GridPos{Col: 5, Row: 3}

	if HasLineOfSight(m, a, b) {
		t.Error("sight through a wall, want blocked")
	}
	if HasLineOfSight(m, b, a) {
		t.Error("reverse sight through a wall, want blocked")
	}
}

func TestLineOfSightTileProperties(t *testing.T) {
	// Блокирует только BlocksSight: низкие стены, вода и обломки прозрачны,
	// полное укрытие и запертая дверь — нет.
	tests := []struct {
		name string
		kind domain.TileKind
		want bool
	}{
		{"low wall transparent", domain.TileLowWall, true},
		{"water transparent", domain.TileWater, true},
		{"debris transparent", domain.TileDebris, true},
		{"full cover opaque", domain.TileFullCover, false},
		{"locked door opaque", domain.TileLockedDoor, false},
		{"wall opaque", domain.TileWall, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := emptyMap(5, 5)
			m.Tiles[2][2] = tt.kind
			a := domain.GridPos{Col: 0, Row: 2}
			b := domain.GridPos{Col: 4, Row: 2}
			if got := HasLineOfSight(m, a, b); got != tt.want {
				t.Errorf("HasLineOfSight across %v = %v, want %v", tt.kind, got, tt.want)
			}
		})
	}
}

func TestHasWorldLineOfSightOutOfBounds(t *testing.T) {
	// Точка за границей карты упирается в TileVoid — видимости нет.
	m := emptyMap(4, 4)
	inside := domain.Vec2{X: 48, Y: 48}
	outside := domain.Vec2{X: -200, Y: 48}

	if HasWorldLineOfSight(m, inside, outside) {
		t.Error("sight into the void, want blocked")
	}
}

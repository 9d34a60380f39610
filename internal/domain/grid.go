package domain

import "math"

// TileMap — прямоугольная сетка тайлов (row-major). Авторские данные:
// ядро читает карту, но никогда не меняет.
type TileMap struct {
	Tiles    [][]TileKind `json:"tiles"`
	Width    int          `json:"width"`
	Height   int          `json:"height"`
	TileSize float64      `json:"tileSize"`
}

// NewTileMap создает карту указанного размера, заполненную полом.
func NewTileMap(width, height int, tileSize float64) *TileMap {
	tiles := make([][]TileKind, height)
	for r := range tiles {
		tiles[r] = make([]TileKind, width)
	}
	return &TileMap{Tiles: tiles, Width: width, Height: height, TileSize: tileSize}
}

// TileAt возвращает тип тайла в клетке. За границей карты — TileVoid.
func (m *TileMap) TileAt(col, row int) TileKind {
	if col < 0 || col >= m.Width || row < 0 || row >= m.Height {
		return TileVoid
	}
	return m.Tiles[row][col]
}

// PropsAt возвращает свойства тайла в клетке (с безопасной границей).
func (m *TileMap) PropsAt(col, row int) TileProps {
	return m.TileAt(col, row).Props()
}

// WorldToGrid переводит мировую точку в клетку: col = floor(x / tileSize).
func (m *TileMap) WorldToGrid(p Vec2) GridPos {
	return GridPos{
		Col: int(math.Floor(p.X / m.TileSize)),
		Row: int(math.Floor(p.Y / m.TileSize)),
	}
}

// GridToWorld возвращает мировой центр клетки.
// Для центров клеток WorldToGrid(GridToWorld(g)) == g.
func (m *TileMap) GridToWorld(g GridPos) Vec2 {
	return Vec2{
		X: (float64(g.Col) + 0.5) * m.TileSize,
		Y: (float64(g.Row) + 0.5) * m.TileSize,
	}
}

// PixelWidth возвращает ширину карты в мировых единицах.
func (m *TileMap) PixelWidth() float64 {
	return float64(m.Width) * m.TileSize
}

// PixelHeight возвращает высоту карты в мировых единицах.
func (m *TileMap) PixelHeight() float64 {
	return float64(m.Height) * m.TileSize
}

package domain

import "math"

// Vec2 — непрерывная мировая позиция (пиксели).
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec2) Scale(k float64) Vec2 {
	return Vec2{X: v.X * k, Y: v.Y * k}
}

func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// DistanceTo возвращает точное расстояние до другой точки.
func (v Vec2) DistanceTo(o Vec2) float64 {
	return math.Hypot(v.X-o.X, v.Y-o.Y)
}

// Normalized возвращает единичный вектор того же направления.
// Нулевой вектор остается нулевым.
func (v Vec2) Normalized() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// GridPos — дискретная клеточная позиция (колонка/ряд).
type GridPos struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// Shift возвращает новую позицию со смещением (не меняя текущую).
func (g GridPos) Shift(dc, dr int) GridPos {
	return GridPos{Col: g.Col + dc, Row: g.Row + dr}
}

// DistanceTo возвращает расстояние между клетками в клетках.
func (g GridPos) DistanceTo(o GridPos) float64 {
	dc := float64(g.Col - o.Col)
	dr := float64(g.Row - o.Row)
	return math.Hypot(dc, dr)
}

// DirectionTo возвращает знаковые шаги (-1/0/1) по каждой оси к цели.
func (g GridPos) DirectionTo(o GridPos) (int, int) {
	return sign(o.Col - g.Col), sign(o.Row - g.Row)
}

func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}

// Facing — одно из четырех кардинальных направлений взгляда.
type Facing uint8

const (
	FacingDown Facing = iota
	FacingUp
	FacingLeft
	FacingRight
)

func (f Facing) String() string {
	switch f {
	case FacingUp:
		return "up"
	case FacingLeft:
		return "left"
	case FacingRight:
		return "right"
	default:
		return "down"
	}
}

// Vector возвращает единичный вектор направления взгляда.
func (f Facing) Vector() Vec2 {
	switch f {
	case FacingUp:
		return Vec2{Y: -1}
	case FacingLeft:
		return Vec2{X: -1}
	case FacingRight:
		return Vec2{X: 1}
	default:
		return Vec2{Y: 1}
	}
}

// FacingFromVector выбирает кардинальное направление по доминирующей оси.
// Нулевой вектор сохраняет текущее направление.
func FacingFromVector(v Vec2, current Facing) Facing {
	if v.X == 0 && v.Y == 0 {
		return current
	}
	if math.Abs(v.X) >= math.Abs(v.Y) {
		if v.X > 0 {
			return FacingRight
		}
		return FacingLeft
	}
	if v.Y > 0 {
		return FacingDown
	}
	return FacingUp
}

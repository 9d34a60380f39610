package systems

import (
	"math"

	"drifter-server/internal/domain"
)

// ResolveMovement вычисляет коллизионно-корректную позицию для желаемого
// перемещения круга радиуса radius из from в to. Не меняет состояние мира.
//
// Алгоритм: если прямой путь свободен — идем в to. Иначе пробуем два
// скольжения по осям (только X, только Y), каждое упирается в ближайшую
// границу препятствия. Оба заблокированы — остаемся на месте; оба
// свободны — берем то, что сохраняет большее смещение.
//
// Проверка пути ведется по заметаемой площади (min/max обеих точек плюс
// радиус), поэтому сквозь стену толщиной в одну клетку проскочить нельзя
// при любой скорости.
func ResolveMovement(m *domain.TileMap, from, to domain.Vec2, radius float64) domain.Vec2 {
	if !sweptBlocked(m, from, to, radius) {
		return to
	}

	candX := domain.Vec2{X: slideAxisX(m, from, to.X, radius), Y: from.Y}
	candY := domain.Vec2{X: from.X, Y: slideAxisY(m, from, to.Y, radius)}

	const eps = 1e-6
	dx := math.Abs(candX.X - from.X)
	dy := math.Abs(candY.Y - from.Y)

	switch {
	case dx > eps && dy > eps:
		if dx >= dy {
			return candX
		}
		return candY
	case dx > eps:
		return candX
	case dy > eps:
		return candY
	default:
		return from
	}
}

// ClampToBounds прижимает точку так, чтобы круг радиуса radius целиком
// оставался внутри прямоугольника карты.
func ClampToBounds(m *domain.TileMap, p domain.Vec2, radius float64) domain.Vec2 {
	return domain.Vec2{
		X: clamp(p.X, radius, m.PixelWidth()-radius),
		Y: clamp(p.Y, radius, m.PixelHeight()-radius),
	}
}

// sweptBlocked проверяет, задевает ли заметаемый круг хоть одну
// непроходимую клетку на пути from -> to.
func sweptBlocked(m *domain.TileMap, from, to domain.Vec2, radius float64) bool {
	minX := math.Min(from.X, to.X) - radius
	maxX := math.Max(from.X, to.X) + radius
	minY := math.Min(from.Y, to.Y) - radius
	maxY := math.Max(from.Y, to.Y) + radius

	c0 := int(math.Floor(minX / m.TileSize))
	c1 := int(math.Floor(maxX / m.TileSize))
	r0 := int(math.Floor(minY / m.TileSize))
	r1 := int(math.Floor(maxY / m.TileSize))

	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			if m.PropsAt(col, row).Walkable {
				continue
			}
			rMinX := float64(col) * m.TileSize
			rMinY := float64(row) * m.TileSize
			if segmentAABBDistance(from, to, rMinX, rMinY, rMinX+m.TileSize, rMinY+m.TileSize) < radius {
				return true
			}
		}
	}
	return false
}

// slideAxisX двигает круг только по X, упираясь в границы непроходимых
// клеток. Возвращает достигнутую координату X.
func slideAxisX(m *domain.TileMap, from domain.Vec2, targetX, radius float64) float64 {
	delta := targetX - from.X
	if delta == 0 {
		return from.X
	}
	newX := targetX

	minX := math.Min(from.X, targetX) - radius
	maxX := math.Max(from.X, targetX) + radius
	c0 := int(math.Floor(minX / m.TileSize))
	c1 := int(math.Floor(maxX / m.TileSize))
	r0 := int(math.Floor((from.Y - radius) / m.TileSize))
	r1 := int(math.Floor((from.Y + radius) / m.TileSize))

	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			if m.PropsAt(col, row).Walkable {
				continue
			}
			rMinY := float64(row) * m.TileSize
			rMaxY := rMinY + m.TileSize
			// Нет пересечения по вертикали — клетка не мешает.
			if from.Y+radius <= rMinY || from.Y-radius >= rMaxY {
				continue
			}
			rMinX := float64(col) * m.TileSize
			rMaxX := rMinX + m.TileSize
			if delta > 0 {
				boundary := rMinX - radius
				if from.X <= boundary && newX > boundary {
					newX = boundary
				}
			} else {
				boundary := rMaxX + radius
				if from.X >= boundary && newX < boundary {
					newX = boundary
				}
			}
		}
	}
	return newX
}

// slideAxisY — то же самое для вертикальной оси.
func slideAxisY(m *domain.TileMap, from domain.Vec2, targetY, radius float64) float64 {
	delta := targetY - from.Y
	if delta == 0 {
		return from.Y
	}
	newY := targetY

	minY := math.Min(from.Y, targetY) - radius
	maxY := math.Max(from.Y, targetY) + radius
	r0 := int(math.Floor(minY / m.TileSize))
	r1 := int(math.Floor(maxY / m.TileSize))
	c0 := int(math.Floor((from.X - radius) / m.TileSize))
	c1 := int(math.Floor((from.X + radius) / m.TileSize))

	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			if m.PropsAt(col, row).Walkable {
				continue
			}
			rMinX := float64(col) * m.TileSize
			rMaxX := rMinX + m.TileSize
			if from.X+radius <= rMinX || from.X-radius >= rMaxX {
				continue
			}
			rMinY := float64(row) * m.TileSize
			rMaxY := rMinY + m.TileSize
			if delta > 0 {
				boundary := rMinY - radius
				if from.Y <= boundary && newY > boundary {
					newY = boundary
				}
			} else {
				boundary := rMaxY + radius
				if from.Y >= boundary && newY < boundary {
					newY = boundary
				}
			}
		}
	}
	return newY
}

// segmentAABBDistance возвращает минимальное расстояние между отрезком
// a-b и прямоугольником. Ноль, если отрезок пересекает прямоугольник.
func segmentAABBDistance(a, b domain.Vec2, minX, minY, maxX, maxY float64) float64 {
	if segmentIntersectsAABB(a, b, minX, minY, maxX, maxY) {
		return 0
	}
	// Отрезок снаружи: минимум по четырем ребрам.
	corners := [4]domain.Vec2{
		{X: minX, Y: minY},
		{X: maxX, Y: minY},
		{X: maxX, Y: maxY},
		{X: minX, Y: maxY},
	}
	best := math.Inf(1)
	for i := 0; i < 4; i++ {
		d := segSegDistance(a, b, corners[i], corners[(i+1)%4])
		if d < best {
			best = d
		}
	}
	return best
}

// segmentIntersectsAABB — slab-тест отрезка против AABB.
func segmentIntersectsAABB(a, b domain.Vec2, minX, minY, maxX, maxY float64) bool {
	dx := b.X - a.X
	dy := b.Y - a.Y

	tMin, tMax := 0.0, 1.0

	if math.Abs(dx) < 1e-12 {
		if a.X < minX || a.X > maxX {
			return false
		}
	} else {
		invD := 1.0 / dx
		t1 := (minX - a.X) * invD
		t2 := (maxX - a.X) * invD
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return false
		}
	}

	if math.Abs(dy) < 1e-12 {
		if a.Y < minY || a.Y > maxY {
			return false
		}
	} else {
		invD := 1.0 / dy
		t1 := (minY - a.Y) * invD
		t2 := (maxY - a.Y) * invD
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return false
		}
	}

	return tMax >= 0 && tMin <= 1
}

// segSegDistance — минимальное расстояние между двумя отрезками.
func segSegDistance(p1, p2, p3, p4 domain.Vec2) float64 {
	if segmentsIntersect(p1, p2, p3, p4) {
		return 0
	}
	d := pointSegDistance(p1, p3, p4)
	if v := pointSegDistance(p2, p3, p4); v < d {
		d = v
	}
	if v := pointSegDistance(p3, p1, p2); v < d {
		d = v
	}
	if v := pointSegDistance(p4, p1, p2); v < d {
		d = v
	}
	return d
}

func pointSegDistance(p, a, b domain.Vec2) float64 {
	ab := b.Sub(a)
	lenSq := ab.X*ab.X + ab.Y*ab.Y
	if lenSq == 0 {
		return p.DistanceTo(a)
	}
	t := ((p.X-a.X)*ab.X + (p.Y-a.Y)*ab.Y) / lenSq
	t = clamp(t, 0, 1)
	return p.DistanceTo(a.Add(ab.Scale(t)))
}

func segmentsIntersect(p1, p2, p3, p4 domain.Vec2) bool {
	d1 := cross(p3, p4, p1)
	d2 := cross(p3, p4, p2)
	d3 := cross(p1, p2, p3)
	d4 := cross(p1, p2, p4)
	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	return false
}

func cross(a, b, c domain.Vec2) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package systems

import (
	"drifter-server/internal/domain"
	"drifter-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// HasLineOfSight проверяет прямую видимость между двумя клетками.
// Использует целочисленный алгоритм Брезенхэма. Стартовая и конечная
// клетки не блокируют сами себя; выход за границы карты блокирует.
func HasLineOfSight(m *domain.TileMap, a, b domain.GridPos) bool {
	if a == b {
		return true
	}

	x0, y0 := a.Col, a.Row
	x1, y1 := b.Col, b.Row

	dx := x1 - x0
	if dx < 0 {
		dx = -dx
	}
	dy := y1 - y0
	if dy < 0 {
		dy = -dy
	}

	sx, sy := a.DirectionTo(b)

	err := dx - dy

	for {
		isStart := x0 == a.Col && y0 == a.Row
		isEnd := x0 == b.Col && y0 == b.Row

		if !isStart && !isEnd {
			if m.PropsAt(x0, y0).BlocksSight {
				logger.WithComponent("physics_system").WithFields(logrus.Fields{
					"blocking_col": x0,
					"blocking_row": y0,
				}).Debug("Line of sight blocked")
				return false
			}
		}

		if x0 == x1 && y0 == y1 {
			break
		}

		e2 := err * 2
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}

	return true
}

// HasWorldLineOfSight — то же самое для мировых координат.
func HasWorldLineOfSight(m *domain.TileMap, a, b domain.Vec2) bool {
	return HasLineOfSight(m, m.WorldToGrid(a), m.WorldToGrid(b))
}

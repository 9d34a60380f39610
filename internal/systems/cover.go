package systems

import "drifter-server/internal/domain"

// CoverBetween возвращает значение укрытия цели от атакующего:
// максимум из укрытия собственной клетки цели и соседней клетки
// со стороны атакующего.
func CoverBetween(m *domain.TileMap, target, attacker domain.Vec2) int {
	tg := m.WorldToGrid(target)
	cover := m.PropsAt(tg.Col, tg.Row).Cover

	dc, dr := tg.DirectionTo(m.WorldToGrid(attacker))
	if dc != 0 || dr != 0 {
		if adj := m.PropsAt(tg.Col+dc, tg.Row+dr).Cover; adj > cover {
			cover = adj
		}
	}
	return cover
}

// StandingCover — укрытие, которое дает сама клетка плюс прилегающие
// к ней укрывающие тайлы (за полным укрытием можно присесть рядом).
func StandingCover(m *domain.TileMap, g domain.GridPos) int {
	best := m.PropsAt(g.Col, g.Row).Cover
	for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
		if c := m.PropsAt(g.Col+d[0], g.Row+d[1]).Cover; c > best {
			best = c
		}
	}
	return best
}

// FindCoverNear ищет лучшую проходимую клетку укрытия в радиусе radiusTiles
// вокруг self. Оценка — близость к себе минус доля близости к угрозе:
// хорошее укрытие рядом с собой и не под носом у противника.
func FindCoverNear(m *domain.TileMap, self, threat domain.Vec2, radiusTiles int) (domain.GridPos, bool) {
	sg := m.WorldToGrid(self)
	tg := m.WorldToGrid(threat)

	var best domain.GridPos
	bestScore := 0.0
	found := false

	r := float64(radiusTiles)
	for dr := -radiusTiles; dr <= radiusTiles; dr++ {
		for dc := -radiusTiles; dc <= radiusTiles; dc++ {
			cell := sg.Shift(dc, dr)
			if !m.PropsAt(cell.Col, cell.Row).Walkable {
				continue
			}
			dSelf := cell.DistanceTo(sg)
			if dSelf > r {
				continue
			}
			cover := StandingCover(m, cell)
			if cover == 0 {
				continue
			}

			dThreat := cell.DistanceTo(tg)
			score := float64(cover)*2.0 + (r - dSelf) - domain.CoverThreatWeight*(r-dThreat)
			if !found || score > bestScore {
				best = cell
				bestScore = score
				found = true
			}
		}
	}
	return best, found
}

package combat

import (
	"drifter-server/internal/domain"
	"drifter-server/internal/systems"
)

// Plan — намерение NPC на его ход. Dest заполнен только для move.
type Plan struct {
	Action   domain.CombatActionType `json:"action"`
	TargetID string                  `json:"targetId,omitempty"`
	Dest     domain.Vec2             `json:"dest,omitempty"`
}

// PlanNPC выбирает действие NPC по фиксированному приоритету:
// раненый бежит; видимый игрок в пределах оружия атакуется (вплотную
// ближним боем, иначе стрельбой); есть укрытие рядом — идем в него;
// иначе сближаемся с игроком напрямую.
func PlanNPC(m *domain.TileMap, npc, player *domain.Combatant) Plan {
	if npc.Injured() {
		return Plan{Action: domain.ActionFlee}
	}

	npcCell := m.WorldToGrid(npc.Pos)
	playerCell := m.WorldToGrid(player.Pos)
	distTiles := npc.Pos.DistanceTo(player.Pos) / m.TileSize

	if systems.HasLineOfSight(m, npcCell, playerCell) && distTiles <= domain.FireRangeTiles {
		if distTiles <= domain.StrikeRangeTiles {
			return Plan{Action: domain.ActionStrike, TargetID: player.ID}
		}
		return Plan{Action: domain.ActionFire, TargetID: player.ID}
	}

	if cell, ok := systems.FindCoverNear(m, npc.Pos, player.Pos, domain.CoverSearchRadiusTiles); ok {
		return Plan{Action: domain.ActionMove, Dest: m.GridToWorld(cell)}
	}

	return Plan{Action: domain.ActionMove, Dest: player.Pos}
}

package combat

import (
	"drifter-server/internal/domain"
	"drifter-server/internal/systems"
)

// actionRange возвращает максимальную дальность действия в клетках.
// 0 — действие не имеет дальности (move, flee и т.п.).
func actionRange(a domain.CombatActionType) float64 {
	switch a {
	case domain.ActionFire:
		return domain.FireRangeTiles
	case domain.ActionStrike:
		return domain.StrikeRangeTiles
	case domain.ActionSuppress:
		return domain.SuppressRangeTiles
	case domain.ActionTalk:
		return domain.FireRangeTiles
	}
	return 0
}

// HitChance считает шанс попадания атаки по модели:
// база действия, минус дальность сверх бесплатной, минус укрытие цели,
// минус штрафы точности атакующего, минус подавление, минус активная
// защита цели. Результат зажат в [0.10, 0.90]: ни одно действие не
// бывает гарантированным или безнадежным.
func HitChance(m *domain.TileMap, attacker, target *domain.Combatant, action domain.CombatActionType, round int) float64 {
	var base, freeRange, rangePenalty float64
	switch action {
	case domain.ActionFire:
		base = domain.BaseFireChance
		freeRange = domain.FireFreeRangeTiles
		rangePenalty = domain.FireRangePenalty
	case domain.ActionStrike:
		base = domain.BaseStrikeChance
		freeRange = domain.StrikeFreeRangeTiles
		rangePenalty = domain.StrikeRangePenalty
	default:
		return 0
	}

	chance := base

	distTiles := attacker.Pos.DistanceTo(target.Pos) / m.TileSize
	if distTiles > freeRange {
		chance -= (distTiles - freeRange) * rangePenalty
	}

	switch systems.CoverBetween(m, target.Pos, attacker.Pos) {
	case 1:
		chance -= domain.CoverPenaltyHalf
	case 2:
		chance -= domain.CoverPenaltyFull
	}

	chance -= attacker.AccuracyPenalty()
	if attacker.IsSuppressed(round) {
		chance -= domain.SuppressedPenalty
	}
	chance -= target.ActiveDefense(round)

	if chance < domain.HitChanceMin {
		chance = domain.HitChanceMin
	}
	if chance > domain.HitChanceMax {
		chance = domain.HitChanceMax
	}
	return chance
}

// TalkChance — шанс уговорить противника закончить бой. Раненая цель
// сговорчивее, раненый говорящий — менее убедителен.
func TalkChance(actor, target *domain.Combatant) float64 {
	chance := domain.TalkBaseChance
	if target.Injured() {
		chance += domain.TalkInjuredTargetBonus
	}
	if actor.Injured() {
		chance -= domain.TalkInjuredActorPenalty
	}
	if chance < domain.HitChanceMin {
		chance = domain.HitChanceMin
	}
	if chance > domain.HitChanceMax {
		chance = domain.HitChanceMax
	}
	return chance
}

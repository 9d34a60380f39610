package combat

import (
	"math/rand"

	"drifter-server/internal/domain"
)

// Таблицы выбора ранения по типу атаки: ближний бой калечит тело,
// стрельба портит снаряжение и руки.
var (
	strikeInjuries = []domain.InjuryType{
		domain.InjurySprainedLeg,
		domain.InjuryGashedArm,
	}
	fireInjuries = []domain.InjuryType{
		domain.InjuryDamagedGear,
		domain.InjuryGashedArm,
	}
)

// pickInjury выбирает тип ранения для успешной атаки.
func pickInjury(rng *rand.Rand, action domain.CombatActionType) domain.InjuryType {
	table := fireInjuries
	if action == domain.ActionStrike {
		table = strikeInjuries
	}
	return table[rng.Intn(len(table))]
}

// applyInjury наносит ранение участнику. Повторное ранение того же типа
// повышает тяжесть (максимум 2) вместо дублирования записи. Если число
// ранений достигло порога участника, он выбывает.
func applyInjury(c *domain.Combatant, t domain.InjuryType) domain.Injury {
	var applied domain.Injury
	found := false
	for i := range c.Injuries {
		if c.Injuries[i].Type == t {
			applied = domain.NewInjury(t, c.Injuries[i].Severity+1)
			c.Injuries[i] = applied
			found = true
			break
		}
	}
	if !found {
		applied = domain.NewInjury(t, 1)
		c.Injuries = append(c.Injuries, applied)
	}

	if len(c.Injuries) >= c.DownThreshold() {
		c.Status = domain.CombatantDown
	}
	return applied
}

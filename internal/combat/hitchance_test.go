package combat

import (
	"math"
	"testing"

	"drifter-server/internal/domain"
)

func TestHitChanceBaseRates(t *testing.T) {
	m := openMap()
	attacker := combatantAt(m, "a", domain.GridPos{Col: 2, Row: 2}, false)

	tests := []struct {
		name       string
		action     domain.CombatActionType
		targetCell domain.GridPos
		want       float64
	}{
		// В пределах бесплатной дальности штрафов нет.
		{"fire point blank", domain.ActionFire, domain.GridPos{Col: 3, Row: 2}, domain.BaseFireChance},
		{"fire at free range", domain.ActionFire, domain.GridPos{Col: 6, Row: 2}, domain.BaseFireChance},
		{"strike adjacent", domain.ActionStrike, domain.GridPos{Col: 3, Row: 2}, domain.BaseStrikeChance},
		// Одна клетка сверх бесплатной дальности.
		{"fire one past free", domain.ActionFire, domain.GridPos{Col: 7, Row: 2}, domain.BaseFireChance - domain.FireRangePenalty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := combatantAt(m, "t", tt.targetCell, false)
			got := HitChance(m, attacker, target, tt.action, 1)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("HitChance = %.4f, want %.4f", got, tt.want)
			}
		})
	}
}

func TestHitChanceFloorAtMaxRangeFullCover(t *testing.T) {
	// Стрельба на пределе дальности по цели за полным укрытием:
	// 0.65 - 4*0.07 - 0.30 = 0.07, зажимается в пол 0.10.
	m := openMap()
	m.Tiles[0][7] = domain.TileFullCover

	attacker := combatantAt(m, "a", domain.GridPos{Col: 0, Row: 0}, false)
	target := combatantAt(m, "t", domain.GridPos{Col: 8, Row: 0}, false)

	got := HitChance(m, attacker, target, domain.ActionFire, 1)
	if got != domain.HitChanceMin {
		t.Errorf("HitChance = %.4f, want floor %.4f", got, domain.HitChanceMin)
	}
}

func TestHitChanceModifiers(t *testing.T) {
	m := openMap()
	base := domain.BaseFireChance

	t.Run("injury accuracy penalty", func(t *testing.T) {
		attacker := combatantAt(m, "a", domain.GridPos{Col: 2, Row: 2}, false)
		attacker.Injuries = []domain.Injury{domain.NewInjury(domain.InjuryGashedArm, 2)}
		target := combatantAt(m, "t", domain.GridPos{Col: 4, Row: 2}, false)

		got := HitChance(m, attacker, target, domain.ActionFire, 1)
		if math.Abs(got-(base-0.20)) > 1e-9 {
			t.Errorf("HitChance = %.4f, want %.4f", got, base-0.20)
		}
	})

	t.Run("suppressed attacker", func(t *testing.T) {
		attacker := combatantAt(m, "a", domain.GridPos{Col: 2, Row: 2}, false)
		attacker.SuppressedUntilRound = 1
		target := combatantAt(m, "t", domain.GridPos{Col: 4, Row: 2}, false)

		got := HitChance(m, attacker, target, domain.ActionFire, 1)
		if math.Abs(got-(base-domain.SuppressedPenalty)) > 1e-9 {
			t.Errorf("HitChance = %.4f, want %.4f", got, base-domain.SuppressedPenalty)
		}
		// Подавление истекло к следующему раунду.
		got = HitChance(m, attacker, target, domain.ActionFire, 2)
		if math.Abs(got-base) > 1e-9 {
			t.Errorf("HitChance after expiry = %.4f, want %.4f", got, base)
		}
	})

	t.Run("target active defense", func(t *testing.T) {
		attacker := combatantAt(m, "a", domain.GridPos{Col: 2, Row: 2}, false)
		target := combatantAt(m, "t", domain.GridPos{Col: 4, Row: 2}, false)
		target.DefenseBonus = domain.InteractDefenseBonus
		target.DefenseUntilRound = 1

		got := HitChance(m, attacker, target, domain.ActionFire, 1)
		if math.Abs(got-(base-domain.InteractDefenseBonus)) > 1e-9 {
			t.Errorf("HitChance = %.4f, want %.4f", got, base-domain.InteractDefenseBonus)
		}
	})

	t.Run("half cover", func(t *testing.T) {
		cm := openMap()
		cm.Tiles[2][3] = domain.TileHalfCover
		attacker := combatantAt(cm, "a", domain.GridPos{Col: 2, Row: 2}, false)
		target := combatantAt(cm, "t", domain.GridPos{Col: 4, Row: 2}, false)

		got := HitChance(cm, attacker, target, domain.ActionFire, 1)
		if math.Abs(got-(base-domain.CoverPenaltyHalf)) > 1e-9 {
			t.Errorf("HitChance = %.4f, want %.4f", got, base-domain.CoverPenaltyHalf)
		}
	})
}

func TestHitChanceAlwaysClamped(t *testing.T) {
	// Перебор дистанций и модификаторов: результат всегда в [0.10, 0.90].
	m := openMap()
	m.Tiles[5][10] = domain.TileFullCover

	for col := 1; col < 19; col++ {
		for _, action := range []domain.CombatActionType{domain.ActionFire, domain.ActionStrike} {
			attacker := combatantAt(m, "a", domain.GridPos{Col: 0, Row: 5}, false)
			attacker.Injuries = []domain.Injury{
				domain.NewInjury(domain.InjuryGashedArm, 2),
				domain.NewInjury(domain.InjuryDamagedGear, 2),
			}
			attacker.SuppressedUntilRound = 1
			target := combatantAt(m, "t", domain.GridPos{Col: col, Row: 5}, false)

			got := HitChance(m, attacker, target, action, 1)
			if got < domain.HitChanceMin || got > domain.HitChanceMax {
				t.Errorf("%s at col %d: chance %.4f outside [%.2f, %.2f]",
					action, col, got, domain.HitChanceMin, domain.HitChanceMax)
			}
		}
	}
}

func TestTalkChance(t *testing.T) {
	m := openMap()
	actor := combatantAt(m, "a", domain.GridPos{Col: 2, Row: 2}, true)
	target := combatantAt(m, "t", domain.GridPos{Col: 4, Row: 2}, false)

	if got := TalkChance(actor, target); got != domain.TalkBaseChance {
		t.Errorf("both healthy: %.2f, want %.2f", got, domain.TalkBaseChance)
	}

	target.Injuries = []domain.Injury{domain.NewInjury(domain.InjuryGashedArm, 1)}
	want := domain.TalkBaseChance + domain.TalkInjuredTargetBonus
	if got := TalkChance(actor, target); got != want {
		t.Errorf("injured target: %.2f, want %.2f", got, want)
	}

	actor.Injuries = []domain.Injury{domain.NewInjury(domain.InjurySprainedLeg, 1)}
	want -= domain.TalkInjuredActorPenalty
	if got := TalkChance(actor, target); got != want {
		t.Errorf("both injured: %.2f, want %.2f", got, want)
	}
}

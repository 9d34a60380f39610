package alert

import (
	"math"

	"drifter-server/internal/domain"
	"drifter-server/internal/systems"
	"drifter-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Manager владеет записями тревоги всех NPC загруженной карты.
// Один экземпляр на карту; создается при загрузке, уничтожается при выгрузке.
type Manager struct {
	records map[string]*domain.AlertRecord
}

func NewManager() *Manager {
	return &Manager{
		records: make(map[string]*domain.AlertRecord),
	}
}

// Register заводит запись тревоги для NPC. Начальное состояние — патруль.
func (m *Manager) Register(npcID string) {
	m.records[npcID] = &domain.AlertRecord{State: domain.AlertPatrolling}
}

// Unregister удаляет запись (смерть или выгрузка NPC).
func (m *Manager) Unregister(npcID string) {
	delete(m.records, npcID)
}

// State возвращает состояние тревоги NPC. Неизвестный ID — патруль.
func (m *Manager) State(npcID string) domain.AlertState {
	if rec, ok := m.records[npcID]; ok {
		return rec.State
	}
	return domain.AlertPatrolling
}

// Record возвращает копию записи тревоги для снапшотов и тестов.
func (m *Manager) Record(npcID string) (domain.AlertRecord, bool) {
	if rec, ok := m.records[npcID]; ok {
		return *rec, true
	}
	return domain.AlertRecord{}, false
}

// InvestigationTarget возвращает точку расследования NPC, если она есть.
func (m *Manager) InvestigationTarget(npcID string) (domain.Vec2, bool) {
	rec, ok := m.records[npcID]
	if !ok || !rec.HasLastSeen {
		return domain.Vec2{}, false
	}
	return rec.LastSeen, true
}

// CombatCount возвращает число NPC в боевом состоянии.
func (m *Manager) CombatCount() int {
	n := 0
	for _, rec := range m.records {
		if rec.State == domain.AlertCombat {
			n++
		}
	}
	return n
}

// Tick продвигает машину тревоги каждого NPC на dt секунд.
// night снижает дальность обнаружения (вечер и ночь).
func (m *Manager) Tick(dt float64, tm *domain.TileMap, npcs []*domain.NPCState, player domain.Vec2, night bool) {
	for _, npc := range npcs {
		rec, ok := m.records[npc.ID]
		if !ok {
			continue
		}
		m.tickOne(dt, tm, npc, rec, player, night)
	}
}

func (m *Manager) tickOne(dt float64, tm *domain.TileMap, npc *domain.NPCState, rec *domain.AlertRecord, player domain.Vec2, night bool) {
	visible := m.canSee(tm, npc, player, night)

	if visible {
		rec.Raise(domain.AlertRiseRate * dispositionRiseMul(npc.Template) * dt)
		rec.LastSeen = player
		rec.HasLastSeen = true
	} else {
		rec.Decay(domain.AlertDecayRate * dt)
	}

	before := rec.State

	switch rec.State {
	case domain.AlertPatrolling:
		if rec.Level >= domain.AlertInvestigateThreshold {
			rec.State = domain.AlertInvestigating
			rec.Countdown = domain.InvestigateCountdown
		}

	case domain.AlertInvestigating:
		if rec.Level >= domain.AlertCombatThreshold {
			rec.State = domain.AlertCombat
			break
		}
		// Таймер отказа идет только пока игрок не виден.
		if !visible {
			rec.Countdown -= dt
		}
		if rec.Level <= 0 && rec.Countdown <= 0 {
			rec.State = domain.AlertPatrolling
			rec.HasLastSeen = false
		}

	case domain.AlertCombat:
		// Прямого пути в патруль нет: сначала обратно в расследование.
		if rec.Level <= 0 {
			rec.State = domain.AlertInvestigating
			rec.Countdown = domain.InvestigateCountdown
		}
	}

	if rec.State != before {
		logger.WithComponent("alert_system").WithFields(logrus.Fields{
			"npc_id":      npc.ID,
			"from":        before.String(),
			"to":          rec.State.String(),
			"alert_level": rec.Level,
		}).Info("Alert state transition")
	}
}

// dispositionRiseMul — множитель скорости роста тревоги по нраву NPC.
// Враждебные взвинчиваются быстрее, нейтральные дольше терпят чужака.
func dispositionRiseMul(tpl *domain.NPCTemplate) float64 {
	if tpl == nil {
		return 1.0
	}
	switch tpl.Disposition {
	case domain.DispositionHostile:
		return 1.5
	case domain.DispositionNeutral:
		return 0.6
	default: // wary и все незнакомое
		return 1.0
	}
}

// canSee — предикат видимости: дистанция, конус обзора 90° вокруг
// направления взгляда и линия видимости.
func (m *Manager) canSee(tm *domain.TileMap, npc *domain.NPCState, player domain.Vec2, night bool) bool {
	detRange := float64(domain.DetectionRange)
	if night {
		detRange *= domain.NightDetectionMul
	}

	delta := player.Sub(npc.Pos)
	dist := delta.Length()
	if dist > detRange {
		return false
	}
	if dist > 1e-6 {
		dir := delta.Scale(1 / dist)
		facing := npc.Facing.Vector()
		cosHalfCone := math.Cos(domain.DetectionConeDeg / 2 * math.Pi / 180)
		if dir.X*facing.X+dir.Y*facing.Y < cosHalfCone {
			return false
		}
	}
	return systems.HasWorldLineOfSight(tm, npc.Pos, player)
}

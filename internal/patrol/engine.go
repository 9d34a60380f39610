package patrol

import (
	"math/rand"

	"drifter-server/internal/domain"
	"drifter-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// AlertSource описывает то, что патрулю нужно знать о тревоге.
// alert.Manager реализует этот интерфейс.
type AlertSource interface {
	State(npcID string) domain.AlertState
	InvestigationTarget(npcID string) (domain.Vec2, bool)
}

// Engine водит всех NPC загруженной карты. Владеет их симуляционными
// записями; один экземпляр на карту.
type Engine struct {
	tm  *domain.TileMap
	rng *rand.Rand

	npcs       map[string]*domain.NPCState
	order      []string // стабильный порядок обхода
	strategies map[string]StrategyFunc
}

func NewEngine(tm *domain.TileMap, seed int64) *Engine {
	return &Engine{
		tm:         tm,
		rng:        rand.New(rand.NewSource(seed)),
		npcs:       make(map[string]*domain.NPCState),
		strategies: make(map[string]StrategyFunc),
	}
}

// Register создает симуляционную запись NPC из шаблона и закрепляет за ним
// стратегию по фракции. Спавн — первая точка маршрута либо spawn.
func (e *Engine) Register(tpl *domain.NPCTemplate, spawn domain.Vec2) *domain.NPCState {
	pos := spawn
	if len(tpl.Route) > 0 {
		pos = e.tm.GridToWorld(tpl.Route[0])
	}

	st := &domain.NPCState{
		ID:       tpl.ID,
		Template: tpl,
		Pos:      pos,
		Facing:   domain.FacingDown,
	}
	e.npcs[tpl.ID] = st
	e.order = append(e.order, tpl.ID)
	e.strategies[tpl.ID] = strategyFor(tpl.Faction)

	logger.WithComponent("patrol_system").WithFields(logrus.Fields{
		"npc_id":  tpl.ID,
		"faction": tpl.Faction,
	}).Debug("NPC registered")

	return st
}

// Unregister выбрасывает NPC из симуляции (смерть, выгрузка).
func (e *Engine) Unregister(id string) {
	delete(e.npcs, id)
	delete(e.strategies, id)
	for i, v := range e.order {
		if v == id {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
}

// NPC возвращает запись по ID (nil, если нет).
func (e *Engine) NPC(id string) *domain.NPCState {
	return e.npcs[id]
}

// All возвращает записи NPC в порядке регистрации.
func (e *Engine) All() []*domain.NPCState {
	out := make([]*domain.NPCState, 0, len(e.order))
	for _, id := range e.order {
		out = append(out, e.npcs[id])
	}
	return out
}

// Tick продвигает всех NPC на dt секунд. Контракт общий для всех стратегий:
// в бою NPC стоит (движение в бою — дело боевого движка), в расследовании
// идет напрямик к цели быстрее обычного, иначе работает стратегия фракции.
// Пугливые NPC вне тревоги пятятся от подошедшего вплотную игрока.
func (e *Engine) Tick(dt float64, alerts AlertSource, player domain.Vec2) {
	ctx := &Context{Map: e.tm, Dt: dt, Rng: e.rng}

	for _, id := range e.order {
		npc := e.npcs[id]

		switch alerts.State(id) {
		case domain.AlertCombat:
			continue

		case domain.AlertInvestigating:
			target, ok := alerts.InvestigationTarget(id)
			if !ok {
				continue
			}
			moveToward(npc, e.tm, target, domain.InvestigateSpeed, dt)

		default:
			if npc.Template.FleeOnApproach && retreatFrom(npc, e.tm, player, dt) {
				continue
			}
			e.strategies[id](npc, ctx)
		}
	}
}

// retreatFrom отводит NPC от игрока, если тот подошел ближе FleeApproachDist.
// Возвращает false, когда игрок не настолько близко, чтобы пятиться.
func retreatFrom(npc *domain.NPCState, m *domain.TileMap, player domain.Vec2, dt float64) bool {
	delta := npc.Pos.Sub(player)
	dist := delta.Length()
	if dist >= domain.FleeApproachDist || dist < 1e-6 {
		return false
	}

	away := npc.Pos.Add(delta.Scale(domain.FleeApproachDist / dist))
	moveToward(npc, m, away, domain.InvestigateSpeed, dt)
	return true
}

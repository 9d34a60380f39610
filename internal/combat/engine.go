package combat

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"drifter-server/internal/domain"
	"drifter-server/internal/systems"
	"drifter-server/pkg/logger"
	"drifter-server/pkg/utils"

	"github.com/sirupsen/logrus"
)

var (
	ErrNotPlayerTurn    = errors.New("not the player's turn")
	ErrNoActionSelected = errors.New("no action selected")
	ErrOutOfRange       = errors.New("target out of range")
)

// Engine — пошаговый боевой движок. Единовременно активен максимум один
// бой, и в нем всегда ровно один игрок. Участники создаются из записей
// симуляции при старте и по завершении складываются в леджер ранений.
type Engine struct {
	tm  *domain.TileMap
	rng *rand.Rand

	phase domain.CombatPhase
	round int

	combatants map[string]*domain.Combatant
	order      []string // игрок первым, затем NPC по дистанции на момент старта

	selectedAction domain.CombatActionType
	selectedTarget string

	ledger   domain.InjuryLedger
	cooldown float64

	encounterID string

	outcome *domain.OutcomeRecord
	onEnd   func(domain.OutcomeRecord)

	log *logrus.Entry
}

func NewEngine(tm *domain.TileMap, seed int64, ledger domain.InjuryLedger) *Engine {
	if ledger == nil {
		ledger = make(domain.InjuryLedger)
	}
	return &Engine{
		tm:         tm,
		rng:        rand.New(rand.NewSource(seed)),
		phase:      domain.PhaseNone,
		combatants: make(map[string]*domain.Combatant),
		ledger:     ledger,
		log:        logger.WithComponent("combat_engine"),
	}
}

// SetOutcomeHandler регистрирует получателя записи исхода (нарративный
// коллаборатор). Вызывается синхронно при завершении боя.
func (e *Engine) SetOutcomeHandler(fn func(domain.OutcomeRecord)) {
	e.onEnd = fn
}

func (e *Engine) Phase() domain.CombatPhase { return e.phase }
func (e *Engine) Round() int                { return e.round }
func (e *Engine) Active() bool {
	return e.phase != domain.PhaseNone && e.phase != domain.PhaseEnded
}

// SelectedAction возвращает текущий выбор игрока для рендера.
func (e *Engine) SelectedAction() (domain.CombatActionType, string) {
	return e.selectedAction, e.selectedTarget
}

// Combatant возвращает участника по ID (nil, если не в бою).
func (e *Engine) Combatant(id string) *domain.Combatant {
	return e.combatants[id]
}

// Roster возвращает участников в боевом порядке.
func (e *Engine) Roster() []*domain.Combatant {
	out := make([]*domain.Combatant, 0, len(e.order))
	for _, id := range e.order {
		out = append(out, e.combatants[id])
	}
	return out
}

// Outcome возвращает запись исхода завершенного боя (nil, пока бой идет).
func (e *Engine) Outcome() *domain.OutcomeRecord {
	return e.outcome
}

// Ledger — персистентный леджер ранений движка.
func (e *Engine) Ledger() domain.InjuryLedger {
	return e.ledger
}

// TickCooldown списывает паузу между боями. Работает только вне боя.
func (e *Engine) TickCooldown(dt float64) {
	if e.phase == domain.PhaseNone && e.cooldown > 0 {
		e.cooldown -= dt
	}
}

// TryInitiate пытается начать бой: вне боя, после паузы, из NPC-кандидатов
// (вызывающий передает тех, чья тревога в боевом состоянии), отсортированных
// по дистанции до игрока и ограниченных размером ростера. Без кандидатов
// бой не начинается.
func (e *Engine) TryInitiate(player *domain.PlayerState, candidates []*domain.NPCState) bool {
	if e.phase != domain.PhaseNone || e.cooldown > 0 {
		return false
	}
	if len(candidates) == 0 {
		return false
	}

	e.phase = domain.PhaseInitiating

	sorted := make([]*domain.NPCState, len(candidates))
	copy(sorted, candidates)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Pos.DistanceTo(player.Pos) < sorted[j].Pos.DistanceTo(player.Pos)
	})

	e.combatants = make(map[string]*domain.Combatant)
	e.order = e.order[:0]

	pc := &domain.Combatant{
		ID:       player.ID,
		Name:     "Player",
		IsPlayer: true,
		Pos:      player.Pos,
		Facing:   player.Facing,
		Injuries: e.ledger.Snapshot(player.ID),
	}
	// Участник с ранениями на пороге выбывания входит в бой уже "down".
	// Для игрока это означает, что бой не начинается вовсе.
	if len(pc.Injuries) >= pc.DownThreshold() {
		e.phase = domain.PhaseNone
		e.log.WithField("injuries", len(pc.Injuries)).Debug("Player unfit for combat, encounter aborted")
		return false
	}
	e.combatants[pc.ID] = pc
	e.order = append(e.order, pc.ID)

	for _, npc := range sorted {
		if len(e.order) == domain.MaxRosterSize {
			break
		}
		carried := e.ledger.Snapshot(npc.ID)
		if len(carried) >= domain.NPCDownThreshold {
			continue
		}
		c := &domain.Combatant{
			ID:       npc.ID,
			Name:     npc.Template.Name,
			Faction:  npc.Template.Faction,
			Pos:      npc.Pos,
			Facing:   npc.Facing,
			Injuries: carried,
		}
		e.combatants[c.ID] = c
		e.order = append(e.order, c.ID)
	}

	if len(e.order) == 1 {
		e.phase = domain.PhaseNone
		return false
	}

	e.round = 1
	e.outcome = nil
	e.encounterID = utils.GenerateID()
	e.clearSelection()
	e.phase = domain.PhasePlayerTurn

	e.log.WithFields(logrus.Fields{
		"encounter": e.encounterID,
		"roster":    len(e.order),
		"round":     e.round,
	}).Info("Combat initiated")
	return true
}

// SelectAction выбирает действие игрока. Действия без цели и точки (flee)
// исполняются сразу, остальные ждут SelectTarget или MapClick.
func (e *Engine) SelectAction(a domain.CombatActionType) error {
	if e.phase != domain.PhasePlayerTurn {
		return ErrNotPlayerTurn
	}
	if !domain.IsValidAction(a) {
		return fmt.Errorf("unknown combat action %q", a)
	}

	e.selectedAction = a
	e.selectedTarget = ""

	if a == domain.ActionFlee {
		e.performFlee(e.player())
		e.afterPlayerAction()
	}
	return nil
}

// SelectTarget назначает цель выбранному действию и исполняет его.
// Устаревший или неизвестный ID цели игнорируется без ошибки.
func (e *Engine) SelectTarget(id string) error {
	if e.phase != domain.PhasePlayerTurn {
		return ErrNotPlayerTurn
	}
	if !e.selectedAction.NeedsTarget() {
		return ErrNoActionSelected
	}

	target, ok := e.combatants[id]
	if !ok || target.IsPlayer || target.Status != domain.CombatantActive {
		return nil
	}
	e.selectedTarget = id

	return e.resolveTargeted(e.player(), target, e.selectedAction)
}

// ClearSelection сбрасывает выбранные действие и цель.
func (e *Engine) ClearSelection() {
	e.clearSelection()
}

// MapClick исполняет выбранное перемещение (move/interact) в точку.
func (e *Engine) MapClick(p domain.Vec2) error {
	if e.phase != domain.PhasePlayerTurn {
		return ErrNotPlayerTurn
	}
	switch e.selectedAction {
	case domain.ActionMove:
		e.performMove(e.player(), p, false)
	case domain.ActionInteract:
		e.performMove(e.player(), p, true)
	default:
		return ErrNoActionSelected
	}

	e.afterPlayerAction()
	return nil
}

// Clear возвращает машину состояний из ended в none и выбрасывает ростер.
func (e *Engine) Clear() {
	if e.phase != domain.PhaseEnded {
		return
	}
	e.phase = domain.PhaseNone
	e.round = 0
	e.combatants = make(map[string]*domain.Combatant)
	e.order = e.order[:0]
	e.clearSelection()
}

// MovementRange — дальность перемещения участника в мировых единицах,
// сжатая штрафами ранений, но не ниже минимума.
func (e *Engine) MovementRange(c *domain.Combatant) float64 {
	tiles := domain.MoveRangeTiles * (1 - c.MovePenalty())
	if tiles < domain.MoveRangeMinTiles {
		tiles = domain.MoveRangeMinTiles
	}
	return tiles * e.tm.TileSize
}

// PlannedIntents возвращает намерения активных NPC для рендера.
func (e *Engine) PlannedIntents() map[string]Plan {
	if !e.Active() {
		return nil
	}
	player := e.player()
	intents := make(map[string]Plan)
	for _, id := range e.order {
		c := e.combatants[id]
		if c.IsPlayer || c.Status != domain.CombatantActive {
			continue
		}
		intents[id] = PlanNPC(e.tm, c, player)
	}
	return intents
}

func (e *Engine) player() *domain.Combatant {
	return e.combatants[e.order[0]]
}

func (e *Engine) clearSelection() {
	e.selectedAction = ""
	e.selectedTarget = ""
}

// resolveTargeted исполняет действие игрока с целью.
func (e *Engine) resolveTargeted(actor, target *domain.Combatant, action domain.CombatActionType) error {
	distTiles := actor.Pos.DistanceTo(target.Pos) / e.tm.TileSize
	if distTiles > actionRange(action) {
		return ErrOutOfRange
	}

	switch action {
	case domain.ActionFire, domain.ActionStrike:
		e.performAttack(actor, target, action)
	case domain.ActionSuppress:
		e.performSuppress(actor, target)
	case domain.ActionTalk:
		if e.performTalk(actor, target) {
			return nil // бой завершен уговором
		}
	}

	e.afterPlayerAction()
	return nil
}

// performAttack бросает шанс попадания и при успехе наносит ранение.
func (e *Engine) performAttack(actor, target *domain.Combatant, action domain.CombatActionType) {
	chance := HitChance(e.tm, actor, target, action, e.round)
	hit := e.rng.Float64() < chance

	fields := logrus.Fields{
		"actor":  actor.ID,
		"target": target.ID,
		"action": action,
		"chance": chance,
		"round":  e.round,
	}
	if !hit {
		e.log.WithFields(fields).Debug("Attack missed")
		return
	}

	inj := applyInjury(target, pickInjury(e.rng, action))
	fields["injury"] = inj.Type
	fields["severity"] = inj.Severity
	e.log.WithFields(fields).Info("Attack hit")
}

// performSuppress всегда успешен: штраф на следующее действие цели.
func (e *Engine) performSuppress(actor, target *domain.Combatant) {
	target.SuppressedUntilRound = e.round + 1
	e.log.WithFields(logrus.Fields{
		"actor":  actor.ID,
		"target": target.ID,
		"round":  e.round,
	}).Debug("Target suppressed")
}

// performTalk бросает шанс уговора; успех немедленно завершает бой.
// Возвращает true, если бой закончился.
func (e *Engine) performTalk(actor, target *domain.Combatant) bool {
	chance := TalkChance(actor, target)
	if e.rng.Float64() < chance {
		e.finish(domain.OutcomeTalkSuccess)
		return true
	}
	e.log.WithFields(logrus.Fields{
		"actor":  actor.ID,
		"target": target.ID,
		"chance": chance,
	}).Debug("Talk attempt failed")
	return false
}

func (e *Engine) performFlee(actor *domain.Combatant) {
	actor.Status = domain.CombatantFled
	e.log.WithField("actor", actor.ID).Info("Combatant fled")
}

// performMove двигает участника к точке в пределах его дальности, через
// коллизию. При interact встать в укрытие дает временный бонус защиты.
func (e *Engine) performMove(actor *domain.Combatant, dest domain.Vec2, interact bool) {
	delta := dest.Sub(actor.Pos)
	dist := delta.Length()
	maxDist := e.MovementRange(actor)
	if dist > maxDist && dist > 1e-6 {
		dest = actor.Pos.Add(delta.Scale(maxDist / dist))
	}

	next := systems.ResolveMovement(e.tm, actor.Pos, dest, domain.ActorRadius)
	next = systems.ClampToBounds(e.tm, next, domain.ActorRadius)
	actor.Facing = domain.FacingFromVector(next.Sub(actor.Pos), actor.Facing)
	actor.Pos = next

	if interact {
		cell := e.tm.WorldToGrid(actor.Pos)
		if systems.StandingCover(e.tm, cell) > 0 {
			actor.DefenseBonus = domain.InteractDefenseBonus
			actor.DefenseUntilRound = e.round + 1
		}
	}
}

// afterPlayerAction — общий хвост каждого действия игрока: сброс выбора,
// оценка исхода, затем полный ход NPC и инкремент раунда.
func (e *Engine) afterPlayerAction() {
	e.clearSelection()
	if e.resolveOutcome() {
		return
	}
	e.runNPCTurn()
}

// runNPCTurn разыгрывает ход каждого активного NPC до конца: начавшийся
// ход не прерывается извне. Исход проверяется после каждого действия.
func (e *Engine) runNPCTurn() {
	e.phase = domain.PhaseNPCTurn
	player := e.player()

	for _, id := range e.order {
		c := e.combatants[id]
		if c.IsPlayer || c.Status != domain.CombatantActive {
			continue
		}

		plan := PlanNPC(e.tm, c, player)
		switch plan.Action {
		case domain.ActionFlee:
			e.performFlee(c)
		case domain.ActionFire, domain.ActionStrike:
			e.performAttack(c, player, plan.Action)
		case domain.ActionMove:
			e.performMove(c, plan.Dest, false)
		}

		if e.resolveOutcome() {
			return
		}
		e.phase = domain.PhaseNPCTurn
	}

	e.round++
	e.phase = domain.PhasePlayerTurn
}

// resolveOutcome проверяет условия завершения. Возвращает true, если бой
// закончился (машина в ended).
func (e *Engine) resolveOutcome() bool {
	e.phase = domain.PhaseResolving

	player := e.player()
	switch player.Status {
	case domain.CombatantFled:
		e.finish(domain.OutcomePlayerFled)
		return true
	case domain.CombatantDown:
		e.finish(domain.OutcomePlayerDown)
		return true
	}

	activeNPCs := 0
	anyFled := false
	for _, id := range e.order[1:] {
		switch e.combatants[id].Status {
		case domain.CombatantActive:
			activeNPCs++
		case domain.CombatantFled:
			anyFled = true
		}
	}
	if activeNPCs == 0 {
		if anyFled {
			e.finish(domain.OutcomeEnemiesFled)
		} else {
			e.finish(domain.OutcomeEnemiesDown)
		}
		return true
	}
	return false
}

// finish закрывает бой: ранения в леджер, фракционные сдвиги по исходу,
// пауза до следующего боя, уведомление коллаборатора.
func (e *Engine) finish(outcome domain.CombatOutcome) {
	record := domain.OutcomeRecord{
		Outcome:       outcome,
		FactionImpact: make(map[domain.Faction]int),
		Injuries:      make(map[string][]domain.Injury),
		Rounds:        e.round,
	}

	delta := outcomeFactionDelta(outcome)
	for _, id := range e.order {
		c := e.combatants[id]

		if len(c.Injuries) > 0 {
			snap := make([]domain.Injury, len(c.Injuries))
			copy(snap, c.Injuries)
			record.Injuries[id] = snap
			e.ledger[id] = snap
		} else {
			delete(e.ledger, id)
		}

		// Поверженный игрок приходит в себя: исход сохраняет его ранения,
		// но в следующий бой они не переносятся.
		if c.IsPlayer && outcome == domain.OutcomePlayerDown {
			delete(e.ledger, id)
		}

		if !c.IsPlayer {
			record.FactionImpact[c.Faction] = delta
		}
	}

	e.outcome = &record
	e.phase = domain.PhaseEnded
	e.cooldown = domain.CombatCooldownSec
	e.clearSelection()

	e.log.WithFields(logrus.Fields{
		"encounter": e.encounterID,
		"outcome":   outcome,
		"rounds":    record.Rounds,
	}).Info("Combat ended")

	if e.onEnd != nil {
		e.onEnd(record)
	}
}

// outcomeFactionDelta — сдвиг отношения каждой вражеской фракции по исходу.
func outcomeFactionDelta(outcome domain.CombatOutcome) int {
	switch outcome {
	case domain.OutcomeTalkSuccess:
		return 1
	case domain.OutcomePlayerDown, domain.OutcomeEnemiesDown:
		return -2
	default:
		return -1
	}
}

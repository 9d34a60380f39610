package engine

import (
	"fmt"

	"drifter-server/internal/alert"
	"drifter-server/internal/combat"
	"drifter-server/internal/domain"
	"drifter-server/internal/patrol"
	"drifter-server/internal/systems"
	"drifter-server/pkg/content"
	"drifter-server/pkg/logger"
	"drifter-server/pkg/utils"

	"github.com/sirupsen/logrus"
)

// Simulation — однопоточное ядро: карта, игрок, тревога, патрули и бой.
// Вся мутация состояния происходит синхронно внутри Tick; параллелизма
// и блокировок нет, ядро не делает I/O.
type Simulation struct {
	cfg Config

	tm     *domain.TileMap
	player *domain.PlayerState

	alerts  *alert.Manager
	patrols *patrol.Engine
	combat  *combat.Engine
	ledger  domain.InjuryLedger

	night   bool
	paused  bool
	elapsed float64

	lastOutcome *domain.OutcomeRecord

	log *logrus.Entry
}

// NewSimulation собирает ядро из конфига и контент-бандла.
func NewSimulation(cfg Config, bundle *content.Bundle) (*Simulation, error) {
	if err := bundle.Validate(); err != nil {
		return nil, fmt.Errorf("invalid content bundle: %w", err)
	}
	tm, err := bundle.BuildMap()
	if err != nil {
		return nil, err
	}

	ledger := make(domain.InjuryLedger)
	s := &Simulation{
		cfg: cfg,
		tm:  tm,
		player: &domain.PlayerState{
			ID:  "player_" + utils.GenerateID(),
			Pos: tm.GridToWorld(bundle.Spawn),
		},
		alerts:  alert.NewManager(),
		patrols: patrol.NewEngine(tm, cfg.Seed),
		combat:  combat.NewEngine(tm, cfg.Seed+1, ledger),
		ledger:  ledger,
		night:   cfg.Night,
		log:     logger.WithComponent("simulation"),
	}

	for _, tpl := range bundle.NPCs {
		s.patrols.Register(tpl, domain.Vec2{})
		s.alerts.Register(tpl.ID)
	}

	s.combat.SetOutcomeHandler(func(rec domain.OutcomeRecord) {
		s.lastOutcome = &rec
	})

	s.log.WithFields(logrus.Fields{
		"bundle": bundle.Name,
		"npcs":   len(bundle.NPCs),
		"seed":   cfg.Seed,
	}).Info("Simulation created")
	return s, nil
}

// Tick продвигает симуляцию на dt секунд. input — вектор намерения
// движения игрока на этот тик (используется только вне боя).
func (s *Simulation) Tick(dt float64, input domain.Vec2) {
	// Большие дельты (свернутая вкладка, приостановленный процесс)
	// срезаются, иначе один тик проскочит маршрутные точки и коллизии.
	if dt > domain.MaxTickDelta {
		dt = domain.MaxTickDelta
	}
	if dt <= 0 || s.paused {
		return
	}
	s.elapsed += dt

	if s.combat.Phase() == domain.PhaseEnded {
		s.foldCombatResults()
		s.combat.Clear()
	}
	// Пока бой идет, перемещение, тревога и патрули заморожены.
	if s.combat.Active() {
		return
	}

	s.combat.TickCooldown(dt)
	s.movePlayer(input, dt)
	s.alerts.Tick(dt, s.tm, s.patrols.All(), s.player.Pos, s.night)
	s.patrols.Tick(dt, s.alerts, s.player.Pos)
	s.tryStartCombat()
}

// movePlayer двигает игрока по вектору намерения через общую коллизию.
func (s *Simulation) movePlayer(input domain.Vec2, dt float64) {
	if input.Length() < 1e-6 {
		return
	}
	step := input.Normalized().Scale(domain.PlayerSpeed * dt)
	want := s.player.Pos.Add(step)

	next := systems.ResolveMovement(s.tm, s.player.Pos, want, domain.ActorRadius)
	next = systems.ClampToBounds(s.tm, next, domain.ActorRadius)
	s.player.Facing = domain.FacingFromVector(next.Sub(s.player.Pos), s.player.Facing)
	s.player.Pos = next
}

// tryStartCombat собирает NPC в боевом состоянии тревоги и пробует
// запустить бой.
func (s *Simulation) tryStartCombat() {
	var candidates []*domain.NPCState
	for _, npc := range s.patrols.All() {
		if s.alerts.State(npc.ID) == domain.AlertCombat {
			candidates = append(candidates, npc)
		}
	}
	if len(candidates) == 0 {
		return
	}
	if s.combat.TryInitiate(s.player, candidates) {
		s.log.WithField("roster", len(candidates)).Info("Combat encounter started")
	}
}

// foldCombatResults складывает итоги боя обратно в симуляцию: позиции
// уцелевших, удаление бежавших и выбывших NPC.
func (s *Simulation) foldCombatResults() {
	for _, c := range s.combat.Roster() {
		if c.IsPlayer {
			s.player.Pos = c.Pos
			s.player.Facing = c.Facing
			continue
		}
		switch c.Status {
		case domain.CombatantActive:
			if npc := s.patrols.NPC(c.ID); npc != nil {
				npc.Pos = c.Pos
				npc.Facing = c.Facing
			}
		default:
			// Бежавшие и выбывшие покидают локацию.
			s.patrols.Unregister(c.ID)
			s.alerts.Unregister(c.ID)
		}
	}
}

// --- Доступ для обработчиков команд и сборки снапшотов ---

func (s *Simulation) Map() *domain.TileMap        { return s.tm }
func (s *Simulation) Player() *domain.PlayerState { return s.player }
func (s *Simulation) NPCs() []*domain.NPCState    { return s.patrols.All() }
func (s *Simulation) Alerts() *alert.Manager      { return s.alerts }
func (s *Simulation) Combat() *combat.Engine      { return s.combat }
func (s *Simulation) Elapsed() float64            { return s.elapsed }

func (s *Simulation) Paused() bool        { return s.paused }
func (s *Simulation) SetPaused(p bool)    { s.paused = p }
func (s *Simulation) Night() bool         { return s.night }
func (s *Simulation) SetNight(night bool) { s.night = night }

// LastOutcome возвращает исход последнего завершенного боя (nil, если
// боев еще не было).
func (s *Simulation) LastOutcome() *domain.OutcomeRecord {
	return s.lastOutcome
}

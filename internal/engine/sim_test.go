package engine

import (
	"math"
	"testing"

	"drifter-server/internal/domain"
)

func TestTickDeltaClamped(t *testing.T) {
	sim := newTestSim(t)
	start := sim.Player().Pos

	// Огромная дельта (свернутая вкладка) срезается до MaxTickDelta.
	sim.Tick(5.0, domain.Vec2{X: 1, Y: 0})

	moved := sim.Player().Pos.X - start.X
	want := domain.PlayerSpeed * domain.MaxTickDelta
	if math.Abs(moved-want) > 1e-6 {
		t.Errorf("moved %.2f, want %.2f", moved, want)
	}
}

func TestPlayerMovesWithInput(t *testing.T) {
	sim := newTestSim(t)
	start := sim.Player().Pos

	tickFor(sim, 1.0, domain.Vec2{X: 1, Y: 0})

	moved := sim.Player().Pos.X - start.X
	if math.Abs(moved-domain.PlayerSpeed) > 1.0 {
		t.Errorf("moved %.2f in 1s, want ~%.2f", moved, domain.PlayerSpeed)
	}
	if sim.Player().Facing != domain.FacingRight {
		t.Errorf("facing = %s, want right", sim.Player().Facing)
	}
}

func TestPauseFreezesAlertAndPatrol(t *testing.T) {
	sim := newTestSim(t)
	npc := sim.NPCs()[0]
	npcPos := npc.Pos

	sim.SetPaused(true)
	tickFor(sim, 5.0, domain.Vec2{X: 1, Y: 0})

	rec, _ := sim.Alerts().Record("guard_1")
	if rec.Level != 0 {
		t.Errorf("alert level rose to %.1f while paused", rec.Level)
	}
	if npc.Pos != npcPos {
		t.Error("NPC moved while paused")
	}
	if sim.Elapsed() != 0 {
		t.Errorf("elapsed = %.2f while paused", sim.Elapsed())
	}
	if sim.Player().Pos != sim.Map().GridToWorld(domain.GridPos{Col: 10, Row: 12}) {
		t.Error("player moved while paused")
	}

	// После снятия паузы симуляция продолжается.
	sim.SetPaused(false)
	tickFor(sim, 0.5, domain.Vec2{})
	rec, _ = sim.Alerts().Record("guard_1")
	if rec.Level == 0 {
		t.Error("alert did not rise after resume")
	}
}

func TestCombatStartsThroughEscalation(t *testing.T) {
	sim := newTestSim(t)

	sawInvestigating := false
	const dt = 0.05
	for ts := 0.0; ts < 4.0; ts += dt {
		sim.Tick(dt, domain.Vec2{})
		if sim.Alerts().State("guard_1") == domain.AlertInvestigating {
			sawInvestigating = true
		}
		if sim.Combat().Active() {
			break
		}
	}

	if !sawInvestigating {
		t.Error("combat reached without passing through investigating")
	}
	if !sim.Combat().Active() {
		t.Fatal("combat never started")
	}
	if sim.Combat().Phase() != domain.PhasePlayerTurn {
		t.Errorf("phase = %s, want player_turn", sim.Combat().Phase())
	}
	if got := len(sim.Combat().Roster()); got != 2 {
		t.Errorf("roster size = %d, want 2", got)
	}
}

func TestCombatFreezesSimulation(t *testing.T) {
	sim := newTestSim(t)
	tickFor(sim, 4.0, domain.Vec2{})
	if !sim.Combat().Active() {
		t.Fatal("combat never started")
	}

	playerPos := sim.Player().Pos
	npcPos := sim.NPCs()[0].Pos
	elapsed := sim.Elapsed()

	// В бою ввод движения игнорируется, патрули и тревога стоят.
	tickFor(sim, 2.0, domain.Vec2{X: 1, Y: 0})

	if sim.Player().Pos != playerPos {
		t.Error("player moved during combat")
	}
	if sim.NPCs()[0].Pos != npcPos {
		t.Error("NPC moved during combat")
	}
	if sim.Elapsed() == elapsed {
		t.Error("elapsed time must still accumulate during combat")
	}
}

func TestCombatEndFoldsBackIntoSimulation(t *testing.T) {
	sim := newTestSim(t)
	// Страж входит в бой уже раненым и на своем ходу сбежит.
	sim.Combat().Ledger()["guard_1"] = []domain.Injury{
		domain.NewInjury(domain.InjuryGashedArm, 1),
	}

	tickFor(sim, 4.0, domain.Vec2{})
	if !sim.Combat().Active() {
		t.Fatal("combat never started")
	}

	// Ход игрока на месте: раненый NPC бежит, бой заканчивается.
	if err := sim.Combat().SelectAction(domain.ActionMove); err != nil {
		t.Fatal(err)
	}
	if err := sim.Combat().MapClick(sim.Player().Pos); err != nil {
		t.Fatal(err)
	}
	if sim.Combat().Phase() != domain.PhaseEnded {
		t.Fatalf("phase = %s, want ended", sim.Combat().Phase())
	}

	// Следующий тик складывает итоги: бежавший NPC покидает локацию,
	// машина состояний возвращается в none.
	sim.Tick(0.05, domain.Vec2{})

	if sim.Combat().Phase() != domain.PhaseNone {
		t.Errorf("phase = %s, want none", sim.Combat().Phase())
	}
	if len(sim.NPCs()) != 0 {
		t.Errorf("fled NPC still registered: %d NPCs", len(sim.NPCs()))
	}
	out := sim.LastOutcome()
	if out == nil || out.Outcome != domain.OutcomeEnemiesFled {
		t.Errorf("last outcome = %+v, want enemies_fled", out)
	}
}

func TestSnapshotShape(t *testing.T) {
	sim := newTestSim(t)
	tickFor(sim, 0.5, domain.Vec2{})

	full := sim.BuildSnapshot(true)
	if full.Type != "INIT" {
		t.Errorf("full snapshot type = %s", full.Type)
	}
	if full.Grid == nil || full.Grid.Width != 20 || full.Grid.TileSize != domain.TileSize {
		t.Errorf("grid meta = %+v", full.Grid)
	}
	if len(full.Map) != 20*20 {
		t.Errorf("map tiles = %d, want 400", len(full.Map))
	}
	if full.Player == nil || full.Player.Facing == "" {
		t.Error("player view missing")
	}
	if len(full.NPCs) != 1 {
		t.Fatalf("npc views = %d", len(full.NPCs))
	}
	if full.NPCs[0].AlertState == "" {
		t.Error("npc view has no alert state")
	}
	if full.NPCs[0].AlertLevel <= 0 {
		t.Error("alert level missing after visible exposure")
	}

	update := sim.BuildSnapshot(false)
	if update.Type != "UPDATE" || update.Map != nil || update.Grid != nil {
		t.Error("update snapshot carries static map data")
	}

	// В бою снапшот несет боевой блок с намерениями NPC.
	tickFor(sim, 4.0, domain.Vec2{})
	if !sim.Combat().Active() {
		t.Fatal("combat never started")
	}
	inCombat := sim.BuildSnapshot(false)
	if inCombat.Combat == nil {
		t.Fatal("combat view missing")
	}
	if inCombat.Combat.Phase != "player_turn" || inCombat.Combat.Round != 1 {
		t.Errorf("combat view = %+v", inCombat.Combat)
	}
	if inCombat.Combat.MovementRange <= 0 {
		t.Error("movement range missing")
	}
	if len(inCombat.Combat.Intents) != 1 {
		t.Error("NPC intent missing")
	}
}

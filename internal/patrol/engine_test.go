package patrol

import (
	"os"
	"testing"

	"drifter-server/internal/domain"
	"drifter-server/pkg/logger"
)

func TestMain(m *testing.M) {
	// Initialize the global logger before running any tests
	logger.Init()

	os.Exit(m.Run())
}

// stubAlerts — управляемый источник тревоги для тестов.
type stubAlerts struct {
	state  domain.AlertState
	target domain.Vec2
}

func (s *stubAlerts) State(string) domain.AlertState { return s.state }

func (s *stubAlerts) InvestigationTarget(string) (domain.Vec2, bool) {
	return s.target, s.state == domain.AlertInvestigating
}

func openMap() *domain.TileMap {
	return domain.NewTileMap(20, 20, domain.TileSize)
}

func routeTemplate(faction domain.Faction) *domain.NPCTemplate {
	return &domain.NPCTemplate{
		ID:      "npc_1",
		Name:    "Патрульный",
		Faction: faction,
		Route: []domain.GridPos{
			{Col: 2, Row: 2},
			{Col: 8, Row: 2},
			{Col: 8, Row: 8},
		},
		LingerTime: 1.0,
	}
}

// farPlayer — игрок далеко от всех маршрутов, отступление не срабатывает.
var farPlayer = domain.Vec2{X: 600, Y: 600}

func runTicks(e *Engine, alerts AlertSource, seconds float64) {
	const dt = 0.05
	for t := 0.0; t < seconds; t += dt {
		e.Tick(dt, alerts, farPlayer)
	}
}

func TestRegisterSpawnsAtRouteStart(t *testing.T) {
	tm := openMap()
	e := NewEngine(tm, 1)
	st := e.Register(routeTemplate(domain.FactionScrappers), domain.Vec2{})

	want := tm.GridToWorld(domain.GridPos{Col: 2, Row: 2})
	if st.Pos != want {
		t.Errorf("spawn pos = %v, want first waypoint %v", st.Pos, want)
	}
}

func TestCombatFreezesPatrol(t *testing.T) {
	tm := openMap()
	e := NewEngine(tm, 1)
	st := e.Register(routeTemplate(domain.FactionScrappers), domain.Vec2{})
	before := st.Pos

	runTicks(e, &stubAlerts{state: domain.AlertCombat}, 2.0)

	if st.Pos != before {
		t.Errorf("NPC moved during combat: %v -> %v", before, st.Pos)
	}
}

func TestInvestigatingMovesTowardTarget(t *testing.T) {
	tm := openMap()
	e := NewEngine(tm, 1)
	st := e.Register(routeTemplate(domain.FactionScrappers), domain.Vec2{})

	target := tm.GridToWorld(domain.GridPos{Col: 15, Row: 2})
	startDist := st.Pos.DistanceTo(target)

	runTicks(e, &stubAlerts{state: domain.AlertInvestigating, target: target}, 1.0)

	moved := startDist - st.Pos.DistanceTo(target)
	if moved <= 0 {
		t.Fatal("NPC did not approach the investigation target")
	}
	// Скорость расследования выше патрульной.
	if moved < domain.PatrolSpeed*1.0 {
		t.Errorf("investigation speed too slow: moved %.1f in 1s", moved)
	}
}

func TestWaypointAdvanceAndDwell(t *testing.T) {
	tm := openMap()
	e := NewEngine(tm, 1)
	st := e.Register(routeTemplate(domain.FactionScrappers), domain.Vec2{})
	calm := &stubAlerts{state: domain.AlertPatrolling}

	// Точки 2 и 8 в колонках: 6 клеток = 192 единицы, при 60 ед/с — 3.2с.
	// Плюс пауза LingerTime=1с. За 6 секунд NPC должен пройти точку 1.
	runTicks(e, calm, 6.0)

	if st.RouteIndex == 0 {
		t.Error("route index did not advance")
	}

	// Полный круг из трех точек — индекс возвращается по модулю.
	runTicks(e, calm, 30.0)
	if st.RouteIndex < 0 || st.RouteIndex > 2 {
		t.Errorf("route index %d out of range", st.RouteIndex)
	}
}

func TestCircuitPatrolDoesNotPause(t *testing.T) {
	// Культ обходит маршрут без пауз: за то же время проходит дальше,
	// чем фракция с паузами.
	tm := openMap()

	cultEngine := NewEngine(tm, 1)
	cultTpl := routeTemplate(domain.FactionAshCult)
	cult := cultEngine.Register(cultTpl, domain.Vec2{})

	slowEngine := NewEngine(tm, 1)
	slowTpl := routeTemplate(domain.FactionWardens)
	slowTpl.ID = "npc_2"
	slow := slowEngine.Register(slowTpl, domain.Vec2{})

	calm := &stubAlerts{state: domain.AlertPatrolling}
	runTicks(cultEngine, calm, 8.0)
	runTicks(slowEngine, calm, 8.0)

	if cult.WaitTimer > 0 {
		t.Error("circuit patrol has a wait timer")
	}
	if cult.RouteIndex == 0 && slow.RouteIndex != 0 {
		t.Error("circuit patrol fell behind the pausing one")
	}
}

func TestTeleportPatrolJumps(t *testing.T) {
	tm := openMap()
	e := NewEngine(tm, 1)
	tpl := routeTemplate(domain.FactionSynths)
	st := e.Register(tpl, domain.Vec2{})
	calm := &stubAlerts{state: domain.AlertPatrolling}

	start := st.Pos
	// Один тик после истечения таймера — позиция меняется скачком
	// на центр следующей точки, без промежуточных шагов.
	e.Tick(0.05, calm, farPlayer)

	if st.Pos == start {
		t.Fatal("teleport patrol did not jump")
	}
	want := tm.GridToWorld(tpl.Route[st.RouteIndex])
	if st.Pos != want {
		t.Errorf("teleported to %v, want waypoint center %v", st.Pos, want)
	}
	if st.WaitTimer <= 0 {
		t.Error("teleport hold timer not set")
	}
}

func TestWanderTargetsOffsetFromWaypoint(t *testing.T) {
	tm := openMap()
	e := NewEngine(tm, 7)
	tpl := routeTemplate(domain.FactionDrifters)
	st := e.Register(tpl, domain.Vec2{})
	calm := &stubAlerts{state: domain.AlertPatrolling}

	// Дойти до первой точки (спавн в ней) и двинуться дальше: сдвиг цели
	// появляется после первого прибытия.
	runTicks(e, calm, 10.0)

	if st.WanderOffset == (domain.Vec2{}) {
		t.Error("wander offset never assigned")
	}
}

func TestStrategySelectionByFaction(t *testing.T) {
	tests := []struct {
		faction domain.Faction
		known   bool
	}{
		{domain.FactionDrifters, true},
		{domain.FactionWardens, true},
		{domain.FactionScrappers, true},
		{domain.FactionAshCult, true},
		{domain.FactionSynths, true},
		{domain.Faction("unheard_of"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.faction), func(t *testing.T) {
			_, ok := strategyByFaction[tt.faction]
			if ok != tt.known {
				t.Errorf("strategyByFaction[%q] known = %v, want %v", tt.faction, ok, tt.known)
			}
			if strategyFor(tt.faction) == nil {
				t.Error("strategyFor returned nil")
			}
		})
	}
}

func TestEmptyRouteIdles(t *testing.T) {
	tm := openMap()
	e := NewEngine(tm, 1)
	tpl := &domain.NPCTemplate{ID: "idle_1", Faction: domain.FactionScrappers}
	spawn := tm.GridToWorld(domain.GridPos{Col: 5, Row: 5})
	st := e.Register(tpl, spawn)

	runTicks(e, &stubAlerts{state: domain.AlertPatrolling}, 3.0)

	if st.Pos != spawn {
		t.Errorf("NPC with no route moved: %v", st.Pos)
	}
}

func TestFleeOnApproachBacksAway(t *testing.T) {
	tm := openMap()
	e := NewEngine(tm, 1)
	calm := &stubAlerts{state: domain.AlertPatrolling}
	player := domain.Vec2{X: 128, Y: 160}

	shy := e.Register(&domain.NPCTemplate{
		ID: "shy_1", Faction: domain.FactionDrifters, FleeOnApproach: true,
	}, domain.Vec2{X: 160, Y: 160})
	bold := e.Register(&domain.NPCTemplate{
		ID: "bold_1", Faction: domain.FactionDrifters,
	}, domain.Vec2{X: 160, Y: 224})
	boldStart := bold.Pos

	start := shy.Pos.DistanceTo(player)
	for i := 0; i < 20; i++ {
		e.Tick(0.05, calm, player)
	}
	if d := shy.Pos.DistanceTo(player); d <= start {
		t.Fatalf("distance %.1f did not grow from %.1f", d, start)
	}
	if bold.Pos != boldStart {
		t.Errorf("NPC without the flag moved: %v", bold.Pos)
	}

	// Отступление останавливается на безопасной дистанции, а не бесконечно.
	for i := 0; i < 200; i++ {
		e.Tick(0.05, calm, player)
	}
	d := shy.Pos.DistanceTo(player)
	if d < domain.FleeApproachDist-1 || d > domain.FleeApproachDist+domain.ActorRadius {
		t.Errorf("settled at distance %.1f, want about %.1f", d, domain.FleeApproachDist)
	}
}

func TestGlanceOnWaypointDwell(t *testing.T) {
	tm := openMap()
	e := NewEngine(tm, 1)
	calm := &stubAlerts{state: domain.AlertPatrolling}

	watcher := e.Register(&domain.NPCTemplate{
		ID: "watcher_1", Faction: domain.FactionScrappers,
		GlanceChance: 1.0, LingerTime: 1.0,
		Route: []domain.GridPos{{Col: 5, Row: 5}},
	}, domain.Vec2{})
	still := e.Register(&domain.NPCTemplate{
		ID: "still_1", Faction: domain.FactionScrappers,
		LingerTime: 1.0,
		Route:      []domain.GridPos{{Col: 8, Row: 8}},
	}, domain.Vec2{})

	e.Tick(0.05, calm, farPlayer)

	if watcher.Facing == domain.FacingDown {
		t.Error("facing unchanged after glance on arrival")
	}
	if watcher.WaitTimer <= 0 {
		t.Error("no dwell started at waypoint")
	}
	if still.Facing != domain.FacingDown {
		t.Error("facing changed with zero glance chance")
	}
}

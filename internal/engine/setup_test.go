package engine

import (
	"os"
	"testing"

	"drifter-server/internal/domain"
	"drifter-server/pkg/content"
	"drifter-server/pkg/logger"
)

func TestMain(m *testing.M) {
	// Initialize the global logger before running any tests
	logger.Init()

	os.Exit(m.Run())
}

// testBundle — открытая площадка 20x20: один страж стоит на посту в
// четырех клетках над спавном игрока, лицом вниз (к игроку).
func testBundle() *content.Bundle {
	rows := make([]string, 20)
	for i := range rows {
		rows[i] = "...................."
	}
	return &content.Bundle{
		Name:    "test_yard",
		MapRows: rows,
		Spawn:   domain.GridPos{Col: 10, Row: 12},
		NPCs: []*domain.NPCTemplate{
			{
				ID:      "guard_1",
				Name:    "Страж",
				Faction: domain.FactionWardens,
				Route:   []domain.GridPos{{Col: 10, Row: 8}},
			},
		},
	}
}

func newTestSim(t *testing.T) *Simulation {
	t.Helper()
	sim, err := NewSimulation(Config{Seed: 1, TickRate: 30}, testBundle())
	if err != nil {
		t.Fatal(err)
	}
	return sim
}

// tickFor прогоняет симуляцию мелкими тиками.
func tickFor(sim *Simulation, seconds float64, input domain.Vec2) {
	const dt = 0.05
	for t := 0.0; t < seconds; t += dt {
		sim.Tick(dt, input)
	}
}

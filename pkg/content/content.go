package content

import (
	"fmt"

	"drifter-server/internal/domain"
)

// Bundle — статичный контент одной локации: раскладка тайлов и ростер NPC.
// Авторский контент, не симуляция: ядро читает его один раз при старте.
type Bundle struct {
	Name    string
	MapRows []string
	Spawn   domain.GridPos
	NPCs    []*domain.NPCTemplate
}

// legend переводит символ авторской карты в тайл.
var legend = map[rune]domain.TileKind{
	'.': domain.TileFloor,
	'#': domain.TileWall,
	'o': domain.TileLowWall,
	'+': domain.TileDoor,
	'L': domain.TileLockedDoor,
	'E': domain.TileExit,
	'~': domain.TileWater,
	'_': domain.TilePit,
	'C': domain.TileFullCover,
	'c': domain.TileHalfCover,
	'<': domain.TileStairsUp,
	'>': domain.TileStairsDown,
	'd': domain.TileDebris,
	'T': domain.TileTerminal,
	'B': domain.TileContainer,
}

// BuildMap собирает тайловую карту из строк раскладки.
func (b *Bundle) BuildMap() (*domain.TileMap, error) {
	if len(b.MapRows) == 0 {
		return nil, fmt.Errorf("bundle %q has no map rows", b.Name)
	}
	w := len(b.MapRows[0])
	m := domain.NewTileMap(w, len(b.MapRows), domain.TileSize)

	for r, row := range b.MapRows {
		if len(row) != w {
			return nil, fmt.Errorf("bundle %q: row %d length %d, want %d", b.Name, r, len(row), w)
		}
		for c, ch := range row {
			kind, ok := legend[ch]
			if !ok {
				return nil, fmt.Errorf("bundle %q: unknown tile %q at %d,%d", b.Name, ch, c, r)
			}
			m.Tiles[r][c] = kind
		}
	}
	return m, nil
}

// Validate проверяет согласованность ростера с картой: маршруты в границах
// и по проходимым клеткам.
func (b *Bundle) Validate() error {
	m, err := b.BuildMap()
	if err != nil {
		return err
	}
	if !m.PropsAt(b.Spawn.Col, b.Spawn.Row).Walkable {
		return fmt.Errorf("bundle %q: player spawn %v is not walkable", b.Name, b.Spawn)
	}
	seen := make(map[string]bool)
	for _, tpl := range b.NPCs {
		if tpl.ID == "" {
			return fmt.Errorf("bundle %q: NPC without ID", b.Name)
		}
		if seen[tpl.ID] {
			return fmt.Errorf("bundle %q: duplicate NPC ID %q", b.Name, tpl.ID)
		}
		seen[tpl.ID] = true
		for _, wp := range tpl.Route {
			if !m.PropsAt(wp.Col, wp.Row).Walkable {
				return fmt.Errorf("bundle %q: NPC %s waypoint %v is not walkable", b.Name, tpl.ID, wp)
			}
		}
	}
	return nil
}

// Demo — демонстрационная локация: заброшенная станция с патрулями всех
// пяти фракций.
func Demo() *Bundle {
	return &Bundle{
		Name:  "derelict_station",
		Spawn: domain.GridPos{Col: 12, Row: 12},
		MapRows: []string{
			"########################",
			"#......................#",
			"#..c....##+##....c.....#",
			"#.......#...#..........#",
			"#...d...#.T.#....o.....#",
			"#.......#...#..........#",
			"#..~~...##L##......B...#",
			"#..~~..................#",
			"#..........C...........#",
			"#..........C......d....#",
			"#......................#",
			"#...o......c.....##+####",
			"#................#.....#",
			"#.....>..........#..<..E",
			"#................#.....#",
			"########################",
		},
		NPCs: []*domain.NPCTemplate{
			{
				ID:          "warden_1",
				Name:        "Страж станции",
				Faction:     domain.FactionWardens,
				Disposition: domain.DispositionHostile,
				Route: []domain.GridPos{
					{Col: 2, Row: 1}, {Col: 21, Row: 1},
					{Col: 21, Row: 10}, {Col: 2, Row: 10},
				},
			},
			{
				ID:             "drifter_1",
				Name:           "Бродяга",
				Faction:        domain.FactionDrifters,
				Disposition:    domain.DispositionNeutral,
				FleeOnApproach: true,
				LingerTime:     2.0,
				Route: []domain.GridPos{
					{Col: 5, Row: 8}, {Col: 8, Row: 10}, {Col: 5, Row: 13},
				},
			},
			{
				ID:           "scrapper_1",
				Name:         "Сборщик лома",
				Faction:      domain.FactionScrappers,
				Disposition:  domain.DispositionWary,
				GlanceChance: 0.5,
				LingerTime:   1.5,
				Route: []domain.GridPos{
					{Col: 18, Row: 4}, {Col: 19, Row: 7}, {Col: 15, Row: 9},
				},
			},
			{
				ID:      "cultist_1",
				Name:    "Пепельный культист",
				Faction: domain.FactionAshCult,
				Route: []domain.GridPos{
					{Col: 9, Row: 3}, {Col: 9, Row: 5},
				},
			},
			{
				ID:      "synth_1",
				Name:    "Синтет-наблюдатель",
				Faction: domain.FactionSynths,
				Route: []domain.GridPos{
					{Col: 2, Row: 13}, {Col: 9, Row: 12}, {Col: 13, Row: 14},
				},
			},
		},
	}
}


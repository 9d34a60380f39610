package api

import (
	"encoding/json"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// ServerResponse это корневой объект, который сервер отправляет клиенту:
// снимок симуляции, достаточный для отрисовки кадра. Карта статична и
// включается только в ответ на INIT.
type ServerResponse struct {
	// Type тип сообщения: "UPDATE" или "INIT".
	Type string `json:"type"`

	// Time прошедшее время симуляции, секунды.
	Time float64 `json:"time"`

	Paused bool `json:"paused,omitempty"`
	Night  bool `json:"night,omitempty"`

	// Grid метаданные о размере карты.
	Grid *GridMeta `json:"grid,omitempty"`

	// Map полный список тайлов. Заполнен только в INIT-ответе.
	Map []TileView `json:"map,omitempty"`

	Player *PlayerView `json:"player,omitempty"`
	NPCs   []NPCView   `json:"npcs,omitempty"`

	// Combat заполнен, пока идет бой.
	Combat *CombatView `json:"combat,omitempty"`

	// Outcome исход последнего завершенного боя.
	Outcome *OutcomeView `json:"outcome,omitempty"`
}

// GridMeta содержит размеры карты в клетках и размер клетки в мировых
// единицах.
type GridMeta struct {
	Width    int     `json:"w"`
	Height   int     `json:"h"`
	TileSize float64 `json:"tileSize"`
}

// TileView это DTO одного тайла карты.
type TileView struct {
	Col int `json:"col"`
	Row int `json:"row"`

	Kind     string `json:"kind"`
	Walkable bool   `json:"walkable"`

	// Cover 0/1/2 - защитная ценность тайла в бою.
	Cover int `json:"cover,omitempty"`
}

// PlayerView это DTO игрока.
type PlayerView struct {
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Facing string  `json:"facing"`
}

// NPCView это DTO NPC: позиция плюс состояние тревоги для индикатора
// над спрайтом.
type NPCView struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Faction string `json:"faction"`

	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Facing string  `json:"facing"`

	AlertState string  `json:"alertState"`
	AlertLevel float64 `json:"alertLevel"`
}

// CombatView это DTO активного боя: фаза, раунд, выбор игрока и намерения
// NPC для подсветки интерфейса.
type CombatView struct {
	Phase string `json:"phase"`
	Round int    `json:"round"`

	SelectedAction string `json:"selectedAction,omitempty"`
	SelectedTarget string `json:"selectedTarget,omitempty"`

	// MovementRange дальность перемещения игрока в мировых единицах
	// с учетом штрафов ранений.
	MovementRange float64 `json:"movementRange"`

	Combatants []CombatantView       `json:"combatants"`
	Intents    map[string]IntentView `json:"intents,omitempty"`
}

// CombatantView это DTO участника боя.
type CombatantView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsPlayer bool   `json:"isPlayer,omitempty"`
	Faction  string `json:"faction,omitempty"`

	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Status string  `json:"status"`

	Injuries   []InjuryView `json:"injuries,omitempty"`
	Suppressed bool         `json:"suppressed,omitempty"`
	Defense    float64      `json:"defense,omitempty"`
}

// InjuryView это DTO одного ранения.
type InjuryView struct {
	Type            string  `json:"type"`
	Severity        int     `json:"severity"`
	AccuracyPenalty float64 `json:"accuracyPenalty,omitempty"`
	MovePenalty     float64 `json:"movePenalty,omitempty"`
}

// IntentView это DTO запланированного действия NPC.
type IntentView struct {
	Action   string  `json:"action"`
	TargetID string  `json:"targetId,omitempty"`
	X        float64 `json:"x,omitempty"`
	Y        float64 `json:"y,omitempty"`
}

// OutcomeView это DTO записи исхода боя для нарративного коллаборатора.
type OutcomeView struct {
	Outcome       string                  `json:"outcome"`
	FactionImpact map[string]int          `json:"factionImpact"`
	Injuries      map[string][]InjuryView `json:"injuries,omitempty"`
	Rounds        int                     `json:"rounds"`
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех сообщений от клиента.
type ClientCommand struct {
	// Session ID сессии клиента. Пустой в первом сообщении: сервер
	// выдает сессию сам.
	Session string `json:"session,omitempty"`

	// Action название команды.
	Action string `json:"action"`

	// Payload JSON-объект с данными. Структура зависит от Action.
	Payload json.RawMessage `json:"payload"`
}

// --- Payloads ---

// InputPayload - вектор намерения движения игрока (INPUT).
// Применяется каждый тик, пока не придет новый.
type InputPayload struct {
	Dx float64 `json:"dx"`
	Dy float64 `json:"dy"`
}

// ActionPayload - выбор боевого действия (SELECT_ACTION).
type ActionPayload struct {
	Action string `json:"action"`
}

// TargetPayload - выбор цели (SELECT_TARGET).
type TargetPayload struct {
	TargetID string `json:"targetId"`
}

// PointPayload - клик по карте в мировых координатах (MAP_CLICK).
type PointPayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NightPayload - переключение ночного режима (SET_NIGHT).
type NightPayload struct {
	Night bool `json:"night"`
}

package domain

// Faction — строковый идентификатор фракции. Определяет и стратегию
// патрулирования, и знак последствий боя.
type Faction string

const (
	FactionDrifters  Faction = "drifters"
	FactionWardens   Faction = "wardens"
	FactionScrappers Faction = "scrappers"
	FactionAshCult   Faction = "ashcult"
	FactionSynths    Faction = "synths"
)

// Нрав NPC. Масштабирует скорость роста тревоги при виде игрока.
const (
	DispositionHostile = "hostile"
	DispositionWary    = "wary"
	DispositionNeutral = "neutral"
)

// NPCTemplate — статические данные NPC, поставляемые провайдером контента.
// Ядро их не мутирует.
type NPCTemplate struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Faction     Faction `json:"faction"`
	Disposition string  `json:"disposition"` // hostile / wary / neutral

	// Route — замкнутый маршрут патруля (клетки, обход по кругу).
	Route []GridPos `json:"route"`

	FleeOnApproach bool `json:"fleeOnApproach"`

	// Настройка поведения на маршруте.
	GlanceChance float64 `json:"glanceChance"` // шанс оглядеться на точке
	LingerTime   float64 `json:"lingerTime"`   // базовая пауза на точке, сек
}

// NPCState — симуляционная запись NPC. Создается при загрузке карты,
// мутируется только подсистемой патруля, уничтожается при выгрузке.
type NPCState struct {
	ID       string
	Template *NPCTemplate

	Pos    Vec2
	Facing Facing

	RouteIndex int
	WaitTimer  float64

	// WanderOffset — случайный сдвиг цели для блуждающих стратегий.
	// Пересчитывается при смене маршрутной точки.
	WanderOffset Vec2
}

// PlayerState — симуляционная запись игрока.
type PlayerState struct {
	ID     string
	Pos    Vec2
	Facing Facing
}

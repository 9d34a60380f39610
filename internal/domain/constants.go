package domain

// Вся числовая настройка ядра живет здесь. Балансировка значений —
// забота контента, ядро лишь применяет их.

// Геометрия и движение
const (
	TileSize = 32.0 // мировых единиц на клетку

	ActorRadius      = 10.0 // радиус коллизии актора
	PlayerSpeed      = 120.0
	PatrolSpeed      = 60.0
	InvestigateSpeed = 96.0 // к точке расследования идут быстрее

	WaypointArriveDist = 4.0 // порог "дошел до маршрутной точки"

	// MaxTickDelta ограничивает dt одного тика. После подвисания хоста
	// один тик не должен проглотить несколько маршрутных точек
	// или проскочить проверку коллизий.
	MaxTickDelta = 0.1
)

// Восприятие
const (
	DetectionRange    = 5 * TileSize
	NightDetectionMul = 0.7 // ночью и вечером видят хуже

	DetectionConeDeg = 90.0

	AlertRiseRate  = 40.0 // единиц тревоги в секунду, пока игрок виден
	AlertDecayRate = 12.0 // единиц в секунду, пока не виден

	AlertInvestigateThreshold = 50.0
	AlertCombatThreshold      = 90.0

	InvestigateCountdown = 6.0 // секунд до отказа от расследования

	// Пугливые NPC (FleeOnApproach) пятятся, когда игрок подходит ближе.
	FleeApproachDist = 3 * TileSize
)

// Бой
const (
	MaxRosterSize     = 4 // игрок + не более трех NPC
	CombatCooldownSec = 8.0

	BaseFireChance     = 0.65
	FireRangeTiles     = 8.0
	FireFreeRangeTiles = 4.0 // до этой дистанции штрафа нет
	FireRangePenalty   = 0.07 // за каждую клетку сверх свободной

	BaseStrikeChance     = 0.75
	StrikeRangeTiles     = 1.5
	StrikeFreeRangeTiles = 1.0
	StrikeRangePenalty   = 0.25 // ближний бой теряет точность резче

	SuppressRangeTiles = 8.0
	SuppressedPenalty  = 0.20

	CoverPenaltyHalf = 0.15
	CoverPenaltyFull = 0.30

	// Ни одно действие не бывает гарантированным или невозможным.
	HitChanceMin = 0.10
	HitChanceMax = 0.90

	MoveRangeTiles    = 5.0 // базовая дальность перемещения за ход
	MoveRangeMinTiles = 1.0

	InteractDefenseBonus = 0.20

	TalkBaseChance          = 0.50
	TalkInjuredTargetBonus  = 0.20
	TalkInjuredActorPenalty = 0.20

	PlayerDownThreshold = 3
	NPCDownThreshold    = 2

	CoverSearchRadiusTiles = 6
	CoverThreatWeight      = 0.4 // доля, на которую близость к игроку портит оценку укрытия
)

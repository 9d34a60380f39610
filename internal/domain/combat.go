package domain

// CombatPhase — фаза боевой машины состояний.
type CombatPhase uint8

const (
	PhaseNone CombatPhase = iota
	PhaseInitiating
	PhasePlayerTurn
	PhaseNPCTurn
	PhaseResolving
	PhaseEnded
)

func (p CombatPhase) String() string {
	switch p {
	case PhaseInitiating:
		return "initiating"
	case PhasePlayerTurn:
		return "player_turn"
	case PhaseNPCTurn:
		return "npc_turn"
	case PhaseResolving:
		return "resolving"
	case PhaseEnded:
		return "ended"
	default:
		return "none"
	}
}

// CombatActionType — тип боевого действия.
type CombatActionType string

const (
	ActionMove     CombatActionType = "move"
	ActionInteract CombatActionType = "interact"
	ActionFire     CombatActionType = "fire"
	ActionStrike   CombatActionType = "strike"
	ActionSuppress CombatActionType = "suppress"
	ActionTalk     CombatActionType = "talk"
	ActionFlee     CombatActionType = "flee"
)

// IsValidAction проверяет, что строка — известный тип действия.
func IsValidAction(a CombatActionType) bool {
	switch a {
	case ActionMove, ActionInteract, ActionFire, ActionStrike,
		ActionSuppress, ActionTalk, ActionFlee:
		return true
	}
	return false
}

// NeedsTarget возвращает true для действий, требующих цель.
func (a CombatActionType) NeedsTarget() bool {
	switch a {
	case ActionFire, ActionStrike, ActionSuppress, ActionTalk:
		return true
	}
	return false
}

// InjuryType — тип ранения.
type InjuryType string

const (
	InjurySprainedLeg InjuryType = "sprained_leg" // штраф к перемещению
	InjuryGashedArm   InjuryType = "gashed_arm"   // штраф к точности
	InjuryDamagedGear InjuryType = "damaged_gear" // поврежденное снаряжение
)

// Штрафы за единицу тяжести.
const (
	sprainedLegMovePenalty = 0.20
	gashedArmAccPenalty    = 0.10
	damagedGearAccPenalty  = 0.05
)

// Injury — одно ранение. Тяжесть 1–2; повторное ранение того же типа
// повышает тяжесть вместо дублирования записи.
type Injury struct {
	Type     InjuryType `json:"type"`
	Severity int        `json:"severity"`

	AccuracyPenalty float64 `json:"accuracyPenalty,omitempty"`
	MovePenalty     float64 `json:"movePenalty,omitempty"`
}

// NewInjury создает ранение с штрафами, пропорциональными тяжести.
func NewInjury(t InjuryType, severity int) Injury {
	if severity < 1 {
		severity = 1
	}
	if severity > 2 {
		severity = 2
	}
	inj := Injury{Type: t, Severity: severity}
	switch t {
	case InjurySprainedLeg:
		inj.MovePenalty = sprainedLegMovePenalty * float64(severity)
	case InjuryGashedArm:
		inj.AccuracyPenalty = gashedArmAccPenalty * float64(severity)
	case InjuryDamagedGear:
		inj.AccuracyPenalty = damagedGearAccPenalty * float64(severity)
	}
	return inj
}

// CombatantStatus — статус участника боя.
type CombatantStatus uint8

const (
	CombatantActive CombatantStatus = iota
	CombatantFled
	CombatantDown
)

func (s CombatantStatus) String() string {
	switch s {
	case CombatantFled:
		return "fled"
	case CombatantDown:
		return "down"
	default:
		return "active"
	}
}

// Combatant — временный участник боя. Создается из NPCState при старте боя,
// по окончании результаты складываются обратно в леджер ранений.
type Combatant struct {
	ID       string
	Name     string
	IsPlayer bool
	Faction  Faction

	Pos    Vec2
	Facing Facing

	Injuries []Injury
	Status   CombatantStatus

	// Временные эффекты, привязанные к номеру раунда.
	SuppressedUntilRound int
	DefenseBonus         float64
	DefenseUntilRound    int
}

// AccuracyPenalty — суммарный штраф точности от ранений.
func (c *Combatant) AccuracyPenalty() float64 {
	total := 0.0
	for _, inj := range c.Injuries {
		total += inj.AccuracyPenalty
	}
	return total
}

// MovePenalty — суммарный штраф перемещения от ранений.
func (c *Combatant) MovePenalty() float64 {
	total := 0.0
	for _, inj := range c.Injuries {
		total += inj.MovePenalty
	}
	return total
}

// IsSuppressed — подавлен ли участник в данном раунде.
func (c *Combatant) IsSuppressed(round int) bool {
	return c.SuppressedUntilRound >= round
}

// ActiveDefense — действующий бонус защиты в данном раунде.
func (c *Combatant) ActiveDefense(round int) float64 {
	if c.DefenseUntilRound >= round {
		return c.DefenseBonus
	}
	return 0
}

// Injured — есть ли у участника хоть одно ранение.
func (c *Combatant) Injured() bool {
	return len(c.Injuries) > 0
}

// DownThreshold — порог ранений, после которого участник выбывает.
func (c *Combatant) DownThreshold() int {
	if c.IsPlayer {
		return PlayerDownThreshold
	}
	return NPCDownThreshold
}

// CombatOutcome — исход боя.
type CombatOutcome string

const (
	OutcomeTalkSuccess CombatOutcome = "talk_success"
	OutcomePlayerFled  CombatOutcome = "player_fled"
	OutcomePlayerDown  CombatOutcome = "player_down"
	OutcomeEnemiesFled CombatOutcome = "enemies_fled"
	OutcomeEnemiesDown CombatOutcome = "enemies_down"
)

// OutcomeRecord — запись исхода боя для нарративного коллаборатора.
type OutcomeRecord struct {
	Outcome       CombatOutcome        `json:"outcome"`
	FactionImpact map[Faction]int      `json:"faction_impact"`
	Injuries      map[string][]Injury  `json:"injuries"`
	Rounds        int                  `json:"rounds"`
}

// InjuryLedger — персистентный (в памяти хоста) леджер ранений по ID NPC.
// Время жизни — политика хоста, не ядра.
type InjuryLedger map[string][]Injury

// Snapshot возвращает копию записей леджера для ID.
func (l InjuryLedger) Snapshot(id string) []Injury {
	src := l[id]
	if len(src) == 0 {
		return nil
	}
	out := make([]Injury, len(src))
	copy(out, src)
	return out
}

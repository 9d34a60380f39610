package domain

// AlertState — состояние машины тревоги NPC.
type AlertState uint8

const (
	AlertPatrolling AlertState = iota
	AlertInvestigating
	AlertCombat
)

func (s AlertState) String() string {
	switch s {
	case AlertInvestigating:
		return "investigating"
	case AlertCombat:
		return "combat"
	default:
		return "patrolling"
	}
}

// AlertRecord — тревога одного NPC. Мутируется каждый тик,
// между NPC не разделяется.
type AlertRecord struct {
	State AlertState

	// Level — накопленная осведомленность об игроке, всегда в [0,100].
	Level float64

	LastSeen    Vec2
	HasLastSeen bool

	// Countdown — таймер отказа от расследования. Убывает только пока
	// игрок не виден.
	Countdown float64
}

// Raise повышает уровень тревоги с ограничением сверху.
func (r *AlertRecord) Raise(amount float64) {
	r.Level += amount
	if r.Level > 100 {
		r.Level = 100
	}
}

// Decay снижает уровень тревоги с ограничением снизу.
func (r *AlertRecord) Decay(amount float64) {
	r.Level -= amount
	if r.Level < 0 {
		r.Level = 0
	}
}

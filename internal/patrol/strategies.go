package patrol

import (
	"math/rand"

	"drifter-server/internal/domain"
	"drifter-server/internal/systems"
)

// Context передает стратегии состояние мира на текущий тик.
type Context struct {
	Map *domain.TileMap
	Dt  float64
	Rng *rand.Rand
}

// StrategyFunc — стратегия патрулирования: чистая функция над состоянием
// NPC. Вызывается только пока тревога NPC не боевая и не расследование.
type StrategyFunc func(npc *domain.NPCState, ctx *Context)

// strategyByFaction — таблица выбора стратегии. Выбор происходит один раз,
// при регистрации NPC.
var strategyByFaction = map[domain.Faction]StrategyFunc{
	domain.FactionDrifters:  wanderPatrol,
	domain.FactionWardens:   sweepPatrol,
	domain.FactionScrappers: waypointPatrol,
	domain.FactionAshCult:   circuitPatrol,
	domain.FactionSynths:    teleportPatrol,
}

// strategyFor возвращает стратегию фракции; незнакомые фракции ходят
// обычным маршрутом.
func strategyFor(f domain.Faction) StrategyFunc {
	if s, ok := strategyByFaction[f]; ok {
		return s
	}
	return waypointPatrol
}

// Паузы на маршрутных точках по вариантам.
const (
	sweepDwell   = 2.5 // стражи: строгий таймер на каждой точке
	teleportHold = 3.0 // синтеты: стоят, затем переносятся
)

// waypointPatrol — базовый вариант: идем к точке, ждем LingerTime, дальше.
func waypointPatrol(npc *domain.NPCState, ctx *Context) {
	stepRoute(npc, ctx, npc.Template.LingerTime, 0)
}

// sweepPatrol — методичный обход со строгой фиксированной паузой.
func sweepPatrol(npc *domain.NPCState, ctx *Context) {
	stepRoute(npc, ctx, sweepDwell, 0)
}

// wanderPatrol — свободное блуждание вокруг точек маршрута: цель каждый
// раз смещена на случайный офсет в пределах клетки.
func wanderPatrol(npc *domain.NPCState, ctx *Context) {
	stepRoute(npc, ctx, npc.Template.LingerTime, domain.TileSize*0.75)
}

// circuitPatrol — жесткий круговой обход без остановок.
func circuitPatrol(npc *domain.NPCState, ctx *Context) {
	stepRoute(npc, ctx, 0, 0)
}

// teleportPatrol — стоит на точке, по истечении паузы переносится
// на следующую вместо ходьбы.
func teleportPatrol(npc *domain.NPCState, ctx *Context) {
	route := npc.Template.Route
	if len(route) == 0 {
		return
	}

	if npc.WaitTimer > 0 {
		npc.WaitTimer -= ctx.Dt
		return
	}

	npc.RouteIndex = (npc.RouteIndex + 1) % len(route)
	npc.Pos = ctx.Map.GridToWorld(route[npc.RouteIndex])
	npc.WaitTimer = teleportHold
}

// stepRoute — общий контракт вариантов, ходящих пешком: движение к текущей
// точке маршрута через коллизию, пауза dwell по прибытии, переход к
// следующему индексу по модулю длины маршрута.
func stepRoute(npc *domain.NPCState, ctx *Context, dwell, jitter float64) {
	route := npc.Template.Route
	if len(route) == 0 {
		return
	}

	if npc.WaitTimer > 0 {
		npc.WaitTimer -= ctx.Dt
		return
	}

	target := ctx.Map.GridToWorld(route[npc.RouteIndex])
	if jitter > 0 {
		target = target.Add(npc.WanderOffset)
	}

	if npc.Pos.DistanceTo(target) <= domain.WaypointArriveDist {
		npc.WaitTimer = dwell
		npc.RouteIndex = (npc.RouteIndex + 1) % len(route)
		if dwell > 0 && ctx.Rng.Float64() < npc.Template.GlanceChance {
			npc.Facing = glanceFacing(ctx.Rng, npc.Facing)
		}
		if jitter > 0 {
			npc.WanderOffset = domain.Vec2{
				X: (ctx.Rng.Float64()*2 - 1) * jitter,
				Y: (ctx.Rng.Float64()*2 - 1) * jitter,
			}
		}
		return
	}

	moveToward(npc, ctx.Map, target, domain.PatrolSpeed, ctx.Dt)
}

// glanceFacing — случайный поворот головы на маршрутной точке.
// Всегда отличен от текущего направления, иначе оглядки не видно.
func glanceFacing(rng *rand.Rand, current domain.Facing) domain.Facing {
	all := [4]domain.Facing{
		domain.FacingDown, domain.FacingUp, domain.FacingLeft, domain.FacingRight,
	}
	others := make([]domain.Facing, 0, 3)
	for _, f := range all {
		if f != current {
			others = append(others, f)
		}
	}
	return others[rng.Intn(len(others))]
}

// moveToward делает коллизионно-корректный шаг к цели и поворачивает NPC
// по доминирующей оси движения.
func moveToward(npc *domain.NPCState, m *domain.TileMap, target domain.Vec2, speed, dt float64) {
	delta := target.Sub(npc.Pos)
	dist := delta.Length()
	if dist < 1e-6 {
		return
	}

	step := speed * dt
	if step > dist {
		step = dist
	}
	want := npc.Pos.Add(delta.Scale(step / dist))

	next := systems.ResolveMovement(m, npc.Pos, want, domain.ActorRadius)
	next = systems.ClampToBounds(m, next, domain.ActorRadius)

	npc.Facing = domain.FacingFromVector(next.Sub(npc.Pos), npc.Facing)
	npc.Pos = next
}

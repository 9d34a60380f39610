package actions

import (
	"drifter-server/internal/engine/handlers"
	"drifter-server/pkg/api"
)

// HandlePause замораживает симуляцию. Во время паузы ни тревога, ни
// патрули, ни бой не накапливают время.
func HandlePause(ctx handlers.Context) (handlers.Result, error) {
	ctx.Game.SetPaused(true)
	return handlers.Result{Msg: "Simulation paused", MsgType: "INFO"}, nil
}

// HandleResume снимает паузу.
func HandleResume(ctx handlers.Context) (handlers.Result, error) {
	ctx.Game.SetPaused(false)
	return handlers.Result{Msg: "Simulation resumed", MsgType: "INFO"}, nil
}

// HandleSetNight переключает ночной режим (сокращенная дальность
// обнаружения у NPC).
func HandleSetNight(ctx handlers.Context, p api.NightPayload) (handlers.Result, error) {
	ctx.Game.SetNight(p.Night)
	return handlers.EmptyResult(), nil
}

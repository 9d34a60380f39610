package actions

import (
	"fmt"

	"drifter-server/internal/domain"
	"drifter-server/internal/engine/handlers"
	"drifter-server/pkg/api"
)

// HandleSelectAction выбирает боевое действие игрока.
func HandleSelectAction(ctx handlers.Context, p api.ActionPayload) (handlers.Result, error) {
	action := domain.CombatActionType(p.Action)
	if !domain.IsValidAction(action) {
		return handlers.Result{}, fmt.Errorf("unknown combat action %q", p.Action)
	}
	if err := ctx.Game.Combat().SelectAction(action); err != nil {
		return handlers.Result{}, err
	}
	return handlers.Result{Msg: "Action selected: " + p.Action, MsgType: "COMBAT"}, nil
}

// HandleSelectTarget назначает цель выбранному действию.
func HandleSelectTarget(ctx handlers.Context, p api.TargetPayload) (handlers.Result, error) {
	if err := ctx.Game.Combat().SelectTarget(p.TargetID); err != nil {
		return handlers.Result{}, err
	}
	return handlers.EmptyResult(), nil
}

// HandleClearSelection сбрасывает выбор действия и цели.
func HandleClearSelection(ctx handlers.Context) (handlers.Result, error) {
	ctx.Game.Combat().ClearSelection()
	return handlers.EmptyResult(), nil
}

// HandleMapClick исполняет выбранное перемещение в точку карты.
func HandleMapClick(ctx handlers.Context, p api.PointPayload) (handlers.Result, error) {
	if err := ctx.Game.Combat().MapClick(domain.Vec2{X: p.X, Y: p.Y}); err != nil {
		return handlers.Result{}, err
	}
	return handlers.EmptyResult(), nil
}

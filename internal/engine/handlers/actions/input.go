package actions

import (
	"drifter-server/internal/domain"
	"drifter-server/internal/engine/handlers"
	"drifter-server/pkg/api"
)

// HandleInput сохраняет вектор намерения движения. Применяется каждый
// тик симуляции, пока не придет новый; в бою игнорируется.
func HandleInput(ctx handlers.Context, p api.InputPayload) (handlers.Result, error) {
	ctx.Game.SetInput(domain.Vec2{X: p.Dx, Y: p.Dy})
	return handlers.EmptyResult(), nil
}

package handlers

import (
	"encoding/json"

	"drifter-server/internal/combat"
	"drifter-server/internal/domain"
)

// Game описывает то, что хендлерам нужно от игрового сервиса.
// GameService неявно реализует этот интерфейс.
type Game interface {
	Combat() *combat.Engine
	SetInput(v domain.Vec2)
	SetPaused(paused bool)
	SetNight(night bool)
}

// Context передает хендлеру доступ к состоянию.
type Context struct {
	Game Game
}

// Result - результат выполнения команды. Хендлер не пишет в логи
// напрямую, он возвращает данные.
type Result struct {
	Msg     string // Текст лога
	MsgType string // Тип лога (INFO, COMBAT, ERROR)
}

// HandlerFunc - это контракт для любой команды (INPUT, SELECT_ACTION, etc).
type HandlerFunc func(ctx Context, payload json.RawMessage) (Result, error)

// EmptyResult - вспомогательная функция для пустого успешного ответа
func EmptyResult() Result {
	return Result{}
}

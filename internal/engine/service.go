package engine

import (
	"time"

	"drifter-server/internal/combat"
	"drifter-server/internal/domain"
	"drifter-server/internal/engine/handlers"
	"drifter-server/internal/engine/handlers/actions"
	"drifter-server/internal/network"
	"drifter-server/pkg/api"
	"drifter-server/pkg/content"
	"drifter-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// GameService — внешний водитель симуляции: принимает команды клиентов,
// крутит тики с фиксированной частотой и рассылает слепки через Hub.
// Ядро трогает только горутина игрового цикла.
type GameService struct {
	Sim *Simulation
	cfg Config

	CommandChan chan domain.InternalCommand
	Hub         *network.Broadcaster

	handlers map[domain.CommandType]handlers.HandlerFunc

	// Вектор намерения движения игрока. Живет в сервисе, а не в ядре:
	// ядро получает его аргументом каждого тика.
	input domain.Vec2

	log *logrus.Entry
}

func NewService(cfg Config, bundle *content.Bundle) (*GameService, error) {
	sim, err := NewSimulation(cfg, bundle)
	if err != nil {
		return nil, err
	}

	s := &GameService{
		Sim:         sim,
		cfg:         cfg,
		CommandChan: make(chan domain.InternalCommand, 100),
		Hub:         network.NewBroadcaster(),
		handlers:    make(map[domain.CommandType]handlers.HandlerFunc),
		log:         logger.WithComponent("game_service"),
	}
	s.registerHandlers()
	return s, nil
}

func (s *GameService) registerHandlers() {
	s.handlers[domain.CmdInput] = handlers.WithPayload(actions.HandleInput)
	s.handlers[domain.CmdSelectAction] = handlers.WithPayload(actions.HandleSelectAction)
	s.handlers[domain.CmdSelectTarget] = handlers.WithPayload(actions.HandleSelectTarget)
	s.handlers[domain.CmdClearSelection] = handlers.WithEmptyPayload(actions.HandleClearSelection)
	s.handlers[domain.CmdMapClick] = handlers.WithPayload(actions.HandleMapClick)
	s.handlers[domain.CmdPause] = handlers.WithEmptyPayload(actions.HandlePause)
	s.handlers[domain.CmdResume] = handlers.WithEmptyPayload(actions.HandleResume)
	s.handlers[domain.CmdSetNight] = handlers.WithPayload(actions.HandleSetNight)
}

func (s *GameService) Start() {
	go s.RunGameLoop()
}

// ProcessCommand принимает команду от внешнего мира (WebSocket).
func (s *GameService) ProcessCommand(externalCmd api.ClientCommand) {
	cmdType := domain.ParseCommand(externalCmd.Action)
	if cmdType == domain.CmdUnknown {
		s.log.WithField("action", externalCmd.Action).Warn("Unknown command")
		return
	}

	s.CommandChan <- domain.InternalCommand{
		Type:    cmdType,
		Session: externalCmd.Session,
		Payload: externalCmd.Payload,
	}
}

// RunGameLoop — игровой цикл: фиксированная частота тиков, между тиками
// выгребаются накопившиеся команды.
func (s *GameService) RunGameLoop() {
	interval := time.Second / time.Duration(s.cfg.TickRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.log.WithField("tick_rate", s.cfg.TickRate).Info("Game loop started")

	last := time.Now()
	for now := range ticker.C {
		s.drainCommands()

		dt := now.Sub(last).Seconds()
		last = now

		s.Sim.Tick(dt, s.input)

		if s.Hub.SubscriberCount() > 0 {
			s.Hub.Broadcast(*s.Sim.BuildSnapshot(false))
		}
	}
}

// drainCommands исполняет все команды, накопившиеся к этому тику.
func (s *GameService) drainCommands() {
	for {
		select {
		case cmd := <-s.CommandChan:
			s.executeCommand(cmd)
		default:
			return
		}
	}
}

// combatCommands мутируют боевой движок. Пауза замораживает бой наравне
// с тревогой и патрулями, поэтому на паузе эти команды отбрасываются.
var combatCommands = map[domain.CommandType]bool{
	domain.CmdSelectAction:   true,
	domain.CmdSelectTarget:   true,
	domain.CmdClearSelection: true,
	domain.CmdMapClick:       true,
}

// executeCommand выполняет хендлер; INIT обрабатывается отдельно, потому
// что его ответ адресный (полный слепок с картой).
func (s *GameService) executeCommand(cmd domain.InternalCommand) {
	if cmd.Type == domain.CmdInit {
		s.Hub.SendTo(cmd.Session, *s.Sim.BuildSnapshot(true))
		return
	}

	if s.Sim.Paused() && combatCommands[cmd.Type] {
		s.log.WithFields(logrus.Fields{
			"command": cmd.Type,
			"session": cmd.Session,
		}).Debug("Combat command ignored while paused")
		return
	}

	handler, ok := s.handlers[cmd.Type]
	if !ok {
		return
	}

	result, err := handler(handlers.Context{Game: s}, cmd.Payload)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"command": cmd.Type,
			"session": cmd.Session,
		}).WithError(err).Warn("Command rejected")
		return
	}
	if result.Msg != "" {
		s.log.WithFields(logrus.Fields{
			"command": cmd.Type,
			"type":    result.MsgType,
		}).Debug(result.Msg)
	}
}

// --- handlers.Game ---

func (s *GameService) Combat() *combat.Engine {
	return s.Sim.Combat()
}

func (s *GameService) SetInput(v domain.Vec2) {
	s.input = v
}

func (s *GameService) SetPaused(paused bool) {
	s.Sim.SetPaused(paused)
}

func (s *GameService) SetNight(night bool) {
	s.Sim.SetNight(night)
}

package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"drifter-server/internal/engine"
	"drifter-server/internal/server"
	"drifter-server/internal/version"
	"drifter-server/pkg/content"
	"drifter-server/pkg/logger"
	"drifter-server/pkg/utils"
)

func init() {
	logger.Init()
}

func main() {
	// 1. Парсинг конфигурации
	var seed int64
	var world string
	var night bool
	flag.Int64Var(&seed, "seed", 0, "Simulation seed (0 for random)")
	flag.StringVar(&world, "world", "", "World name, hashed into a deterministic seed")
	flag.BoolVar(&night, "night", false, "Start in night mode (reduced NPC detection range)")
	flag.Parse()

	logger.Log.Info("Starting Drifter server...")
	logger.Log.Info(version.String())

	cfg := engine.NewConfig()
	cfg.Night = night
	switch {
	case seed != 0:
		cfg.Seed = seed
		logger.Log.Infof("Using explicit seed: %d", seed)
	case world != "":
		cfg.Seed = utils.StringToSeed(world)
		logger.Log.Infof("Using world %q (seed %d)", world, cfg.Seed)
	default:
		logger.Log.Infof("Using random seed: %d", cfg.Seed)
	}

	port := os.Getenv("DRIFTER_PORT")
	if port == "" {
		port = "8080"
	}

	// 2. Инициализация ядра
	gameService, err := engine.NewService(cfg, content.Demo())
	if err != nil {
		logger.Log.Fatal("Failed to build simulation:", err)
	}
	gameService.Start()

	// Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// 3. Запуск сервера
	srv := server.New(gameService, port)

	go func() {
		if err := srv.Run(); err != nil {
			logger.Log.Fatal("Server start error:", err)
		}
	}()

	<-stop
	logger.Log.Info("Shutting down...")
}

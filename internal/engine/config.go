package engine

import "time"

// Config хранит параметры запуска симуляции.
type Config struct {
	// Seed - мастер-зерно. Определяет блуждание патрулей, броски боя
	// и все прочие случайности симуляции.
	Seed int64

	// TickRate - частота серверного тика, Гц.
	TickRate int

	// Night включает ночной режим (сокращенная дальность обнаружения).
	Night bool
}

// NewConfig создает конфиг по умолчанию (случайный сид).
func NewConfig() Config {
	return Config{
		Seed:     time.Now().UnixNano(),
		TickRate: 30,
	}
}

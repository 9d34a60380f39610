package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log — глобальный логгер симуляции. Инициализируется один раз в main
// (или в TestMain) через Init().
var Log *logrus.Logger

// Init настраивает глобальный логгер.
// Уровень берется из LOG_LEVEL (по умолчанию "info"),
// формат — из LOG_FORMAT ("json" для продакшена, иначе текст).
func Init() {
	Log = logrus.New()

	logLevel, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		logLevel = "info"
	}
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	Log.SetOutput(os.Stdout)
}

// WithComponent возвращает entry с меткой подсистемы.
// Подсистемы ядра (alert, patrol, combat, physics) логируют через него.
func WithComponent(name string) *logrus.Entry {
	return Log.WithField("component", name)
}

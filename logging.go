package main

import (
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// setupLogging configures the process logger: level from LOG_LEVEL, and a
// size-rotated log file when LOG_FILE is set (stderr otherwise).
func setupLogging() {
	level := logrus.InfoLevel
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		if parsed, err := logrus.ParseLevel(strings.ToLower(v)); err == nil {
			level = parsed
		}
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	if path := os.Getenv("LOG_FILE"); path != "" {
		logrus.SetOutput(&lumberjack.Logger{
			Filename:   path,
			MaxSize:    100, // MB
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		})
	}
}

package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"oddscap/pkg/capture"
	"oddscap/pkg/delivery"
	"oddscap/pkg/ocr"
	"oddscap/pkg/odds"
	"oddscap/pkg/storage"
	"oddscap/pkg/telegram"
)

var (
	svc           *capture.Service
	tg            *telegram.Client
	sender        *delivery.Sender
	webhookSecret string
)

func main() {
	// Auto-load ./.env if present before reading vars; real env wins.
	_ = godotenv.Load()
	setupLogging()

	// Lightweight migrate command: `./oddscap migrate` runs AutoMigrate and
	// exits. Useful for CI or manual DB setup.
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		initDB()
		fmt.Println("migration completed")
		return
	}

	initDB()

	if path := os.Getenv("PLAYERS_FILE"); path != "" {
		if err := odds.LoadPlayersFile(path); err != nil {
			logrus.WithError(err).Fatal("failed to load players file")
		}
		logrus.WithField("path", path).Info("player reference list loaded")
	}

	svc = capture.NewService(
		storage.NewBatchStore(db),
		storage.NewDiskBlobStore(uploadBaseDir()),
		buildRecognizer(),
	)

	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		logrus.Fatal("TELEGRAM_BOT_TOKEN is not set")
	}
	var err error
	tg, err = telegram.NewClient(token, parseAllowedUsers(os.Getenv("AUTHORIZED_USER_IDS")))
	if err != nil {
		logrus.WithError(err).Fatal("failed to create telegram client")
	}

	sender = delivery.NewSender(os.Getenv("DELIVERY_URL"), os.Getenv("DELIVERY_SECRET"))
	webhookSecret = os.Getenv("WEBHOOK_SECRET")

	r := gin.Default()
	setupRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	logrus.WithField("port", port).Info("starting odds capture service")
	if err := r.Run(":" + port); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}

// buildRecognizer picks the recognition backend: Tesseract by default, the
// placeholder-only Noop when OCR_BACKEND=none (e.g. hosts without the
// tesseract libraries). Both honor the same Recognize contract.
func buildRecognizer() ocr.Recognizer {
	if strings.EqualFold(os.Getenv("OCR_BACKEND"), "none") {
		logrus.Warn("OCR backend disabled, extraction will produce placeholder fragments only")
		return ocr.Noop{}
	}
	return ocr.NewTesseract(os.Getenv("OCR_LANGUAGES"))
}

func parseAllowedUsers(csv string) []int64 {
	var out []int64
	for _, part := range strings.Split(csv, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			logrus.Warnf("ignoring bad user id %q in AUTHORIZED_USER_IDS", part)
			continue
		}
		out = append(out, id)
	}
	return out
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"oddscap/models"
	"oddscap/pkg/capture"
	"oddscap/pkg/delivery"
	"oddscap/pkg/odds"
)

func setupRoutes(r *gin.Engine) {
	r.POST("/api/webhook", webhookHandler)
	r.GET("/api/health", healthHandler)
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "odds capture bot",
		"version": "1.0.0",
	})
}

// webhookHandler receives Telegram updates. The update is acknowledged
// immediately and handled in the background, like any long-poll bot would.
func webhookHandler(c *gin.Context) {
	if webhookSecret != "" && c.GetHeader("X-Telegram-Bot-Api-Secret-Token") != webhookSecret {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "bad secret token"})
		return
	}
	var update tgbotapi.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed update"})
		return
	}
	go processUpdate(update)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func processUpdate(update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}
	if !tg.Authorized(msg.From.ID) {
		logrus.WithField("user", msg.From.ID).Debug("ignoring update from unauthorized user")
		return
	}
	chatID := msg.Chat.ID
	switch {
	case msg.Text != "":
		handleCommand(chatID, msg.Text)
	case len(msg.Photo) > 0:
		// Telegram sends multiple sizes; the last is the largest.
		handleImage(chatID, msg.Photo[len(msg.Photo)-1].FileID)
	case msg.Document != nil:
		handleImage(chatID, msg.Document.FileID)
	}
}

func handleCommand(chatID int64, text string) {
	text = strings.TrimSpace(text)
	cmd := strings.ToLower(text)
	switch {
	case strings.HasPrefix(cmd, "/new_match"):
		handleNewMatch(chatID, strings.TrimSpace(text[len("/new_match"):]))
	case cmd == "/process":
		handleProcess(chatID)
	case cmd == "/verify":
		handleVerify(chatID)
	case cmd == "/send":
		handleSend(chatID)
	case cmd == "/clear":
		handleClear(chatID)
	case cmd == "/status":
		handleStatus(chatID)
	default:
		reply(chatID, helpText)
	}
}

const helpText = `AVAILABLE COMMANDS:

/new_match Team1 vs Team2 - start a new match
/process - run OCR over the current captures
/verify - review extracted data
/send - deliver to the predictions bot
/clear - discard the current batch
/status - show batch status

TYPICAL FLOW:
1. /new_match Real Madrid vs Barcelona
2. upload up to 10 odds captures (send as file for best OCR quality)
3. /process
4. /verify
5. /send`

func handleNewMatch(chatID int64, spec string) {
	if spec == "" {
		reply(chatID, "Match is missing.\nExample: /new_match Atletico Madrid vs Real Madrid")
		return
	}
	info, err := models.ParseMatchSpec(spec)
	if err != nil {
		reply(chatID, fmt.Sprintf("Could not identify the match: %q\nExpected format: /new_match Home Team vs Away Team", spec))
		return
	}
	if _, err := svc.Start(chatID, info); err != nil {
		logrus.WithError(err).Error("start batch failed")
		reply(chatID, "Error starting match: "+err.Error())
		return
	}
	reply(chatID, fmt.Sprintf(
		"NEW MATCH STARTED\n\n%s\n\nYou can now upload up to %d odds captures.\nSend as 'file' for best OCR quality.\n\nStatus: 0/%d captures received",
		info.Title(), capture.Capacity, capture.Capacity))
}

func handleImage(chatID int64, fileID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	data, err := tg.DownloadFile(ctx, fileID)
	if err != nil {
		logrus.WithError(err).WithField("file", fileID).Error("file download failed")
		reply(chatID, "Could not download the capture, please resend it.")
		return
	}
	batch, err := svc.AddImage(chatID, fileID, data)
	if err != nil {
		reply(chatID, userMessage(err))
		return
	}
	reply(chatID, fmt.Sprintf("Capture %d/%d received.", len(batch.Images), capture.Capacity))
}

func handleProcess(chatID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	batch, err := svc.Process(ctx, chatID)
	if err != nil {
		reply(chatID, userMessage(err))
		return
	}
	rec, _ := batch.ConsolidatedOdds()
	if rec.Empty() {
		reply(chatID, "PROCESSING DONE\n\nNo odds could be extracted from the captures. Try resending them as files, or /clear and restart.")
		return
	}
	reply(chatID, "PROCESSING DONE\n\n"+odds.Summary(batch.Match().Title(), rec)+"\n\nUse /verify for the full breakdown, /send to deliver.")
}

func handleVerify(chatID int64) {
	batch, err := svc.Current(chatID)
	if err != nil {
		reply(chatID, userMessage(err))
		return
	}
	if batch == nil {
		reply(chatID, userMessage(capture.ErrNoBatch))
		return
	}
	rec, ok := batch.ConsolidatedOdds()
	if !ok {
		reply(chatID, "Nothing extracted yet. Run /process first.")
		return
	}
	reply(chatID, odds.Detailed(batch.Match().Title(), rec))
}

func handleSend(chatID int64) {
	batch, err := svc.Current(chatID)
	if err != nil {
		reply(chatID, userMessage(err))
		return
	}
	if batch == nil {
		reply(chatID, userMessage(capture.ErrNoBatch))
		return
	}
	rec, ok := batch.ConsolidatedOdds()
	if !ok || batch.State != models.BatchProcessed {
		reply(chatID, "Batch is not processed yet. Run /process first.")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
	defer cancel()
	payload := delivery.Payload{
		Match:     batch.Match(),
		Odds:      rec,
		Summary:   odds.Summary(batch.Match().Title(), rec),
		Timestamp: time.Now().UTC(),
	}
	if err := sender.Send(ctx, payload); err != nil {
		logrus.WithError(err).Error("delivery failed")
		reply(chatID, "Delivery failed, the batch was kept. Retry with /send.")
		return
	}
	if _, err := svc.MarkSent(chatID); err != nil {
		reply(chatID, userMessage(err))
		return
	}
	reply(chatID, "Data delivered to the predictions bot. The batch is now closed.")
}

func handleClear(chatID int64) {
	if err := svc.Clear(chatID); err != nil {
		logrus.WithError(err).Error("clear batch failed")
		reply(chatID, "Error clearing the batch: "+err.Error())
		return
	}
	reply(chatID, "Current batch discarded. Start a new one with /new_match.")
}

func handleStatus(chatID int64) {
	batch, err := svc.Current(chatID)
	if err != nil {
		reply(chatID, userMessage(err))
		return
	}
	if batch == nil {
		reply(chatID, "No open batch. Start one with /new_match Team1 vs Team2.")
		return
	}
	status := fmt.Sprintf("%s\nState: %s\nCaptures: %d/%d received",
		batch.Match().Title(), batch.State, len(batch.Images), capture.Capacity)
	if batch.ProcessedAt != nil {
		status += "\nProcessed at: " + batch.ProcessedAt.Format(time.RFC3339)
	}
	reply(chatID, status)
}

// userMessage maps pipeline errors to operator-facing replies.
func userMessage(err error) string {
	switch {
	case errors.Is(err, capture.ErrNoBatch):
		return "No open batch. Start one with /new_match Team1 vs Team2."
	case errors.Is(err, capture.ErrNoImages):
		return "The batch has no captures yet. Upload at least one screenshot first."
	case errors.Is(err, capture.ErrCapacityExceeded):
		return fmt.Sprintf("Batch is full (%d captures). /process it or /clear to restart.", capture.Capacity)
	case errors.Is(err, capture.ErrNotProcessed):
		return "Batch is not processed yet. Run /process first."
	case errors.Is(err, capture.ErrBatchSent):
		return "This batch was already sent and cannot change. Start a new one with /new_match."
	default:
		return "Internal error: " + err.Error()
	}
}

func reply(chatID int64, text string) {
	if err := tg.SendMessage(chatID, text); err != nil {
		logrus.WithError(err).WithField("chat", chatID).Error("send reply failed")
	}
}

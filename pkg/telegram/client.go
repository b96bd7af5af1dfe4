package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// Client wraps the bot API for the two things the capture flow needs from the
// transport: replying to the operator and downloading attached screenshots.
type Client struct {
	bot     *tgbotapi.BotAPI
	allowed map[int64]bool
	http    *http.Client
}

func NewClient(token string, allowedUserIDs []int64) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}
	allowed := map[int64]bool{}
	for _, id := range allowedUserIDs {
		allowed[id] = true
	}
	if len(allowed) == 0 {
		logrus.Warn("AUTHORIZED_USER_IDS not set, accepting updates from any user")
	}
	logrus.WithField("account", bot.Self.UserName).Info("telegram bot authorized")
	return &Client{
		bot:     bot,
		allowed: allowed,
		http:    &http.Client{Timeout: 60 * time.Second},
	}, nil
}

// Authorized reports whether updates from this user are acted on. An empty
// allowlist accepts everyone.
func (c *Client) Authorized(userID int64) bool {
	if len(c.allowed) == 0 {
		return true
	}
	return c.allowed[userID]
}

// SendMessage sends a plain-text reply to the chat.
func (c *Client) SendMessage(chatID int64, text string) error {
	if _, err := c.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// DownloadFile fetches the raw bytes of an attached photo or document by its
// transport file ID.
func (c *Client) DownloadFile(ctx context.Context, fileID string) ([]byte, error) {
	url, err := c.bot.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("resolve file %s: %w", fileID, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file %s: %w", fileID, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file %s: status %d", fileID, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

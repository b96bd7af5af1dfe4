package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"oddscap/models"
	"oddscap/pkg/odds"
)

// ErrDeliveryFailed is transient: the batch stays PROCESSED and the handoff
// may be retried without re-running extraction.
var ErrDeliveryFailed = errors.New("delivery failed")

// Payload is the consolidated result handed to the downstream consumer.
type Payload struct {
	Match     models.MatchInfo `json:"match_info"`
	Odds      odds.Record      `json:"odds"`
	Summary   string           `json:"summary"`
	Timestamp time.Time        `json:"timestamp"`
}

// Sender posts payloads to the downstream webhook, authenticated with a
// short-lived HS256 bearer token derived from the shared secret.
type Sender struct {
	url    string
	secret []byte
	client *http.Client
}

const tokenTTL = 5 * time.Minute

func NewSender(url, secret string) *Sender {
	return &Sender{
		url:    url,
		secret: []byte(secret),
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Send delivers one payload. Any failure (missing config, transport error,
// non-2xx response) comes back wrapped in ErrDeliveryFailed.
func (s *Sender) Send(ctx context.Context, p Payload) error {
	if s.url == "" {
		return fmt.Errorf("%w: delivery URL not configured", ErrDeliveryFailed)
	}
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	token, err := s.bearerToken()
	if err != nil {
		return fmt.Errorf("sign delivery token: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d", ErrDeliveryFailed, resp.StatusCode)
	}
	return nil
}

func (s *Sender) bearerToken() (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    "oddscap",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

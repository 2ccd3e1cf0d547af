package performanceclient

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/avolkov/ozon-economics-api/internal/config"
	"github.com/avolkov/ozon-economics-api/pkg/throttle"
)

const tokenPath = "/api/client/token"

type tokenRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	GrantType    string `json:"grant_type"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// TokenManager caches the Performance API client-credentials token and
// refreshes it one minute before expiry.
type TokenManager struct {
	httpClient *http.Client
	config     *config.Config
	throttle   *throttle.Throttle

	mu     sync.Mutex
	token  string
	expiry time.Time
	now    func() time.Time
}

func NewTokenManager(cfg *config.Config, throttle *throttle.Throttle) *TokenManager {
	return &TokenManager{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		config:   cfg,
		throttle: throttle,
		now:      time.Now,
	}
}

func (m *TokenManager) Token(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token != "" && m.now().Before(m.expiry) {
		return m.token, nil
	}

	m.throttle.Wait()

	payload, err := json.Marshal(tokenRequest{
		ClientID:     m.config.Ozon.PerformanceID,
		ClientSecret: m.config.Ozon.PerformanceKey,
		GrantType:    "client_credentials",
	})
	if err != nil {
		return "", errors.Wrap(err, "marshaling token request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.config.Ozon.PerformanceURL+tokenPath, bytes.NewReader(payload))
	if err != nil {
		return "", errors.Wrap(err, "creating token request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "executing token request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", errors.Errorf("token endpoint returned %s: %s", resp.Status, string(data))
	}

	var response tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", errors.Wrap(err, "decoding token response")
	}

	m.token = response.AccessToken
	m.expiry = m.now().Add(time.Duration(response.ExpiresIn)*time.Second - time.Minute)

	return m.token, nil
}

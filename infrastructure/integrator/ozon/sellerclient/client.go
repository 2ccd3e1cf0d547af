package sellerclient

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	ozondomain "github.com/avolkov/ozon-economics-api/infrastructure/integrator/ozon/domain"
	"github.com/avolkov/ozon-economics-api/internal/config"
	"github.com/avolkov/ozon-economics-api/pkg/throttle"
	"github.com/avolkov/ozon-economics-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Client interface {
	ListPostings(ctx context.Context, req ozondomain.PostingListRequest) (*ozondomain.PostingListResponse, error)
	ListTransactions(ctx context.Context, req ozondomain.TransactionListRequest) (*ozondomain.TransactionListResponse, error)
}

type SellerClient struct {
	httpClient *http.Client
	config     *config.Config
	throttle   *throttle.Throttle
}

func NewClient(cfg *config.Config, throttle *throttle.Throttle) Client {
	return &SellerClient{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		config:   cfg,
		throttle: throttle,
	}
}

// post sends a Seller API request with the Client-Id/Api-Key header pair,
// waiting on the shared throttle first.
func (c *SellerClient) post(ctx context.Context, path string, body interface{}, out interface{}) error {
	c.throttle.Wait()

	payload, err := json.Marshal(body)
	if err != nil {
		return errors.Wrap(err, "marshaling request body")
	}

	if logrus.IsLevelEnabled(logrus.TraceLevel) {
		logrus.WithField("path", path).Trace("seller api request: ", utils.PrettyJson(payload))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Ozon.SellerURL+path, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(err, "creating request")
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Client-Id", c.config.Ozon.ClientID)
	req.Header.Set("Api-Key", c.config.Ozon.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "executing request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return errors.Errorf("seller api %s returned %s: %s", path, resp.Status, string(data))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "decoding response")
	}

	return nil
}

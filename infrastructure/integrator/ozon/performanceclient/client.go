package performanceclient

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
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
	GetDailyStatistics(ctx context.Context, dateFrom, dateTo string) (*ozondomain.DailyStatisticsResponse, error)
	GetStatistics(ctx context.Context, req ozondomain.StatisticsRequest) (ozondomain.StatisticsResponse, error)
}

type PerformanceClient struct {
	httpClient   *http.Client
	config       *config.Config
	throttle     *throttle.Throttle
	tokenManager *TokenManager
}

func NewClient(cfg *config.Config, throttle *throttle.Throttle, tokenManager *TokenManager) Client {
	return &PerformanceClient{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		config:       cfg,
		throttle:     throttle,
		tokenManager: tokenManager,
	}
}

func (c *PerformanceClient) GetDailyStatistics(ctx context.Context, dateFrom, dateTo string) (*ozondomain.DailyStatisticsResponse, error) {
	params := url.Values{}
	params.Set("dateFrom", dateFrom)
	params.Set("dateTo", dateTo)

	response := &ozondomain.DailyStatisticsResponse{}
	if err := c.get(ctx, "/api/client/statistics/daily/json", params, response); err != nil {
		return nil, err
	}

	return response, nil
}

func (c *PerformanceClient) GetStatistics(ctx context.Context, req ozondomain.StatisticsRequest) (ozondomain.StatisticsResponse, error) {
	response := ozondomain.StatisticsResponse{}
	if err := c.postJSON(ctx, "/api/client/statistics/json", req, &response); err != nil {
		return nil, err
	}

	return response, nil
}

func (c *PerformanceClient) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.Ozon.PerformanceURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return errors.Wrap(err, "creating request")
	}

	return c.do(req, out)
}

func (c *PerformanceClient) postJSON(ctx context.Context, path string, body interface{}, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return errors.Wrap(err, "marshaling request body")
	}

	if logrus.IsLevelEnabled(logrus.TraceLevel) {
		logrus.WithField("path", path).Trace("performance api request: ", utils.PrettyJson(payload))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Ozon.PerformanceURL+path, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(err, "creating request")
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

// do waits on the shared throttle, attaches a fresh bearer token and decodes
// the response.
func (c *PerformanceClient) do(req *http.Request, out interface{}) error {
	c.throttle.Wait()

	token, err := c.tokenManager.Token(req.Context())
	if err != nil {
		return errors.Wrap(err, "obtaining access token")
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "executing request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return errors.Errorf("performance api %s returned %s: %s", req.URL.Path, resp.Status, string(data))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "decoding response")
	}

	return nil
}

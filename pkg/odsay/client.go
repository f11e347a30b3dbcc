package odsay

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/pkg/errors"
	"github.com/travigo/transitplanner/pkg/util"
)

const (
	defaultBaseURL    = "https://api.odsay.com/v1/api"
	defaultTimeout    = 12 * time.Second
	defaultMaxRetries = 2

	userAgent = "travigo-transitplanner/1.0"
)

// Client talks to the ODsay public transport API.
// Every call is bounded by Timeout, including retries.
type Client struct {
	APIKey  string
	BaseURL string

	Timeout    time.Duration
	MaxRetries uint64

	HTTPClient *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		APIKey:     apiKey,
		BaseURL:    defaultBaseURL,
		Timeout:    defaultTimeout,
		MaxRetries: defaultMaxRetries,
		HTTPClient: &http.Client{},
	}
}

func NewClientFromEnvironment() *Client {
	env := util.GetEnvironmentVariables()

	client := NewClient(env["TRAVIGO_ODSAY_API_KEY"])

	if env["TRAVIGO_ODSAY_BASE_URL"] != "" {
		client.BaseURL = env["TRAVIGO_ODSAY_BASE_URL"]
	}
	client.Timeout = util.GetEnvironmentDuration("TRAVIGO_ODSAY_TIMEOUT", defaultTimeout)

	return client
}

func isTransientStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	params.Set("apiKey", c.APIKey)
	requestURL := fmt.Sprintf("%s/%s?%s", c.BaseURL, endpoint, params.Encode())

	retryBackoff := backoff.NewExponentialBackOff()
	retryBackoff.InitialInterval = 200 * time.Millisecond

	return backoff.RetryWithData(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		req.Header.Set("User-Agent", userAgent)

		resp, err := c.HTTPClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if isTransientStatus(resp.StatusCode) {
			return nil, errors.Errorf("%s transient status code %d", endpoint, resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			return nil, backoff.Permanent(errors.Errorf("%s unexpected status code %d", endpoint, resp.StatusCode))
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s response body", endpoint)
		}

		return body, nil
	}, backoff.WithContext(backoff.WithMaxRetries(retryBackoff, c.MaxRetries), ctx))
}

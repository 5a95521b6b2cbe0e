package apifootball

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/AboladeOluwaseun/epl-stats-bot/internal/platform/logging"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/platform/resilience"
	"github.com/AboladeOluwaseun/epl-stats-bot/internal/usecase"
	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL           = "https://v3.football.api-sports.io"
	headerAPIKey             = "x-apisports-key"
	headerRequestsRemaining  = "x-ratelimit-requests-remaining"
	defaultMaxRetries        = 3
	defaultBaseBackoff       = time.Second
	maxBackoff               = 30 * time.Second
	defaultRateLimitCooldown = 60 * time.Second
	defaultMaxRateLimitWaits = 5
	maxResponseBytes         = 16 << 20

	// NoRetries in ClientConfig.MaxRetries disables retrying transient failures.
	NoRetries = -1
)

var (
	errProviderTransient   = crerr.New("football api transient failure")
	errProviderRateLimited = crerr.New("football api rate limited")
	errProviderRejected    = crerr.New("football api rejected request")
)

type ClientConfig struct {
	HTTPClient        *http.Client
	BaseURL           string
	APIKey            string
	Timeout           time.Duration
	// MaxRetries of 0 uses the default (3); NoRetries disables retrying.
	MaxRetries        int
	BaseBackoff       time.Duration
	RateLimitCooldown time.Duration
	MaxRateLimitWaits int
	// ThrottleDelay is slept after a success that leaves at most one request
	// in the provider's quota window.
	ThrottleDelay time.Duration
	// RequestsPerMinute <= 0 disables client-side pacing.
	RequestsPerMinute int
	Logger            *logging.Logger
	CircuitBreaker    resilience.CircuitBreakerConfig
	Sleep             resilience.Sleeper
}

type Client struct {
	httpClient        *http.Client
	baseURL           string
	apiKey            string
	maxRetries        int
	baseBackoff       time.Duration
	rateLimitCooldown time.Duration
	maxRateLimitWaits int
	throttleDelay     time.Duration
	limiter           *rate.Limiter
	logger            *logging.Logger
	breaker           *resilience.CircuitBreaker
	flight            resilience.SingleFlight
	sleep             resilience.Sleeper
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 30 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	maxRetries := cfg.MaxRetries
	switch {
	case maxRetries == 0:
		maxRetries = defaultMaxRetries
	case maxRetries < 0:
		maxRetries = 0
	}
	baseBackoff := cfg.BaseBackoff
	if baseBackoff <= 0 {
		baseBackoff = defaultBaseBackoff
	}
	cooldown := cfg.RateLimitCooldown
	if cooldown <= 0 {
		cooldown = defaultRateLimitCooldown
	}
	maxWaits := cfg.MaxRateLimitWaits
	if maxWaits <= 0 {
		maxWaits = defaultMaxRateLimitWaits
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)), 1)
	}

	sleep := cfg.Sleep
	if sleep == nil {
		sleep = resilience.ClockSleeper(nil)
	}

	return &Client{
		httpClient:        httpClient,
		baseURL:           baseURL,
		apiKey:            strings.TrimSpace(cfg.APIKey),
		maxRetries:        maxRetries,
		baseBackoff:       baseBackoff,
		rateLimitCooldown: cooldown,
		maxRateLimitWaits: maxWaits,
		throttleDelay:     cfg.ThrottleDelay,
		limiter:           limiter,
		logger:            logger.Named("apifootball"),
		breaker:           resilience.NewCircuitBreakerFromConfig(cfg.CircuitBreaker),
		sleep:             sleep,
	}
}

// Get requests endpoint with params. Any returned error is marked with
// usecase.ErrProviderFailure.
func (c *Client) Get(ctx context.Context, endpoint string, params map[string]string) (usecase.APIResponse, error) {
	if err := c.breaker.Allow(); err != nil {
		c.logger.WarnContext(ctx, "football api circuit breaker rejected request", "endpoint", endpoint, "state", c.breaker.State())
		return usecase.APIResponse{}, crerr.Mark(
			fmt.Errorf("%w: football data provider is temporarily unavailable", usecase.ErrDependencyUnavailable),
			usecase.ErrProviderFailure,
		)
	}

	fullURL, key := c.buildURL(endpoint, params)
	out, err, _ := c.flight.DoContext(ctx, key, func() (any, error) {
		resp, reqErr := c.execute(ctx, endpoint, fullURL)
		if reqErr != nil && isCircuitFailure(reqErr) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
		return resp, reqErr
	})
	if err != nil {
		return usecase.APIResponse{}, crerr.Mark(err, usecase.ErrProviderFailure)
	}

	resp, ok := out.(usecase.APIResponse)
	if !ok {
		return usecase.APIResponse{}, crerr.Mark(fmt.Errorf("unexpected response type %T", out), usecase.ErrProviderFailure)
	}
	resp.Params = copyParams(params)
	return resp, nil
}

func (c *Client) buildURL(endpoint string, params map[string]string) (string, string) {
	values := url.Values{}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		values.Set(k, params[k])
	}

	path := "/" + strings.TrimLeft(endpoint, "/")
	fullURL := c.baseURL + path
	encoded := values.Encode()
	if encoded != "" {
		fullURL += "?" + encoded
	}
	return fullURL, path + "?" + encoded
}

type outcome int

const (
	outcomeOK outcome = iota
	outcomeRateLimited
	outcomeTransient
	outcomeFatal
)

type attemptResult struct {
	outcome  outcome
	response usecase.APIResponse
	err      error
}

func (c *Client) execute(ctx context.Context, endpoint, fullURL string) (usecase.APIResponse, error) {
	retries := 0
	rateWaits := 0
	for {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return usecase.APIResponse{}, fmt.Errorf("wait for request slot: %w", err)
			}
		}

		res := c.attempt(ctx, endpoint, fullURL)
		switch res.outcome {
		case outcomeOK:
			c.throttleIfExhausted(ctx, endpoint, res.response.RateRemaining)
			return res.response, nil

		case outcomeRateLimited:
			rateWaits++
			if rateWaits > c.maxRateLimitWaits {
				return usecase.APIResponse{}, crerr.Wrapf(res.err, "gave up after %d rate limit cooldowns", c.maxRateLimitWaits)
			}
			c.logger.WarnContext(ctx, "football api rate limited, cooling down",
				"endpoint", endpoint,
				"cooldown", c.rateLimitCooldown,
				"wait", rateWaits,
			)
			if err := c.sleep(ctx, c.rateLimitCooldown); err != nil {
				return usecase.APIResponse{}, err
			}

		case outcomeTransient:
			if retries >= c.maxRetries {
				c.logger.WarnContext(ctx, "football api request failed", "url", fullURL, "retries", retries, "error", res.err)
				return usecase.APIResponse{}, res.err
			}
			wait := resilience.ExponentialBackoff(c.baseBackoff, retries, maxBackoff)
			retries++
			c.logger.WarnContext(ctx, "football api transient failure, retrying",
				"endpoint", endpoint,
				"attempt", retries,
				"backoff", wait,
				"error", res.err,
			)
			if err := c.sleep(ctx, wait); err != nil {
				return usecase.APIResponse{}, err
			}

		default:
			c.logger.WarnContext(ctx, "football api request rejected", "url", fullURL, "error", res.err)
			return usecase.APIResponse{}, res.err
		}
	}
}

func (c *Client) attempt(ctx context.Context, endpoint, fullURL string) attemptResult {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return attemptResult{outcome: outcomeFatal, err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set(headerAPIKey, c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return attemptResult{outcome: outcomeFatal, err: ctx.Err()}
		}
		return attemptResult{
			outcome: outcomeTransient,
			err:     fmt.Errorf("%w: send request: %s", errProviderTransient, sanitizeSensitiveText(err.Error(), c.apiKey)),
		}
	}
	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	_ = resp.Body.Close()
	if readErr != nil {
		return attemptResult{outcome: outcomeTransient, err: fmt.Errorf("%w: read response body: %v", errProviderTransient, readErr)}
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return attemptResult{outcome: outcomeRateLimited, err: fmt.Errorf("%w: status=429", errProviderRateLimited)}
	case resp.StatusCode >= http.StatusInternalServerError:
		return attemptResult{
			outcome: outcomeTransient,
			err:     fmt.Errorf("%w: provider status=%d body=%s", errProviderTransient, resp.StatusCode, abbreviateBody(raw)),
		}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return attemptResult{
			outcome: outcomeFatal,
			err:     fmt.Errorf("%w: provider status=%d body=%s", errProviderRejected, resp.StatusCode, abbreviateBody(raw)),
		}
	}

	var env envelope
	if err := sonic.Unmarshal(raw, &env); err != nil {
		return attemptResult{outcome: outcomeTransient, err: fmt.Errorf("%w: decode provider payload: %v", errProviderTransient, err)}
	}

	if messages, rateLimited := env.errorMessages(); len(messages) > 0 {
		text := sanitizeSensitiveText(strings.Join(messages, "; "), c.apiKey)
		if rateLimited {
			return attemptResult{outcome: outcomeRateLimited, err: fmt.Errorf("%w: %s", errProviderRateLimited, text)}
		}
		return attemptResult{outcome: outcomeFatal, err: fmt.Errorf("%w: %s", errProviderRejected, text)}
	}

	return attemptResult{
		outcome: outcomeOK,
		response: usecase.APIResponse{
			Endpoint:      endpoint,
			Body:          raw,
			Results:       env.Results,
			Paging:        usecase.APIPaging{Current: env.Paging.Current, Total: env.Paging.Total},
			RateRemaining: parseRemaining(resp.Header.Get(headerRequestsRemaining)),
		},
	}
}

func (c *Client) throttleIfExhausted(ctx context.Context, endpoint string, remaining int) {
	if remaining < 0 || remaining > 1 || c.throttleDelay <= 0 {
		return
	}
	c.logger.InfoContext(ctx, "football api quota nearly exhausted, throttling",
		"endpoint", endpoint,
		"remaining", remaining,
		"delay", c.throttleDelay,
	)
	// The response is already in hand; a canceled throttle does not fail it.
	_ = c.sleep(ctx, c.throttleDelay)
}

func parseRemaining(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return -1
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return -1
	}
	return v
}

func isCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errProviderTransient)
}

func sanitizeSensitiveText(value, apiKey string) string {
	value = strings.TrimSpace(value)
	if value == "" || apiKey == "" {
		return value
	}
	return strings.ReplaceAll(value, apiKey, "REDACTED")
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func copyParams(params map[string]string) map[string]string {
	out := make(map[string]string, len(params))
	for k, v := range params {
		out[k] = v
	}
	return out
}

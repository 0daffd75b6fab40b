package lims

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/yungbote/seqmeta-backend/internal/platform/ctxutil"
	"github.com/yungbote/seqmeta-backend/internal/platform/envutil"
	"github.com/yungbote/seqmeta-backend/internal/platform/httpx"
	"github.com/yungbote/seqmeta-backend/internal/platform/logger"
)

const statsPath = "/api/stats"

// StatsError carries the reason from an {"ERROR": reason} reply.
type StatsError struct {
	Reason string
}

func (e *StatsError) Error() string {
	return "lims stats error: " + e.Reason
}

// HTTPError is a non-2xx reply that survived the retry policy.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("lims http %d: %s", e.StatusCode, e.Body)
}

// Client queries the LIMS statistics service.
type Client interface {
	FetchStats(ctx context.Context, project, field string) (map[string]int, error)
}

type Config struct {
	BaseURL  string
	User     string
	Password string
	Timeout  time.Duration
	RetryMax int
}

func ConfigFromEnv(log *logger.Logger) Config {
	return Config{
		BaseURL:  envutil.String("LIMS_URL", "", log),
		User:     envutil.String("LIMS_USER", "", log),
		Password: envutil.String("LIMS_PASSWORD", "", log),
		Timeout:  envutil.Duration("LIMS_TIMEOUT", 15*time.Second, log),
		RetryMax: envutil.Int("LIMS_RETRY_MAX", 3, log),
	}
}

type client struct {
	log     *logger.Logger
	baseURL string
	user    string
	pass    string
	http    *retryablehttp.Client
}

func NewClient(log *logger.Logger, cfg Config) (Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("missing LIMS_URL")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("invalid LIMS_URL: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.RetryMax < 0 {
		cfg.RetryMax = 0
	}

	clientLog := log.With("client", "LIMSClient")
	rc := retryablehttp.NewClient()
	rc.HTTPClient.Timeout = cfg.Timeout
	rc.RetryMax = cfg.RetryMax
	rc.RetryWaitMin = 250 * time.Millisecond
	rc.RetryWaitMax = 5 * time.Second
	rc.Logger = retryablehttp.LeveledLogger(clientLog)
	rc.CheckRetry = checkRetry
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return &client{
		log:     clientLog,
		baseURL: base,
		user:    cfg.User,
		pass:    cfg.Password,
		http:    rc,
	}, nil
}

func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil {
		return httpx.IsRetryableError(ctx, err), nil
	}
	return httpx.IsRetryableHTTPStatus(resp.StatusCode), nil
}

func (c *client) FetchStats(ctx context.Context, project, field string) (map[string]int, error) {
	ctx = ctxutil.Default(ctx)
	q := url.Values{}
	q.Set("sample_project_name", project)
	q.Set("project_field", field)

	req, err := retryablehttp.NewRequest(http.MethodGet, c.baseURL+statsPath+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req = req.WithContext(ctx)
	req.Header.Set("Accept", "application/json")
	if td := ctxutil.GetTraceData(ctx); td != nil && td.RequestID != "" {
		req.Header.Set(ctxutil.HeaderRequestID, td.RequestID)
	}
	if c.user != "" {
		req.SetBasicAuth(c.user, c.pass)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lims stats %s: %w", field, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("lims stats %s: read body: %w", field, err)
	}
	// The LIMS reports lookup failures as {"ERROR": ...}, sometimes with a
	// 4xx status, so try the body before the status.
	counts, decErr := DecodeStats(raw)
	var serr *StatsError
	if errors.As(decErr, &serr) {
		return nil, serr
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: truncate(string(raw), 512)}
	}
	if decErr != nil {
		return nil, fmt.Errorf("lims stats %s: %w", field, decErr)
	}
	c.log.Debug("lims stats fetched", "field", field, "categories", len(counts))
	return counts, nil
}

// DecodeStats accepts {"ERROR": reason}, {"DATA": {label: count}} or a bare
// {label: count} object. Counts may be JSON numbers or numeric strings.
func DecodeStats(raw []byte) (map[string]int, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("decode stats: %w", err)
	}
	if reason, ok := obj["ERROR"]; ok {
		return nil, &StatsError{Reason: rawText(reason)}
	}
	if data, ok := obj["DATA"]; ok {
		obj = nil
		if err := json.Unmarshal(data, &obj); err != nil {
			return nil, fmt.Errorf("decode stats DATA: %w", err)
		}
	}
	out := make(map[string]int, len(obj))
	for label, v := range obj {
		n, err := parseCount(v)
		if err != nil {
			return nil, fmt.Errorf("count for %q: %w", label, err)
		}
		out[label] = n
	}
	return out, nil
}

func parseCount(v json.RawMessage) (int, error) {
	s := strings.Trim(strings.TrimSpace(string(v)), `"`)
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int(math.Round(f)), nil
}

func rawText(v json.RawMessage) string {
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(v))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

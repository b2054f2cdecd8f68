package taifex

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultReportURL   = "https://www.taifex.com.tw/cht/3/futDailyMarketExcel"
	defaultBulkURL     = "https://www.taifex.com.tw/data_gov/taifex_open_data.asp?data_name=DailyMarketReportFut"
	defaultHTTPTimeout = 15 * time.Second
	maxBodyBytes       = 16 << 20

	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome Safari"
	botUserAgent     = "Mozilla/5.0 (compatible; 5day-bot/1.0)"
	acceptLanguage   = "zh-TW,zh;q=0.9,en;q=0.6"
	reportReferer    = "https://www.taifex.com.tw/"
)

// Client fetches TAIFEX daily reports and the open-data bulk feed.
type Client struct {
	reportURL  string
	bulkURL    string
	httpClient *http.Client
	reportUA   string
	bulkUA     string
	limiter    *rate.Limiter
	extractor  *Extractor
}

// Option configures a new Client.
type Option func(*Client)

// WithHTTPClient injects a custom http.Client. A client without a timeout
// gets the default one.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithReportURL overrides the per-date report endpoint.
func WithReportURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.reportURL = u
		}
	}
}

// WithBulkURL overrides the open-data feed endpoint.
func WithBulkURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.bulkURL = u
		}
	}
}

// WithUserAgent replaces the user agent on both endpoints.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.reportUA = ua
			c.bulkUA = ua
		}
	}
}

// WithRateLimit paces per-date report requests to rps per second.
// Zero or negative disables pacing.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		} else {
			c.limiter = nil
		}
	}
}

// WithStrategies replaces the extraction chain used by FetchDay.
func WithStrategies(strategies ...Strategy) Option {
	return func(c *Client) {
		if len(strategies) > 0 {
			c.extractor = NewExtractor(strategies...)
		}
	}
}

// NewClient constructs a TAIFEX client.
func NewClient(opts ...Option) *Client {
	client := &Client{
		reportURL:  defaultReportURL,
		bulkURL:    defaultBulkURL,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		reportUA:   browserUserAgent,
		bulkUA:     botUserAgent,
		extractor:  DefaultExtractor(),
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.httpClient.Timeout <= 0 {
		hc := *client.httpClient
		hc.Timeout = defaultHTTPTimeout
		client.httpClient = &hc
	}
	return client
}

// FetchBulk downloads the DailyMarketReportFut feed and returns it decoded.
func (c *Client) FetchBulk(ctx context.Context) (string, error) {
	body, err := c.get(ctx, c.bulkURL, http.Header{"User-Agent": {c.bulkUA}})
	if err != nil {
		return "", err
	}
	return DecodeFeed(body), nil
}

// FetchDay downloads the report for one calendar day and extracts the main
// contract. A nil result with a nil error means the exchange has no data for
// that day, either because the banner date differs or nothing could be read.
func (c *Client) FetchDay(ctx context.Context, symbol string, marketCode int, day time.Time) (*MainContract, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}
	queryDate := day.Format(ReportDateLayout)
	endpoint, err := url.Parse(c.reportURL)
	if err != nil {
		return nil, fmt.Errorf("taifex: parse report url: %w", err)
	}
	q := endpoint.Query()
	q.Set("commodity_id", symbol)
	q.Set("queryDate", queryDate)
	q.Set("marketCode", strconv.Itoa(marketCode))
	endpoint.RawQuery = q.Encode()

	body, err := c.get(ctx, endpoint.String(), http.Header{
		"User-Agent":      {c.reportUA},
		"Accept-Language": {acceptLanguage},
		"Referer":         {reportReferer},
	})
	if err != nil {
		return nil, err
	}
	if ParseTradingDate(body) != queryDate {
		return nil, nil
	}
	row := c.extractor.Extract(body, symbol)
	if row == nil {
		return nil, nil
	}
	row.TradingDate = queryDate
	return row, nil
}

func (c *Client) get(ctx context.Context, target string, header http.Header) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("taifex: build request: %w", err)
	}
	for k, v := range header {
		req.Header[k] = v
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("taifex: request %s: %w", target, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &AcquisitionError{URL: target, StatusCode: resp.StatusCode}
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("taifex: read response: %w", err)
	}
	return body, nil
}

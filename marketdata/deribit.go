package marketdata

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultBaseURL = "https://www.deribit.com"

// OptionData is one listed option contract, optionally enriched with the
// order-book mark and greeks from a second request.
type OptionData struct {
	InstrumentName      string   `json:"instrument_name"`
	Strike              float64  `json:"strike"`
	ExpirationTimestamp uint64   `json:"expiration_timestamp"`
	OptionType          string   `json:"option_type"`
	PriceIndex          string   `json:"price_index"`
	SettlementCurrency  string   `json:"settlement_currency"`
	MarkPrice           *float64 `json:"mark_price,omitempty"`
	ImpliedVolatility   *float64 `json:"mark_iv,omitempty"`
	Delta               *float64 `json:"delta,omitempty"`
	Gamma               *float64 `json:"gamma,omitempty"`
	Vega                *float64 `json:"vega,omitempty"`
	Theta               *float64 `json:"theta,omitempty"`
}

type instrumentsResponse struct {
	Result []OptionData `json:"result"`
}

type orderBookResponse struct {
	Result struct {
		MarkPrice *float64 `json:"mark_price"`
		MarkIV    *float64 `json:"mark_iv"`
		Greeks    *struct {
			Delta *float64 `json:"delta"`
			Gamma *float64 `json:"gamma"`
			Vega  *float64 `json:"vega"`
			Theta *float64 `json:"theta"`
		} `json:"greeks"`
	} `json:"result"`
}

// Client fetches option market data from the Deribit public API.
type Client struct {
	http *resty.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API host, typically a test
// server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.http.SetBaseURL(baseURL)
	}
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		http: resty.New().
			SetBaseURL(defaultBaseURL).
			SetTimeout(30 * time.Second).
			SetRetryCount(3).
			SetRetryWaitTime(1 * time.Second).
			SetRetryMaxWaitTime(10 * time.Second),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Instruments lists the unexpired option contracts for a currency.
func (c *Client) Instruments(ctx context.Context, currency string) ([]OptionData, error) {
	var out instrumentsResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"currency": currency,
			"kind":     "option",
			"expired":  "false",
		}).
		SetResult(&out).
		Get("/api/v2/public/get_instruments")
	if err != nil {
		return nil, fmt.Errorf("marketdata: get instruments: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("marketdata: get instruments: %s", resp.Status())
	}
	return out.Result, nil
}

// OrderBook fills the option's mark price, mark volatility and greeks from
// its order book.
func (c *Client) OrderBook(ctx context.Context, option *OptionData) error {
	var out orderBookResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("instrument_name", option.InstrumentName).
		SetResult(&out).
		Get("/api/v2/public/get_order_book")
	if err != nil {
		return fmt.Errorf("marketdata: get order book for %s: %w", option.InstrumentName, err)
	}
	if resp.IsError() {
		return fmt.Errorf("marketdata: get order book for %s: %s", option.InstrumentName, resp.Status())
	}

	option.MarkPrice = out.Result.MarkPrice
	option.ImpliedVolatility = out.Result.MarkIV
	if greeks := out.Result.Greeks; greeks != nil {
		option.Delta = greeks.Delta
		option.Gamma = greeks.Gamma
		option.Vega = greeks.Vega
		option.Theta = greeks.Theta
	}
	return nil
}

// FetchOptionData lists a currency's option contracts and enriches each with
// its order-book mark data. Order-book failures on individual contracts are
// skipped so one delisted instrument cannot fail the whole fetch.
func (c *Client) FetchOptionData(ctx context.Context, currency string) ([]OptionData, error) {
	options, err := c.Instruments(ctx, currency)
	if err != nil {
		return nil, err
	}
	for i := range options {
		if err := c.OrderBook(ctx, &options[i]); err != nil {
			continue
		}
	}
	return options, nil
}

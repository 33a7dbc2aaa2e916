package marketdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/peterldowns/testy/assert"
	"github.com/peterldowns/testy/check"
)

func newTestServer(t *testing.T, orderBookStatus int) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v2/public/get_instruments", func(w http.ResponseWriter, r *http.Request) {
		check.Equal(t, "BTC", r.URL.Query().Get("currency"))
		check.Equal(t, "option", r.URL.Query().Get("kind"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result": [
			{"instrument_name": "BTC-26SEP26-60000-C", "strike": 60000, "expiration_timestamp": 1790000000000, "option_type": "call", "price_index": "btc_usd", "settlement_currency": "BTC"},
			{"instrument_name": "BTC-26SEP26-60000-P", "strike": 60000, "expiration_timestamp": 1790000000000, "option_type": "put", "price_index": "btc_usd", "settlement_currency": "BTC"}
		]}`))
	})

	mux.HandleFunc("/api/v2/public/get_order_book", func(w http.ResponseWriter, r *http.Request) {
		if orderBookStatus != http.StatusOK {
			w.WriteHeader(orderBookStatus)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result": {
			"mark_price": 0.085,
			"mark_iv": 52.3,
			"greeks": {"delta": 0.55, "gamma": 0.0001, "vega": 120.5, "theta": -45.2}
		}}`))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestInstruments(t *testing.T) {
	server := newTestServer(t, http.StatusOK)
	client := NewClient(WithBaseURL(server.URL))

	options, err := client.Instruments(context.Background(), "BTC")
	assert.NoError(t, err)
	assert.Equal(t, 2, len(options))
	check.Equal(t, "BTC-26SEP26-60000-C", options[0].InstrumentName)
	check.Equal(t, 60000.0, options[0].Strike)
	check.Equal(t, "call", options[0].OptionType)
	check.Nil(t, options[0].MarkPrice)
}

func TestOrderBookEnrichesOption(t *testing.T) {
	server := newTestServer(t, http.StatusOK)
	client := NewClient(WithBaseURL(server.URL))

	option := OptionData{InstrumentName: "BTC-26SEP26-60000-C"}
	assert.NoError(t, client.OrderBook(context.Background(), &option))

	assert.NotNil(t, option.MarkPrice)
	check.Equal(t, 0.085, *option.MarkPrice)
	assert.NotNil(t, option.ImpliedVolatility)
	check.Equal(t, 52.3, *option.ImpliedVolatility)
	assert.NotNil(t, option.Delta)
	check.Equal(t, 0.55, *option.Delta)
	assert.NotNil(t, option.Theta)
	check.Equal(t, -45.2, *option.Theta)
}

func TestFetchOptionData(t *testing.T) {
	server := newTestServer(t, http.StatusOK)
	client := NewClient(WithBaseURL(server.URL))

	options, err := client.FetchOptionData(context.Background(), "BTC")
	assert.NoError(t, err)
	assert.Equal(t, 2, len(options))
	for _, option := range options {
		assert.NotNil(t, option.MarkPrice)
		check.Equal(t, 0.085, *option.MarkPrice)
	}
}

func TestFetchOptionDataSkipsOrderBookFailures(t *testing.T) {
	server := newTestServer(t, http.StatusInternalServerError)
	client := NewClient(WithBaseURL(server.URL))

	options, err := client.FetchOptionData(context.Background(), "BTC")
	assert.NoError(t, err)
	assert.Equal(t, 2, len(options))
	check.Nil(t, options[0].MarkPrice)
}

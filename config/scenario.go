package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cloudx-io/openbasket/core"
)

// Scenario declares one auction run: the bidder accounts, the basket on
// offer, the bid book, and the clock parameters for iterative mechanisms.
type Scenario struct {
	Users  []UserConfig  `yaml:"users" json:"users"`
	Basket BasketConfig  `yaml:"basket" json:"basket"`
	Bids   []BidConfig   `yaml:"bids" json:"bids"`
	Clock  ClockSettings `yaml:"clock" json:"clock"`
}

type UserConfig struct {
	ID      uint64  `yaml:"id" json:"id"`
	Name    string  `yaml:"name" json:"name"`
	Balance float64 `yaml:"balance" json:"balance"`
}

type AssetConfig struct {
	// Symbol is the "BASE/QUOTE" pair.
	Symbol   string  `yaml:"symbol" json:"symbol"`
	Quantity float64 `yaml:"quantity" json:"quantity"`
	Price    float64 `yaml:"price" json:"price"`
}

type BasketConfig struct {
	ID     uint64        `yaml:"id" json:"id"`
	Assets []AssetConfig `yaml:"assets" json:"assets"`
}

type BidConfig struct {
	Bidder   uint64   `yaml:"bidder" json:"bidder"`
	Basket   uint64   `yaml:"basket" json:"basket"`
	Type     string   `yaml:"type" json:"type"` // "xor" or "or"
	Price    float64  `yaml:"price" json:"price"`
	Quantity *float64 `yaml:"quantity,omitempty" json:"quantity,omitempty"`
}

type ClockSettings struct {
	InitialPrices  map[string]float64 `yaml:"initial_prices" json:"initial_prices"`
	PriceIncrement float64            `yaml:"price_increment" json:"price_increment"`
	MaxRounds      int                `yaml:"max_rounds" json:"max_rounds"`
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals and validates scenario YAML.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("config: parse scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the scenario and fills clock defaults.
func (s *Scenario) Validate() error {
	if len(s.Users) == 0 {
		return fmt.Errorf("config: at least one user is required")
	}
	seen := make(map[uint64]bool, len(s.Users))
	for _, u := range s.Users {
		if u.Name == "" {
			return fmt.Errorf("config: user %d has no name", u.ID)
		}
		if u.Balance < 0 {
			return fmt.Errorf("config: user %q has negative balance", u.Name)
		}
		if seen[u.ID] {
			return fmt.Errorf("config: duplicate user id %d", u.ID)
		}
		seen[u.ID] = true
	}

	if len(s.Basket.Assets) == 0 {
		return fmt.Errorf("config: basket %d has no assets", s.Basket.ID)
	}
	for _, a := range s.Basket.Assets {
		if _, err := core.ParseAsset(a.Symbol); err != nil {
			return fmt.Errorf("config: basket %d: %w", s.Basket.ID, err)
		}
		if a.Quantity <= 0 || a.Price <= 0 {
			return fmt.Errorf("config: asset %s must have positive quantity and price", a.Symbol)
		}
	}

	for i, b := range s.Bids {
		switch strings.ToLower(b.Type) {
		case "xor", "or":
		default:
			return fmt.Errorf("config: bid %d has unknown type %q", i, b.Type)
		}
		if b.Price <= 0 {
			return fmt.Errorf("config: bid %d must have a positive price", i)
		}
		if b.Quantity != nil && (*b.Quantity <= 0 || *b.Quantity > 1) {
			return fmt.Errorf("config: bid %d quantity must be in (0, 1]", i)
		}
	}

	if s.Clock.PriceIncrement <= 0 {
		s.Clock.PriceIncrement = 0.10
	}
	if s.Clock.MaxRounds <= 0 {
		s.Clock.MaxRounds = 10
	}
	return nil
}

// BuildLedger returns a ledger seeded with the scenario's accounts.
func (s *Scenario) BuildLedger() *core.Ledger {
	ledger := core.NewLedger()
	for _, u := range s.Users {
		ledger.Add(core.User{ID: u.ID, Name: u.Name, Balance: u.Balance})
	}
	return ledger
}

// BuildBasket returns the basket on offer.
func (s *Scenario) BuildBasket() (*core.Basket, error) {
	basket := &core.Basket{ID: s.Basket.ID}
	for _, a := range s.Basket.Assets {
		asset, err := core.ParseAsset(a.Symbol)
		if err != nil {
			return nil, err
		}
		basket.Assets = append(basket.Assets, core.NewAssetInfo(asset, a.Quantity, a.Price))
	}
	return basket, nil
}

// BuildBids returns the scenario's bid book in declaration order.
func (s *Scenario) BuildBids() []core.Bid {
	bids := make([]core.Bid, 0, len(s.Bids))
	for _, b := range s.Bids {
		bidType := core.BidXOR
		if strings.ToLower(b.Type) == "or" {
			bidType = core.BidOR
		}
		if b.Quantity != nil {
			bids = append(bids, core.NewPartialBid(b.Bidder, b.Basket, bidType, b.Price, *b.Quantity))
		} else {
			bids = append(bids, core.NewBid(b.Bidder, b.Basket, bidType, b.Price))
		}
	}
	return bids
}

// BuildClockConfig returns the clock parameters with defaults applied.
func (s *Scenario) BuildClockConfig() core.ClockConfig {
	return core.ClockConfig{
		InitialPrices:  s.Clock.InitialPrices,
		PriceIncrement: s.Clock.PriceIncrement,
		MaxRounds:      s.Clock.MaxRounds,
	}
}

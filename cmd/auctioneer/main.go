package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/cloudx-io/openbasket/auditlog"
	"github.com/cloudx-io/openbasket/config"
	"github.com/cloudx-io/openbasket/core"
)

type outcome struct {
	auctionID   string
	winningBids []core.Bid
	payments    map[uint64]float64
	bidders     map[uint64]core.User
}

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "scenario.yaml", "path to the scenario file")
	mechanism := flag.String("mechanism", "cca", "auction mechanism: cca, vcg, xor or or")
	auditDir := flag.String("audit-dir", "", "Badger directory for audit records (disabled when empty)")
	logLevel := flag.String("log-level", "info", "logrus log level")
	flag.Parse()

	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	scenario, err := config.Load(*configPath)
	if err != nil {
		logrus.Errorf("load scenario: %v", err)
		os.Exit(1)
	}

	ledger := scenario.BuildLedger()
	basket, err := scenario.BuildBasket()
	if err != nil {
		logrus.Errorf("build basket: %v", err)
		os.Exit(1)
	}
	bids := scenario.BuildBids()

	logrus.Infof("running %s auction: basket %d (%d assets, total value %.2f), %d bids",
		*mechanism, basket.ID, len(basket.Assets), basket.TotalValue(), len(bids))

	result, err := run(strings.ToLower(*mechanism), scenario, ledger, bids, basket)
	if err != nil {
		logrus.Errorf("auction failed: %v", err)
		os.Exit(1)
	}

	for _, bid := range result.winningBids {
		logrus.Infof("winner: bidder %d, price %.2f, fraction %.2f", bid.BidderID, bid.Price, bid.Fraction())
	}
	for id, u := range result.bidders {
		logrus.Infof("settled: bidder %d (%s) balance %.2f", id, u.Name, u.Balance)
	}

	if *auditDir != "" {
		if err := appendAuditRecord(*auditDir, *mechanism, basket.ID, result); err != nil {
			logrus.Errorf("write audit record: %v", err)
			os.Exit(1)
		}
		logrus.Infof("audit record %s written to %s", result.auctionID, *auditDir)
	}
}

func run(mechanism string, scenario *config.Scenario, ledger *core.Ledger, bids []core.Bid, basket *core.Basket) (*outcome, error) {
	switch mechanism {
	case "cca":
		result, err := core.RunClockAuction(ledger, bids, basket, scenario.BuildClockConfig())
		if err != nil {
			return nil, err
		}
		logrus.Infof("clock auction finished after %d rounds (converged=%t)", len(result.Rounds), result.Converged)
		for _, round := range result.Rounds {
			logrus.Debugf("round %d: %d eligible bidders, %d valid bids, %d over-demanded assets",
				round.Round, round.EligibleBidders, round.ValidBids, len(round.ExcessDemand))
		}
		return &outcome{
			auctionID:   result.AuctionID.String(),
			winningBids: result.WinningBids,
			bidders:     result.Bidders,
		}, nil

	case "vcg":
		result, err := core.RunVCGAuction(ledger, bids, basket)
		if err != nil {
			return nil, err
		}
		return &outcome{
			auctionID:   result.AuctionID.String(),
			winningBids: result.WinningBids,
			payments:    result.Payments,
			bidders:     result.Bidders,
		}, nil

	case "xor":
		winner, allocation, ok := core.EvaluateXORPartial(ledger, bids, basket)
		if !ok {
			return nil, fmt.Errorf("no valid bid for basket %d", basket.ID)
		}
		settled, err := core.NewClearingEngine(ledger).Clear([]core.Bid{winner}, allocation)
		if err != nil {
			return nil, err
		}
		return &outcome{
			auctionID:   uuid.New().String(),
			winningBids: []core.Bid{winner},
			bidders:     settled,
		}, nil

	case "or":
		winners, allocation := core.EvaluateOR(ledger, bids, basket)
		settled, err := core.NewClearingEngine(ledger).Clear(winners, allocation)
		if err != nil {
			return nil, err
		}
		return &outcome{
			auctionID:   uuid.New().String(),
			winningBids: winners,
			bidders:     settled,
		}, nil

	default:
		return nil, fmt.Errorf("unknown mechanism %q", mechanism)
	}
}

func appendAuditRecord(dir, mechanism string, basketID uint64, result *outcome) error {
	store, err := auditlog.Open(auditlog.OpenOptions{Path: dir})
	if err != nil {
		return err
	}
	defer store.Close()

	winners := make([]uint64, 0, len(result.winningBids))
	for _, bid := range result.winningBids {
		winners = append(winners, bid.BidderID)
	}
	balances := make(map[uint64]float64, len(result.bidders))
	for id, u := range result.bidders {
		balances[id] = u.Balance
	}

	return store.Append(&auditlog.Record{
		AuctionID:       result.auctionID,
		Mechanism:       mechanism,
		BasketID:        basketID,
		WinningBidders:  winners,
		Payments:        result.payments,
		SettledBalances: balances,
		SettlementHash:  core.SettlementHash(result.auctionID, balances),
		CreatedAt:       time.Now().UTC(),
	})
}

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"coinbot/internal/alert"
	"coinbot/internal/config"
	"coinbot/internal/core"
	"coinbot/internal/exchange/binance"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath    string
		op            string
		orderRef      string
		stackRaw      string
		qtyRaw        string
		priceRaw      string
		overrideRaw   string
		testOnly      bool
		testOnlyIsSet bool
	)
	flag.StringVar(&configPath, "config", "config/config.yaml", "config yaml path")
	flag.StringVar(&op, "op", "ticker", "operation: ticker, order, buy, sell")
	flag.StringVar(&orderRef, "ref", "", "client order id for -op order")
	flag.StringVar(&stackRaw, "stack", "", "quote amount to spend on a buy (default from config)")
	flag.StringVar(&qtyRaw, "qty", "", "base quantity to sell")
	flag.StringVar(&priceRaw, "price", "", "limit price")
	flag.StringVar(&overrideRaw, "price-override", "", "replacement sell price")
	flag.BoolVar(&testOnly, "test", false, "validate the order without placing it")
	flag.Parse()
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "test" {
			testOnlyIsSet = true
		}
	})

	// .env feeds credentials into the environment before config load;
	// a missing file is fine.
	_ = godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		fatal(err.Error())
	}
	if cfg.Exchange.APIKey == "" {
		cfg.Exchange.APIKey = os.Getenv("BINANCE_API_KEY")
	}
	if cfg.Exchange.APISecret == "" {
		cfg.Exchange.APISecret = os.Getenv("BINANCE_API_SECRET")
	}
	if !testOnlyIsSet {
		testOnly = cfg.Trade.TestOnly
	}

	pair := core.Pair{Base: cfg.Pair.Base, Quote: cfg.Pair.Quote}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := binance.New(ctx, cfg.Exchange)
	if err != nil {
		fatal(err.Error())
	}

	var alerts *alert.Manager
	if cfg.Observability.Telegram.Enabled {
		notifier := alert.NewTelegramNotifier(
			true,
			cfg.Observability.Telegram.BotToken,
			cfg.Observability.Telegram.ChatID,
			cfg.Observability.Telegram.APIBaseURL,
			time.Duration(cfg.Observability.Telegram.TimeoutSec)*time.Second,
		)
		alerts = alert.NewManager(client.Name(), pair.Symbol(), notifier)
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := alerts.Close(closeCtx); err != nil {
				fmt.Fprintf(os.Stderr, "close alert manager failed: %v\n", err)
			}
		}()
	}

	switch op {
	case "ticker":
		resp, err := client.GetTicker(ctx, pair)
		if err != nil {
			fatal(err.Error())
		}
		return finish(resp, op, alerts)
	case "order":
		if orderRef == "" {
			fatal("-ref is required for -op order")
		}
		resp, err := client.GetOrder(ctx, pair, orderRef)
		if err != nil {
			fatal(err.Error())
		}
		return finish(resp, op, alerts)
	case "buy":
		stack := cfg.Trade.Stack.Decimal
		if stackRaw != "" {
			stack = mustDecimal("stack", stackRaw)
		}
		if stack.Cmp(decimal.Zero) <= 0 {
			fatal("stack must be > 0 (flag -stack or config trade.stack)")
		}
		price := mustDecimal("price", priceRaw)
		resp, err := client.PlaceBuyOrder(ctx, pair, stack, price, testOnly)
		if err != nil {
			fatal(err.Error())
		}
		return finish(resp, op, alerts)
	case "sell":
		qty := mustDecimal("qty", qtyRaw)
		price := mustDecimal("price", priceRaw)
		var override *decimal.Decimal
		if overrideRaw != "" {
			d := mustDecimal("price-override", overrideRaw)
			override = &d
		}
		resp, err := client.PlaceSellOrder(ctx, pair, qty, price, override, testOnly)
		if err != nil {
			fatal(err.Error())
		}
		return finish(resp, op, alerts)
	default:
		fatal("unknown -op " + strconv.Quote(op))
	}
	return 0
}

func finish[T any](resp core.ServiceResponse[T], op string, alerts alert.Alerter) int {
	encoded, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		fatal(err.Error())
	}
	fmt.Println(string(encoded))
	if resp.StatusCode == core.StatusOK {
		return 0
	}
	fields := map[string]string{
		"op":          op,
		"status_code": strconv.Itoa(resp.StatusCode),
		"raw":         resp.RawMessage,
	}
	if exchErr := binance.ExchangeError(resp); exchErr != nil {
		fmt.Fprintln(os.Stderr, exchErr)
		fields["error"] = exchErr.Error()
	}
	alerts.Important("operation_failed", fields)
	return 1
}

func mustDecimal(name, raw string) decimal.Decimal {
	if raw == "" {
		fatal("-" + name + " is required")
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		fatal("invalid -" + name + ": " + err.Error())
	}
	return d
}

func fatal(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}

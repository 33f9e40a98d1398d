package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"coinbot/internal/core"
	"coinbot/internal/exchange/binance"
)

const defaultWSBaseURL = "wss://stream.binance.com:9443"

type priceLine struct {
	Time      string `json:"time"`
	Timestamp int64  `json:"timestamp"`
	Symbol    string `json:"symbol"`
	Price     string `json:"price"`
}

func main() {
	var (
		wsBaseURL string
		base      string
		quote     string
		limit     int
	)
	flag.StringVar(&wsBaseURL, "ws-url", defaultWSBaseURL, "exchange websocket base url")
	flag.StringVar(&base, "base", "BTC", "base asset")
	flag.StringVar(&quote, "quote", "USDT", "quote asset")
	flag.IntVar(&limit, "limit", 0, "stop after this many trades (0 = run until interrupted)")
	flag.Parse()

	pair := core.Pair{
		Base:  strings.ToUpper(strings.TrimSpace(base)),
		Quote: strings.ToUpper(strings.TrimSpace(quote)),
	}
	if pair.Base == "" || pair.Quote == "" {
		fatal("base and quote are required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := binance.NewClientWithOptions(binance.Options{WSBaseURL: wsBaseURL})
	stream, err := client.SubscribeTrades(ctx, pair)
	if err != nil {
		fatal(err.Error())
	}
	defer func() {
		if closeErr := stream.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "close stream failed: %v\n", closeErr)
		}
	}()

	go func() {
		<-ctx.Done()
		_ = stream.Close()
	}()

	count := 0
	for update := range stream.Updates() {
		line := priceLine{
			Time:      update.Time.UTC().Format(time.RFC3339Nano),
			Timestamp: update.Time.UnixMilli(),
			Symbol:    update.Symbol,
			Price:     update.Tick.Last.String(),
		}
		encoded, err := json.Marshal(line)
		if err != nil {
			fatal(err.Error())
		}
		fmt.Println(string(encoded))
		count++
		if limit > 0 && count >= limit {
			break
		}
	}
	if err := stream.Err(); err != nil && ctx.Err() == nil {
		fatal(err.Error())
	}
}

func fatal(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}

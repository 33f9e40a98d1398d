package binance

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"

	"coinbot/internal/core"
)

// The exchange pings every few seconds; a stalled read past this window
// means the connection is dead.
const streamReadTimeout = 90 * time.Second

type tradeEvent struct {
	EventType string `json:"e"`
	EventTime int64  `json:"E"`
	Symbol    string `json:"s"`
	Price     string `json:"p"`
	Qty       string `json:"q"`
	TradeTime int64  `json:"T"`
}

type PriceUpdate struct {
	Symbol string
	Tick   core.Tick
	Time   time.Time
}

// PriceStream delivers live trade prices for one symbol. Updates closes
// when the stream ends; Err reports why, nil after a deliberate Close.
type PriceStream struct {
	conn    *websocket.Conn
	updates chan PriceUpdate
	done    chan struct{}

	mu     sync.Mutex
	err    error
	closed bool
}

// SubscribeTrades opens a websocket subscription to the symbol's trade
// stream and maps each trade price onto a Tick the same way the REST
// ticker does.
func (c *Client) SubscribeTrades(ctx context.Context, pair core.Pair) (*PriceStream, error) {
	if c.wsBaseURL == "" {
		return nil, errors.New("ws base url required")
	}
	endpoint := c.wsBaseURL + "/ws/" + strings.ToLower(pair.Symbol()) + "@trade"
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		return nil, err
	}
	s := &PriceStream{
		conn:    conn,
		updates: make(chan PriceUpdate, 16),
		done:    make(chan struct{}),
	}
	go s.readLoop()
	return s, nil
}

func (s *PriceStream) Updates() <-chan PriceUpdate {
	return s.updates
}

func (s *PriceStream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	return s.err
}

func (s *PriceStream) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.done)
	s.mu.Unlock()
	return s.conn.Close()
}

func (s *PriceStream) readLoop() {
	defer close(s.updates)
	for {
		_ = s.conn.SetReadDeadline(time.Now().Add(streamReadTimeout))
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			s.fail(err)
			return
		}
		var ev tradeEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			continue
		}
		if ev.EventType != "trade" {
			continue
		}
		price, err := decimal.NewFromString(ev.Price)
		if err != nil {
			continue
		}
		update := PriceUpdate{
			Symbol: ev.Symbol,
			Tick:   core.Tick{Ask: price, Bid: price, Last: price},
			Time:   time.UnixMilli(ev.TradeTime),
		}
		select {
		case s.updates <- update:
		case <-s.done:
			return
		}
	}
}

func (s *PriceStream) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err == nil {
		s.err = err
	}
}

package alert

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

var _ Alerter = (*Manager)(nil)

type recordingNotifier struct {
	mu   sync.Mutex
	msgs []string
}

func (r *recordingNotifier) Notify(_ context.Context, msg string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
	return nil
}

func (r *recordingNotifier) messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.msgs))
	copy(out, r.msgs)
	return out
}

func TestManagerDeliversAndCloses(t *testing.T) {
	notifier := &recordingNotifier{}
	m := NewManager("binance", "USDTBTC", notifier)
	m.Important("operation_failed", map[string]string{
		"op":          "buy",
		"status_code": "400",
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := m.Close(ctx); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	msgs := notifier.messages()
	if len(msgs) != 1 {
		t.Fatalf("len(msgs) = %d, want 1", len(msgs))
	}
	for _, want := range []string{"exchange: binance", "symbol: USDTBTC", "event: operation_failed", "op: buy", "status_code: 400"} {
		if !strings.Contains(msgs[0], want) {
			t.Fatalf("message %q missing %q", msgs[0], want)
		}
	}
}

func TestManagerNilSafety(t *testing.T) {
	var m *Manager
	m.Important("ignored", nil)
	if err := m.Close(context.Background()); err != nil {
		t.Fatalf("nil Close() error = %v", err)
	}
	if NewManager("binance", "USDTBTC", nil) != nil {
		t.Fatalf("NewManager(nil notifier) should return nil")
	}
}

func TestManagerIgnoresAfterClose(t *testing.T) {
	notifier := &recordingNotifier{}
	m := NewManager("binance", "USDTBTC", notifier)
	if err := m.Close(context.Background()); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	m.Important("late", nil)
	if len(notifier.messages()) != 0 {
		t.Fatalf("late event should be dropped")
	}
}

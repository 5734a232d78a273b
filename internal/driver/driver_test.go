package driver

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"
)

type countingTicker struct {
	calls atomic.Int32
	err   error
	order *[]string
	name  string
}

func (c *countingTicker) Tick(context.Context) error {
	c.calls.Add(1)
	if c.order != nil {
		*c.order = append(*c.order, c.name)
	}
	return c.err
}

func TestDriver_Tick(t *testing.T) {
	var order []string
	first := &countingTicker{name: "first", order: &order}
	failing := &countingTicker{name: "failing", order: &order, err: errors.New("boom")}
	last := &countingTicker{name: "last", order: &order}

	d := NewDriver([]Ticker{first, failing, last})

	err := d.Tick(context.Background())
	testutil.AssertErrorContains(t, err, "boom")
	testutil.AssertEqual(t, "order", len(order), 2)
	testutil.AssertEqual(t, "first", order[0], "first")
	testutil.AssertEqual(t, "second", order[1], "failing")
	testutil.AssertEqual(t, "last calls", last.calls.Load(), int32(0))
}

func TestDriver_Start(t *testing.T) {
	tk := &countingTicker{}
	d := NewDriver([]Ticker{tk}, WithTickLength(time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Start(ctx) }()

	deadline := time.Now().Add(5 * time.Second)
	for tk.calls.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	cancel()

	if err := <-done; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tk.calls.Load() < 3 {
		t.Errorf("expected at least 3 ticks, got %d", tk.calls.Load())
	}
}

func TestDriver_StartStopsOnError(t *testing.T) {
	tk := &countingTicker{err: errors.New("fatal")}
	d := NewDriver([]Ticker{tk}, WithTickLength(time.Millisecond))

	err := d.Start(context.Background())
	testutil.AssertErrorContains(t, err, "fatal")
	testutil.AssertEqual(t, "calls", tk.calls.Load(), int32(1))
}

func TestNewDriver_TickLength(t *testing.T) {
	tests := map[string]struct {
		opts []DriverOpt
		exp  time.Duration
	}{
		"default": {
			exp: DefaultTickLength,
		},
		"configured": {
			opts: []DriverOpt{WithTickLength(time.Second)},
			exp:  time.Second,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			d := NewDriver(nil, tt.opts...)
			testutil.AssertEqual(t, "tick length", d.tickLength, tt.exp)
		})
	}
}

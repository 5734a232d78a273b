package metrics

import (
	"context"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"

	"github.com/pixil98/go-testutil"
	"github.com/prometheus/client_golang/prometheus"
)

func TestServer_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.FetchFailures.Set(3)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- NewServer("", reg).serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/metrics")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "status", resp.StatusCode, http.StatusOK)
	if !strings.Contains(string(body), "bestiary_fetch_failures 3") {
		t.Errorf("metrics output missing fetch failures:\n%s", body)
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestServer_BadAddress(t *testing.T) {
	err := NewServer("not an address", prometheus.NewRegistry()).Start(context.Background())
	testutil.AssertErrorContains(t, err, "listening on not an address")
}

package server

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/yanizio/shopfront/internal/config"
)

func TestNew_Timeouts(t *testing.T) {
	srv := New(":0", config.HTTP{WriteTimeout: 42 * time.Second}, http.NotFoundHandler())
	if srv.ReadTimeout != defaultRead || srv.IdleTimeout != defaultIdle {
		t.Errorf("defaults not applied: read=%s idle=%s", srv.ReadTimeout, srv.IdleTimeout)
	}
	if srv.WriteTimeout != 42*time.Second {
		t.Errorf("write = %s, want 42s", srv.WriteTimeout)
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, New("127.0.0.1:0", config.HTTP{}, http.NotFoundHandler()))
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

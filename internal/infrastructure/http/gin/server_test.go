package gin

import (
	"context"
	"testing"
	"time"

	ginlib "github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoice_dashboard/internal/config"
)

func TestServer_RunStopsOnCancel(t *testing.T) {
	ginlib.SetMode(ginlib.TestMode)
	srv := NewServer(config.ServerConfig{Host: "127.0.0.1", Port: 0, ShutdownTimeout: time.Second}, NewEngine("test"))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServer_NilEngine(t *testing.T) {
	srv := &Server{addr: "127.0.0.1:0"}
	assert.Error(t, srv.Run(context.Background()))
}

package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/cicd-demo/calcd/internal/testhelper"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "0.0.0.0", config.Host)
	assert.Equal(t, 5000, config.Port)
	assert.False(t, config.Debug)
	assert.True(t, config.EnableMetrics)
	assert.True(t, config.EnableCORS)
	assert.Equal(t, 30*time.Second, config.ShutdownTimeout)
}

func TestNew_NilConfig(t *testing.T) {
	srv, err := NewWithRegistry(nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), srv.config)
	assert.Equal(t, "0.0.0.0:5000", srv.GetAddr())
}

func TestNew_DuplicateRegistration(t *testing.T) {
	registry := prometheus.NewRegistry()

	first, err := NewWithRegistry(DefaultConfig(), registry, registry)
	require.NoError(t, err)
	second, err := NewWithRegistry(DefaultConfig(), registry, registry)
	require.NoError(t, err)

	// the second server reuses the collectors already registered
	assert.Same(t, first.metrics.calculations, second.metrics.calculations)
}

func TestServerIntegration_StartupAndShutdown(t *testing.T) {
	srv, _ := newTestServer(t)

	require.NoError(t, srv.Start())
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		assert.NoError(t, srv.Stop(ctx))
	}()

	addr := srv.GetAddr()
	assert.True(t, strings.HasPrefix(addr, "127.0.0.1:"))
	assert.NotEqual(t, "127.0.0.1:0", addr)

	resp, err := http.Get(fmt.Sprintf("http://%s/health", addr))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var health map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "healthy", health["status"])

	calc, err := http.Post(fmt.Sprintf("http://%s/calculate", addr), "application/json",
		strings.NewReader(`{"operation": "multiply", "a": 6, "b": 7}`))
	require.NoError(t, err)
	defer calc.Body.Close()

	var result CalculationResponse
	require.NoError(t, json.NewDecoder(calc.Body).Decode(&result))
	assert.Equal(t, StatusSuccess, result.Status)
	require.NotNil(t, result.Result)
	assert.Equal(t, 42.0, *result.Result)
}

func TestServer_StopWithoutStart(t *testing.T) {
	srv, _ := newTestServer(t)
	assert.NoError(t, srv.Stop(context.Background()))
}

func TestServer_StartWithGracefulShutdown(t *testing.T) {
	srv, _ := newTestServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- srv.StartWithGracefulShutdown(ctx)
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get(fmt.Sprintf("http://%s/health", srv.GetAddr()))
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServer_StartPortInUse(t *testing.T) {
	first, _ := newTestServer(t)
	require.NoError(t, first.Start())
	defer first.Stop(context.Background())

	_, port, _ := strings.Cut(first.GetAddr(), ":")

	registry := prometheus.NewRegistry()
	config := DefaultConfig()
	config.Host = "127.0.0.1"
	fmt.Sscanf(port, "%d", &config.Port)

	second, err := NewWithRegistry(config, registry, registry)
	require.NoError(t, err)
	assert.Error(t, second.Start())
}

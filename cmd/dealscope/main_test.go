package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_MissingConfig(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := run(ctx, Opts{Config: "non-existent-config.yml"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to load config")
}

func TestRun_InvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "broken yaml", content: "invalid: yaml: content: ["},
		{name: "bad thresholds", content: "scoring:\n  min_publish: 80\n  min_autonomous: 10\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()

			err := run(ctx, Opts{Config: path})
			require.Error(t, err)
			require.Contains(t, err.Error(), "failed to load config")
		})
	}
}

func TestRun_ServerStartStop(t *testing.T) {
	t.Setenv("DB_PATH", t.TempDir())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	runErr := make(chan error, 1)
	go func() { runErr <- run(ctx, Opts{Config: "testdata/test_config.yml"}) }()

	// wait for the server to accept requests
	var resp *http.Response
	require.Eventually(t, func() bool {
		r, err := http.Get("http://127.0.0.1:18765/ping")
		if err != nil {
			return false
		}
		resp = r
		return true
	}, 5*time.Second, 50*time.Millisecond)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "pong", string(body))

	statusResp, err := http.Get("http://127.0.0.1:18765/api/v1/status")
	require.NoError(t, err)
	defer statusResp.Body.Close()
	assert.Equal(t, http.StatusOK, statusResp.StatusCode)

	cancel()
	select {
	case err := <-runErr:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("shutdown timeout")
	}
}

func TestSetupLog(t *testing.T) {
	t.Run("debug", func(t *testing.T) {
		assert.NotPanics(t, func() { setupLog(true) })
	})
	t.Run("no debug", func(t *testing.T) {
		assert.NotPanics(t, func() { setupLog(false) })
	})
	t.Run("with secrets", func(t *testing.T) {
		assert.NotPanics(t, func() { setupLog(true, "secret1", "", "secret2") })
	})
	t.Cleanup(func() { setupLog(false) })
}

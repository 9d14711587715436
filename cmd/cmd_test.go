package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/zhubert/codecheck/internal/config"
)

// testBackend is an httptest server with canned responses per path
type testBackend struct {
	*httptest.Server

	mu       sync.Mutex
	requests []string
	bodies   []string
}

func newTestBackend(t *testing.T, routes map[string]http.HandlerFunc) *testBackend {
	t.Helper()
	b := &testBackend{}
	b.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		b.mu.Lock()
		b.requests = append(b.requests, r.Method+" "+r.URL.RequestURI())
		b.bodies = append(b.bodies, string(body))
		b.mu.Unlock()

		if h, ok := routes[r.Method+" "+r.URL.Path]; ok {
			h(w, r)
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(b.Close)
	return b
}

func (b *testBackend) Requests() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.requests...)
}

func (b *testBackend) Bodies() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.bodies...)
}

func jsonReply(status int, v any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(v)
	}
}

func rawReply(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		io.WriteString(w, body)
	}
}

// writeTestConfig writes a config file whose download dir is dir
func writeTestConfig(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "config.json")
	data, err := json.Marshal(map[string]any{"download_dir": dir})
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// execute runs the root command with args against server, returning stdout
func execute(t *testing.T, server string, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvServer, "")
	t.Setenv(config.EnvSession, "")

	dir := t.TempDir()
	cfgPath := writeTestConfig(t, dir)

	origServer, origConfig, origOut := serverURL, configPath, checkOutDir
	t.Cleanup(func() {
		serverURL, configPath, checkOutDir = origServer, origConfig, origOut
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
	})
	serverURL, configPath, checkOutDir = "", "", ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	full := append([]string{"--server", server, "--config", cfgPath}, args...)
	rootCmd.SetArgs(full)

	err := rootCmd.Execute()
	return out.String(), err
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYaml(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "coinwatch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestFromYamlFile(t *testing.T) {
	path := writeYaml(t, `
listen_addr: ":9090"
api_base_url: "http://localhost:8081/api/v3"
refresh_interval: 45s
http_timeout: 5s
coin_ids:
  - bitcoin
  - ethereum
tls_domain: "dash.example.com"
`)

	cfg, err := FromYamlFile(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, "http://localhost:8081/api/v3", cfg.APIBaseURL)
	assert.Equal(t, 45*time.Second, cfg.RefreshInterval)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, []string{"bitcoin", "ethereum"}, cfg.CoinIDs)
	assert.Equal(t, "dash.example.com", cfg.TLSDomain)
}

func TestFromYamlFileDefaults(t *testing.T) {
	path := writeYaml(t, `{}`)

	cfg, err := FromYamlFile(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultListenAddr, cfg.ListenAddr)
	assert.Equal(t, DefaultRefreshInterval, cfg.RefreshInterval)
	assert.Equal(t, DefaultHTTPTimeout, cfg.HTTPTimeout)
	assert.Len(t, cfg.CoinIDs, 20, "default asset set")
	assert.Empty(t, cfg.TLSDomain)
}

func TestFromYamlFileBadDuration(t *testing.T) {
	path := writeYaml(t, `refresh_interval: soon`)

	_, err := FromYamlFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refresh_interval")
}

func TestFromYamlFileMissing(t *testing.T) {
	_, err := FromYamlFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestSplitIDs(t *testing.T) {
	assert.Equal(t, []string{"bitcoin", "ethereum"}, splitIDs(" bitcoin , ethereum ,"))
	assert.Empty(t, splitIDs(" ,, "))
}

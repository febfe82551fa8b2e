// Package config loads coinwatch configuration from a YAML file or CLI flags.
package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/coinwatchd/coinwatch/internal/services/fallback"
)

const (
	DefaultListenAddr      = ":8080"
	DefaultRefreshInterval = 30 * time.Second
	DefaultHTTPTimeout     = 10 * time.Second
)

// Config is the resolved runtime configuration.
type Config struct {
	ListenAddr      string
	APIBaseURL      string
	RefreshInterval time.Duration
	HTTPTimeout     time.Duration
	CoinIDs         []string
	TLSDomain       string
	TLSCacheDir     string
}

type configYaml struct {
	ListenAddr      string   `yaml:"listen_addr,omitempty"`
	APIBaseURL      string   `yaml:"api_base_url,omitempty"`
	RefreshInterval string   `yaml:"refresh_interval,omitempty"`
	HTTPTimeout     string   `yaml:"http_timeout,omitempty"`
	CoinIDs         []string `yaml:"coin_ids,omitempty"`
	TLSDomain       string   `yaml:"tls_domain,omitempty"`
	TLSCacheDir     string   `yaml:"tls_cache_dir,omitempty"`
}

// Get resolves configuration: --config takes a YAML file, otherwise the
// remaining flags apply with defaults.
func Get() (Config, error) {
	configPath := flag.String("config", "", "path to yaml config")
	listen := flag.String("listen", DefaultListenAddr, "dashboard listen address")
	baseURL := flag.String("api-base-url", "", "market data API base URL (default: CoinGecko public API)")
	interval := flag.Duration("refresh-interval", DefaultRefreshInterval, "market data refresh interval")
	timeout := flag.Duration("http-timeout", DefaultHTTPTimeout, "upstream HTTP timeout")
	coins := flag.String("coins", "", "comma-separated upstream asset ids (default: built-in set of 20)")
	tlsDomain := flag.String("tls-domain", "", "serve HTTPS for this domain via ACME (optional)")
	flag.Parse()

	if *configPath != "" {
		return FromYamlFile(*configPath)
	}

	cfg := Config{
		ListenAddr:      *listen,
		APIBaseURL:      *baseURL,
		RefreshInterval: *interval,
		HTTPTimeout:     *timeout,
		TLSDomain:       *tlsDomain,
	}
	if *coins != "" {
		cfg.CoinIDs = splitIDs(*coins)
	}
	return withDefaults(cfg)
}

// FromYamlFile loads and validates configuration from a YAML file.
func FromYamlFile(path string) (Config, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var tmp configYaml
	if err := yaml.Unmarshal(f, &tmp); err != nil {
		return Config{}, fmt.Errorf("parse yaml config %s: %w", path, err)
	}

	interval, err := parseDuration(tmp.RefreshInterval, "refresh_interval")
	if err != nil {
		return Config{}, err
	}
	timeout, err := parseDuration(tmp.HTTPTimeout, "http_timeout")
	if err != nil {
		return Config{}, err
	}

	return withDefaults(Config{
		ListenAddr:      tmp.ListenAddr,
		APIBaseURL:      tmp.APIBaseURL,
		RefreshInterval: interval,
		HTTPTimeout:     timeout,
		CoinIDs:         tmp.CoinIDs,
		TLSDomain:       tmp.TLSDomain,
		TLSCacheDir:     tmp.TLSCacheDir,
	})
}

func parseDuration(s, field string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("incorrect '%s' param in yaml config: %w", field, err)
	}
	return d, nil
}

func withDefaults(cfg Config) (Config, error) {
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = DefaultListenAddr
	}
	if cfg.RefreshInterval == 0 {
		cfg.RefreshInterval = DefaultRefreshInterval
	}
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = DefaultHTTPTimeout
	}
	if len(cfg.CoinIDs) == 0 {
		cfg.CoinIDs = fallback.IDs()
	}

	if cfg.RefreshInterval < 0 {
		return Config{}, fmt.Errorf("refresh_interval must be positive, got %s", cfg.RefreshInterval)
	}
	if cfg.HTTPTimeout < 0 {
		return Config{}, fmt.Errorf("http_timeout must be positive, got %s", cfg.HTTPTimeout)
	}
	for _, id := range cfg.CoinIDs {
		if strings.TrimSpace(id) == "" {
			return Config{}, fmt.Errorf("empty asset id in coin list")
		}
	}
	return cfg, nil
}

func splitIDs(s string) []string {
	parts := strings.Split(s, ",")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			ids = append(ids, p)
		}
	}
	return ids
}

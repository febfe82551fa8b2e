// Package setup implements the interactive configuration wizard.
package setup

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/coinwatchd/coinwatch/internal/services/fallback"
)

var (
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(highlight).
			Padding(1, 2).
			Bold(true).
			MarginBottom(1)

	stepStyle = lipgloss.NewStyle().
			Foreground(special).
			Bold(true).
			MarginTop(1)
)

type wizardConfig struct {
	ListenAddr      string   `yaml:"listen_addr"`
	RefreshInterval string   `yaml:"refresh_interval"`
	CoinIDs         []string `yaml:"coin_ids,omitempty"`
	TLSDomain       string   `yaml:"tls_domain,omitempty"`
}

// RunTUI launches the terminal configuration wizard and writes
// coinwatch.gen.yaml on confirmation.
func RunTUI() error {
	listenAddr := ":8080"
	intervalStr := "30s"
	coinsStr := strings.Join(fallback.IDs(), ",")
	tlsDomain := ""
	confirm := false

	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("COINWATCH CONFIG WIZARD"))
	fmt.Println(lipgloss.NewStyle().Foreground(subtle).Render("A dashboard polling live crypto prices.\n"))

	fmt.Println(stepStyle.Render("STEP 1: SERVER"))
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Listen Address").
				Description("host:port the dashboard serves on (e.g. :8080)").
				Value(&listenAddr).
				Validate(func(s string) error {
					if !strings.Contains(s, ":") {
						return fmt.Errorf("address must contain a port (e.g. :8080)")
					}
					return nil
				}),
			huh.NewInput().
				Title("TLS Domain").
				Description("leave empty for plain HTTP; set a domain for automatic HTTPS").
				Value(&tlsDomain),
		),
	).Run()
	if err != nil {
		return err
	}

	fmt.Println(stepStyle.Render("STEP 2: REFRESH"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Refresh Interval").
				Description("Duration string (e.g. 30s, 1m)").
				Value(&intervalStr).
				Validate(func(s string) error {
					d, err := time.ParseDuration(s)
					if err != nil {
						return err
					}
					if d <= 0 {
						return fmt.Errorf("interval must be positive")
					}
					return nil
				}),
		),
	).Run()
	if err != nil {
		return err
	}

	fmt.Println(stepStyle.Render("STEP 3: ASSETS"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Tracked Assets").
				Description("comma-separated upstream ids, market-cap order").
				Value(&coinsStr).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("at least one asset id is required")
					}
					return nil
				}),
		),
	).Run()
	if err != nil {
		return err
	}

	fmt.Println(stepStyle.Render("STEP 4: CONFIRM"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Write coinwatch.gen.yaml (listen %s, refresh %s)?", listenAddr, intervalStr)).
				Value(&confirm),
		),
	).Run()
	if err != nil {
		return err
	}
	if !confirm {
		fmt.Println("aborted, nothing written")
		return nil
	}

	cfg := wizardConfig{
		ListenAddr:      listenAddr,
		RefreshInterval: intervalStr,
		TLSDomain:       tlsDomain,
	}
	for _, id := range strings.Split(coinsStr, ",") {
		if id = strings.TrimSpace(id); id != "" {
			cfg.CoinIDs = append(cfg.CoinIDs, id)
		}
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to generate yaml: %w", err)
	}

	filename := "coinwatch.gen.yaml"
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}

	fmt.Println(lipgloss.NewStyle().Foreground(special).Render("\nWrote " + filename))
	fmt.Println("Run: coinwatch --config " + filename)
	return nil
}

// Package setup provides a terminal wizard that generates the wallet
// configuration file.
package setup

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/vadiminshakov/centi/config"
)

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(highlight).
			Padding(1, 2).
			Bold(true).
			MarginBottom(1)

	stepStyle = lipgloss.NewStyle().
			Foreground(special).
			Bold(true).
			MarginTop(1).
			MarginBottom(0)
)

// RunTUI launches the terminal configuration wizard.
func RunTUI() error {
	var (
		balanceStr   string
		platform     string
		rateLimitStr string
		useLLM       bool
		apiURL       string
		apiKey       string
		model        string
		webAddr      string
		confirm      bool
	)

	// defaults
	balanceStr = "10.0"
	rateLimitStr = "30"
	apiURL = "https://openrouter.ai/api/v1/chat/completions"
	model = "deepseek/deepseek-v3.2-exp"
	webAddr = ":8080"

	// step 1: wallet
	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("CENTI CONFIG WIZARD"))
	fmt.Println(lipgloss.NewStyle().Foreground(subtle).Render("Let's fund your agent wallet.\n"))

	fmt.Println(stepStyle.Render("STEP 1: WALLET"))
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Initial Balance (USDC)").
				Description("Simulated funds the agent can spend on paid calls").
				Value(&balanceStr).
				Validate(validateBalance),
		),
	).Run()
	if err != nil {
		return err
	}

	// step 2: quote platform
	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("CENTI CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("STEP 2: QUOTE PLATFORM"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Where should stock quotes come from?").
				Options(
					huh.NewOption("Simulation", config.PlatformSimulate),
					huh.NewOption("Binance", config.PlatformBinance),
					huh.NewOption("Bybit", config.PlatformBybit),
				).
				Value(&platform),
		),
	).Run()
	if err != nil {
		return err
	}

	// step 3: limits
	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("CENTI CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("STEP 3: LIMITS"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Paid calls per minute").
				Description("0 disables the limit").
				Value(&rateLimitStr).
				Validate(func(s string) error {
					n, err := strconv.Atoi(s)
					if err != nil || n < 0 {
						return fmt.Errorf("must be a non-negative integer")
					}
					return nil
				}),
		),
	).Run()
	if err != nil {
		return err
	}

	// step 4: intent resolution
	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("CENTI CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("STEP 4: INTENT RESOLUTION"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Use an LLM to route queries?").
				Description("Without it, keyword matching is used").
				Affirmative("Yes").
				Negative("No, keywords only").
				Value(&useLLM),
		),
	).Run()
	if err != nil {
		return err
	}

	if useLLM {
		err = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("LLM API URL").
					Value(&apiURL),
				huh.NewInput().
					Title("LLM API Key").
					Value(&apiKey).
					EchoMode(huh.EchoModePassword),
				huh.NewInput().
					Title("Model Name").
					Value(&model),
			),
		).Run()
		if err != nil {
			return err
		}
	}

	// confirmation
	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("CENTI CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("FINAL CONFIRMATION"))

	resolver := "keywords"
	if useLLM {
		resolver = model
	}
	summary := fmt.Sprintf(
		"Balance: %s USDC\nPlatform: %s\nRate limit: %s/min\nResolver: %s\nDashboard: %s\n",
		balanceStr, platform, rateLimitStr, resolver, webAddr,
	)
	fmt.Println(lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(1).Render(summary))

	err = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Save Configuration?").
				Affirmative("Yes, save and start").
				Negative("No, exit").
				Value(&confirm),
		),
	).Run()
	if err != nil {
		return err
	}

	if !confirm {
		return fmt.Errorf("setup cancelled by user")
	}

	rateLimit, _ := strconv.Atoi(rateLimitStr)

	cfgTmp := config.ConfigTmp{
		InitialBalance:     balanceStr,
		Platform:           platform,
		RateLimitPerMinute: &rateLimit,
		WebAddr:            webAddr,
	}
	if useLLM {
		cfgTmp.LLMAPIURL = apiURL
		cfgTmp.LLMModel = model
	}

	data, err := yaml.Marshal(cfgTmp)
	if err != nil {
		return fmt.Errorf("failed to generate yaml: %w", err)
	}

	filename := "config.gen.yaml"
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to save config file: %w", err)
	}

	// the key goes to .env, not the yaml, so the config file stays shareable
	if useLLM && apiKey != "" {
		if err := os.WriteFile(".env", []byte(fmt.Sprintf("LLM_API_KEY=%s\n", apiKey)), 0600); err != nil {
			return fmt.Errorf("failed to save .env: %w", err)
		}
	}

	fmt.Println(lipgloss.NewStyle().Foreground(special).Render(fmt.Sprintf("\n✓ Configuration saved to %s\nStarting wallet...", filename)))
	time.Sleep(1500 * time.Millisecond)
	return nil
}

func validateBalance(s string) error {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("must be a valid number")
	}
	if d.IsNegative() {
		return fmt.Errorf("must not be negative")
	}
	return nil
}

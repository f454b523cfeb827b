package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/viper"

	"github.com/bryanwahyu/review-miner/internal/application/collector"
	"github.com/bryanwahyu/review-miner/internal/domain/locale"
	"github.com/bryanwahyu/review-miner/internal/infra/apiclient"
	"github.com/bryanwahyu/review-miner/internal/logger"
)

func main() {
	themeFlag := flag.String("theme", "", "UI theme (sakura, cyan, amber, dracula)")
	listThemes := flag.Bool("list-themes", false, "List all available themes")
	countryFlag := flag.String("country", "", "App Store country code")
	langFlag := flag.String("lang", "", "Review language")
	flag.Parse()

	if *listThemes {
		fmt.Println("Available themes:")
		for _, theme := range ListThemes() {
			fmt.Printf("  - %s\n", theme)
		}
		os.Exit(0)
	}

	v := viper.New()
	v.SetEnvPrefix("REVIEWMINER")
	v.AutomaticEnv()
	v.SetDefault("api_url", "http://localhost:8080")
	v.SetDefault("theme", string(ThemeSakura))
	v.SetDefault("country", locale.DefaultCountry.String())
	v.SetDefault("lang", string(locale.DefaultLanguage))
	v.SetDefault("log", false)

	selectedTheme := *themeFlag
	if selectedTheme == "" {
		selectedTheme = v.GetString("theme")
	}
	theme := ThemeName(selectedTheme)
	if !validTheme(theme) {
		fmt.Printf("Invalid theme '%s'. Use --list-themes to see available options.\n", theme)
		os.Exit(1)
	}

	countryCode := *countryFlag
	if countryCode == "" {
		countryCode = v.GetString("country")
	}
	country, ok := locale.ParseCountry(strings.ToUpper(countryCode))
	if !ok {
		fmt.Printf("Invalid country '%s'.\n", countryCode)
		os.Exit(1)
	}
	lang := *langFlag
	if lang == "" {
		lang = v.GetString("lang")
	}

	// The alt screen owns stdout, so logs only go to a file when asked for.
	var logOut io.Writer = io.Discard
	if v.GetBool("log") {
		logOut = nil
	}
	log := logger.NewLogger(logger.Config{Level: "info", Format: "json", Output: "file"}, logOut)
	defer func() { _ = log.Sync() }()

	client := apiclient.New(v.GetString("api_url"), v.GetString("api_key"), 90*time.Second)
	session := collector.NewSession(client, client,
		collector.WithPolicy(collector.PartialCommit),
		collector.WithLocale(country, locale.Language(strings.ToLower(lang))),
		collector.WithLogger(log),
	)

	p := tea.NewProgram(initialModel(theme, client, session), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Errorw("error running program", "error", err)
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}

func validTheme(theme ThemeName) bool {
	for _, t := range ListThemes() {
		if t == theme {
			return true
		}
	}
	return false
}

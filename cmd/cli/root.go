package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bryanwahyu/review-miner/internal/domain/locale"
	"github.com/bryanwahyu/review-miner/internal/infra/apiclient"
)

var (
	apiURL     string
	apiKey     string
	country    string
	language   string
	outputJSON bool
	timeout    time.Duration
)

// Flag variables only hold defaults and explicit values; read settings
// through viper so REVIEWMINER_* env applies too.
func jsonOutput() bool { return viper.GetBool("json") }

var rootCmd = &cobra.Command{
	Use:           "review-miner",
	Short:         "review-miner collects negative App Store reviews and summarizes them.",
	Long:          `A CLI for the review-miner API: search the App Store, collect low-rated reviews for one or more apps and ask for an analysis of common problems.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&apiURL, "api-url", apiclient.DefaultBaseURL, "review-miner API base URL")
	flags.StringVar(&apiKey, "api-key", "", "API key")
	flags.StringVarP(&country, "country", "c", locale.DefaultCountry.String(), "App Store country code")
	flags.StringVarP(&language, "lang", "l", string(locale.DefaultLanguage), "Review language")
	flags.BoolVar(&outputJSON, "json", false, "Output as JSON")
	flags.DurationVar(&timeout, "timeout", 90*time.Second, "Request timeout")

	for _, name := range []string{"api-url", "api-key", "country", "lang", "json", "timeout"} {
		if err := viper.BindPFlag(name, flags.Lookup(name)); err != nil {
			fmt.Fprintf(os.Stderr, "Error binding flag %s: %v\n", name, err)
			os.Exit(1)
		}
	}
}

// initConfig reads ENV variables if set.
func initConfig() {
	viper.SetEnvPrefix("REVIEWMINER")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func newClient() *apiclient.Client {
	return apiclient.New(viper.GetString("api-url"), viper.GetString("api-key"), viper.GetDuration("timeout"))
}

func resolveLocale() (locale.Country, locale.Language, error) {
	code := strings.ToUpper(viper.GetString("country"))
	c, ok := locale.ParseCountry(code)
	if !ok {
		return 0, "", fmt.Errorf("無効な国コード: %s", code)
	}
	return c, locale.Language(strings.ToLower(viper.GetString("lang"))), nil
}

// cdsego queries and downloads Copernicus Data Space Ecosystem products.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cdsetool/cdsego/internal/config"
	"github.com/cdsetool/cdsego/internal/log"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

var (
	flagConfig   string
	flagLogLevel string

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:           "cdsego",
	Short:         "Query and download products from the Copernicus Data Space Ecosystem",
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Logging comes up before the config is loaded so its debug entries
		// already honour the flag (or CDSE_LOG_LEVEL).
		log.Configure(log.Config{
			Level:   flagLogLevel,
			Service: "cdsego",
			Version: version,
		})

		var err error
		cfg, err = config.Load(flagConfig)
		if err != nil {
			return err
		}
		// The flag wins over the config file level.
		if flagLogLevel == "" {
			log.Configure(log.Config{
				Level:   cfg.LogLevel,
				Service: "cdsego",
				Version: version,
			})
		}
		return nil
	},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file (YAML)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(downloadCmd)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// parseSearchTerms turns repeated term=value flags into a search term map.
// Values may themselves contain '=', so only the first one splits.
func parseSearchTerms(pairs []string) (map[string]any, error) {
	terms := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		for i := 0; i < len(pair); i++ {
			if pair[i] == '=' {
				terms[pair[:i]] = pair[i+1:]
				pair = ""
				break
			}
		}
		if pair != "" {
			return nil, fmt.Errorf("invalid search term %q: expected term=value", pair)
		}
	}
	return terms, nil
}

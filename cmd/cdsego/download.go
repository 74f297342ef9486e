package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cdsetool/cdsego/internal/catalogue"
	"github.com/cdsetool/cdsego/internal/credentials"
	"github.com/cdsetool/cdsego/internal/download"
	"github.com/cdsetool/cdsego/internal/log"
)

var (
	flagDownloadTerms     []string
	flagConcurrency       int
	flagOverwriteExisting bool
	flagFilterPattern     string
)

var downloadCmd = &cobra.Command{
	Use:   "download <collection> <path>",
	Short: "Download all products matching the search terms",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		collection, dir := args[0], args[1]
		if _, err := os.Stat(dir); err != nil {
			return fmt.Errorf("path %s does not exist", dir)
		}

		terms, err := parseSearchTerms(flagDownloadTerms)
		if err != nil {
			return err
		}

		ctx := cmd.Context()

		creds, err := credentials.New(cfg.Username, cfg.Password, credentials.Options{
			TokenURL: cfg.IdentityURL,
			Timeout:  cfg.Timeout,
		})
		if err != nil {
			return err
		}
		httpClient, err := creds.HTTPClient(ctx)
		if err != nil {
			return err
		}

		client := newCatalogueClient()
		query, err := client.Query(collection, terms, catalogue.QueryOptions{})
		if err != nil {
			return err
		}
		products, err := query.All(ctx)
		if err != nil {
			return err
		}

		concurrency := flagConcurrency
		if concurrency == 0 {
			concurrency = cfg.Concurrency
		}

		downloader := download.New(cfg.DownloadURL, httpClient)
		results := downloader.Features(ctx, products, dir, download.Options{
			Concurrency:       concurrency,
			OverwriteExisting: flagOverwriteExisting,
			FilterPattern:     flagFilterPattern,
			Monitor:           download.NewLogMonitor(),
		})

		failed := 0
		logger := log.Base()
		for _, res := range results {
			if res.Err != nil {
				failed++
				logger.Error().
					Err(res.Err).
					Str(log.FieldProduct, res.Product.Name).
					Msg("download failed")
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d downloads failed", failed, len(results))
		}
		return nil
	},
}

func init() {
	downloadCmd.Flags().IntVar(&flagConcurrency, "concurrency", 0,
		"number of concurrent downloads (0 uses the configured default)")
	downloadCmd.Flags().BoolVar(&flagOverwriteExisting, "overwrite-existing", false,
		"overwrite already downloaded files")
	downloadCmd.Flags().StringArrayVar(&flagDownloadTerms, "search-term", nil,
		"search by term=value pairs, pass multiple times for multiple search terms")
	downloadCmd.Flags().StringVar(&flagFilterPattern, "filter-pattern", "",
		"download only files inside product bundles matching this glob")
}

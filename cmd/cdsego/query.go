package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cdsetool/cdsego/internal/catalogue"
	"github.com/cdsetool/cdsego/internal/odata"
)

var (
	flagSearchTerms []string
	flagJSON        bool
	flagLimit       int
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Search the product catalogue",
}

var searchCmd = &cobra.Command{
	Use:   "search <collection>",
	Short: "Search for products matching the search terms",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		terms, err := parseSearchTerms(flagSearchTerms)
		if err != nil {
			return err
		}

		client := newCatalogueClient()
		query, err := client.Query(args[0], terms, catalogue.QueryOptions{
			ExpandAttributes: flagJSON,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		printed := 0
		for product, err := range query.Iter(cmd.Context()) {
			if err != nil {
				return err
			}
			if flagJSON {
				line, err := json.Marshal(product)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(line))
			} else {
				fmt.Fprintln(out, product.Name)
			}
			printed++
			if flagLimit > 0 && printed == flagLimit {
				break
			}
		}
		return nil
	},
}

var searchTermsCmd = &cobra.Command{
	Use:   "search-terms [collection]",
	Short: "List the available search terms for a collection",
	Long: "List the available search terms for a collection (e.g. SENTINEL-1, SENTINEL-2).\n" +
		"Without a collection, only builtin parameters are shown and no server request is made.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if len(args) == 0 {
			fmt.Fprintln(out, "Builtin search terms (use with --search-term):")
			fmt.Fprintln(out)
			fmt.Fprintln(out, formatTerms(odata.DescribeSearchTerms()))
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Specify a collection name to see collection-specific attributes.")
			return nil
		}

		collection := args[0]
		client := newCatalogueClient()
		terms, err := client.DescribeCollection(cmd.Context(), collection)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "Search terms for collection %s:\n\n", collection)
		if len(terms) == 0 {
			fmt.Fprintln(out, "  (none)")
			return nil
		}
		fmt.Fprintln(out, formatTerms(terms))
		return nil
	},
}

func newCatalogueClient() *catalogue.Client {
	return catalogue.New(cfg.CatalogueURL, catalogue.Options{
		Timeout:           cfg.Timeout,
		RequestsPerSecond: cfg.RequestsPerSecond,
	})
}

// formatTerms renders search term descriptions the same way for builtin and
// collection-specific terms.
func formatTerms(terms map[string]odata.TermInfo) string {
	keys := make([]string, 0, len(terms))
	for key := range terms {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, key := range keys {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "  - %s", key)
		info := terms[key]
		if info.Title != "" {
			fmt.Fprintf(&b, "\n      Description: %s", info.Title)
		}
		if info.Type != "" {
			fmt.Fprintf(&b, "\n      Type: %s", info.Type)
		}
		if info.Example != "" {
			fmt.Fprintf(&b, "\n      Example: %s", info.Example)
		}
	}
	return b.String()
}

func init() {
	searchCmd.Flags().StringArrayVar(&flagSearchTerms, "search-term", nil,
		"search by term=value pairs, pass multiple times for multiple search terms")
	searchCmd.Flags().BoolVar(&flagJSON, "json", false, "output products as JSON, one per line")
	searchCmd.Flags().IntVar(&flagLimit, "limit", 0, "stop after this many products (0 means all)")

	queryCmd.AddCommand(searchCmd)
	queryCmd.AddCommand(searchTermsCmd)
}

package cmd

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/docshare/filesystem/internal/cli/api"
	"github.com/docshare/filesystem/internal/cli/output"
	"github.com/docshare/filesystem/internal/cli/pathutil"
	"github.com/spf13/cobra"
)

var (
	flagTop   int
	flagDir   string
	flagMatch string
)

var searchCmd = &cobra.Command{
	Use:   "search <name>",
	Short: "Search files by name",
	Long: `Search files whose name starts with the given text.

  contentctl search report
  contentctl search .pdf --match endswith --top 10
  contentctl search Q3 --dir /Documents/Reports`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireCustomer(); err != nil {
			return err
		}

		params := url.Values{}
		params.Set("name", args[0])
		if flagTop > 0 {
			params.Set("top", strconv.Itoa(flagTop))
		}
		if flagMatch != "" {
			params.Set("match", flagMatch)
		}
		if flagSort != "" {
			params.Set("sort", flagSort)
		}
		if flagDir != "" {
			dir, err := pathutil.Resolve(apiClient, flagDir)
			if err != nil {
				return fmt.Errorf("resolving directory: %w", err)
			}
			params.Set("directoryID", dir.ID)
		}

		var resp api.Response[[]api.Content]
		if err := apiClient.Get("/files/search", params, &resp); err != nil {
			if !api.IsNotFound(err) {
				return fmt.Errorf("searching: %w", err)
			}
			resp.Data = []api.Content{}
		}

		if flagJSON {
			output.JSON(resp.Data)
			return nil
		}

		output.ContentTable(resp.Data)
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVar(&flagTop, "top", 0, "Maximum results (default: server setting)")
	searchCmd.Flags().StringVar(&flagDir, "dir", "", "Only search directly inside this directory")
	searchCmd.Flags().StringVar(&flagMatch, "match", "", "Match mode: exact, contains, startswith, endswith")
	searchCmd.Flags().StringVar(&flagSort, "sort", "", "Order as field[:desc],... (default: name:desc)")
	rootCmd.AddCommand(searchCmd)
}

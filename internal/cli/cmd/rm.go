package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/docshare/filesystem/internal/cli/pathutil"
	"github.com/spf13/cobra"
)

var flagForce bool

var rmCmd = &cobra.Command{
	Use:   "rm <path>",
	Short: "Delete a file or directory",
	Long: `Delete a file or directory.

  contentctl rm /Documents/old-report.pdf
  contentctl rm /Temp --force                    Skip confirmation

Warning: Deleting a directory removes all contents recursively. This cannot be undone.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireCustomer(); err != nil {
			return err
		}

		node, err := pathutil.Resolve(apiClient, args[0])
		if err != nil {
			return err
		}
		if node.IsRoot() {
			return fmt.Errorf("cannot delete root directory")
		}

		if !flagForce {
			kind := "file"
			if node.IsDirectory() {
				kind = "directory (and all contents)"
			}
			printf("Delete %s %q? This cannot be undone. [y/N] ", kind, node.Path)
			answer, _ := bufio.NewReader(stdin).ReadString('\n')
			answer = strings.TrimSpace(strings.ToLower(answer))
			if answer != "y" && answer != "yes" {
				printf("Cancelled.\n")
				return nil
			}
		}

		if err := apiClient.Delete("/content/"+node.ID, nil); err != nil {
			return fmt.Errorf("deleting: %w", err)
		}

		printf("Deleted: %s\n", node.Path)
		return nil
	},
}

func init() {
	rmCmd.Flags().BoolVarP(&flagForce, "force", "f", false, "Skip confirmation prompt")
	rootCmd.AddCommand(rmCmd)
}

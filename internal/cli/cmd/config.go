package cmd

import (
	"fmt"

	"github.com/docshare/filesystem/internal/cli/config"
	"github.com/docshare/filesystem/internal/cli/output"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change the saved server and customer",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagJSON {
			output.JSON(cfg)
			return nil
		}
		p, _ := config.Path()
		printf("Config file: %s\n", p)
		printf("Server:      %s\n", cfg.ServerURL)
		customer := cfg.CustomerID
		if customer == "" {
			customer = "(not set)"
		}
		printf("Customer:    %s\n", customer)
		return nil
	},
}

var configSetServerCmd = &cobra.Command{
	Use:   "set-server <url>",
	Short: "Save the server URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.SetServer(args[0]); err != nil {
			return err
		}
		if err := config.Save(cfg); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		printf("Server set to %s\n", cfg.ServerURL)
		return nil
	},
}

var configSetCustomerCmd = &cobra.Command{
	Use:   "set-customer <uuid>",
	Short: "Save the customer id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.SetCustomer(args[0]); err != nil {
			return err
		}
		if err := config.Save(cfg); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		printf("Customer set to %s\n", cfg.CustomerID)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetServerCmd, configSetCustomerCmd)
	rootCmd.AddCommand(configCmd)
}

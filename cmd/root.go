package cmd

import (
	"fmt"
	"os"

	"snipe-netbox-sync/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "snipe-netbox-sync",
	Short: "Snipe-IT to NetBox sync",
	Long: `Synchronizes the Snipe-IT asset catalog into NetBox: companies, manufacturers,
models, locations and assets become tenants, manufacturers, device types, sites,
locations and devices.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console encoding at debug level gives readable timestamps on the terminal.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

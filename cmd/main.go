package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	_ "time/tzdata"
)

var configFile string

func main() {
	rootCmd := &cobra.Command{
		Use:          "qrstudio",
		Short:        "QR code studio: Telegram bot and command line exporter",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ./config.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	_ = viper.BindPFlag("settings.debug", rootCmd.PersistentFlags().Lookup("debug"))

	rootCmd.AddCommand(botCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(presetsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

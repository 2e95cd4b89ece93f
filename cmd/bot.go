package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Badsnus/qr-studio/cmd/bot"
	"github.com/Badsnus/qr-studio/internal/adapters/config"
	setupBot "github.com/Badsnus/qr-studio/internal/adapters/controller/telegram/setup"
)

func botCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Run the Telegram studio bot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Get(viper.GetViper(), configFile)
			if err != nil {
				return err
			}

			b, err := bot.New(cfg)
			if err != nil {
				return err
			}
			if err = setupBot.Setup(b); err != nil {
				return err
			}

			b.Start()
			return nil
		},
	}
}

package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/tablestar/internal/bot"
)

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the Telegram practice bot",
	Long: `Run a Telegram bot that serves practice rounds to every chat. The bot
token comes from TABLESTAR_TELEGRAM_TOKEN or [telegram] token in the
config file. Rounds are saved to the same history as the terminal app.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fc, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		practice, err := fc.Drill()
		if err != nil {
			return err
		}

		api, err := bot.Connect(fc.TelegramToken())
		if err != nil {
			return err
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		handler := bot.NewHandler(api, s.HistoryRepo(), practice)
		if err := bot.NewBot(api, handler).Run(ctx); err != nil {
			return fmt.Errorf("run bot: %w", err)
		}
		return nil
	},
}

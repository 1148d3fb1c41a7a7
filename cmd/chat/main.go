package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var server string

	cmd := &cobra.Command{
		Use:   "kiosk-chat",
		Short: "Talk to a running kiosk assistant",
		Long: `Talk to a running kiosk assistant over its REST API.

Examples:
  kiosk-chat                              # Interactive REPL
  kiosk-chat -m "what's my iPhone 13 worth?"
  kiosk-chat -c 3f1c... -m "256GB on Verizon"
  kiosk-chat watch --nats nats://localhost:4222`,
	}
	cmd.PersistentFlags().StringVar(&server, "server", "http://localhost:3000", "assistant base URL")

	cmd.AddCommand(chatCmd(&server))
	cmd.AddCommand(watchCmd())

	// bare invocation starts the REPL
	chat := chatCmd(&server)
	cmd.Flags().AddFlagSet(chat.Flags())
	cmd.RunE = chat.RunE

	return cmd
}

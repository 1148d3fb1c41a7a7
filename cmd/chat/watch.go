package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"kiosk-assistant-be/pkg/events"
	pktNats "kiosk-assistant-be/pkg/nats"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func watchCmd() *cobra.Command {
	var natsURL string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print conversation turns as the assistant publishes them",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			sub, err := pktNats.NewSubscriber(natsURL)
			if err != nil {
				return err
			}
			defer sub.Close()

			actionColor := color.New(color.FgCyan, color.Bold)
			err = sub.Subscribe(ctx, events.TypeConversationTurn, "", func(_ context.Context, ev events.Event) error {
				p := ev.Payload()
				actionColor.Printf("[%s] %v ", ev.Timestamp().Format("15:04:05"), p["action"])
				fmt.Printf("%v\n  user: %v\n  bot:  %v\n", p["conversationId"], p["userMessage"], p["reply"])
				return nil
			})
			if err != nil {
				return err
			}

			<-ctx.Done()
			return nil
		},
	}

	cmd.Flags().StringVar(&natsURL, "nats", "nats://localhost:4222", "NATS server URL")
	return cmd
}

package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"kiosk-assistant-be/internal/dto"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	botColor  = color.New(color.FgGreen)
	errColor  = color.New(color.FgRed)
	hintColor = color.New(color.Faint)
)

func chatCmd(server *string) *cobra.Command {
	var (
		message        string
		conversationId string
	)

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Interactive REPL, or a one-shot message with -m",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := &chatClient{
				baseURL: strings.TrimRight(*server, "/"),
				http:    &http.Client{Timeout: 60 * time.Second},
				id:      conversationId,
			}
			if message != "" {
				return client.send(cmd.Context(), message, os.Stdout)
			}
			return client.repl(cmd.Context(), os.Stdin, os.Stdout)
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "one-shot message (omit for interactive mode)")
	cmd.Flags().StringVarP(&conversationId, "conversation", "c", "", "continue an existing conversation")

	return cmd
}

type chatClient struct {
	baseURL string
	http    *http.Client
	id      string
}

func (c *chatClient) repl(ctx context.Context, in io.Reader, out io.Writer) error {
	hintColor.Fprintln(out, "Type a message, or \"exit\" to quit.")
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "exit", "quit":
			return nil
		}
		if err := c.send(ctx, line, out); err != nil {
			errColor.Fprintln(out, err)
		}
	}
}

func (c *chatClient) send(ctx context.Context, message string, out io.Writer) error {
	body, err := json.Marshal(dto.ChatRequest{Message: message, ConversationId: c.id})
	if err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("assistant unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var failure dto.ChatErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&failure)
		return fmt.Errorf("assistant error (%d): %s", resp.StatusCode, failure.Error)
	}

	var res dto.ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return fmt.Errorf("decode reply: %w", err)
	}
	if c.id == "" {
		hintColor.Fprintf(out, "conversation %s\n", res.ConversationId)
	}
	c.id = res.ConversationId
	botColor.Fprintln(out, res.Reply)
	return nil
}

package commands

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mybussiness/bazaar/assistant"
	"github.com/mybussiness/bazaar/fixture"
)

// NewChatCommand runs an interactive assistant chat for a demo user.
// The assistant persona follows the user's role.
func NewChatCommand(app *App) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with the BUSSINESS assistant",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			user, ok := fixture.UserByEmail(email)
			if !ok {
				return fmt.Errorf("no demo user with email %q", email)
			}

			businessName := ""
			if user.BusinessID != "" {
				if b, found := app.Catalog.Business(user.BusinessID); found {
					businessName = b.Name
				}
			}

			session := app.ChatAssistant.NewChatSession(user.Role, user.Name, businessName)

			fmt.Fprintln(out, assistant.Greeting(user.Name))
			fmt.Fprintln(out, `Type a message, or "exit" to leave.`)

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for {
				fmt.Fprint(out, "> ")
				if !scanner.Scan() {
					break
				}
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}
				if line == "exit" || line == "quit" {
					break
				}

				stream := session.Send(cmd.Context(), line)
				for chunk := range stream.Chunks() {
					fmt.Fprint(out, chunk)
				}
				fmt.Fprintln(out)
				if err := stream.Err(); err != nil {
					app.Logger.Warn("Chat stream ended with error", "error", err)
				}
			}
			return scanner.Err()
		},
	}

	cmd.Flags().StringVar(&email, "user", "abdullah@gmail.com", "Demo user email to chat as")
	return cmd
}

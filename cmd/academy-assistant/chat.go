package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	conversationrouter "academy-assistant/internal/agents/routing/conversation-router"
	"academy-assistant/internal/common/logger"
	"academy-assistant/internal/models"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the assistant in the terminal",
	Long: `Start an interactive conversation in the terminal.

Commands:
  /reset   clear the conversation and start over
  /status  show the current mode
  /quit    leave`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		level := logLevel
		if level == "" {
			level = "warn"
		}
		zapLog := logger.New(level, "console")
		defer zapLog.Sync()
		log := logger.NewZapAdapter(zapLog)

		ctx := cmd.Context()
		a, err := newApp(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer a.Close()

		return runChat(ctx, a.router, cmd.InOrStdin(), cmd.OutOrStdout(), markdownRenderer())
	},
}

// markdownRenderer renders replies with glamour, falling back to plain text.
func markdownRenderer() func(string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(88),
	)
	if err != nil {
		return func(s string) string { return s + "\n" }
	}
	return func(s string) string {
		out, err := r.Render(s)
		if err != nil {
			return s + "\n"
		}
		return out
	}
}

func printStatus(out io.Writer, symbol, message string, colorAttr color.Attribute) {
	c := color.New(colorAttr)
	fmt.Fprintf(out, "%s %s\n", c.Sprint(symbol), message)
}

func runChat(ctx context.Context, router *conversationrouter.Router, in io.Reader, out io.Writer, render func(string) string) error {
	conv := models.NewConversation(uuid.NewString())
	prompt := color.New(color.FgCyan, color.Bold).Sprint("you › ")

	show := func(reply *conversationrouter.Reply) {
		fmt.Fprint(out, render(reply.Text))
		printStatus(out, "●", reply.Status, color.FgYellow)
	}

	show(router.Start(conv))

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())

		switch strings.ToLower(line) {
		case "":
			continue
		case "/quit", "/exit":
			printStatus(out, "✓", "Goodbye!", color.FgGreen)
			return nil
		case "/reset":
			printStatus(out, "↺", "Conversation cleared.", color.FgGreen)
			show(router.Restart(conv))
			continue
		case "/status":
			printStatus(out, "●", router.StatusLine(conv), color.FgYellow)
			continue
		}

		if err := ctx.Err(); err != nil {
			return err
		}
		show(router.Handle(ctx, conv, line))
	}
}

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Sajidddd11/telegramtodo/internal/app"
	"github.com/Sajidddd11/telegramtodo/internal/model"
)

func newChatCmd(env *cliEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Interactive conversation with the assistant",
		Long: `Starts a conversation with the assistant.

Type /reset to forget the conversation, /list to print your todos and
exit or quit to leave.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			core, err := app.Build(ctx, env.cfg, env.logger, nil)
			if err != nil {
				return err
			}
			defer core.Close()

			return chatLoop(ctx, core, env.scope(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func newAskCmd(env *cliEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <message>",
		Short: "Send one message to the assistant and print the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			core, err := app.Build(ctx, env.cfg, env.logger, nil)
			if err != nil {
				return err
			}
			defer core.Close()

			res, err := core.Orchestrator.ProcessQuery(ctx, env.scope(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Reply)
			return nil
		},
	}
}

func chatLoop(ctx context.Context, core *app.App, sc model.Scope, in io.Reader, out io.Writer) error {
	if !core.Orchestrator.Available() {
		fmt.Fprintln(out, "(no LLM provider configured, only /list works)")
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, promptPrefix)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "exit", "quit":
			return nil
		case "/reset":
			core.Orchestrator.Reset(sc.UserID)
			fmt.Fprintln(out, replyPrefix+"Conversation cleared.")
			continue
		case "/list":
			todos, err := core.Todos.List(ctx, sc)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, replyPrefix+core.Persona.ListReply(todos))
			continue
		}

		res, err := core.Orchestrator.ProcessQuery(ctx, sc, line)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, replyPrefix+res.Reply)
	}
}

func (e *cliEnv) scope() model.Scope {
	return model.Scope{UserID: e.userID, Username: e.userID, Channel: model.ChannelCLI}
}

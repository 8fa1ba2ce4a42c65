package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"petchat/internal/model"
	"petchat/internal/service"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newAskCmd(opts *rootOptions) *cobra.Command {
	var showRoute bool
	cmd := &cobra.Command{
		Use:   "ask <message>",
		Short: "Answer a single message",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			resp, err := a.Chat.Chat(cmd.Context(), &model.ChatRequest{Message: strings.Join(args, " ")})
			if err != nil {
				if errors.Is(err, model.ErrEmptyInput) {
					return errors.New(service.EmptyInputReply)
				}
				return err
			}
			printReply(cmd.OutOrStdout(), resp, showRoute)
			return nil
		},
	}
	cmd.Flags().BoolVar(&showRoute, "route", false, "print how the reply was produced")
	return cmd
}

func newReplCmd(opts *rootOptions) *cobra.Command {
	var showRoute bool
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Chat interactively in one session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			return runRepl(cmd, a.Chat, showRoute)
		},
	}
	cmd.Flags().BoolVar(&showRoute, "route", false, "print how each reply was produced")
	return cmd
}

func runRepl(cmd *cobra.Command, chat *service.ChatService, showRoute bool) error {
	out := cmd.OutOrStdout()
	sessionID := uuid.NewString()
	scanner := bufio.NewScanner(cmd.InOrStdin())

	fmt.Fprintln(out, "Gõ tin nhắn rồi Enter. /reset để bắt đầu lại, /quit để thoát.")
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		case "/reset":
			if err := chat.ResetSession(cmd.Context(), sessionID); err != nil {
				return err
			}
			sessionID = uuid.NewString()
			fmt.Fprintln(out, "Đã xoá ngữ cảnh.")
			continue
		}

		resp, err := chat.Chat(cmd.Context(), &model.ChatRequest{Message: line, SessionID: sessionID})
		if err != nil {
			return err
		}
		printReply(out, resp, showRoute)
	}
}

func printReply(w io.Writer, resp *model.ChatResponse, showRoute bool) {
	if showRoute {
		route := string(resp.Route)
		if resp.Intent != "" {
			route += "/" + resp.Intent
		}
		fmt.Fprintf(w, "[%s] ", route)
	}
	fmt.Fprintln(w, resp.Response)
}

package main

import (
	"fmt"
	"strings"

	"petchat/internal/app"
	"petchat/internal/service"

	"github.com/spf13/cobra"
)

func newGenerateCmd(opts *rootOptions) *cobra.Command {
	var maxTokens int
	cmd := &cobra.Command{
		Use:   "generate <prompt>",
		Short: "Send one prompt to the fallback generator",
		Long: `Sends the prompt through the same timeout, rate limit and circuit breaker
as the server, then prints the cleaned completion.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := opts.setup()
			if err != nil {
				return err
			}
			defer log.Sync()

			if maxTokens <= 0 {
				maxTokens = cfg.Generator.MaxNewTokens
			}
			prompt := strings.Join(args, " ")

			out, err := app.NewGenerator(cfg, log).Generate(cmd.Context(), prompt, service.GenerationParams{
				MaxNewTokens: maxTokens,
				Truncation:   cfg.Generator.Truncation,
			})
			if err != nil {
				return fmt.Errorf("generate: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), service.CleanGeneration(out, prompt))
			return nil
		},
	}
	cmd.Flags().IntVar(&maxTokens, "max-tokens", 0, "maximum new tokens (default GENERATOR_MAX_NEW_TOKENS)")
	return cmd
}

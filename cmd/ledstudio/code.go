package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/coreman2200/funtimes-ledstudio/internal/config"
	"github.com/coreman2200/funtimes-ledstudio/internal/pattern"
	"github.com/coreman2200/funtimes-ledstudio/internal/prompt"
)

func newCodeCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "code",
		Short: "Generate FastLED firmware for the configured pattern",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			src := firmware(cfg, pattern.ID(cfg.Strip.Pattern))
			if out == "" || out == "-" {
				_, err = fmt.Fprint(cmd.OutOrStdout(), src)
				return err
			}
			if err := os.WriteFile(out, []byte(src), 0o644); err != nil {
				return fmt.Errorf("write firmware: %w", err)
			}
			logger.Info().Str("path", out).Str("pattern", cfg.Strip.Pattern).Msg("firmware written")
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write to this file instead of stdout")
	return cmd
}

func firmware(cfg *config.Config, id pattern.ID) string {
	return generatorFor(cfg.Firmware).Generate(id, cfg.Strip.LEDCount, cfg.Strip.Brightness, cfg.Strip.Speed)
}

func newSuggestCmd() *cobra.Command {
	var withCode bool
	cmd := &cobra.Command{
		Use:   "suggest <description...>",
		Short: "Pick a pattern from a free-form description",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			text := strings.Join(args, " ")
			id, kw := prompt.Match(prompt.Rules, text)
			logger.Debug().Str("prompt", text).Str("keyword", kw).Msg("suggest")

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, id)
			if withCode {
				fmt.Fprint(w, firmware(cfg, id))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&withCode, "code", false, "also print firmware for the suggestion")
	return cmd
}

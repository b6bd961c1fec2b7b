package main

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/coreman2200/funtimes-ledstudio/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "ledstudio",
		Short:        "Design, preview and export LED strip animations",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringP("config", "c", "", "path to a .yaml or .toml config file")
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		newServeCmd(),
		newPlayCmd(),
		newRenderCmd(),
		newCodeCmd(),
		newSuggestCmd(),
	)
	return root
}

// loadConfig resolves defaults, the config file and explicit flags, then
// sets up logging from the result.
func loadConfig(cmd *cobra.Command) (*config.Config, zerolog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Resolve(path, cmd.Flags())
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	return cfg, newLogger(cfg.Log.Level, cmd.ErrOrStderr()), nil
}

func newLogger(level string, out io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	l := zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}).
		Level(lvl).With().Timestamp().Logger()
	log.Logger = l
	return l
}

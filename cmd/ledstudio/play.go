package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/coreman2200/funtimes-ledstudio/internal/studio"
	"github.com/coreman2200/funtimes-ledstudio/internal/tui"
)

func newPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Preview the animation in the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			// the TUI owns the terminal, so only errors get through
			logger = logger.Level(maxLevel(logger))
			sess := studio.New(cfg.Strip,
				studio.WithLogger(logger),
				studio.WithSeed(cfg.Seed),
				studio.WithGenerator(generatorFor(cfg.Firmware)),
			)
			sess.Start()
			defer sess.Stop()

			_, err = tea.NewProgram(tui.New(sess), tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
}

func maxLevel(l zerolog.Logger) zerolog.Level {
	if l.GetLevel() > zerolog.ErrorLevel {
		return l.GetLevel()
	}
	return zerolog.ErrorLevel
}

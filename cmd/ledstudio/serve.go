package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/coreman2200/funtimes-ledstudio/internal/api"
	"github.com/coreman2200/funtimes-ledstudio/internal/codegen"
	"github.com/coreman2200/funtimes-ledstudio/internal/config"
	"github.com/coreman2200/funtimes-ledstudio/internal/diagnostics"
	"github.com/coreman2200/funtimes-ledstudio/internal/events"
	"github.com/coreman2200/funtimes-ledstudio/internal/metrics"
	"github.com/coreman2200/funtimes-ledstudio/internal/sink"
	"github.com/coreman2200/funtimes-ledstudio/internal/studio"
	"github.com/coreman2200/funtimes-ledstudio/internal/ws"
)

func newServeCmd() *cobra.Command {
	var (
		watch    bool
		autoplay bool
		nrzOut   string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the REST API and websocket preview",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			path, _ := cmd.Flags().GetString("config")
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, path, serveOpts{watch: watch, autoplay: autoplay, nrzOut: nrzOut}, logger)
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", false, "reload strip settings when the config file changes")
	cmd.Flags().BoolVar(&autoplay, "autoplay", false, "start the animation on launch")
	cmd.Flags().StringVar(&nrzOut, "nrz-out", "", "record the WS2812 bitstream of every frame to this file")
	return cmd
}

type serveOpts struct {
	watch    bool
	autoplay bool
	nrzOut   string
}

func generatorFor(fw config.Firmware) codegen.Generator {
	return codegen.Generator{Pin: fw.Pin, LEDType: fw.LEDType, ColorOrder: fw.ColorOrder}
}

func serve(ctx context.Context, cfg *config.Config, path string, o serveOpts, logger zerolog.Logger) error {
	bus := events.New()
	defer bus.Close()
	met := metrics.New()

	sess := studio.New(cfg.Strip,
		studio.WithLogger(logger.With().Str("component", "studio").Logger()),
		studio.WithBus(bus),
		studio.WithMetrics(met),
		studio.WithSeed(cfg.Seed),
		studio.WithGenerator(generatorFor(cfg.Firmware)),
	)
	defer sess.Stop()

	sim := sink.NewSim(logger.With().Str("sink", "sim").Logger())
	defer sink.Attach(bus, "sim", sim, logger)()

	if o.nrzOut != "" {
		f, err := os.Create(o.nrzOut)
		if err != nil {
			return fmt.Errorf("nrz output: %w", err)
		}
		defer f.Close()
		nrz := sink.NewNRZ(f)
		defer nrz.Close()
		defer sink.Attach(bus, "nrz", nrz, logger)()
	}

	hub := ws.NewHub(sess, logger.With().Str("component", "ws").Logger())
	defer hub.Attach(bus)()

	if o.watch && path != "" {
		w := config.WatchFile(path,
			config.WithWatchLogger[*config.Config](logger),
			config.WithErrorHandler[*config.Config](func(err error) {
				bus.Publish(events.DiagnosticEvent{Diagnostic: diagnostics.ConfigReloadFailed(path, err)})
			}))
		w.OnReload(func(c *config.Config) {
			sess.ApplyConfig(c.Strip)
			sess.SetFirmware(c.Firmware)
			bus.Publish(events.DiagnosticEvent{Diagnostic: diagnostics.ConfigReloaded(path)})
		})
		if err := w.Start(); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		defer w.Stop()
	}

	if o.autoplay {
		sess.Play()
	}

	srv := api.NewServer(sess, api.Options{
		Logger:  logger.With().Str("component", "api").Logger(),
		Metrics: met.Handler(),
		Extra:   hub.Routes,
	})
	err := srv.ListenAndServe(ctx, cfg.Server.Addr)
	logger.Info().Int("frames", sim.Count()).Msg("shutting down")
	return err
}

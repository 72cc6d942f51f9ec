package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/vedantwpatil/Cursor-Capture/internal/config"
	"github.com/vedantwpatil/Cursor-Capture/internal/cursorstate"
	"github.com/vedantwpatil/Cursor-Capture/internal/sink"
	"github.com/vedantwpatil/Cursor-Capture/internal/tracking"
)

var (
	outputPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "cursor-helper",
	Short: "Track cursor position, shape, and mouse clicks",
	Long: `cursor-helper monitors the system pointer and reports movement,
button presses and releases, and cursor shape changes as structured events.
Press Ctrl+C to stop.`,
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write events as JSON lines to this file")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log every move event")
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	tracker := tracking.New(tracking.Options{Config: cfg, Logger: log.Logger})

	var out *sink.JSONL
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return err
		}
		out = sink.NewJSONL(f, log.Logger)
		defer out.Close()
	}

	tracker.SetEventHandler(func(ev tracking.Event) {
		if out != nil {
			out.Handle(ev)
		}
		switch ev.Kind {
		case tracking.EventMove:
			if verbose {
				log.Info().Float64("x", ev.X).Float64("y", ev.Y).
					Str("cursor_type", ev.ShapeName).Msg("move")
			}
		case tracking.EventButtonDown:
			log.Info().Str("button", ev.Button).
				Float64("x", ev.X).Float64("y", ev.Y).Msg("button down")
		case tracking.EventButtonUp:
			log.Info().Str("button", ev.Button).Msg("button up")
		case tracking.EventShapeChanged:
			log.Info().Str("cursor_type", ev.ShapeName).Msg("cursor shape changed")
		}
	})
	tracker.SetCallback(func(s cursorstate.Snapshot, shape string) {
		if verbose {
			log.Debug().Str("state", s.ToJSON()).Str("cursor_type", shape).Msg("state")
		}
	})

	if err := tracker.Start(); err != nil {
		return err
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("stopping")

	if err := tracker.Stop(); err != nil {
		return err
	}
	if out != nil {
		log.Info().Int("events", out.Count()).Str("path", outputPath).Msg("event log written")
	}
	return nil
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: cursorstate.TimeLayout})
	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("cursor-helper failed")
	}
}

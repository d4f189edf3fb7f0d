// Command battleship plays the classic two-board game on the console and
// runs batches of automated matches.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mrsobakin/battleships/internal/config"
)

func main() {
	cmd, args := "play", os.Args[1:]
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cmd, args = args[0], args[1:]
	}

	switch cmd {
	case "play":
		cfg, err := ParsePlayConfig(flag.NewFlagSet("play", flag.ExitOnError), args)
		if err != nil {
			config.Exitf(exitInvalid, "Error: %v", err)
		}
		os.Exit(runPlay(cfg, os.Stdin, os.Stdout, os.Stderr))

	case "simulate":
		cfg, err := ParseSimulateConfig(flag.NewFlagSet("simulate", flag.ExitOnError), args)
		if err != nil {
			config.Exitf(exitInvalid, "Error: %v", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := runSimulate(ctx, cfg, os.Stdout, os.Stderr); err != nil {
			stop()
			config.Exitf(exitFailure, "Error: %v", err)
		}

	default:
		config.Exitf(exitInvalid, "unknown command %q, expected play or simulate", cmd)
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/Halim-byte/nmtgo/internal/decode"
	"github.com/Halim-byte/nmtgo/internal/logger"
	"github.com/Halim-byte/nmtgo/internal/model"
	"github.com/Halim-byte/nmtgo/internal/server"
)

var (
	beamWidth   int64
	nbest       int64
	decodeMode  string
	suppressUnk bool
	seed        int64
	maxLength   int64
	workers     int64
	srcFile     string
	refFile     string
	logLevel    string
	logFormat   string
)

func decodeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.Int64Flag{
			Name:        "beam-width",
			Aliases:     []string{"b", "beamsize"},
			Usage:       "beam width for beamsearch decoding",
			Value:       12,
			Destination: &beamWidth,
		},
		&cli.Int64Flag{
			Name:        "nbest",
			Aliases:     []string{"n"},
			Usage:       "number of hypotheses ranking keeps",
			Value:       1,
			Destination: &nbest,
		},
		&cli.StringFlag{
			Name:        "decode-mode",
			Aliases:     []string{"mode"},
			Usage:       "decoding mode (beamsearch, argmax, sample, forced)",
			Value:       "beamsearch",
			Destination: &decodeMode,
		},
		&cli.BoolFlag{
			Name:        "suppress-unk",
			Usage:       "exclude the unknown token from candidate selection",
			Destination: &suppressUnk,
		},
		&cli.Int64Flag{
			Name:        "seed",
			Usage:       "random seed for sample decoding",
			Value:       1234,
			Destination: &seed,
		},
		&cli.Int64Flag{
			Name:        "max-length",
			Usage:       "maximum target sentence length",
			Value:       100,
			Destination: &maxLength,
		},
	}
}

func loggingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (pretty, json, text)",
			Value:       "pretty",
			Destination: &logFormat,
		},
	}
}

func newLogger() logger.Logger {
	level := logger.ParseLevel(logLevel)
	switch logFormat {
	case "json":
		return logger.JSON(os.Stderr, level)
	case "text":
		return logger.Text(os.Stderr, level)
	default:
		return logger.Pretty(os.Stderr, level)
	}
}

// buildSearcher maps the decode-mode flag to a backend. forced mode is
// handled by the translate command, which binds a reference per sentence.
func buildSearcher(mode string) (decode.Searcher, error) {
	switch mode {
	case "beamsearch":
		return decode.BeamSearcher{}, nil
	case "argmax":
		return decode.GreedySearcher{}, nil
	case "sample":
		return decode.SampleSearcher{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown decode mode %q", model.ErrConfiguration, mode)
	}
}

// validateForced checks the extra inputs forced decoding needs. Absence of
// either file is a startup-fatal configuration error.
func validateForced() error {
	if srcFile == "" || refFile == "" {
		return fmt.Errorf("%w: forced decode mode requires both --src and --ref", model.ErrConfiguration)
	}
	return nil
}

func translatorConfig() server.Config {
	return server.Config{
		BeamWidth:       int(beamWidth),
		NBest:           int(nbest),
		SuppressUnknown: suppressUnk,
		MaxLength:       int(maxLength),
		Seed:            seed,
		Workers:         int(workers),
	}
}

func modelPaths(cmd *cli.Command) ([]string, error) {
	paths := cmd.Args().Slice()
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: at least one model artifact path is required", model.ErrConfiguration)
	}
	return paths, nil
}

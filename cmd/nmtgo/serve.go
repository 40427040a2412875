package main

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v5"
	"github.com/urfave/cli/v3"

	"github.com/Halim-byte/nmtgo/internal/logger"
	"github.com/Halim-byte/nmtgo/internal/model"
	"github.com/Halim-byte/nmtgo/internal/server"
)

func serveCmd() *cli.Command {
	var port int64

	return &cli.Command{
		Name:      "serve",
		Usage:     "Serve translations over the plain-text protocol",
		ArgsUsage: "MODEL [MODEL...]",
		Flags: append(append(decodeFlags(), loggingFlags()...),
			&cli.Int64Flag{
				Name:        "port",
				Aliases:     []string{"p"},
				Usage:       "listening port",
				Value:       30060,
				Destination: &port,
			},
			&cli.Int64Flag{
				Name:        "workers",
				Usage:       "maximum concurrent decodes (1 = fully sequential)",
				Value:       1,
				Destination: &workers,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := LoadConfig()
			applyServeConfig(cmd, cfg, &port)
			log := newLogger()

			if decodeMode == "forced" {
				return fmt.Errorf("%w: forced decode mode does not serve requests; use the translate command", model.ErrConfiguration)
			}
			searcher, err := buildSearcher(decodeMode)
			if err != nil {
				return err
			}

			paths, err := modelPaths(cmd)
			if err != nil {
				return err
			}
			ens, err := model.Load(paths)
			if err != nil {
				return err
			}
			log.Info("ensemble loaded",
				"models", ens.Size(),
				"src_vocab", ens.Source().Size(),
				"trg_vocab", ens.Target().Size(),
				"filters", ens.FilterNames(),
			)

			translator := server.NewTranslator(ens, searcher, translatorConfig())
			e := echo.New()
			server.NewServer(translator, log).Register(e)

			addr := fmt.Sprintf(":%d", port)
			log.Info("starting server", "address", addr, "mode", decodeMode, "beam_width", beamWidth, "workers", workers)
			sc := echo.StartConfig{Address: addr}
			return sc.Start(logger.WithContext(ctx, log), e)
		},
	}
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/Halim-byte/nmtgo/internal/model"
)

func inspectCmd() *cli.Command {
	var asJSON bool

	return &cli.Command{
		Name:      "inspect",
		Usage:     "Print model artifact metadata",
		ArgsUsage: "MODEL [MODEL...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "emit machine-readable output",
				Destination: &asJSON,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			paths, err := modelPaths(cmd)
			if err != nil {
				return err
			}
			for _, path := range paths {
				art, err := model.OpenArtifact(path)
				if err != nil {
					return err
				}
				if asJSON {
					info := map[string]any{
						"path":           path,
						"arch":           art.Arch,
						"src_vocab_size": len(art.SrcVocab),
						"trg_vocab_size": len(art.TrgVocab),
						"params_bytes":   len(art.Params),
						"filters":        art.Filters,
					}
					enc := json.NewEncoder(os.Stdout)
					enc.SetIndent("", "  ")
					if err := enc.Encode(info); err != nil {
						return err
					}
					continue
				}
				fmt.Printf("%s\n", path)
				fmt.Printf("  arch:          %s\n", art.Arch)
				fmt.Printf("  src vocab:     %d entries\n", len(art.SrcVocab))
				fmt.Printf("  trg vocab:     %d entries\n", len(art.TrgVocab))
				fmt.Printf("  params:        %d bytes\n", len(art.Params))
				if len(art.Filters) > 0 {
					fmt.Printf("  filters:       %v\n", art.Filters)
				}
			}
			return nil
		},
	}
}

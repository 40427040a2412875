package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/Halim-byte/nmtgo/internal/decode"
	"github.com/Halim-byte/nmtgo/internal/model"
	"github.com/Halim-byte/nmtgo/internal/rank"
	"github.com/Halim-byte/nmtgo/internal/server"
	"github.com/Halim-byte/nmtgo/internal/vocab"
)

func translateCmd() *cli.Command {
	var text string

	return &cli.Command{
		Name:      "translate",
		Usage:     "Translate sentences without starting a server",
		ArgsUsage: "MODEL [MODEL...]",
		Flags: append(append(decodeFlags(), loggingFlags()...),
			&cli.StringFlag{
				Name:        "text",
				Aliases:     []string{"t"},
				Usage:       "source sentence (default: read lines from --src or stdin)",
				Destination: &text,
			},
			&cli.StringFlag{
				Name:        "src",
				Usage:       "file of source sentences, one per line",
				Destination: &srcFile,
			},
			&cli.StringFlag{
				Name:        "ref",
				Usage:       "file of reference sentences for forced decoding",
				Destination: &refFile,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := LoadConfig()
			applyDecodeConfig(cmd, cfg)

			paths, err := modelPaths(cmd)
			if err != nil {
				return err
			}
			ens, err := model.Load(paths)
			if err != nil {
				return err
			}

			if decodeMode == "forced" {
				return runForced(ctx, ens)
			}

			searcher, err := buildSearcher(decodeMode)
			if err != nil {
				return err
			}
			translator := server.NewTranslator(ens, searcher, translatorConfig())

			sources, err := sourceSentences(text)
			if err != nil {
				return err
			}
			for _, line := range sources {
				out, err := translator.Translate(ctx, line)
				if err != nil {
					return err
				}
				fmt.Println(out)
			}
			return nil
		},
	}
}

// runForced scores each source/reference pair and prints the
// length-normalized cost the ensemble assigns to the reference.
func runForced(ctx context.Context, ens *model.Ensemble) error {
	if err := validateForced(); err != nil {
		return err
	}
	sources, err := readLines(srcFile)
	if err != nil {
		return err
	}
	refs, err := readLines(refFile)
	if err != nil {
		return err
	}
	if len(sources) != len(refs) {
		return fmt.Errorf("%w: %d source sentences but %d references", model.ErrConfiguration, len(sources), len(refs))
	}

	models := make([]decode.StepModel, 0, ens.Size())
	for _, m := range ens.Models() {
		models = append(models, m)
	}
	opts := decode.Options{
		MaxLength: int(maxLength),
		EOS:       ens.Target().EOS(),
		Unknown:   ens.Target().Unknown(),
	}

	for i := range sources {
		src := ens.Source().Encode(append(strings.Fields(sources[i]), vocab.TokenEOS))
		ref := ens.Target().Encode(append(strings.Fields(refs[i]), vocab.TokenEOS))

		inv := decode.NewInvoker(decode.ForcedSearcher{Ref: ref}, models)
		hyps, err := inv.Decode(ctx, src, opts)
		if err != nil {
			return err
		}
		fmt.Printf("%.6f\t%s\n", rank.Normalize(hyps[0]), refs[i])
	}
	return nil
}

func sourceSentences(text string) ([]string, error) {
	if text != "" {
		return []string{text}, nil
	}
	if srcFile != "" {
		return readLines(srcFile)
	}
	return scanLines(os.Stdin)
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return scanLines(f)
}

func scanLines(f *os.File) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, sc.Err()
}

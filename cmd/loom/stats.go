package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/loom-ui/loom/internal/config"
	loomerrors "github.com/loom-ui/loom/internal/errors"
	"github.com/loom-ui/loom/pkg/bundle"
)

func statsCmd() *cobra.Command {
	var (
		file     string
		showHash bool
	)

	cmd := &cobra.Command{
		Use:   "stats [module]",
		Short: "Inspect a bundler statistics file",
		Long: `Look up a module's source in a bundler statistics file, or print
the statistics hash.

The stats file defaults to the one configured in loom.json. Module
names are matched the way the template layer matches them: a .js
extension is appended when missing and names match by suffix.

Examples:
  loom stats ./frontend/my-card.js
  loom stats --hash
  loom stats --file dist/stats.json my-card`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(file, showHash, args)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Stats file (default from loom.json)")
	cmd.Flags().BoolVar(&showHash, "hash", false, "Print the statistics hash")

	return cmd
}

func runStats(file string, showHash bool, args []string) error {
	if file == "" {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		cfg, err := config.Find(wd)
		if err != nil {
			return err
		}
		file = cfg.Stats.File
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return loomerrors.New("E120").Wrap(err)
	}

	if showHash {
		fmt.Println(bundle.HashFromStatistics(string(data)))
		return nil
	}

	if len(args) == 0 {
		return loomerrors.New("E160").
			WithDetail("stats needs a module name, or --hash")
	}

	stats, err := bundle.ParseStatistics(data)
	if err != nil {
		return loomerrors.New("E121").Wrap(err)
	}
	source, ok := bundle.SourceFromStatistics(args[0], stats)
	if !ok {
		return loomerrors.New("E122").
			WithDetail(fmt.Sprintf("module %q not found in %s", args[0], file))
	}
	fmt.Println(source)
	return nil
}

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/chriserin/cukelive/internal/config"
	"github.com/chriserin/cukelive/internal/cukerun"
	"github.com/chriserin/cukelive/internal/entity"
	"github.com/chriserin/cukelive/internal/gherkin"
	"github.com/chriserin/cukelive/internal/outparse"
	"github.com/chriserin/cukelive/internal/runsync"
	"github.com/chriserin/cukelive/internal/ui"
)

var runCmd = &cobra.Command{
	Use:   "run [path...]",
	Short: "Run feature files through the configured runner and track progress live",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer cancel()
		return RunRun(ctx, cmd.OutOrStdout(), args)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func RunRun(ctx context.Context, w io.Writer, paths []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if len(paths) == 0 {
		paths, err = filepath.Glob(filepath.Join(cfg.FeaturesDir, "*.feature"))
		if err != nil {
			return fmt.Errorf("scanning %s: %w", cfg.FeaturesDir, err)
		}
		sort.Strings(paths)
	}

	features, err := discover(paths)
	if err != nil {
		return err
	}
	if len(features) == 0 {
		return fmt.Errorf("no feature files found")
	}

	console := ui.NewConsole(w)
	syn := runsync.New(features, console, console, cfg.CollapseThreshold)
	parser := outparse.NewLineParser()
	framer := outparse.NewFramer(func(line string) {
		for _, ev := range parser.Consume(line) {
			syn.Apply(ev)
		}
	})

	runner := &cukerun.Runner{
		Command: cfg.Runner.Command,
		Args:    append(append([]string{}, cfg.Runner.Args...), paths...),
	}

	syn.Start()
	result, err := runner.Run(ctx, framer)
	framer.Close()
	if ev := parser.Finalize(); ev != nil {
		syn.Apply(*ev)
	}
	if err != nil {
		syn.Cancel()
		return err
	}

	if result.Cancelled {
		syn.Cancel()
	} else {
		syn.Finish()
	}

	fmt.Fprintln(w)
	ui.Summary(w, features, syn.Session())
	if result.ExitCode != 0 && !result.Cancelled {
		fmt.Fprintf(w, "runner exited with code %d (outcomes derive from output, not the exit code)\n", result.ExitCode)
	}

	if n := failedScenarios(features, syn.Session()); n > 0 {
		return fmt.Errorf("%d scenario(s) failed", n)
	}
	return nil
}

// loadConfig falls back to defaults when the project was never initialized,
// so `cukelive run` works in a bare checkout.
func loadConfig() (*config.Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config.Default(), nil
	}
	return config.Load(configPath)
}

func discover(paths []string) ([]*entity.Node, error) {
	var features []*entity.Node
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		doc, _ := gherkin.Parse(path, data)
		tree := gherkin.Tree(doc, path)
		if len(tree.Children) == 0 {
			continue
		}
		features = append(features, tree)
	}
	return features, nil
}

func failedScenarios(features []*entity.Node, session *runsync.Session) int {
	n := 0
	for _, f := range features {
		for _, scenario := range f.Children {
			if session.State(scenario.ID) == entity.StateFailed {
				n++
			}
		}
	}
	return n
}

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	astar "github.com/pdrpinto/gridastar"
	"github.com/pdrpinto/gridastar/grid"
)

var (
	// Global flags
	verbose bool

	logger = zap.NewNop()
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "astar",
		Short:        "A* pathfinding over 2D grids",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config := zap.NewProductionConfig()
			if verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			built, err := config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			logger = built
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(newSolveCmd(), newServeCmd())
	return rootCmd
}

type solveFlags struct {
	workers       int
	heuristic     string
	maxExpansions int
	render        bool
}

func newSolveCmd() *cobra.Command {
	var flags solveFlags
	cmd := &cobra.Command{
		Use:   "solve [scenario.yaml]",
		Short: "Find the cheapest path across a scenario file",
		Long: `Loads a YAML scenario and searches from its start to its goal.

Scenario rows use '#' for walls, '.' for free cells, '1'-'9' for cells that
cost extra to enter, 'S' for the start and 'G' for the goal:

  diagonal: true
  rows:
    - "S..#...."
    - ".1.#.##."
    - "...2..#G"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, err := grid.LoadFile(args[0])
			if err != nil {
				return err
			}
			return runSolve(cmd.Context(), cmd.OutOrStdout(), scenario, flags)
		},
	}
	cmd.Flags().IntVarP(&flags.workers, "workers", "w", 4, "worker goroutines relaxing neighbors")
	cmd.Flags().StringVar(&flags.heuristic, "heuristic", "", "zero, manhattan, euclidean, octile or chebyshev (default depends on diagonal moves)")
	cmd.Flags().IntVar(&flags.maxExpansions, "max-expansions", 0, "give up after this many expansions (0 = unlimited)")
	cmd.Flags().BoolVar(&flags.render, "render", false, "draw the grid with the path")
	return cmd
}

func runSolve(ctx context.Context, out io.Writer, scenario *grid.Scenario, flags solveFlags) error {
	name := flags.heuristic
	if name == "" {
		name = "manhattan"
		if scenario.Grid.Diagonal() {
			name = "octile"
		}
	}
	heuristic, err := astar.HeuristicByName(name)
	if err != nil {
		return err
	}

	logger.Info("Solving scenario",
		zap.Int("width", scenario.Grid.Width()),
		zap.Int("height", scenario.Grid.Height()),
		zap.Stringer("start", scenario.Start),
		zap.Stringer("goal", scenario.Goal),
		zap.String("heuristic", name))

	result, err := astar.Search(ctx, scenario.Grid, scenario.Start, scenario.Goal, heuristic,
		astar.WithWorkers(flags.workers),
		astar.WithMaxExpansions(flags.maxExpansions),
		astar.WithLogger(logger),
	)
	if err != nil {
		logger.Warn("Search failed", zap.Error(err), zap.Int("expanded", result.ExpandedNodes))
		return err
	}

	steps := make([]string, len(result.Path))
	for i, loc := range result.Path {
		steps[i] = loc.String()
	}
	fmt.Fprintf(out, "cost: %.3f\n", result.TotalCost)
	fmt.Fprintf(out, "expanded: %d\n", result.ExpandedNodes)
	fmt.Fprintf(out, "path: %s\n", strings.Join(steps, " "))
	if flags.render {
		fmt.Fprint(out, scenario.Grid.Render(result.Path, scenario.Start, scenario.Goal))
	}
	return nil
}

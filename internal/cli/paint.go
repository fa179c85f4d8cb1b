package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tessellaviz/tessella/pkg/layout"
	"github.com/tessellaviz/tessella/pkg/paint"
	"github.com/tessellaviz/tessella/pkg/palette"
)

// paintOpts holds the command-line flags for the paint command.
type paintOpts struct {
	output   string  // output file path; stdout when empty
	palette  string  // optional palette TOML with explicit colour overrides
	mutation float64 // colour mutation magnitude override
	seed     uint64  // random seed override
	noCache  bool    // disable the file cache
	refresh  bool    // bypass cached results and recompute
}

// paintCommand creates the paint command. It reads a layout JSON file,
// resolves every node's colour and bounds, and writes the attribute set as
// JSON.
func (c *CLI) paintCommand() *cobra.Command {
	var opts paintOpts

	cmd := &cobra.Command{
		Use:   "paint [layout.json]",
		Short: "Paint a treemap layout",
		Long: `Paint computes the visual attributes for every node in a laid-out
treemap: colours inherited from parents with a bounded random perturbation,
integer canvas bounds, labels and geographic centres. The result is written
as JSON, ready for a rendering surface.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPaint(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&opts.palette, "palette", "p", "", "palette TOML with explicit colour overrides")
	cmd.Flags().Float64VarP(&opts.mutation, "mutation", "m", 0, "colour mutation magnitude (overrides the layout)")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed (overrides the layout)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if a cached result exists")

	return cmd
}

func (c *CLI) runPaint(cmd *cobra.Command, path string, opts *paintOpts) error {
	logger := loggerFromContext(cmd.Context())
	prog := newProgress(logger)

	l, err := layout.ReadFile(path)
	if err != nil {
		return err
	}
	logger.Debug("loaded layout", "file", path, "nodes", len(l.Nodes))

	if opts.palette != "" {
		p, err := palette.Load(opts.palette)
		if err != nil {
			return err
		}
		if unmatched := p.Apply(&l); len(unmatched) > 0 {
			printWarning("Palette entries without a matching node: %v", unmatched)
		}
	}

	runOpts := paint.Options{
		Refresh: opts.refresh,
		Logger:  c.Logger,
	}
	if cmd.Flags().Changed("mutation") {
		runOpts.Mutation = &opts.mutation
	}
	if cmd.Flags().Changed("seed") {
		runOpts.Seed = &opts.seed
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("create runner: %w", err)
	}
	defer runner.Close()

	result, err := runner.Execute(cmd.Context(), l, runOpts)
	if err != nil {
		return err
	}

	data, err := paint.MarshalResult(result)
	if err != nil {
		return fmt.Errorf("serialize result: %w", err)
	}

	if opts.output == "" {
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}
	if err := os.WriteFile(opts.output, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}

	prog.done(fmt.Sprintf("Painted %d nodes", len(result.Attrs)))
	printSuccess("Painted %s", l.Name)
	printStats(len(result.Attrs), result.CacheInfo.Hit)
	printFile(opts.output)
	return nil
}

package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/pagedeck/internal/automation"
	"github.com/zjrosen/pagedeck/internal/deck"
	"github.com/zjrosen/pagedeck/internal/pagemanager"
	"github.com/zjrosen/pagedeck/internal/presentation"
)

var (
	runArgs []string
	runList bool
)

var runCmd = &cobra.Command{
	Use:   "run [script]",
	Short: "Run a script headlessly and print its page transitions",
	Long: `Run a configured script without the simulator. The default page is shown
first, then the script's actions run in order. Every page transition is printed
as a JSON line, followed by a summary line.

Script arguments are available to templated action parameters, e.g.
page: "{{ .page }}".

Examples:
  pagedeck run --list
  pagedeck run tour
  pagedeck run show --arg page=Settings`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	runCmd.Flags().StringArrayVarP(&runArgs, "arg", "a", nil, "script argument as key=value (repeatable)")
	runCmd.Flags().BoolVarP(&runList, "list", "l", false, "list script ids and exit")
	rootCmd.AddCommand(runCmd)
}

func runScript(cmd *cobra.Command, args []string) error {
	cleanup, err := initLogging("pagedeck-run")
	if err != nil {
		return err
	}
	defer cleanup()

	var transitions []pagemanager.Transition
	d, _, _, shutdown, err := buildDeck(deck.WithObserver(func(tr pagemanager.Transition) {
		transitions = append(transitions, tr)
	}))
	if err != nil {
		return err
	}
	defer shutdown()
	defer d.Close()

	out := cmd.OutOrStdout()
	if runList {
		for _, id := range d.Runner.IDs() {
			_, _ = fmt.Fprintln(out, id)
		}
		return nil
	}
	if len(args) == 0 {
		return fmt.Errorf("script id required (available: %s)", strings.Join(d.Runner.IDs(), ", "))
	}
	scriptArgs, err := parseArgs(runArgs)
	if err != nil {
		return err
	}

	base := cmd.Context()
	if base == nil {
		base = context.Background()
	}
	ctx, cancel := context.WithCancel(base)
	defer cancel()

	d.Setup(ctx)
	runErr := d.Runner.Run(ctx, args[0], scriptArgs)

	formatter := presentation.NewFormatter(out)
	for _, tr := range transitions {
		if err := formatter.FormatTransition(presentation.FromTransition(tr)); err != nil {
			return err
		}
	}

	result := presentation.RunResultDTO{Script: args[0], Transitions: len(transitions)}
	if entry, ok := d.Manager.Current(); ok {
		result.Page = entry.Label
	}
	if runErr != nil {
		result.Error = runErr.Error()
	}
	if err := formatter.FormatRunResult(result); err != nil {
		return err
	}
	return runErr
}

// parseArgs turns key=value pairs into script arguments.
func parseArgs(pairs []string) (automation.Args, error) {
	args := automation.Args{}
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("%w: --arg %q must be key=value", pagemanager.ErrInvalidConfig, pair)
		}
		args[k] = v
	}
	return args, nil
}

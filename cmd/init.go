package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/zjrosen/pagedeck/internal/automation"
	"github.com/zjrosen/pagedeck/internal/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init [config path]",
	Short: "Write a default config and a sample script",
	Long: `Write the default configuration (default: .pagedeck/config.yaml) and a
sample script into the scripts directory next to it. Scripts in that directory
are reloaded by the simulator while it runs.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := localConfigPath
		if len(args) == 1 {
			path = args[0]
		}
		if _, err := os.Stat(path); err == nil && !initForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if err := config.WriteDefaultConfig(path); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		scriptPath := filepath.Join(config.DefaultScriptsDir(path), "back.yaml")
		if err := automation.WriteScriptFile(scriptPath, sampleScript()); err != nil {
			return fmt.Errorf("writing sample script: %w", err)
		}

		out := cmd.OutOrStdout()
		_, _ = fmt.Fprintf(out, "Wrote %s\n", path)
		_, _ = fmt.Fprintf(out, "Wrote %s\n", scriptPath)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing config")
	rootCmd.AddCommand(initCmd)
}

// sampleScript steps back one page with a vertical slide. Its id comes from
// the file name.
func sampleScript() automation.ScriptConfig {
	return automation.ScriptConfig{
		Actions: []automation.ActionConfig{
			{Action: "page.previous", Animation: "MOVE_BOTTOM", Time: "250ms"},
		},
	}
}

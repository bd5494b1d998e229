package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/triage-cli/internal/logger"
)

var ruleWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Reload custom rules whenever the rule file changes",
	Long: `Watch the rule file and reload the custom rule collection after every
change, printing the number of rules loaded. Runs until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runRuleWatch,
}

func init() {
	ruleCmd.AddCommand(ruleWatchCmd)
}

func runRuleWatch(cmd *cobra.Command, _ []string) error {
	if err := requireRuleService(); err != nil {
		return err
	}
	if rulesPath == "" {
		return errors.New("rule file location not configured")
	}

	cmd.Printf("Watching %s (Ctrl+C to stop)\n", rulesPath)
	return watchFile(cmd.Context(), rulesPath, func(ctx context.Context) {
		if err := ruleService.Load(ctx); err != nil {
			cmd.PrintErrf("reload failed: %v\n", err)
			return
		}
		cmd.Printf("Reloaded %d rules\n", len(ruleService.List()))
	})
}

// watchFile calls onChange every time path is written, created or replaced,
// until ctx is cancelled. The parent directory is watched so that editors
// and atomic writers that rename over the file are seen.
func watchFile(ctx context.Context, path string, onChange func(context.Context)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	target := filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(target), err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			logger.Debug("watch: %s", event)
			onChange(ctx)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch: %v", err)
		}
	}
}

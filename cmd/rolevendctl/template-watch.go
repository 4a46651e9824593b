package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// templateWatchCmd represents the template watch command
var templateWatchCmd = &cobra.Command{
	Use:   "watch <tier> <file>",
	Short: "Watch a template file and reload it when it changes",
	Long: `Watch a template file and reload it into the store when it changes.

Every write to the watched file replaces the stored template for the tier,
after structural validation. An invalid document is reported and skipped;
the stored template is left untouched.

Example:
  rolevendctl template watch developer policies/developer.json`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := watchTemplate(cmd, args[0], args[1]); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to watch template: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	templateCmd.AddCommand(templateWatchCmd)
}

func watchTemplate(cmd *cobra.Command, tierName, filename string) error {
	// Create file watcher
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Add file to watcher
	if err := watcher.Add(filename); err != nil {
		return fmt.Errorf("failed to watch file %s: %w", filename, err)
	}

	fmt.Printf("Watching %s for template changes (tier: %s)\n", filename, tierName)

	// Handle signals for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				fmt.Printf("[%s] File modified, reloading template...\n", time.Now().Format(time.RFC3339))
				if err := loadTemplate(cmd, tierName, filename); err != nil {
					fmt.Fprintf(os.Stderr, "Reload failed: %v\n", err)
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Watcher error: %v\n", err)
		case <-sigChan:
			fmt.Println("Shutting down watcher")
			return nil
		}
	}
}

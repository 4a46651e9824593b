package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

// sweepCmd represents the sweep command
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Expire overdue role sessions",
	Long: `Expire overdue role sessions and tear their roles down.

Runs once by default. With --interval the sweep repeats until interrupted.

Example:
  rolevendctl sweep
  rolevendctl sweep --interval 1m`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runSweep(cmd); err != nil {
			fmt.Fprintf(os.Stderr, "Sweep failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(sweepCmd)

	sweepCmd.Flags().Duration("interval", 0, "repeat the sweep at this interval (0 runs once)")
}

func runSweep(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	vendor, _, err := buildVendor(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	sweepOnce := func() error {
		expired, err := vendor.SweepExpired(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("[%s] Expired %d session(s)\n", time.Now().Format(time.RFC3339), expired)
		return nil
	}

	interval, _ := cmd.Flags().GetDuration("interval")
	if interval <= 0 {
		return sweepOnce()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if err := sweepOnce(); err != nil {
		return err
	}
	for {
		select {
		case <-ticker.C:
			if err := sweepOnce(); err != nil {
				// One failed pass doesn't stop the loop; the next tick
				// retries.
				fmt.Fprintf(os.Stderr, "Sweep pass failed: %v\n", err)
			}
		case <-sigChan:
			fmt.Println("Shutting down sweeper")
			return nil
		}
	}
}

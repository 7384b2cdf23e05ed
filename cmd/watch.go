package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"strata/internal/log"
	"strata/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the store for writes from other processes",
	Long: `Watch the store database and print a line whenever another process
writes to it. Useful when several trainers share one store.

Press Ctrl+C to stop.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		wcfg := watcher.DefaultConfig(cfg.DatabasePath)
		if cfg.Watch.DebounceMS > 0 {
			wcfg.DebounceDur = cfg.Watch.Debounce()
		}

		w, err := watcher.New(wcfg)
		if err != nil {
			return err
		}
		changes, err := w.Start()
		if err != nil {
			return err
		}
		defer func() {
			_ = w.Stop()
		}()

		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

		fmt.Printf("watching %s\n", cfg.DatabasePath)
		for {
			select {
			case <-changes:
				log.Debug(log.CatWatcher, "store changed", "path", cfg.DatabasePath)
				fmt.Printf("%s store changed\n", time.Now().Format(time.RFC3339))
			case <-sigs:
				return nil
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run the scheduler until interrupted",
	RunE: func(*cobra.Command, []string) error {
		engine, store, err := openEngine()
		if err != nil {
			return err
		}
		defer store.Close()

		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		engine.Start(ctx)
		fmt.Println("scheduler running; press ctrl-c to stop")

		<-ctx.Done()
		engine.Stop()
		fmt.Println("scheduler stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(daemonCmd)
}

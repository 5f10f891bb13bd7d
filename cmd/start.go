package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the BeamMP server in the foreground",
	Long: `Reconciles ServerConfig.toml with the configured server settings and launches the
server. Server output is written to the log. On interrupt the exit command is sent
to the server console and the manager waits for it to shut down.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		stopTimeout, _ := cmd.Flags().GetDuration("stop-timeout")

		rt, err := bootstrap()
		if err != nil {
			return err
		}
		defer rt.close()

		inst, err := rt.manager.Start(cmd.Context(), rt.authoritative())
		if err != nil {
			return err
		}
		rt.logger.Info("Server running", zap.Int("pid", inst.PID()))

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sig)

		select {
		case <-inst.Done():
			rt.logger.Info("Server exited", zap.Int("exit_code", inst.ExitCode()))
			return nil
		case <-sig:
		}

		rt.logger.Info("Stopping server...")
		ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
		defer cancel()
		rt.manager.Stop(ctx, inst)

		select {
		case <-inst.Done():
			rt.logger.Info("Server stopped", zap.Int("exit_code", inst.ExitCode()))
			return nil
		case <-ctx.Done():
			return fmt.Errorf("server (pid %d) did not exit within %s", inst.PID(), stopTimeout)
		}
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
	startCmd.Flags().Duration("stop-timeout", 30*time.Second, "How long to wait for the server to exit after the exit command")
}

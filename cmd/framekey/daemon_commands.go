package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"framekey/internal/daemonctl"
	"framekey/internal/daemonrun"
	"framekey/internal/deps"
	"framekey/internal/ipc"
	"framekey/internal/records"
)

func newDaemonCommands(ctx *commandContext) []*cobra.Command {
	var logLevel string
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the framekey daemon in the foreground",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			return daemonrun.Run(cmd.Context(), cfg, daemonrun.Options{LogLevel: logLevel})
		},
	}
	runCmd.Flags().StringVar(&logLevel, "log-level", "", "Override the configured log level")

	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Start the framekey daemon in the background",
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()
			exe, err := os.Executable()
			if err != nil {
				return fmt.Errorf("resolve executable: %w", err)
			}

			var configPath string
			if ctx.configFlag != nil {
				configPath = strings.TrimSpace(*ctx.configFlag)
			}
			result, err := daemonctl.EnsureStarted(
				ctx.socketPath(),
				exe,
				daemonctl.LaunchOptions{
					SocketPath: ctx.socketPath(),
					ConfigPath: configPath,
				},
				10*time.Second,
			)
			if err != nil {
				return err
			}

			switch result.State {
			case daemonctl.StartStateStarted:
				fmt.Fprintf(stdout, "Daemon started (pid %d)\n", result.PID)
			case daemonctl.StartStateAlreadyRunning:
				fmt.Fprintln(stdout, "Daemon already running")
			}
			return nil
		},
	}

	stopCmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the framekey daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()
			err := daemonctl.Stop(ctx.socketPath(), 5*time.Second)
			if errors.Is(err, daemonctl.ErrDaemonNotRunning) {
				fmt.Fprintln(stdout, "Daemon is not running")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(stdout, "Daemon stopped")
			return nil
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show daemon and record store status",
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()
			client, err := ctx.dialClient()
			if err != nil {
				return printOfflineStatus(ctx, cmd)
			}
			defer client.Close()

			status, err := client.Status()
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "Daemon running: %s (pid %d)\n", yesNo(status.Running), status.PID)
			fmt.Fprintf(stdout, "Record file:    %s (%d records)\n", status.RecordFile, status.RecordCount)
			fmt.Fprintf(stdout, "Lock file:      %s\n", status.LockPath)
			if len(status.Dependencies) > 0 {
				fmt.Fprintln(stdout, "Dependencies:")
				for _, dep := range status.Dependencies {
					detail := dep.Detail
					if detail == "" {
						detail = dep.Command
					}
					fmt.Fprintf(stdout, "  %-10s available=%s %s\n", dep.Name, yesNo(dep.Available), detail)
				}
			}
			return nil
		},
	}

	triggerCmd := &cobra.Command{
		Use:   "trigger",
		Short: "Process the currently selected video file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Trigger()
				if err != nil {
					return err
				}
				if !resp.Queued {
					fmt.Fprintln(cmd.OutOrStdout(), resp.Message)
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Queued %s\n", resp.Path)
				return nil
			})
		},
	}

	return []*cobra.Command{runCmd, startCmd, stopCmd, statusCmd, triggerCmd}
}

func printOfflineStatus(ctx *commandContext, cmd *cobra.Command) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	stdout := cmd.OutOrStdout()
	fmt.Fprintln(stdout, "Daemon running: no")

	store := records.NewStore(cfg.Paths.RecordFile)
	count, err := store.Count()
	if err != nil {
		return fmt.Errorf("count records: %w", err)
	}
	fmt.Fprintf(stdout, "Record file:    %s (%d records)\n", cfg.Paths.RecordFile, count)
	for _, dep := range deps.CheckBinaries(deps.Default(cfg.FFmpegBinary())) {
		fmt.Fprintf(stdout, "  %-10s available=%s %s\n", dep.Name, yesNo(dep.Available), dep.Detail)
	}
	return nil
}

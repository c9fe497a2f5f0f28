package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/yourusername/stackwm/internal/config"
	"github.com/yourusername/stackwm/internal/ipc"
	"github.com/yourusername/stackwm/internal/logging"
	"github.com/yourusername/stackwm/internal/manager"
	"github.com/yourusername/stackwm/internal/output"
	"github.com/yourusername/stackwm/internal/x11"
)

const version = "0.1.0"

var (
	configPath string
	socketPath string
	timeout    time.Duration
	jsonOutput bool

	replaceWM bool
	resume    bool

	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
)

// rootCmd runs the window manager itself.
var rootCmd = &cobra.Command{
	Use:   "stackwm",
	Short: "stackwm - a tiling window manager for X",
	Long: `Stackwm is a tiling window manager for the X Window System.

Windows are arranged automatically by per-workspace layouts; a floating
layer holds dialogs and fixed-size windows. State survives an in-place
restart, and a read-only query socket serves the client subcommands.`,
	Version:      version,
	SilenceUsage: true,
	Args:         cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		logging.Init(cfg.LogLevel)

		opts := manager.Options{Replace: replaceWM}
		if resume {
			if len(args) < 1 {
				return fmt.Errorf("--resume needs the serialized state argument")
			}
			opts.ResumeState = args[0]
			if len(args) > 1 {
				opts.ResumeExtState = args[1]
			}
		}

		m, err := manager.New(cfg, opts)
		if err != nil {
			if err == x11.ErrAnotherWM {
				return fmt.Errorf("another window manager is running (try --replace)")
			}
			return err
		}
		defer m.Close()

		if cfg.SocketPath != "" {
			srv, err := ipc.NewServer(cfg.SocketPath, version)
			if err != nil {
				logging.Warn().Err(err).Str("socket", cfg.SocketPath).Msg("query socket disabled")
			} else {
				defer srv.Close()
				m.SetPublisher(srv.Publish)
				go func() {
					if err := srv.Serve(); err != nil && err != ipc.ErrServerClosed {
						logging.Error().Err(err).Msg("query socket failed")
					}
				}()
			}
		}

		logging.Info().Str("version", version).Msg("stackwm starting")
		return m.Run()
	},
}

// pingCmd tests the query socket.
var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Test connection to a running stackwm",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newClient()
		defer c.Close()

		start := time.Now()
		result, err := c.Ping(context.Background())
		elapsed := time.Since(start)
		if err != nil {
			printError(fmt.Sprintf("Ping failed: %v", err))
			return err
		}
		if jsonOutput {
			return printJSON(result)
		}
		successColor.Println("pong")
		fmt.Printf("Response time: %v\n", elapsed)
		return nil
	},
}

// infoCmd reports manager name, version and pid.
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show information about the running manager",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newClient()
		defer c.Close()

		result, err := c.ManagerInfo(context.Background())
		if err != nil {
			printError(fmt.Sprintf("Failed to get manager info: %v", err))
			return err
		}
		if jsonOutput {
			return printJSON(result)
		}
		for k, v := range result {
			fmt.Printf("%s: %v\n", k, v)
		}
		return nil
	},
}

// workspacesCmd lists workspaces.
var workspacesCmd = &cobra.Command{
	Use:   "workspaces",
	Short: "List workspaces",
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := fetchSnapshot()
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(snap)
		}
		output.PrintWorkspacesTable(snap)
		return nil
	},
}

// windowsCmd lists managed windows.
var windowsCmd = &cobra.Command{
	Use:   "windows",
	Short: "List managed windows",
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := fetchSnapshot()
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(snap)
		}
		output.PrintWindowsTable(snap)
		return nil
	},
}

// screensCmd lists physical outputs.
var screensCmd = &cobra.Command{
	Use:   "screens",
	Short: "List screens",
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := fetchSnapshot()
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(snap)
		}
		output.PrintScreensTable(snap)
		return nil
	},
}

func newClient() *ipc.Client {
	path := socketPath
	if path == "" {
		if cfg, err := config.Load(configPath); err == nil {
			path = cfg.SocketPath
		}
	}
	return ipc.NewClient(path, timeout)
}

func fetchSnapshot() (*ipc.Snapshot, error) {
	c := newClient()
	defer c.Close()
	snap, err := c.Dump(context.Background())
	if err != nil {
		printError(fmt.Sprintf("Failed to query manager: %v", err))
		return nil, err
	}
	return snap, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printError(msg string) {
	errorColor.Fprintln(os.Stderr, msg)
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&socketPath, "socket", "", "query socket path")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", ipc.DefaultTimeout, "query timeout")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")

	rootCmd.Flags().BoolVar(&replaceWM, "replace", false, "replace a running window manager (ICCCM handover)")
	rootCmd.Flags().BoolVar(&resume, "resume", false, "resume from serialized state (internal, used across restart)")
	_ = rootCmd.Flags().MarkHidden("resume")

	rootCmd.AddCommand(pingCmd, infoCmd, workspacesCmd, windowsCmd, screensCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/npp-tools/npp-updater/internal/config"
	"github.com/npp-tools/npp-updater/internal/download"
	"github.com/npp-tools/npp-updater/internal/feed"
	"github.com/npp-tools/npp-updater/internal/installer"
	"github.com/npp-tools/npp-updater/internal/logging"
	"github.com/npp-tools/npp-updater/internal/probe"
	"github.com/npp-tools/npp-updater/internal/update"
)

var (
	version = "1.0.0"
	cfgFile string
	feedURL string
)

var rootCmd = &cobra.Command{
	Use:   "npp-updater",
	Short: "Silent Notepad++ updater",
	Long:  `npp-updater checks the installed Notepad++ against the official release feed and silently installs the latest version when out of date.`,
	// Bare invocation runs the update workflow; the exit code is the
	// contract and 0 must always mean "already up to date".
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(runUpdate())
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Check for an update and install it silently",
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(runUpdate())
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report whether an update is available without installing",
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(runCheck())
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("npp-updater v%s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is npp-updater.yaml in the platform config dir)")
	rootCmd.PersistentFlags().StringVar(&feedURL, "feed-url", "", "release feed endpoint override")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newOrchestrator() (*update.Orchestrator, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if feedURL != "" {
		cfg.FeedURL = feedURL
	}

	logging.Init(cfg.LogFormat, cfg.LogLevel, os.Stderr)

	return update.New(
		probe.New(),
		feed.NewClient(cfg.FeedURL, cfg.HTTPTimeout()),
		download.New(cfg.DownloadDir, cfg.HTTPTimeout()),
		installer.New(),
	), nil
}

func runUpdate() int {
	orch, err := newOrchestrator()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	outcome := orch.Run(context.Background())
	switch outcome {
	case update.UpToDate:
		fmt.Println("Notepad++ is already up to date.")
	case update.Updated:
		fmt.Println("Update installed successfully.")
	case update.NotFound:
		fmt.Fprintln(os.Stderr, "Notepad++ is not installed on this system.")
	case update.FetchFailed:
		fmt.Fprintln(os.Stderr, "Unable to retrieve the latest version.")
	case update.DownloadFailed:
		fmt.Fprintln(os.Stderr, "Installer download failed.")
	case update.InstallFailed:
		fmt.Fprintln(os.Stderr, "Installation failed.")
	}

	return outcome.ExitCode()
}

func runCheck() int {
	orch, err := newOrchestrator()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	result, outcome := orch.Check(context.Background())
	switch outcome {
	case update.NotFound:
		fmt.Fprintln(os.Stderr, "Notepad++ is not installed on this system.")
	case update.FetchFailed:
		fmt.Fprintln(os.Stderr, "Unable to retrieve the latest version.")
	default:
		if result.UpdateAvailable {
			fmt.Printf("Update available: %s -> %s (%s)\n", result.CurrentVersion, result.LatestVersion, result.Arch)
		} else {
			fmt.Printf("Notepad++ %s is up to date.\n", result.CurrentVersion)
		}
	}

	return outcome.ExitCode()
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"picbrowse/internal/config"
	"picbrowse/internal/logging"
)

var version = "dev"

// globalFlags override values from the config file
type globalFlags struct {
	configPath string
	logLevel   string
	logFile    string
	sort       string
	showHidden bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "picbrowse [directory]",
		Short: "Browse image folders",
		Long: `picbrowse shows a folder as a grid of image thumbnails next to a
list of its subfolders, with incremental search and keyboard navigation.

Without a subcommand it browses a directory in the terminal. The serve
subcommand runs the same browser headless, driven by command lines on stdin.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd, flags, args)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "config file (default is the user config directory)")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn or error")
	pf.StringVar(&flags.logFile, "log-file", "", "log file, empty logs to stderr")
	pf.StringVar(&flags.sort, "sort", "", "image order of the local host: name, date or size")
	pf.BoolVar(&flags.showHidden, "hidden", false, "list hidden files and folders")

	root.AddCommand(newBrowseCmd(flags))
	root.AddCommand(newServeCmd(flags))
	return root
}

// loadConfig reads the config file and applies the command line overrides
func loadConfig(cmd *cobra.Command, flags *globalFlags) *config.Config {
	svc := config.NewConfigService()
	if flags.configPath != "" {
		svc = config.NewConfigServiceAt(flags.configPath)
	}

	cfg, err := svc.Load()
	if err != nil || cfg == nil {
		// logging is not set up yet
		fmt.Fprintf(os.Stderr, "picbrowse: using default config: %v\n", err)
		cfg = config.DefaultConfig()
	}

	fs := cmd.Flags()
	if fs.Changed("log-level") {
		cfg.LogLevel = flags.logLevel
	}
	if fs.Changed("log-file") {
		cfg.LogFile = flags.logFile
	}
	if fs.Changed("sort") {
		cfg.Host.Sort = flags.sort
	}
	if fs.Changed("hidden") {
		cfg.Host.ShowHidden = flags.showHidden
	}
	return cfg
}

// setup loads the config, starts logging and returns a context cancelled on SIGINT or SIGTERM
func setup(cmd *cobra.Command, flags *globalFlags) (*config.Config, context.Context, func()) {
	cfg := loadConfig(cmd, flags)

	closer, err := logging.Setup(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "picbrowse: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	logrus.WithFields(logrus.Fields{
		"version": version,
		"command": cmd.Name(),
	}).Info("picbrowse starting")

	cleanup := func() {
		stop()
		logrus.Info("picbrowse exiting")
		_ = closer.Close()
	}
	return cfg, ctx, cleanup
}

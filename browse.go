package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"picbrowse/internal/eventbus"
	"picbrowse/internal/host"
	"picbrowse/internal/ui"
)

func newBrowseCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "browse [directory]",
		Short: "Browse a directory in the terminal",
		Long: `Browse a directory in the terminal. Images and subfolders come from a
local host that lists the directory and follows changes to it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd, flags, args)
		},
	}
}

func runBrowse(cmd *cobra.Command, flags *globalFlags, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("failed to open %s: %w", dir, err)
	}

	cfg, ctx, cleanup := setup(cmd, flags)
	defer cleanup()

	bus := eventbus.New()
	defer bus.Close()

	model := ui.NewModel(cfg, bus)
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	model.SetProgram(p)

	h, err := host.New(cfg, func(line string) {
		p.Send(ui.CommandMsg{Line: line})
	})
	if err != nil {
		return err
	}
	h.Attach(bus)
	if err := h.Start(ctx, dir); err != nil {
		return err
	}
	defer func() {
		if err := h.Close(); err != nil {
			logrus.WithError(err).Warn("failed to stop host")
		}
	}()

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("failed to run browser: %w", err)
	}
	return nil
}

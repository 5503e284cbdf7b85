package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"picbrowse/internal/channel"
	"picbrowse/internal/host"
)

func newServeCmd(flags *globalFlags) *cobra.Command {
	var local string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the browser headless over stdin and stdout",
		Long: `Run the browser without a terminal. Host commands are read from stdin,
one per line, and notifications are written to stdout in the same
"verb:payload" form. With --local the built-in host lists a directory
and answers the notifications itself.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, ctx, cleanup := setup(cmd, flags)
			defer cleanup()

			loop := channel.NewLoop(cfg, os.Stdout)
			if local != "" {
				h, err := host.New(cfg, loop.Send)
				if err != nil {
					return err
				}
				h.Attach(loop.Bus())
				if err := h.Start(ctx, local); err != nil {
					return err
				}
				defer func() {
					if err := h.Close(); err != nil {
						logrus.WithError(err).Warn("failed to stop host")
					}
				}()
			}

			return loop.Run(ctx, os.Stdin)
		},
	}

	cmd.Flags().StringVar(&local, "local", "", "serve this directory with the built-in host")
	return cmd
}

package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	mpdproto "github.com/avdata/go-mpdproto"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print sticker change notifications until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			var opts []mpdproto.Option
			if cfg.Password != "" {
				opts = append(opts, mpdproto.WithPassword(cfg.Password))
			}
			client, err := mpdproto.Dial(cfg.addr(), opts...)
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			events, cleanup, err := client.Watch(runCtx, mpdproto.SubsystemSticker)
			if err != nil {
				return err
			}
			defer func() { _ = cleanup() }()

			for {
				select {
				case <-runCtx.Done():
					return nil
				case event, ok := <-events:
					if !ok {
						return nil
					}
					if event.Err != nil {
						return event.Err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "changed: %s\n", event.Subsystem)
				}
			}
		},
	}
}

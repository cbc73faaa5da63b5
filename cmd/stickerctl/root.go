package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var hostFlag string
	var portFlag int
	var passwordFlag string
	var configFlag string
	var timeoutFlag int

	ctx := newCommandContext(&hostFlag, &portFlag, &passwordFlag, &configFlag, &timeoutFlag)

	rootCmd := &cobra.Command{
		Use:           "stickerctl",
		Short:         "Manage MPD stickers",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&hostFlag, "host", "", "MPD host, or a Unix socket path")
	rootCmd.PersistentFlags().IntVar(&portFlag, "port", 0, "MPD port")
	rootCmd.PersistentFlags().StringVar(&passwordFlag, "password", "", "MPD password")
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().IntVar(&timeoutFlag, "timeout", 0, "Operation timeout in seconds")

	rootCmd.AddCommand(newSetCommand(ctx))
	rootCmd.AddCommand(newGetCommand(ctx))
	rootCmd.AddCommand(newDeleteCommand(ctx))
	rootCmd.AddCommand(newListCommand(ctx))
	rootCmd.AddCommand(newFindCommand(ctx))
	rootCmd.AddCommand(newNamesCommand(ctx))
	rootCmd.AddCommand(newExportCommand(ctx))
	rootCmd.AddCommand(newWatchCommand(ctx))

	return rootCmd
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "set TYPE URI NAME VALUE",
		Short: "Add or replace a sticker value",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, runCtx, cancel, err := ctx.dial(cmd.Context())
			if err != nil {
				return err
			}
			defer cancel()
			defer func() { _ = client.Close() }()

			return client.RunStickerSet(runCtx, args[0], args[1], args[2], args[3])
		},
	}
}

func newGetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "get TYPE URI NAME",
		Short: "Print one sticker value",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, runCtx, cancel, err := ctx.dial(cmd.Context())
			if err != nil {
				return err
			}
			defer cancel()
			defer func() { _ = client.Close() }()

			value, err := client.RunStickerGet(runCtx, args[0], args[1], args[2])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
}

func newDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "del TYPE URI [NAME]",
		Aliases: []string{"delete"},
		Short:   "Delete one sticker, or all stickers of an object",
		Args:    cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, runCtx, cancel, err := ctx.dial(cmd.Context())
			if err != nil {
				return err
			}
			defer cancel()
			defer func() { _ = client.Close() }()

			name := ""
			if len(args) == 3 {
				name = args[2]
			}
			return client.RunStickerDelete(runCtx, args[0], args[1], name)
		},
	}
}

func newListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list TYPE URI",
		Short: "List all stickers of an object",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, runCtx, cancel, err := ctx.dial(cmd.Context())
			if err != nil {
				return err
			}
			defer cancel()
			defer func() { _ = client.Close() }()

			stickers, err := client.RunStickerList(runCtx, args[0], args[1])
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(stickers))
			for _, s := range stickers {
				rows = append(rows, []string{s.Name, s.Value})
			}
			fmt.Fprint(cmd.OutOrStdout(), renderRows([]string{"Name", "Value"}, rows))
			return nil
		},
	}
}

func newFindCommand(ctx *commandContext) *cobra.Command {
	var baseURI string

	cmd := &cobra.Command{
		Use:   "find TYPE NAME",
		Short: "Search for stickers by name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, runCtx, cancel, err := ctx.dial(cmd.Context())
			if err != nil {
				return err
			}
			defer cancel()
			defer func() { _ = client.Close() }()

			matches, err := client.RunStickerFind(runCtx, args[0], baseURI, args[1])
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(matches))
			for _, m := range matches {
				rows = append(rows, []string{m.URI, m.Sticker.Name, m.Sticker.Value})
			}
			fmt.Fprint(cmd.OutOrStdout(), renderRows([]string{"URI", "Name", "Value"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&baseURI, "base", "", "Restrict the search to this base URI")
	return cmd
}

func newNamesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "names",
		Short: "List all sticker names known to the daemon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, runCtx, cancel, err := ctx.dial(cmd.Context())
			if err != nil {
				return err
			}
			defer cancel()
			defer func() { _ = client.Close() }()

			names, err := client.RunStickerNames(runCtx)
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

package main

import (
	"fmt"

	"github.com/google/renameio/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

// exportFile is the on-disk shape of an exported sticker set
type exportFile struct {
	Type     string            `toml:"type"`
	URI      string            `toml:"uri"`
	Stickers map[string]string `toml:"stickers"`
}

func newExportCommand(ctx *commandContext) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export TYPE URI",
		Short: "Dump all stickers of an object to a TOML file",
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

			dump := exportFile{
				Type:     args[0],
				URI:      args[1],
				Stickers: make(map[string]string, len(stickers)),
			}
			for _, s := range stickers {
				dump.Stickers[s.Name] = s.Value
			}

			data, err := toml.Marshal(dump)
			if err != nil {
				return fmt.Errorf("encoding export: %w", err)
			}

			// atomic write: readers never observe a partial dump
			if err := renameio.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d stickers to %s\n", len(stickers), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "stickers.toml", "Output file path")
	return cmd
}

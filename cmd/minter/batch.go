package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// uploadAssetsCmd publishes the assets directory and writes the manifest
var uploadAssetsCmd = &cobra.Command{
	Use:   "upload-assets",
	Short: "Publish every image in the assets directory with generated metadata",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()
		defer a.close()

		entries, err := a.batch().UploadAssets(cmd.Context())
		if err != nil {
			return err
		}

		for _, e := range entries {
			fmt.Fprintf(cmd.OutOrStdout(), "#%d %s\n", e.ID, e.Metadata)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d asset(s) published, manifest written to %s\n", len(entries), cfg.Batch.ManifestPath)

		return nil
	},
}

// mintAllCmd mints every manifest entry to the wallet account
var mintAllCmd = &cobra.Command{
	Use:   "mint-all",
	Short: "Mint every entry of the manifest to the wallet account",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()
		defer a.close()

		ctx := cmd.Context()
		session, err := a.session(ctx, true)
		if err != nil {
			return err
		}

		ctx, stop := a.watchWallet(ctx)
		defer stop()

		outcomes, err := a.batch().MintAll(ctx, session)
		err = interrupted(ctx, err)
		for _, o := range outcomes {
			fmt.Fprintf(cmd.OutOrStdout(), "#%d minted as token #%d in block %d\n",
				o.Entry.ID, o.Receipt.TokenID, o.Receipt.BlockNumber)
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%d token(s) minted\n", len(outcomes))

		return nil
	},
}

package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/feral-file/ff-minter/internal/contract"
	"github.com/feral-file/ff-minter/internal/mint"
)

var (
	mintTo          string
	mintURI         string
	mintFile        string
	mintName        string
	mintDescription string
)

// mintCmd mints one token, either from an existing metadata URI or from a new artwork file
var mintCmd = &cobra.Command{
	Use:   "mint",
	Short: "Mint a token from --uri, or publish --file with --name and mint it",
	RunE: func(cmd *cobra.Command, args []string) error {
		if (mintURI == "") == (mintFile == "") {
			return fmt.Errorf("exactly one of --uri or --file is required")
		}

		a := newApp()
		defer a.close()

		ctx := cmd.Context()
		session, err := a.session(ctx, true)
		if err != nil {
			return err
		}

		var receipt *contract.MintReceipt
		if mintURI != "" {
			receipt, err = a.minter.Mint(ctx, session, mintTo, mintURI)
			if err != nil {
				return err
			}
		} else {
			data, err := a.fs.ReadFile(mintFile)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", mintFile, err)
			}

			wctx, stop := a.watchWallet(ctx)
			defer stop()

			result, err := a.minter.MintArtwork(wctx, session, mint.ArtworkRequest{
				File:        data,
				FileName:    filepath.Base(mintFile),
				Name:        mintName,
				Description: mintDescription,
				Recipient:   mintTo,
			})
			if err != nil {
				return interrupted(wctx, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Image:    %s\nMetadata: %s\n", result.ImageLocator, result.MetadataLocator)
			receipt = result.Receipt
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Minted token #%d in block %d (tx %s)\n",
			receipt.TokenID, receipt.BlockNumber, receipt.TxHash.Hex())

		return nil
	},
}

func init() {
	mintCmd.Flags().StringVar(&mintTo, "to", "", "Recipient address (defaults to the wallet account)")
	mintCmd.Flags().StringVar(&mintURI, "uri", "", "Metadata URI of an already published token")
	mintCmd.Flags().StringVar(&mintFile, "file", "", "Artwork file to publish and mint")
	mintCmd.Flags().StringVar(&mintName, "name", "", "Artwork title (required with --file)")
	mintCmd.Flags().StringVar(&mintDescription, "description", "", "Artwork description")
}

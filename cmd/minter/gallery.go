package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/feral-file/ff-minter/internal/gallery"
)

var (
	galleryMine   bool
	gallerySearch string
)

// galleryCmd prints the collection
var galleryCmd = &cobra.Command{
	Use:   "gallery",
	Short: "List every minted token with its metadata and owner",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()
		defer a.close()

		ctx := cmd.Context()
		session, err := a.session(ctx, false)
		if err != nil {
			return err
		}

		items, err := a.aggregator(session).Aggregate(ctx)
		if err != nil {
			return err
		}

		items = gallery.Apply(items, gallery.Filter{
			Account:  session.Account,
			MineOnly: galleryMine,
			Search:   gallerySearch,
		})

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tOWNER\tIMAGE")
		for _, item := range items {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", item.TokenID, item.Metadata.Name, item.Owner, item.ImageURL)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%d token(s)\n", len(items))

		return nil
	},
}

func init() {
	galleryCmd.Flags().BoolVar(&galleryMine, "mine", false, "Only tokens owned by the wallet account")
	galleryCmd.Flags().StringVar(&gallerySearch, "search", "", "Filter by name, description or owner")
}

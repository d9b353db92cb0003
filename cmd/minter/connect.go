package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var connectPrompt bool

// connectCmd reports the wallet session
var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Connect to the chain and the wallet and report the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()
		defer a.close()

		session, err := a.session(cmd.Context(), connectPrompt)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Contract: %s\n", session.Reader.Address().Hex())
		switch {
		case session.NetworkErr != nil:
			fmt.Fprintf(out, "Network:  %v\n", session.NetworkErr)
		case session.Connected():
			fmt.Fprintf(out, "Account:  %s\n", session.Account)
			fmt.Fprintf(out, "Chain ID: %d\n", session.ChainID)
		default:
			fmt.Fprintln(out, "Account:  not connected (read-only)")
		}

		total, err := session.Reader.TotalMinted(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Minted:   %d\n", total)

		return nil
	},
}

func init() {
	connectCmd.Flags().BoolVar(&connectPrompt, "prompt", true, "Ask the wallet for access when it does not authorize this client yet")
}

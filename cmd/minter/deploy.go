package main

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/feral-file/ff-minter/internal/adapter"
	"github.com/feral-file/ff-minter/internal/contract"
	"github.com/feral-file/ff-minter/internal/domain"
	"github.com/feral-file/ff-minter/internal/wallet"
)

var deployOwner string

// deployCmd deploys a new collection contract
var deployCmd = &cobra.Command{
	Use:   "deploy [artifact]",
	Short: "Deploy the collection contract from a compiled artifact",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.ArtifactPath
		if len(args) == 1 {
			path = args[0]
		}
		if path == "" {
			return fmt.Errorf("%w: artifact_path", domain.ErrConfig)
		}

		a := newApp()
		defer a.close()

		data, err := a.fs.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read artifact %s: %w", path, err)
		}
		artifact, parsed, err := contract.ParseArtifact(data, adapter.NewJSON())
		if err != nil {
			return err
		}

		ctx := cmd.Context()

		// deploying never reads through the session, any non-zero address will do
		address := cfg.Chain.ContractAddress
		if address == "" {
			address = common.MaxAddress.Hex()
		}
		if _, err := a.manager.InitializeReadOnly(ctx, cfg.Chain.RPCURL, address); err != nil {
			return err
		}
		session, err := a.manager.RequestConnection(ctx)
		if err != nil {
			return err
		}
		signer, err := signerFor(session)
		if err != nil {
			return err
		}

		owner := signer.Account()
		if deployOwner != "" {
			if !common.IsHexAddress(deployOwner) {
				return fmt.Errorf("%w: %q is not an address", domain.ErrInvalidInput, deployOwner)
			}
			owner = common.HexToAddress(deployOwner)
		}

		opts, err := signer.TransactOpts(ctx)
		if err != nil {
			return err
		}

		deployment, err := contract.Deploy(ctx, opts, signer.Backend(), artifact, parsed, owner, contract.DefaultWaitOptions)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Deployed to %s in block %d (tx %s)\n",
			deployment.Address.Hex(), deployment.BlockNumber, deployment.TxHash.Hex())

		return nil
	},
}

func signerFor(session *wallet.Session) (*wallet.SigningHandle, error) {
	if session.NetworkErr != nil {
		return nil, session.NetworkErr
	}
	if !session.Connected() {
		return nil, domain.ErrNotConnected
	}
	return session.Signer(), nil
}

func init() {
	deployCmd.Flags().StringVar(&deployOwner, "owner", "", "Initial owner (defaults to the deployer)")
}

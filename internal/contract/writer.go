package contract

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"

	"github.com/feral-file/ff-minter/internal/adapter"
	"github.com/feral-file/ff-minter/internal/domain"
	"github.com/feral-file/ff-minter/internal/logger"
)

// MintReceipt describes a confirmed mint
type MintReceipt struct {
	TokenID     uint64
	TxHash      common.Hash
	BlockNumber uint64
}

// Writer submits state-changing calls to the collection contract
//
//go:generate mockgen -source=writer.go -destination=../mocks/contract_writer.go -package=mocks -mock_names=Writer=MockContractWriter
type Writer interface {
	// MintNFT submits mintNFT(recipient, tokenURI) signed by opts and waits for confirmation
	MintNFT(ctx context.Context, opts *bind.TransactOpts, recipient common.Address, tokenURI string) (*MintReceipt, error)
}

type writer struct {
	address  common.Address
	backend  adapter.EthClient
	contract *bind.BoundContract
	wait     WaitOptions
}

// NewWriter creates a write handle for the contract at address
func NewWriter(address common.Address, backend adapter.EthClient, wait WaitOptions) Writer {
	return &writer{
		address:  address,
		backend:  backend,
		contract: bind.NewBoundContract(address, parsedABI, backend, backend, backend),
		wait:     wait,
	}
}

func (w *writer) MintNFT(ctx context.Context, opts *bind.TransactOpts, recipient common.Address, tokenURI string) (*MintReceipt, error) {
	if opts == nil {
		return nil, domain.ErrNotConnected
	}

	txOpts := *opts
	txOpts.Context = ctx

	tx, err := w.contract.Transact(&txOpts, "mintNFT", recipient, tokenURI)
	if err != nil {
		return nil, classifySubmitError(err)
	}

	logger.InfoCtx(ctx, "Mint transaction submitted",
		zap.String("txHash", tx.Hash().Hex()),
		zap.String("recipient", recipient.Hex()))

	receipt, err := WaitMined(ctx, w.backend, tx.Hash(), w.wait)
	if err != nil {
		return nil, err
	}

	tokenID, err := MintedTokenID(w.address, receipt.Logs)
	if err != nil {
		return nil, err
	}

	return &MintReceipt{
		TokenID:     tokenID,
		TxHash:      tx.Hash(),
		BlockNumber: receipt.BlockNumber.Uint64(),
	}, nil
}

// classifySubmitError maps signer and node errors onto the domain errors
func classifySubmitError(err error) error {
	if errors.Is(err, domain.ErrUserRejected) ||
		errors.Is(err, domain.ErrSessionInvalidated) ||
		errors.Is(err, domain.ErrNotConnected) {
		return err
	}

	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) && rpcErr.ErrorCode() == domain.WALLET_CODE_USER_REJECTED {
		return fmt.Errorf("%w: %s", domain.ErrUserRejected, rpcErr.Error())
	}

	return fmt.Errorf("%w: %w", domain.ErrTransactionFailed, err)
}

// MintedTokenID extracts the new token id from the logs emitted by the contract at address.
// The Minted event is preferred; a Transfer from the zero address is accepted otherwise.
func MintedTokenID(address common.Address, logs []*types.Log) (uint64, error) {
	minted := parsedABI.Events["Minted"].ID
	transfer := parsedABI.Events["Transfer"].ID

	var fromTransfer *big.Int
	for _, l := range logs {
		if l == nil || l.Address != address || len(l.Topics) == 0 {
			continue
		}
		switch {
		case l.Topics[0] == minted && len(l.Topics) >= 3:
			return topicToUint64(l.Topics[2])
		case l.Topics[0] == transfer && len(l.Topics) >= 4 && l.Topics[1] == (common.Hash{}):
			if fromTransfer == nil {
				fromTransfer = l.Topics[3].Big()
			}
		}
	}

	if fromTransfer != nil {
		if !fromTransfer.IsUint64() {
			return 0, fmt.Errorf("%w: token id %s out of range", domain.ErrTransactionFailed, fromTransfer)
		}
		return fromTransfer.Uint64(), nil
	}

	return 0, fmt.Errorf("%w: no mint event in receipt", domain.ErrTransactionFailed)
}

func topicToUint64(topic common.Hash) (uint64, error) {
	id := topic.Big()
	if !id.IsUint64() {
		return 0, fmt.Errorf("%w: token id %s out of range", domain.ErrTransactionFailed, id)
	}
	return id.Uint64(), nil
}

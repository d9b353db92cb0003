package contract

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/feral-file/ff-minter/internal/domain"
	"github.com/feral-file/ff-minter/internal/logger"
)

// ReceiptFetcher returns the receipt of a mined transaction, or ethereum.NotFound while it is pending
type ReceiptFetcher interface {
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// WaitOptions controls how often a pending transaction is polled
type WaitOptions struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultWaitOptions polls every second at first, backing off to ten seconds
var DefaultWaitOptions = WaitOptions{
	InitialInterval: time.Second,
	MaxInterval:     10 * time.Second,
}

// WaitMined blocks until the transaction is included in a block or ctx is done.
// A reverted transaction is reported as domain.ErrTransactionFailed.
func WaitMined(ctx context.Context, fetcher ReceiptFetcher, txHash common.Hash, opts WaitOptions) (*types.Receipt, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = opts.InitialInterval
	b.MaxInterval = opts.MaxInterval
	b.MaxElapsedTime = 0

	operation := func() (*types.Receipt, error) {
		receipt, err := fetcher.TransactionReceipt(ctx, txHash)
		if err == nil {
			return receipt, nil
		}
		if errors.Is(err, ethereum.NotFound) {
			logger.DebugCtx(ctx, "Transaction not mined yet", zap.String("txHash", txHash.Hex()))
			return nil, err
		}
		return nil, backoff.Permanent(err)
	}

	receipt, err := backoff.RetryWithData(operation, backoff.WithContext(b, ctx))
	if err != nil {
		return nil, fmt.Errorf("%w: waiting for %s: %w", domain.ErrTransactionFailed, txHash.Hex(), err)
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		return receipt, fmt.Errorf("%w: transaction %s reverted", domain.ErrTransactionFailed, txHash.Hex())
	}

	return receipt, nil
}

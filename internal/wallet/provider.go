package wallet

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/feral-file/ff-minter/internal/adapter"
	"github.com/feral-file/ff-minter/internal/domain"
)

// Provider is the wallet the session manager talks to.
// It owns the keys; this repository only asks it for accounts, the chain id and signatures.
//
//go:generate mockgen -source=provider.go -destination=../mocks/wallet_provider.go -package=mocks -mock_names=Provider=MockWalletProvider
type Provider interface {
	// Accounts returns the accounts that already authorize this client, without prompting
	Accounts(ctx context.Context) ([]common.Address, error)

	// RequestAccounts prompts the wallet owner for account access
	RequestAccounts(ctx context.Context) ([]common.Address, error)

	// ChainID returns the chain the wallet is currently on
	ChainID(ctx context.Context) (uint64, error)

	// Signer returns a transaction signer for account on chainID
	Signer(account common.Address, chainID *big.Int) (bind.SignerFn, error)

	// Close releases the provider's connection
	Close()
}

// ProviderFactory creates the wallet provider once the chain connection exists.
// backend is the read-only connection established by InitializeReadOnly.
type ProviderFactory func(ctx context.Context, backend adapter.EthClient) (Provider, error)

// keyedProvider is a wallet holding a single private key
type keyedProvider struct {
	key     *ecdsa.PrivateKey
	address common.Address
	backend adapter.EthClient
}

// NewKeyedProvider creates a wallet from a hex-encoded private key.
// The chain id is the one reported by backend.
func NewKeyedProvider(hexKey string, backend adapter.EthClient) (Provider, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(hexKey), "0x"))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid private key: %w", domain.ErrConfig, err)
	}

	return &keyedProvider{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
		backend: backend,
	}, nil
}

// KeyedProviderFactory returns a factory for NewKeyedProvider
func KeyedProviderFactory(hexKey string) ProviderFactory {
	return func(_ context.Context, backend adapter.EthClient) (Provider, error) {
		return NewKeyedProvider(hexKey, backend)
	}
}

func (p *keyedProvider) Accounts(_ context.Context) ([]common.Address, error) {
	return []common.Address{p.address}, nil
}

func (p *keyedProvider) RequestAccounts(_ context.Context) ([]common.Address, error) {
	return []common.Address{p.address}, nil
}

func (p *keyedProvider) ChainID(ctx context.Context) (uint64, error) {
	id, err := p.backend.ChainID(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get chain id: %w", err)
	}
	return id.Uint64(), nil
}

func (p *keyedProvider) Signer(account common.Address, chainID *big.Int) (bind.SignerFn, error) {
	if account != p.address {
		return nil, fmt.Errorf("%w: key does not control %s", domain.ErrInvalidInput, account.Hex())
	}

	opts, err := bind.NewKeyedTransactorWithChainID(p.key, chainID)
	if err != nil {
		return nil, err
	}

	return opts.Signer, nil
}

func (p *keyedProvider) Close() {}

// mapWalletError converts wallet JSON-RPC error codes into domain errors
func mapWalletError(err error) error {
	if err == nil {
		return nil
	}

	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		switch rpcErr.ErrorCode() {
		case domain.WALLET_CODE_USER_REJECTED:
			return fmt.Errorf("%w: %s", domain.ErrUserRejected, rpcErr.Error())
		case domain.WALLET_CODE_REQUEST_PENDING:
			return fmt.Errorf("%w: %s", domain.ErrAlreadyPending, rpcErr.Error())
		}
	}

	if strings.Contains(strings.ToLower(err.Error()), "already pending") {
		return fmt.Errorf("%w: %w", domain.ErrAlreadyPending, err)
	}

	return err
}
